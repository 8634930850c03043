package service

import "errors"

// Business-rule errors. These are expected outcomes surfaced to the caller
// with a user-facing message; they are distinct from jwtx.ErrInvalidToken
// (unverifiable token, 401) and from storage failures (opaque 500).
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrEmailExists        = errors.New("a user with that email is already registered")
	ErrInvitationMismatch = errors.New("registration email does not match invitation")
	ErrGrantNotFound      = errors.New("grant not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrInvalidRequest     = errors.New("invalid request")

	// ErrUnauthorized means the token verified but its role does not permit
	// the operation. Deliberately separate from ErrInvalidToken: the
	// transport maps one to 403 and the other to 401.
	ErrUnauthorized = errors.New("you are not authorized for this operation")
)
