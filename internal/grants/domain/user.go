package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role is a user's authorization role. Stored as its string name.
type Role string

const (
	RoleFaculty       Role = "FACULTY"
	RoleAdministrator Role = "ADMINISTRATOR"
)

// ParseRole validates a stored or submitted role name.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleFaculty:
		return RoleFaculty, nil
	case RoleAdministrator:
		return RoleAdministrator, nil
	default:
		return "", fmt.Errorf("domain: unknown role %q", s)
	}
}

type User struct {
	ID           string
	Name         string
	Email        string // unique, enforced at creation
	PasswordHash string // argon2id encoded
	Role         Role
	DepartmentID string
	Deleted      bool // soft delete; rows are never purged
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var (
	ErrEmptyName     = errors.New("domain: user name is required")
	ErrInvalidEmail  = errors.New("domain: invalid email address")
	ErrEmptyPassword = errors.New("domain: password hash is required")
)

// NewUser builds a fully-formed user value or fails. There is no partially
// constructed intermediate state: callers get a valid user or an error.
func NewUser(id, name, email, passwordHash string, role Role, departmentID string) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, ErrEmptyName
	}

	email, err := NormalizeEmail(email)
	if err != nil {
		return User{}, err
	}

	if passwordHash == "" {
		return User{}, ErrEmptyPassword
	}

	if _, err := ParseRole(string(role)); err != nil {
		return User{}, err
	}

	return User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		DepartmentID: departmentID,
	}, nil
}

// NormalizeEmail lowercases and trims an address and applies a minimal
// shape check. Full RFC validation is not the goal; catching obviously
// broken input before it reaches the unique index is.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || strings.Count(email, "@") != 1 {
		return "", ErrInvalidEmail
	}
	if !strings.Contains(email[at+1:], ".") {
		return "", ErrInvalidEmail
	}

	return email, nil
}

// Summary is the client-facing projection of a user: everything except the
// credential material.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
	}
}

type UserSummary struct {
	ID           string `json:"uid"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	DepartmentID string `json:"department"`
}
