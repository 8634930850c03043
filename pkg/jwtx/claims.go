package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the single claim set used across the service. Session tokens
// populate the identity fields; invitation tokens populate the invite fields.
// Both are signed with the same deployment key.
//
// Note that no "exp" claim is set anywhere: session and invitation tokens are
// bounded only by signature validity. That is a deliberate carry-over from
// the system this replaces, not an oversight (see DESIGN.md), so don't add an
// expiry here without treating it as a behavioral change.
type Claims struct {
	jwt.RegisteredClaims

	/* Session claims */

	// UID is the authenticated user's id.
	UID string `json:"uid,omitempty"`

	// Role is the user's role name (FACULTY, ADMINISTRATOR).
	Role string `json:"role,omitempty"`

	/* Invitation claims */

	// Email is the address the invite pre-authorizes for registration.
	Email string `json:"email,omitempty"`

	// InvitedBy is the id of the administrator who issued the invite.
	InvitedBy string `json:"invitedById,omitempty"`

	// StartupAmount is the startup grant amount attached to the invite.
	StartupAmount float64 `json:"startupAmount,omitempty"`
}

// NewSessionClaims builds the claim set issued on login and registration.
func NewSessionClaims(uid, role, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  uid,
			IssuedAt: jwt.NewNumericDate(now),
		},
		UID:  uid,
		Role: role,
	}
}

// NewInviteClaims builds the claim set embedded in an invitation token.
func NewInviteClaims(email, invitedBy string, startupAmount float64, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Email:         email,
		InvitedBy:     invitedBy,
		StartupAmount: startupAmount,
	}
}

// IsSession reports whether the claims look like a session token.
func (c *Claims) IsSession() bool { return c.UID != "" }

// IsInvite reports whether the claims look like an invitation token.
func (c *Claims) IsInvite() bool { return c.Email != "" }
