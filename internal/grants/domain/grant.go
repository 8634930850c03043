package domain

import (
	"errors"
	"fmt"
	"time"
)

// GrantStatus is the stored lifecycle state of a grant.
type GrantStatus string

const (
	StatusPending  GrantStatus = "PENDING"
	StatusApproved GrantStatus = "APPROVED"
	StatusDenied   GrantStatus = "DENIED"
)

// ErrUnknownStatus reports a status request outside the fixed vocabulary.
var ErrUnknownStatus = errors.New("domain: unknown grant status")

// statusRequests maps the request vocabulary the API accepts onto stored
// statuses. Anything not in this table is rejected outright.
var statusRequests = map[string]GrantStatus{
	"APPROVE": StatusApproved,
	"DENY":    StatusDenied,
	"PENDING": StatusPending,
}

// ParseStatusRequest translates a requested status transition ("APPROVE",
// "DENY", "PENDING") into the status it stores.
func ParseStatusRequest(requested string) (GrantStatus, error) {
	status, ok := statusRequests[requested]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, requested)
	}
	return status, nil
}

// ParseGrantStatus validates a stored status value.
func ParseGrantStatus(s string) (GrantStatus, error) {
	switch GrantStatus(s) {
	case StatusPending, StatusApproved, StatusDenied:
		return GrantStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// Grant is a persisted grant aggregate. Recipients is the set of user ids the
// grant funds; it is written together with the grant and append-only after.
type Grant struct {
	ID              string
	GrantNumber     string // business key, e.g. "ODU-STARTUP"
	Title           string
	SourceID        string // granting entity
	OriginalAmount  float64
	Balance         float64
	Status          GrantStatus
	AdministratorID string
	Recipients      []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var (
	ErrNoRecipients    = errors.New("domain: a grant needs at least one recipient")
	ErrNoAdministrator = errors.New("domain: a grant needs an administrator")
	ErrNegativeAmount  = errors.New("domain: grant amount cannot be negative")
)

// Startup grant template. Issued automatically when an invitation is
// converted into a registration.
const (
	StartupGrantTitle  = "Startup Fund"
	StartupGrantNumber = "ODU-STARTUP"
)

// NewStartupGrant builds the canned startup grant for a newly registered
// faculty member: pre-approved, single recipient, balance equal to the
// original amount, attributed to the inviting administrator.
func NewStartupGrant(id, sourceID, administratorID, recipientID string, amount float64) (Grant, error) {
	if administratorID == "" {
		return Grant{}, ErrNoAdministrator
	}
	if recipientID == "" {
		return Grant{}, ErrNoRecipients
	}
	if amount < 0 {
		return Grant{}, ErrNegativeAmount
	}

	return Grant{
		ID:              id,
		GrantNumber:     StartupGrantNumber,
		Title:           StartupGrantTitle,
		SourceID:        sourceID,
		OriginalAmount:  amount,
		Balance:         amount,
		Status:          StatusApproved,
		AdministratorID: administratorID,
		Recipients:      []string{recipientID},
	}, nil
}

// GrantDetail is a grant joined with its source entity and administrator
// metadata, the shape list queries return.
type GrantDetail struct {
	Grant
	Source        GrantingEntity
	Administrator UserSummary
}
