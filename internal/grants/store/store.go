package store

import (
	"context"
	"errors"

	"github.com/lamalex/odu-grants/internal/grants/domain"
)

var (
	ErrNotFound = errors.New("store: not found")

	// ErrEmailExists is the translated unique-constraint violation on the
	// users.email index. Drivers must map the raw constraint error to this so
	// callers never have to sniff driver error strings.
	ErrEmailExists = errors.New("store: email already registered")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep concerns tidy and make the
// transaction boundary explicit: code running inside WithTx must use the
// tx-scoped repos it is handed, never the root store.
type Store interface {
	Users() Users
	Grants() Grants
	Departments() Departments
	Entities() Entities

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Rollback also
	// runs on panic, so no exit path leaks a connection.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped store: the same repositories, one connection,
// one atomic unit of work.
type Tx interface {
	Users() Users
	Grants() Grants
	Departments() Departments
	Entities() Entities
}

type Users interface {
	// GetUserByID returns a user by id, soft-deleted rows included
	// (a deleted user's historical grants still need their metadata).
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up an active user for login. Soft-deleted users
	// do not come back.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// A duplicate email surfaces as ErrEmailExists.
	CreateUser(ctx context.Context, u domain.User) error

	// SoftDeleteUser flips the deleted flag. Data is never purged.
	SoftDeleteUser(ctx context.Context, userID string) error

	// ListDepartmentPeers returns active users sharing the department of the
	// given user, excluding that user, keyed by id.
	ListDepartmentPeers(ctx context.Context, userID string) (map[string]domain.User, error)

	// IsEmpty reports whether there are no users (bootstrap check).
	IsEmpty(ctx context.Context) (bool, error)
}

type Grants interface {
	// CreateGrant inserts a grant row and its recipient links. Call inside
	// WithTx when the grant must persist atomically with other writes.
	CreateGrant(ctx context.Context, g domain.Grant) error

	// ListForRecipient returns grants where the user is a recipient, joined
	// with source entity and administrator metadata.
	ListForRecipient(ctx context.Context, userID string) ([]domain.GrantDetail, error)

	// ListAdministeredBy returns grants the user administers, with the same
	// joined metadata.
	ListAdministeredBy(ctx context.Context, adminID string) ([]domain.GrantDetail, error)

	// GetGrantByID fetches a single grant with its recipient set.
	GetGrantByID(ctx context.Context, id string) (domain.Grant, error)

	// UpdateGrantStatus persists a new status by id. No version check: the
	// last writer wins.
	UpdateGrantStatus(ctx context.Context, grantID string, status domain.GrantStatus) error
}

type Departments interface {
	// GetDepartmentByID resolves a department for invite emails.
	GetDepartmentByID(ctx context.Context, id string) (domain.Department, error)

	// ListDepartments returns all departments ordered by name.
	ListDepartments(ctx context.Context) ([]domain.Department, error)
}

type Entities interface {
	// GetEntityByName resolves a granting entity by its well-known name
	// (e.g. "ODU" for startup grants).
	GetEntityByName(ctx context.Context, name string) (domain.GrantingEntity, error)
}
