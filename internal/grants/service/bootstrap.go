package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lamalex/odu-grants/internal/grants/domain"
	"github.com/lamalex/odu-grants/internal/grants/store"
	"github.com/lamalex/odu-grants/pkg/cryptox"
	"github.com/lamalex/odu-grants/pkg/idx"
	"github.com/lamalex/odu-grants/pkg/slogx"
)

// BootstrapAdmin describes the first administrator account. Registration is
// invite-only, so an empty database with no admin could never mint invites;
// this seeds the one account that breaks that cycle.
type BootstrapAdmin struct {
	Name         string
	Email        string
	Password     string // empty means generate one and log it
	DepartmentID string
}

// EnsureAdmin creates the bootstrap administrator if and only if the users
// table is empty. Subsequent starts are a no-op.
func EnsureAdmin(ctx context.Context, st store.Store, cfg BootstrapAdmin) error {
	log := slogx.FromContext(ctx)

	empty, err := st.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("checking for existing users: %w", err)
	}
	if !empty {
		return nil
	}

	email, err := domain.NormalizeEmail(cfg.Email)
	if err != nil {
		return fmt.Errorf("bootstrap admin email: %w", err)
	}

	password := cfg.Password
	generated := false
	if password == "" {
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return fmt.Errorf("generating bootstrap password: %w", err)
		}
		generated = true
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing bootstrap password: %w", err)
	}

	admin, err := domain.NewUser(
		idx.New().String(),
		cfg.Name,
		email,
		hash,
		domain.RoleAdministrator,
		cfg.DepartmentID,
	)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	if err := st.Users().CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("creating bootstrap admin: %w", err)
	}

	log.Info("bootstrap administrator created",
		slog.String("user_id", admin.ID),
		slog.String("email", admin.Email),
	)
	if generated {
		// One-time credential for the operator; it is never stored in clear.
		log.Warn("generated bootstrap admin password, change it after first login",
			slog.String("password", password),
		)
	}
	return nil
}
