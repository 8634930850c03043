package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/lamalex/odu-grants/internal/grants/domain"
	"github.com/lamalex/odu-grants/internal/grants/email"
	"github.com/lamalex/odu-grants/internal/grants/store"
	"github.com/lamalex/odu-grants/pkg/cryptox"
	"github.com/lamalex/odu-grants/pkg/idx"
	"github.com/lamalex/odu-grants/pkg/jwtx"
	"github.com/lamalex/odu-grants/pkg/slogx"
)

const inviteTemplate = "registration_invitation"

// AuthService implements login, invitation, and registration-via-invite.
// Dependencies are plain constructor-set fields; there is no service
// registry anywhere in the process.
type AuthService struct {
	Store  store.Store
	Tokens *jwtx.Codec
	Email  email.Sender

	// BaseURL is the public origin registration links point at.
	BaseURL string
	Issuer  string
}

// Login authenticates an email/password pair and issues a session token
// carrying the user's id and role.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	normalized, err := domain.NormalizeEmail(emailAddr)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	log.Info("login attempt", slog.String("email", normalized))

	user, err := s.Store.Users().GetUserByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrUserNotFound
		}
		log.Error("failed to look up user", slog.Any("error", err))
		return domain.User{}, "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("login with incorrect password", slog.String("user_id", user.ID))
			return domain.User{}, "", ErrIncorrectPassword
		}
		log.Error("stored password hash unusable", slog.String("user_id", user.ID), slog.Any("error", err))
		return domain.User{}, "", err
	}

	token, err := s.sessionToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// InviteInput is an administrator's request to invite a faculty member.
type InviteInput struct {
	Email         string
	Name          string
	DepartmentID  string
	StartupAmount float64
}

// SendInvite mints a signed invitation token for the invitee and emails them
// a registration link. Admin-only; the guard runs before any lookup.
func (s *AuthService) SendInvite(ctx context.Context, claims jwtx.Claims, in InviteInput) error {
	if err := requireAdministrator(claims); err != nil {
		return err
	}

	log := slogx.FromContext(ctx)

	invitee, err := domain.NormalizeEmail(in.Email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if in.StartupAmount < 0 {
		return fmt.Errorf("%w: startup amount cannot be negative", ErrInvalidRequest)
	}

	admin, err := s.Store.Users().GetUserByID(ctx, claims.UID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	department, err := s.Store.Departments().GetDepartmentByID(ctx, in.DepartmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrDepartmentNotFound
		}
		return err
	}

	inviteToken, err := s.Tokens.Sign(
		jwtx.NewInviteClaims(invitee, admin.ID, in.StartupAmount, s.Issuer, time.Now()),
	)
	if err != nil {
		return err
	}

	registrationURL, err := s.registrationURL(invitee, in.Name, in.DepartmentID, inviteToken)
	if err != nil {
		return err
	}

	err = s.Email.SendFromTemplate(ctx, invitee,
		"Welcome! Register with grant management",
		inviteTemplate,
		map[string]string{
			"department":       department.Name,
			"admin_email":      admin.Email,
			"startup_amt":      strconv.FormatFloat(in.StartupAmount, 'f', 2, 64),
			"registration_url": registrationURL,
		},
	)
	if err != nil {
		// Mail transport errors stay generic: they are not auth errors.
		log.Error("failed to send invitation email",
			slog.String("invitee", invitee),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("invitation sent",
		slog.String("invitee", invitee),
		slog.String("invited_by", admin.ID),
		slog.String("department", department.Name),
	)
	return nil
}

// registrationURL packs the invite payload the frontend expects into the
// fragment route, base64-encoded.
func (s *AuthService) registrationURL(invitee, name, departmentID, inviteToken string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"email":         invitee,
		"name":          name,
		"department":    departmentID,
		"userDataToken": inviteToken,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/#/register/%s",
		s.BaseURL,
		url.QueryEscape(base64.StdEncoding.EncodeToString(payload)),
	), nil
}

// RegisterInput carries the registration form plus the invitation token.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	DepartmentID string
	InviteToken  string
}

// Register converts an invitation into an account. It decodes the invite,
// checks the invited address against the submitted one, then creates the
// FACULTY user and their startup grant in a single transaction: on any
// failure nothing persists. On success a session token is issued.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	// Verification failure here means an unusable invitation, which is a
	// token problem (401), not a business outcome.
	invite, err := s.Tokens.Verify(in.InviteToken)
	if err != nil {
		log.Warn("registration with unverifiable invite token", slog.Any("error", err))
		return domain.User{}, "", err
	}

	submitted, err := domain.NormalizeEmail(in.Email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if invite.Email != submitted {
		log.Warn("registration email does not match invitation",
			slog.String("submitted", submitted),
		)
		return domain.User{}, "", ErrInvitationMismatch
	}

	passwordHash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, "", err
	}

	user, err := domain.NewUser(
		idx.New().String(),
		in.Name,
		submitted,
		passwordHash,
		domain.RoleFaculty, // registration via invite always produces faculty
		in.DepartmentID,
	)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	// User, startup grant, and recipient link commit together or not at all.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		source, err := tx.Entities().GetEntityByName(ctx, domain.SourceEntityODU)
		if err != nil {
			return fmt.Errorf("looking up startup grant source: %w", err)
		}

		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrEmailExists) {
				return ErrEmailExists
			}
			return err
		}

		grant, err := domain.NewStartupGrant(
			idx.New().String(),
			source.ID,
			invite.InvitedBy,
			user.ID,
			invite.StartupAmount,
		)
		if err != nil {
			return err
		}

		return tx.Grants().CreateGrant(ctx, grant)
	})
	if err != nil {
		if !errors.Is(err, ErrEmailExists) {
			log.Error("registration transaction failed", slog.Any("error", err))
		}
		return domain.User{}, "", err
	}

	log.Info("faculty registered",
		slog.String("user_id", user.ID),
		slog.String("invited_by", invite.InvitedBy),
	)

	token, err := s.sessionToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (s *AuthService) sessionToken(user domain.User) (string, error) {
	return s.Tokens.Sign(
		jwtx.NewSessionClaims(user.ID, string(user.Role), s.Issuer, time.Now()),
	)
}
