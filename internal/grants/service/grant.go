package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lamalex/odu-grants/internal/grants/domain"
	"github.com/lamalex/odu-grants/internal/grants/store"
	"github.com/lamalex/odu-grants/pkg/jwtx"
	"github.com/lamalex/odu-grants/pkg/slogx"
)

// GrantService covers grant listings and administrator status updates.
type GrantService struct {
	Store store.Store
}

// ListForUser returns the grants the authenticated caller is a recipient of.
// Any authenticated user may call this; the listing is always scoped to the
// caller's own id, never to an id from the request.
func (s *GrantService) ListForUser(ctx context.Context, claims jwtx.Claims) ([]domain.GrantDetail, error) {
	if claims.UID == "" {
		return nil, ErrUnauthorized
	}
	return s.Store.Grants().ListForRecipient(ctx, claims.UID)
}

// ListAdministered returns the grants the caller administers. Admin-only.
func (s *GrantService) ListAdministered(ctx context.Context, claims jwtx.Claims) ([]domain.GrantDetail, error) {
	if err := requireAdministrator(claims); err != nil {
		return nil, err
	}
	return s.Store.Grants().ListAdministeredBy(ctx, claims.UID)
}

// UpdateStatus applies a status request (APPROVE, DENY, PENDING) to a grant.
// Admin-only. An unrecognized request word fails with ErrUnknownStatus before
// any read or write, so the stored status is untouched.
func (s *GrantService) UpdateStatus(ctx context.Context, claims jwtx.Claims, grantID, request string) (domain.Grant, error) {
	if err := requireAdministrator(claims); err != nil {
		return domain.Grant{}, err
	}

	status, err := domain.ParseStatusRequest(request)
	if err != nil {
		return domain.Grant{}, err
	}

	if err := s.Store.Grants().UpdateGrantStatus(ctx, grantID, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Grant{}, ErrGrantNotFound
		}
		return domain.Grant{}, err
	}

	grant, err := s.Store.Grants().GetGrantByID(ctx, grantID)
	if err != nil {
		return domain.Grant{}, err
	}

	slogx.FromContext(ctx).Info("grant status updated",
		slog.String("grant_id", grantID),
		slog.String("status", string(status)),
		slog.String("by", claims.UID),
	)
	return grant, nil
}
