package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/lamalex/odu-grants/internal/grants/domain"
	"github.com/lamalex/odu-grants/internal/grants/store"
	"github.com/lamalex/odu-grants/pkg/jwtx"
	"github.com/lamalex/odu-grants/pkg/slogx"
)

// FacultyService is the administrator's view over faculty accounts.
type FacultyService struct {
	Store store.Store
}

// ListFaculty returns active users in the caller's department, excluding the
// caller, as credential-free summaries sorted by name. Admin-only.
func (s *FacultyService) ListFaculty(ctx context.Context, claims jwtx.Claims) ([]domain.UserSummary, error) {
	if err := requireAdministrator(claims); err != nil {
		return nil, err
	}

	peers, err := s.Store.Users().ListDepartmentPeers(ctx, claims.UID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	summaries := make([]domain.UserSummary, 0, len(peers))
	for _, u := range peers {
		summaries = append(summaries, u.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries, nil
}

// DeleteFaculty soft-deletes a user. The row stays so historical grants keep
// their recipient and administrator references. Admin-only.
func (s *FacultyService) DeleteFaculty(ctx context.Context, claims jwtx.Claims, userID string) error {
	if err := requireAdministrator(claims); err != nil {
		return err
	}

	if err := s.Store.Users().SoftDeleteUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	slogx.FromContext(ctx).Info("faculty deactivated",
		slog.String("user_id", userID),
		slog.String("by", claims.UID),
	)
	return nil
}
