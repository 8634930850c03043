package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lamalex/odu-grants/internal/grants/domain"
	"github.com/lamalex/odu-grants/internal/grants/store"
	"github.com/lamalex/odu-grants/pkg/idx"
	"github.com/lamalex/odu-grants/pkg/jwtx"
)

func seedStartupGrant(t *testing.T, st store.Store, adminID, recipientID string, amount float64) domain.Grant {
	t.Helper()

	entity, err := st.Entities().GetEntityByName(context.Background(), domain.SourceEntityODU)
	require.NoError(t, err)

	grant, err := domain.NewStartupGrant(idx.New().String(), entity.ID, adminID, recipientID, amount)
	require.NoError(t, err)
	require.NoError(t, st.Grants().CreateGrant(context.Background(), grant))
	return grant
}

func TestListForUser(t *testing.T) {
	st := newTestStore(t)
	svc := &GrantService{Store: st}

	admin := seedAdmin(t, st)
	alice := seedUser(t, st, "Alice", "alice@example.com", domain.RoleFaculty, deptCS)
	bob := seedUser(t, st, "Bob", "bob@example.com", domain.RoleFaculty, deptCS)

	mine := seedStartupGrant(t, st, admin.ID, alice.ID, 5000)
	seedStartupGrant(t, st, admin.ID, bob.ID, 3000)

	t.Run("returns only the caller's grants", func(t *testing.T) {
		grants, err := svc.ListForUser(context.Background(), sessionClaims(alice))
		require.NoError(t, err)
		require.Len(t, grants, 1)
		require.Equal(t, mine.ID, grants[0].ID)
		require.Equal(t, admin.Email, grants[0].Administrator.Email)
	})

	t.Run("no grants is an empty list, not an error", func(t *testing.T) {
		carol := seedUser(t, st, "Carol", "carol@example.com", domain.RoleFaculty, deptCS)
		grants, err := svc.ListForUser(context.Background(), sessionClaims(carol))
		require.NoError(t, err)
		require.Empty(t, grants)
	})

	t.Run("anonymous claims are rejected", func(t *testing.T) {
		_, err := svc.ListForUser(context.Background(), jwtx.Claims{})
		require.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestListAdministered(t *testing.T) {
	st := newTestStore(t)
	svc := &GrantService{Store: st}

	admin := seedAdmin(t, st)
	alice := seedUser(t, st, "Alice", "alice@example.com", domain.RoleFaculty, deptCS)
	seedStartupGrant(t, st, admin.ID, alice.ID, 5000)

	t.Run("admin sees the grants they administer", func(t *testing.T) {
		grants, err := svc.ListAdministered(context.Background(), sessionClaims(admin))
		require.NoError(t, err)
		require.Len(t, grants, 1)
		require.Equal(t, []string{alice.ID}, grants[0].Recipients)
	})

	t.Run("faculty are refused", func(t *testing.T) {
		_, err := svc.ListAdministered(context.Background(), sessionClaims(alice))
		require.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestUpdateStatus(t *testing.T) {
	st := newTestStore(t)
	svc := &GrantService{Store: st}

	admin := seedAdmin(t, st)
	alice := seedUser(t, st, "Alice", "alice@example.com", domain.RoleFaculty, deptCS)
	grant := seedStartupGrant(t, st, admin.ID, alice.ID, 5000)

	t.Run("request words map onto stored statuses", func(t *testing.T) {
		steps := []struct {
			request string
			want    domain.GrantStatus
		}{
			{"DENY", domain.StatusDenied},
			{"PENDING", domain.StatusPending},
			{"APPROVE", domain.StatusApproved},
		}
		for _, step := range steps {
			updated, err := svc.UpdateStatus(context.Background(), sessionClaims(admin), grant.ID, step.request)
			require.NoError(t, err)
			require.Equal(t, step.want, updated.Status)
		}
	})

	t.Run("unknown request word changes nothing", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), sessionClaims(admin), grant.ID, "CANCEL")
		require.ErrorIs(t, err, domain.ErrUnknownStatus)

		stored, err := st.Grants().GetGrantByID(context.Background(), grant.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusApproved, stored.Status)
	})

	t.Run("stored status words are not request words", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), sessionClaims(admin), grant.ID, "APPROVED")
		require.ErrorIs(t, err, domain.ErrUnknownStatus)
	})

	t.Run("request words are case sensitive", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), sessionClaims(admin), grant.ID, "approve")
		require.ErrorIs(t, err, domain.ErrUnknownStatus)
	})

	t.Run("unknown grant", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), sessionClaims(admin), idx.New().String(), "APPROVE")
		require.ErrorIs(t, err, ErrGrantNotFound)
	})

	t.Run("faculty cannot update status", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), sessionClaims(alice), grant.ID, "DENY")
		require.ErrorIs(t, err, ErrUnauthorized)

		stored, err := st.Grants().GetGrantByID(context.Background(), grant.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusApproved, stored.Status)
	})
}
