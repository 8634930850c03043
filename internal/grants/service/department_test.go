package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lamalex/odu-grants/internal/grants/domain"
)

func TestListDepartments(t *testing.T) {
	st := newTestStore(t)
	svc := &DepartmentService{Store: st}

	admin := seedAdmin(t, st)
	faculty := seedUser(t, st, "Fred", "fred@example.com", domain.RoleFaculty, deptCS)

	t.Run("returns the seeded directory ordered by name", func(t *testing.T) {
		departments, err := svc.ListDepartments(context.Background(), sessionClaims(admin))
		require.NoError(t, err)
		require.Len(t, departments, 3)
		require.Equal(t, "Computer Science", departments[0].Name)
		require.Equal(t, "Mathematics", departments[1].Name)
		require.Equal(t, "Physics", departments[2].Name)
	})

	t.Run("faculty are refused", func(t *testing.T) {
		_, err := svc.ListDepartments(context.Background(), sessionClaims(faculty))
		require.ErrorIs(t, err, ErrUnauthorized)
	})
}
