package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatusRequest(t *testing.T) {
	t.Parallel()

	t.Run("maps the fixed vocabulary", func(t *testing.T) {
		cases := map[string]GrantStatus{
			"APPROVE": StatusApproved,
			"DENY":    StatusDenied,
			"PENDING": StatusPending,
		}
		for requested, want := range cases {
			got, err := ParseStatusRequest(requested)
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
	})

	t.Run("rejects anything else", func(t *testing.T) {
		for _, requested := range []string{"CANCEL", "APPROVED", "approve", "", "DENIED"} {
			_, err := ParseStatusRequest(requested)
			require.ErrorIs(t, err, ErrUnknownStatus, "input %q", requested)
		}
	})
}

func TestNewStartupGrant(t *testing.T) {
	t.Parallel()

	t.Run("builds a pre-approved single-recipient grant", func(t *testing.T) {
		g, err := NewStartupGrant("gid", "src", "admin", "recipient", 50000)
		require.NoError(t, err)
		require.Equal(t, StatusApproved, g.Status)
		require.Equal(t, StartupGrantTitle, g.Title)
		require.Equal(t, StartupGrantNumber, g.GrantNumber)
		require.Equal(t, []string{"recipient"}, g.Recipients)
		require.InDelta(t, 50000, g.Balance, 0.001)
		require.InDelta(t, 50000, g.OriginalAmount, 0.001)
	})

	t.Run("requires an administrator", func(t *testing.T) {
		_, err := NewStartupGrant("gid", "src", "", "recipient", 1)
		require.ErrorIs(t, err, ErrNoAdministrator)
	})

	t.Run("requires a recipient", func(t *testing.T) {
		_, err := NewStartupGrant("gid", "src", "admin", "", 1)
		require.ErrorIs(t, err, ErrNoRecipients)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := NewStartupGrant("gid", "src", "admin", "recipient", -5)
		require.ErrorIs(t, err, ErrNegativeAmount)
	})
}

func TestNewUserValidation(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		u, err := NewUser("id", "Alice", "Alice@Example.com", "$argon2id$...", RoleFaculty, "dept")
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", u.Email, "email is normalized")
	})

	t.Run("rejects bad emails", func(t *testing.T) {
		for _, email := range []string{"", "plain", "@nope.com", "a@", "a@b", "a@@b.com"} {
			_, err := NewUser("id", "Alice", email, "hash", RoleFaculty, "dept")
			require.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := NewUser("id", "  ", "a@b.com", "hash", RoleFaculty, "dept")
		require.ErrorIs(t, err, ErrEmptyName)

		_, err = NewUser("id", "Alice", "a@b.com", "", RoleFaculty, "dept")
		require.ErrorIs(t, err, ErrEmptyPassword)

		_, err = NewUser("id", "Alice", "a@b.com", "hash", Role("WIZARD"), "dept")
		require.Error(t, err)
	})
}

func TestSummaryOmitsCredentials(t *testing.T) {
	t.Parallel()

	u, err := NewUser("id", "Alice", "a@b.com", "hash", RoleAdministrator, "dept")
	require.NoError(t, err)

	s := u.Summary()
	require.Equal(t, u.ID, s.ID)
	require.Equal(t, u.Email, s.Email)
	require.Equal(t, RoleAdministrator, s.Role)
}
