package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lamalex/odu-grants/internal/grants/domain"
	"github.com/lamalex/odu-grants/internal/grants/store"
	"github.com/lamalex/odu-grants/internal/grants/store/drivers/sqlite"
	"github.com/lamalex/odu-grants/pkg/cryptox"
	"github.com/lamalex/odu-grants/pkg/idx"
	"github.com/lamalex/odu-grants/pkg/jwtx"
)

const (
	testIssuer = "odu-grants-test"

	// Department ids from the seed migration.
	deptCS   = "01J0000000000000000000D001"
	deptMath = "01J0000000000000000000D002"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "grants-service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestCodec(t *testing.T) *jwtx.Codec {
	t.Helper()

	codec, err := jwtx.NewCodec([]byte("unit-test-secret"), testIssuer)
	require.NoError(t, err)
	return codec
}

// seedUser inserts a user with the given role and returns it. The password
// is always "Secret123".
func seedUser(t *testing.T, st store.Store, name, email string, role domain.Role, departmentID string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword("Secret123")
	require.NoError(t, err)

	user, err := domain.NewUser(idx.New().String(), name, email, hash, role, departmentID)
	require.NoError(t, err)
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}

func seedAdmin(t *testing.T, st store.Store) domain.User {
	t.Helper()
	return seedUser(t, st, "Dana Admin", "dana@example.com", domain.RoleAdministrator, deptCS)
}

func sessionClaims(u domain.User) jwtx.Claims {
	return jwtx.NewSessionClaims(u.ID, string(u.Role), testIssuer, time.Now())
}

// recordingSender captures template sends for assertions.
type recordingSender struct {
	to       string
	subject  string
	template string
	data     map[string]string
	sends    int
}

func (r *recordingSender) SendFromTemplate(_ context.Context, to, subject, template string, data map[string]string) error {
	r.to = to
	r.subject = subject
	r.template = template
	r.data = data
	r.sends++
	return nil
}
