package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lamalex/odu-grants/internal/grants/domain"
	"github.com/lamalex/odu-grants/internal/grants/service"
	"github.com/lamalex/odu-grants/internal/grants/store"
	"github.com/lamalex/odu-grants/internal/grants/store/drivers/sqlite"
	"github.com/lamalex/odu-grants/pkg/cryptox"
	"github.com/lamalex/odu-grants/pkg/httpx"
	"github.com/lamalex/odu-grants/pkg/idx"
	"github.com/lamalex/odu-grants/pkg/jwtx"
)

const (
	testIssuer = "odu-grants-test"
	deptCS     = "01J0000000000000000000D001"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "grants-http-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type fixture struct {
	router *Router
	store  store.Store
	codec  *jwtx.Codec
}

type discardSender struct{}

func (discardSender) SendFromTemplate(context.Context, string, string, string, map[string]string) error {
	return nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec, err := jwtx.NewCodec([]byte("router-test-secret"), testIssuer)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(codec, "test", st, logger)
	router.AuthService = &service.AuthService{
		Store:   st,
		Tokens:  codec,
		Email:   discardSender{},
		BaseURL: "https://grants.example.com",
		Issuer:  testIssuer,
	}
	router.GrantService = &service.GrantService{Store: st}
	router.FacultyService = &service.FacultyService{Store: st}
	router.DepartmentService = &service.DepartmentService{Store: st}
	router.ApplyRoutes()

	return &fixture{router: router, store: st, codec: codec}
}

func (f *fixture) seedUser(t *testing.T, name, email string, role domain.Role) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword("Secret123")
	require.NoError(t, err)
	u, err := domain.NewUser(idx.New().String(), name, email, hash, role, deptCS)
	require.NoError(t, err)
	require.NoError(t, f.store.Users().CreateUser(context.Background(), u))
	return u
}

func (f *fixture) token(t *testing.T, u domain.User) string {
	t.Helper()

	tok, err := f.codec.Sign(jwtx.NewSessionClaims(u.ID, string(u.Role), testIssuer, time.Now()))
	require.NoError(t, err)
	return tok
}

func (f *fixture) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestLoginEndpoint(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "Alice", "alice@example.com", domain.RoleFaculty)

	t.Run("valid credentials return a session", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/auth/login", "",
			map[string]string{"email": "alice@example.com", "password": "Secret123"})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

		session := decodeBody[sessionResponse](t, rec)
		require.NotEmpty(t, session.Token)
		require.Equal(t, alice.ID, session.User.ID)

		claims, err := f.codec.Verify(session.Token)
		require.NoError(t, err)
		require.Equal(t, alice.ID, claims.UID)
	})

	t.Run("wrong password is 401 with the error envelope", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/auth/login", "",
			map[string]string{"email": "alice@example.com", "password": "nope"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		body := decodeBody[httpx.ErrorBody](t, rec)
		require.Equal(t, "incorrect_password", body.Code)
		require.NotEmpty(t, body.Message)
	})

	t.Run("unknown email is 404", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/auth/login", "",
			map[string]string{"email": "ghost@example.com", "password": "Secret123"})
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "user_not_found", decodeBody[httpx.ErrorBody](t, rec).Code)
	})

	t.Run("garbage body is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestInviteAndRegisterFlow(t *testing.T) {
	f := newFixture(t)
	admin := f.seedUser(t, "Dana Admin", "dana@example.com", domain.RoleAdministrator)
	faculty := f.seedUser(t, "Fred", "fred@example.com", domain.RoleFaculty)

	t.Run("invite requires a token", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/auth/sendinvite", "", inviteRequest{Email: "x@example.com"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("faculty invite is 403", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/auth/sendinvite", f.token(t, faculty),
			inviteRequest{Email: "new@example.com", Name: "New", Department: deptCS, StartupAmount: 100})
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, "unauthorized", decodeBody[httpx.ErrorBody](t, rec).Code)
	})

	t.Run("admin invite succeeds", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/auth/sendinvite", f.token(t, admin),
			inviteRequest{Email: "new@example.com", Name: "New", Department: deptCS, StartupAmount: 100})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("register converts an invite into an account", func(t *testing.T) {
		invite, err := f.codec.Sign(
			jwtx.NewInviteClaims("bea@example.com", admin.ID, 2500, testIssuer, time.Now()))
		require.NoError(t, err)

		rec := f.do(t, http.MethodPost, "/auth/register", "", registerRequest{
			Name:          "Bea",
			Email:         "bea@example.com",
			Password:      "Secret123",
			Department:    deptCS,
			UserDataToken: invite,
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		session := decodeBody[sessionResponse](t, rec)
		require.NotEmpty(t, session.Token)

		// The startup grant is visible through the caller's listing.
		grantsRec := f.do(t, http.MethodGet, "/grants", session.Token, nil)
		require.Equal(t, http.StatusOK, grantsRec.Code)

		grants := decodeBody[[]grantResponse](t, grantsRec)
		require.Len(t, grants, 1)
		require.Equal(t, "APPROVED", grants[0].Status)
		require.Equal(t, 2500.0, grants[0].OriginalAmount)
		require.Equal(t, "ODU", grants[0].Source)
	})

	t.Run("bad invite token is 401", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/auth/register", "", registerRequest{
			Name:          "Eve",
			Email:         "eve@example.com",
			Password:      "Secret123",
			Department:    deptCS,
			UserDataToken: "garbage",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "invalid_token", decodeBody[httpx.ErrorBody](t, rec).Code)
	})
}

func TestAdminGrantEndpoints(t *testing.T) {
	f := newFixture(t)
	admin := f.seedUser(t, "Dana Admin", "dana@example.com", domain.RoleAdministrator)
	alice := f.seedUser(t, "Alice", "alice@example.com", domain.RoleFaculty)

	entity, err := f.store.Entities().GetEntityByName(context.Background(), domain.SourceEntityODU)
	require.NoError(t, err)
	grant, err := domain.NewStartupGrant(idx.New().String(), entity.ID, admin.ID, alice.ID, 5000)
	require.NoError(t, err)
	require.NoError(t, f.store.Grants().CreateGrant(context.Background(), grant))

	t.Run("admin listing shows administered grants", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/admin/grants", f.token(t, admin), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		grants := decodeBody[[]grantResponse](t, rec)
		require.Len(t, grants, 1)
		require.Equal(t, grant.ID, grants[0].ID)
	})

	t.Run("status update round trip", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/admin/grant/"+grant.ID, f.token(t, admin),
			statusRequest{Status: "DENY"})
		require.Equal(t, http.StatusOK, rec.Code)

		updated := decodeBody[grantStatusResponse](t, rec)
		require.Equal(t, "DENIED", updated.Status)
	})

	t.Run("unknown status word is 400 and changes nothing", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/admin/grant/"+grant.ID, f.token(t, admin),
			statusRequest{Status: "CANCEL"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "unknown_status", decodeBody[httpx.ErrorBody](t, rec).Code)

		stored, err := f.store.Grants().GetGrantByID(context.Background(), grant.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusDenied, stored.Status)
	})

	t.Run("missing grant is 404", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/admin/grant/"+idx.New().String(), f.token(t, admin),
			statusRequest{Status: "APPROVE"})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("faculty hitting admin routes get 403", func(t *testing.T) {
		for _, probe := range []struct {
			method, path string
			body         any
		}{
			{http.MethodGet, "/admin/grants", nil},
			{http.MethodPost, "/admin/grant/" + grant.ID, statusRequest{Status: "APPROVE"}},
			{http.MethodGet, "/admin/faculty", nil},
			{http.MethodDelete, "/admin/faculty/" + alice.ID, nil},
		} {
			rec := f.do(t, probe.method, probe.path, f.token(t, alice), probe.body)
			require.Equal(t, http.StatusForbidden, rec.Code, "%s %s", probe.method, probe.path)
		}
	})
}

func TestFacultyEndpoints(t *testing.T) {
	f := newFixture(t)
	admin := f.seedUser(t, "Dana Admin", "dana@example.com", domain.RoleAdministrator)
	alice := f.seedUser(t, "Alice", "alice@example.com", domain.RoleFaculty)

	t.Run("list shows department peers", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/admin/faculty", f.token(t, admin), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		list := decodeBody[[]domain.UserSummary](t, rec)
		require.Len(t, list, 1)
		require.Equal(t, alice.ID, list[0].ID)
	})

	t.Run("department directory lists the seeds", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/admin/departments", f.token(t, admin), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		departments := decodeBody[[]departmentResponse](t, rec)
		require.Len(t, departments, 3)
		require.Equal(t, "Computer Science", departments[0].Name)
	})

	t.Run("faculty cannot read the directory", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/admin/departments", f.token(t, alice), nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("delete removes them from the listing", func(t *testing.T) {
		rec := f.do(t, http.MethodDelete, "/admin/faculty/"+alice.ID, f.token(t, admin), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		listRec := f.do(t, http.MethodGet, "/admin/faculty", f.token(t, admin), nil)
		list := decodeBody[[]domain.UserSummary](t, listRec)
		require.Empty(t, list)
	})
}

func TestHealthEndpoints(t *testing.T) {
	f := newFixture(t)

	t.Run("livez", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/livez", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "ok", decodeBody[healthResponse](t, rec).Status)
	})

	t.Run("readyz checks the database", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/readyz", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "ok", decodeBody[healthResponse](t, rec).Database)
	})

	t.Run("fallthrough is 404", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/nope", "", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
