package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lamalex/odu-grants/internal/grants/service"
	"github.com/lamalex/odu-grants/internal/grants/store"
	"github.com/lamalex/odu-grants/pkg/httpx"
	"github.com/lamalex/odu-grants/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     httpx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	AuthService       *service.AuthService
	GrantService      *service.GrantService
	FacultyService    *service.FacultyService
	DepartmentService *service.DepartmentService
}

func NewRouter(
	verifier httpx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerGrants()
	r.registerAdmin()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /auth/login - strict rate limit by IP (credential guessing)
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/register - strict rate limit by IP (public endpoint; the
	// invite token inside the body is the actual gate)
	registerHandler := &RegisterHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/sendinvite - authenticated admin operation, moderate limit
	inviteHandler := &InviteHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /auth/sendinvite",
		httpx.Chain(inviteHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerGrants() {
	// GET /grants - any authenticated user, scoped to their own grants
	listHandler := &GrantsListHandler{GrantService: r.GrantService}
	r.Mux.Handle("GET /grants",
		httpx.Chain(listHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	adminGrantsHandler := &AdminGrantsListHandler{GrantService: r.GrantService}
	r.Mux.Handle("GET /admin/grants",
		httpx.Chain(adminGrantsHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	statusHandler := &GrantStatusHandler{GrantService: r.GrantService}
	r.Mux.Handle("POST /admin/grant/{id}",
		httpx.Chain(statusHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	departmentsHandler := &DepartmentsHandler{DepartmentService: r.DepartmentService}
	r.Mux.Handle("GET /admin/departments",
		httpx.Chain(departmentsHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	facultyHandler := &FacultyHandler{FacultyService: r.FacultyService}
	r.Mux.Handle("GET /admin/faculty",
		httpx.Chain(http.HandlerFunc(facultyHandler.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /admin/faculty/{id}",
		httpx.Chain(http.HandlerFunc(facultyHandler.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Monitoring may poll these frequently.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
