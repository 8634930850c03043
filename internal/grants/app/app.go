package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lamalex/odu-grants/internal/grants/email"
	httpapi "github.com/lamalex/odu-grants/internal/grants/http"
	"github.com/lamalex/odu-grants/internal/grants/service"
	"github.com/lamalex/odu-grants/internal/grants/store"
	"github.com/lamalex/odu-grants/internal/grants/store/drivers/sqlite"
	"github.com/lamalex/odu-grants/pkg/cryptox"
	"github.com/lamalex/odu-grants/pkg/jwtx"
	"github.com/lamalex/odu-grants/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the grant service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	tokens *jwtx.Codec
	sender email.Sender

	authService       *service.AuthService
	grantService      *service.GrantService
	facultyService    *service.FacultyService
	departmentService *service.DepartmentService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "grants-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	tokens, err := jwtx.NewCodec([]byte(cfg.JWTSecret), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.tokens = tokens

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initEmail(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initServices()
	app.initHTTP()

	if err := app.bootstrap(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("grants service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down grants service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("grants service stopped")
	return nil
}

// initDatabase opens the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initEmail() error {
	if app.cfg.MailgunDomain == "" || app.cfg.MailgunAPIKey == "" {
		app.logger.Warn("mailgun not configured, invitation emails will only be logged")
		app.sender = email.LogSender{}
		return nil
	}

	sender, err := email.NewMailgunSender(email.MailgunConfig{
		Domain: app.cfg.MailgunDomain,
		APIKey: app.cfg.MailgunAPIKey,
		From:   app.cfg.MailgunFrom,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize mail sender: %w", err)
	}
	app.sender = sender
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:   app.db,
		Tokens:  app.tokens,
		Email:   app.sender,
		BaseURL: app.cfg.BaseURL,
		Issuer:  app.cfg.Issuer,
	}
	app.grantService = &service.GrantService{Store: app.db}
	app.facultyService = &service.FacultyService{Store: app.db}
	app.departmentService = &service.DepartmentService{Store: app.db}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.GrantService = app.grantService
	router.FacultyService = app.facultyService
	router.DepartmentService = app.departmentService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// bootstrap seeds the first administrator into an empty database. Without it
// the invite-only registration flow could never start.
func (app *Application) bootstrap() error {
	if app.cfg.BootstrapEmail == "" {
		app.logger.Info("no bootstrap administrator configured, skipping")
		return nil
	}

	ctx := slogx.WithContext(context.Background(), app.logger)
	return service.EnsureAdmin(ctx, app.db, service.BootstrapAdmin{
		Name:         app.cfg.BootstrapName,
		Email:        app.cfg.BootstrapEmail,
		Password:     app.cfg.BootstrapPassword,
		DepartmentID: app.cfg.BootstrapDepartment,
	})
}
