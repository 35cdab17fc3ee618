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

	httpapi "github.com/aussiebroadwan/innosync/internal/collab/http"
	"github.com/aussiebroadwan/innosync/internal/collab/service"
	"github.com/aussiebroadwan/innosync/internal/collab/store"
	"github.com/aussiebroadwan/innosync/internal/collab/store/drivers/postgres"
	"github.com/aussiebroadwan/innosync/internal/collab/store/drivers/sqlite"
	"github.com/aussiebroadwan/innosync/pkg/cryptox"
	"github.com/aussiebroadwan/innosync/pkg/jwtx"
	"github.com/aussiebroadwan/innosync/pkg/slogx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// BuildVersion is overridden at build time via -ldflags.
	BuildVersion = "v0.1.0"

	serviceName = "collab-service"
)

// Application owns the collaboration service and its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db             store.Store
	signer         *jwtx.HS256Issuer
	shutdownTracer func(context.Context) error

	sessionService      *service.SessionService
	authService         *service.AuthService
	projectService      *service.ProjectService
	teamService         *service.TeamService
	invitationService   *service.InvitationService
	applicationService  *service.ApplicationService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// setupTracing is swapped in tests.
var setupTracing = SetupTracing

// New builds an Application with every dependency initialized. On error,
// whatever was already started is torn down again.
func New(ctx context.Context, cfg Config) (_ *Application, err error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: serviceName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	shutdownTracer, err := setupTracing(ctx, cfg.OTLPTracingEndpoint, serviceName, BuildVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	app.shutdownTracer = shutdownTracer

	defer func() {
		if err == nil {
			return
		}
		if app.db != nil {
			_ = app.db.Close()
		}
		if serr := app.shutdownTracer(ctx); serr != nil {
			app.logger.Error("error flushing traces", "error", serr)
		}
	}()

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	signer, err := InitSigner(cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.signer = signer

	pepper, err := cryptox.LoadOrCreatePepper(cfg.PepperFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	if cfg.PepperFile == "" {
		app.logger.Warn("no COLLAB_PEPPER_FILE set, using an ephemeral pepper; stored passwords will not verify after a restart")
	}

	app.initServices(cryptox.NewPasswordHasher(pepper))
	app.initHTTP()

	return app, nil
}

// Handler exposes the instrumented HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.server.Handler
}

// StartWorkers launches background work. Run calls it; callers serving
// Handler themselves must call it before Shutdown.
func (app *Application) StartWorkers() {
	app.housekeepingService.Start()
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.StartWorkers()

	app.logger.Info("collab service starting",
		"port", app.cfg.Port,
		"driver", app.cfg.DatabaseDriver,
		"rotate_refresh_on_use", app.cfg.RotateRefreshOnUse,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
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

// Shutdown drains in-flight requests, then stops background work and closes
// the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down collab service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.shutdownTracer(ctx); err != nil {
		app.logger.Error("error flushing traces", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("collab service stopped")
	return nil
}

func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL, postgres.Options{
			MaxOpenConns:    app.cfg.DatabaseMaxConns,
			MaxIdleConns:    app.cfg.DatabaseMaxConns,
			ConnMaxLifetime: 30 * time.Minute,
		})
	default:
		db, err = sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	app.db = db

	app.logger.Info("database migrations applied", "driver", app.cfg.DatabaseDriver)
	return nil
}

func (app *Application) initServices(hasher *cryptox.PasswordHasher) {
	app.sessionService = &service.SessionService{
		Store:       app.db,
		Issuer:      app.signer,
		AccessTTL:   app.cfg.AccessTTL,
		RefreshTTL:  app.cfg.RefreshTTL,
		RotateOnUse: app.cfg.RotateRefreshOnUse,
	}
	app.authService = &service.AuthService{
		Store:    app.db,
		Hasher:   hasher,
		Sessions: app.sessionService,
	}
	app.projectService = &service.ProjectService{Store: app.db}
	app.teamService = &service.TeamService{Store: app.db}
	app.invitationService = &service.InvitationService{Store: app.db}
	app.applicationService = &service.ApplicationService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		app.signer,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.ProjectService = app.projectService
	router.TeamService = app.teamService
	router.InvitationService = app.invitationService
	router.ApplicationService = app.applicationService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           otelhttp.NewHandler(router, serviceName),
		ReadHeaderTimeout: 3 * time.Second,
	}
}
