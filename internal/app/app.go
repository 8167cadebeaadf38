package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"bankmetrics/internal/config"
	"bankmetrics/internal/dataset"
	apierrors "bankmetrics/internal/errors"
	"bankmetrics/internal/infrastructure"
	customMiddleware "bankmetrics/internal/middleware"
	"bankmetrics/internal/services"
	handlers "bankmetrics/internal/transport/http"
	"bankmetrics/internal/validation"
	"bankmetrics/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config          *config.Config
	Router          *chi.Mux
	Server          *http.Server
	Logger          *slog.Logger
	OTelProviders   *infrastructure.OTelProviders
	BusinessMetrics *infrastructure.BusinessMetrics
	SystemMetrics   *infrastructure.SystemMetrics
	MetricsService  *services.MetricsService
	HealthService   *services.HealthService
}

// NewApplication loads configuration and logging from the environment and
// builds the application
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New creates a new application instance with dependency injection
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.GetVersionString()))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
	}

	if err := app.initializeServices(); err != nil {
		_ = otelProviders.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices loads the dataset and builds the services over it
func (a *Application) initializeServices() error {
	businessMetrics, err := infrastructure.CreateBusinessMetrics(a.OTelProviders.Meter)
	if err != nil {
		return fmt.Errorf("failed to create business metrics: %w", err)
	}
	a.BusinessMetrics = businessMetrics

	if a.Config.Dataset.File != "" {
		v := validation.NewFileValidator(a.Logger, validation.DefaultMaxFileSize, dataset.Extensions()...)
		if err := v.ValidateFile(a.Config.Dataset.File); err != nil {
			return fmt.Errorf("failed to load dataset: %w", err)
		}
	}

	ds, err := dataset.Load(a.Config.Dataset.File)
	if err != nil {
		a.BusinessMetrics.RecordSystemError(context.Background(), "dataset_load", "app")
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	source := a.Config.Dataset.File
	if source == "" {
		source = "builtin"
	}
	a.Logger.Info("Dataset loaded",
		slog.String("source", source),
		slog.Int("metrics", ds.Len()))

	a.MetricsService = services.NewMetricsService(ds, a.Logger,
		services.WithQueryRecorder(a.BusinessMetrics))
	a.HealthService = services.NewHealthService(a.MetricsService,
		infrastructure.WithComponent(a.Logger, "health_service"))

	a.SystemMetrics, err = infrastructure.NewSystemMetrics(a.OTelProviders.Meter, time.Now(), a.MetricsService)
	if err != nil {
		return fmt.Errorf("failed to register system metrics: %w", err)
	}

	return nil
}

// setupRouter builds the router. Middleware order: RequestID, RealIP, OTel,
// StructuredLogger, Recoverer, SecurityHeaders, CORS, then RateLimiter and
// Timeout on the query and health routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	errorHandler := apierrors.NewErrorHandler(a.Logger, handlers.ErrorMappings()...)

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders, a.BusinessMetrics)
	if err != nil {
		a.Logger.Error("Failed to create OpenTelemetry middleware", slog.String("error", err.Error()))
	} else {
		r.Use(otelMiddleware.Handler)
	}

	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(errorHandler))
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			Logger:         a.Logger,
		}))
	}

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	// Scrapes bypass rate limiting and the request timeout
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	r.Group(func(r chi.Router) {
		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

		handlers.NewHealthHandler(a.HealthService, a.Logger).RegisterRoutes(r)
		handlers.NewMetricsHandler(a.MetricsService, a.Logger, errorHandler).RegisterRoutes(r)
	})

	a.Router = r
}

// Routes lists the registered routes as "METHOD pattern"
func (a *Application) Routes() []string {
	var routes []string
	_ = chi.Walk(a.Router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)
		return nil
	})
	return routes
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(a.Logger.Handler(), slog.LevelError),
	}
}

// Run listens on the configured address and serves until ctx is cancelled or
// the process receives SIGINT or SIGTERM
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		_ = a.OTelProviders.Shutdown(context.Background())
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}

	return a.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	a.Logger.InfoContext(ctx, "Server listening",
		slog.String("address", ln.Addr().String()),
		slog.String("level", a.Config.Logging.Level))

	for _, route := range a.Routes() {
		a.Logger.InfoContext(ctx, "Route registered", slog.String("route", route))
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.WithoutCancel(ctx))
	})

	return g.Wait()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	if err := a.SystemMetrics.Close(); err != nil {
		a.Logger.WarnContext(ctx, "Error unregistering system metrics", slog.String("error", err.Error()))
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}
