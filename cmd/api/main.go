// Package main is the entrypoint for the BillMate API server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"

	"github.com/billmate/billmate/internal/audit"
	"github.com/billmate/billmate/internal/auth"
	"github.com/billmate/billmate/internal/cache"
	"github.com/billmate/billmate/internal/config"
	"github.com/billmate/billmate/internal/handler"
	"github.com/billmate/billmate/internal/metrics"
	"github.com/billmate/billmate/internal/middleware"
	"github.com/billmate/billmate/internal/promo"
	"github.com/billmate/billmate/internal/repository"
	"github.com/billmate/billmate/internal/server"
	"github.com/billmate/billmate/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	recorder := metrics.NewInMemory()

	// Audit pipeline: payment mutations flow through a Redis stream into
	// the payment_events table.
	publisher := audit.NewPublisher(cacheClient.Client(), logger, recorder)
	worker := audit.NewWorker(cacheClient.Client(), repo, logger, audit.NewConsumerID(), recorder)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()
	go func() {
		if err := worker.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("audit worker stopped", "error", err)
		}
	}()

	// Promotional carousel.
	rotator := promo.NewRotator(defaultPromoSlides(), cfg.PromoInterval)
	rotator.Start()

	// Identity and domain services.
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)

	var google *auth.GoogleProvider
	if cfg.GoogleEnabled() {
		google = auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
		logger.Info("federated sign-in enabled")
	}

	sessionService := service.NewSessionService(repo, cacheClient, tokens, google, recorder)
	billService := service.NewBillService(repo, cfg.RecentBillsLimit, recorder)
	paymentService := service.NewPaymentService(repo, repo, publisher, recorder)

	// Handlers.
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(sessionService, logger)
	billHandler := handler.NewBillHandler(billService, logger)
	paymentHandler := handler.NewPaymentHandler(paymentService, logger, recorder)
	preferenceHandler := handler.NewPreferenceHandler(cacheClient, logger)
	promoHandler := handler.NewPromoHandler(rotator)
	metricsHandler := handler.NewMetricsHandler(recorder)

	sessionCfg := middleware.SessionConfig{
		Logger:   logger,
		Tokens:   tokens,
		Sessions: cacheClient,
		Users:    repo,
	}

	r := setupRouter(routerDeps{
		base:        h,
		health:      healthHandler,
		auth:        authHandler,
		bills:       billHandler,
		payments:    paymentHandler,
		preferences: preferenceHandler,
		promos:      promoHandler,
		metrics:     metricsHandler,
		sessionCfg:  sessionCfg,
		cfg:         cfg,
		logger:      logger,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	// LIFO: the worker registered first drains last, after traffic stops.
	srv.OnShutdown("audit_worker", worker.Shutdown)
	srv.OnShutdown("promo_rotator", func(ctx context.Context) error {
		rotator.Stop()
		return nil
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	level := parseLogLevel(cfg.LogLevel)

	var h slog.Handler
	switch cfg.LogFormat {
	case "json":
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	case "pretty":
		h = tint.NewHandler(os.Stdout, &tint.Options{Level: level})
	default:
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// defaultPromoSlides is the built-in carousel deck.
func defaultPromoSlides() []promo.Slide {
	return []promo.Slide{
		{ID: "pay-online", Title: "Pay every utility bill in one place", Subtitle: "Electricity, gas, water and internet"},
		{ID: "export-pdf", Title: "Download your payment history", Subtitle: "One-click PDF export of your paid bills"},
		{ID: "dark-mode", Title: "Easier on the eyes", Subtitle: "Switch to dark mode in preferences"},
	}
}

// routerDeps bundles everything setupRouter needs.
type routerDeps struct {
	base        *handler.Handler
	health      *handler.HealthHandler
	auth        *handler.AuthHandler
	bills       *handler.BillHandler
	payments    *handler.PaymentHandler
	preferences *handler.PreferenceHandler
	promos      *handler.PromoHandler
	metrics     *handler.MetricsHandler
	sessionCfg  middleware.SessionConfig
	cfg         *config.Config
	logger      *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      deps.cfg.IsDevelopment(),
		MaxRequestBodySize: deps.cfg.MaxRequestBodySize,
	}))
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = deps.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Health endpoints
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)

	// Root info endpoint
	r.Get("/", deps.base.Hello)

	// Operational metrics
	r.Get("/metrics", deps.metrics.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		// Public catalog and carousel
		r.Get("/bills", deps.bills.List)
		r.Get("/bills/recent", deps.bills.Recent)
		r.Get("/bills/{id}", deps.bills.Get)

		r.Get("/promos", deps.promos.List)
		r.Get("/promos/current", deps.promos.Current)
		r.Post("/promos/pause", deps.promos.Pause)
		r.Post("/promos/resume", deps.promos.Resume)

		// Session lifecycle
		r.Post("/auth/register", deps.auth.Register)
		r.Post("/auth/login", deps.auth.Login)
		r.Get("/auth/google", deps.auth.GoogleStart)
		r.Get("/auth/google/callback", deps.auth.GoogleCallback)

		// Protected views
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(deps.sessionCfg))

			r.Post("/bills", deps.bills.Create)

			r.Post("/payments", deps.payments.Pay)
			r.Get("/payments", deps.payments.List)
			r.Get("/payments/report", deps.payments.Report)
			r.Patch("/payments/{id}", deps.payments.Update)
			r.Delete("/payments/{id}", deps.payments.Delete)

			r.Post("/auth/logout", deps.auth.Logout)
			r.Get("/profile", deps.auth.Profile)
			r.Patch("/profile", deps.auth.UpdateProfile)

			r.Get("/preferences/theme", deps.preferences.GetTheme)
			r.Put("/preferences/theme", deps.preferences.SetTheme)
		})
	})

	// 404 and 405 handlers
	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
