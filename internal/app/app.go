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

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/config"
	"github.com/simp-lee/photostore/internal/events"
	"github.com/simp-lee/photostore/internal/middleware"
	"github.com/simp-lee/photostore/internal/module/address"
	"github.com/simp-lee/photostore/internal/module/auth"
	"github.com/simp-lee/photostore/internal/module/blog"
	"github.com/simp-lee/photostore/internal/module/category"
	"github.com/simp-lee/photostore/internal/module/checkout"
	"github.com/simp-lee/photostore/internal/module/event"
	"github.com/simp-lee/photostore/internal/module/faq"
	"github.com/simp-lee/photostore/internal/module/gallery"
	"github.com/simp-lee/photostore/internal/module/galleryitem"
	"github.com/simp-lee/photostore/internal/module/order"
	"github.com/simp-lee/photostore/internal/module/user"
	"github.com/simp-lee/photostore/internal/payment"
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine    *gin.Engine
	db        *gorm.DB
	logger    *logger.Logger
	publisher events.Publisher
	cfg       *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler, timeout time.Duration) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      2 * timeout,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, the database, the session token service, the payment
// provider, the event publisher, middleware and every module's routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}

	success := false

	// 1. Setup logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Setup database.
	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		closeDB(db)
	}()

	// 3. AutoMigrate in debug mode or when asked to.
	if cfg.Server.Mode == gin.DebugMode || cfg.Database.AutoMigrate {
		if err := config.Migrate(db); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed")
	}

	// 4. Outbound integrations.
	if cfg.Payment.SecretKey == "" {
		log.Warn("no payment.secret_key configured, checkout requests will fail")
	}
	provider := payment.NewStripe(cfg.Payment.SecretKey, cfg.Payment.WebhookSecret, nil)
	publisher := events.New(cfg.Events.Brokers, cfg.Events.Topic, log.Logger)
	defer func() {
		if success {
			return
		}
		_ = publisher.Close()
	}()

	// 5. Modules.
	expiry := config.Duration(cfg.Auth.TokenExpiry, auth.DefaultTokenExpiry)
	tokens := auth.NewTokenService(db, cfg.Auth.JWTSecret, expiry)
	modules := buildModules(cfg, db, tokens, provider, publisher, log.Logger)

	// 6. Create Gin engine with custom middleware (not gin.Default()).
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	var metrics *middleware.Metrics
	if cfg.Metrics.Enabled {
		metrics = middleware.NewMetrics(cfg.Metrics.Namespace)
	}

	chain := []gin.HandlerFunc{
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: false,
		}),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS)),
	}
	if metrics != nil {
		chain = append(chain, metrics.Middleware())
	}
	if cfg.Server.RateLimit.Enabled {
		chain = append(chain, middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.Server.RateLimit.RPS,
			Burst:             cfg.Server.RateLimit.Burst,
		}, log.Logger))
	}
	engine.Use(chain...)

	// 7. Register all routes.
	if err := RegisterRoutes(engine, &RouteDeps{
		Modules:     modules,
		DB:          db,
		Guard:       middleware.Authenticate(tokens, middleware.DefaultRouteTable(APIPrefix), cfg.Auth.CookieName, log.Logger),
		Metrics:     metrics,
		MetricsPath: cfg.Metrics.Path,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine:    engine,
		db:        db,
		logger:    log,
		publisher: publisher,
		cfg:       cfg,
	}, nil
}

// buildModules wires repository, service and handler for every module.
func buildModules(cfg *config.Config, db *gorm.DB, tokens *auth.TokenService, provider payment.Provider, publisher events.Publisher, log *slog.Logger) []Module {
	assets := cfg.App.AssetBaseURL
	users := user.NewModule(db, tokens, assets, log)

	authHandler := auth.NewHandler(
		auth.NewService(db, user.NewUserRepository, tokens),
		users.Resource(),
		auth.Cookie{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
			MaxAge: tokens.Expiry(),
		},
	)

	checkoutSvc := checkout.NewService(db, provider, publisher, checkout.Config{
		Currency:    cfg.Payment.Currency,
		BaseURL:     cfg.App.BaseURL,
		SuccessPath: cfg.Payment.SuccessPath,
		CancelPath:  cfg.Payment.CancelPath,
	}, log)

	return []Module{
		users,
		auth.NewModule(authHandler),
		address.NewModule(db, log),
		order.NewModule(db, log),
		category.NewModule(db, assets, log),
		faq.NewModule(db, log),
		event.NewModule(db, assets, log),
		gallery.NewModule(db, assets, log),
		galleryitem.NewModule(db, assets, log),
		blog.NewModule(db, assets, log),
		checkout.NewModule(checkout.NewHandler(checkoutSvc, log)),
	}
}

// Handler returns the configured HTTP handler.
func (a *App) Handler() http.Handler {
	return a.engine
}

func resolveCORSConfig(mode string, configured config.CORSConfig) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()

	if len(configured.AllowMethods) > 0 {
		corsConfig.AllowMethods = configured.AllowMethods
	}
	if len(configured.AllowHeaders) > 0 {
		corsConfig.AllowHeaders = configured.AllowHeaders
	}
	corsConfig.AllowCredentials = configured.AllowCredentials
	if maxAge := config.Duration(configured.MaxAge, 0); maxAge > 0 {
		corsConfig.MaxAge = int(maxAge / time.Second)
	}

	if len(configured.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = configured.AllowOrigins
		return corsConfig
	}
	// In release mode an empty allowlist denies cross-origin requests.
	if mode == gin.ReleaseMode {
		corsConfig.AllowOrigins = []string{}
	}
	return corsConfig
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

func closeDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It shuts down gracefully with a 5-second timeout, then flushes the event
// publisher and closes the database connection.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	log := slog.Default()
	if a.logger != nil {
		log = a.logger.Logger
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine, config.Duration(a.cfg.Server.Timeout, 30*time.Second))

	// Listen for SIGINT / SIGTERM.
	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", slog.Any("error", err))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			log.Error("event publisher close error", slog.Any("error", err))
		}
	}

	if a.db != nil {
		if err := closeDB(a.db); err != nil {
			log.Error("database close error", slog.Any("error", err))
		} else {
			log.Info("database connection closed")
		}
	}

	log.Info("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}

	return runErr
}
