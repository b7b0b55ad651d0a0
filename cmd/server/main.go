package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/jpashop/backend/internal/application/catalog"
	appevent "github.com/jpashop/backend/internal/application/event"
	appmember "github.com/jpashop/backend/internal/application/member"
	apporder "github.com/jpashop/backend/internal/application/order"
	"github.com/jpashop/backend/internal/domain/order"
	"github.com/jpashop/backend/internal/infrastructure/auth"
	"github.com/jpashop/backend/internal/infrastructure/cache"
	"github.com/jpashop/backend/internal/infrastructure/config"
	"github.com/jpashop/backend/internal/infrastructure/event"
	"github.com/jpashop/backend/internal/infrastructure/logger"
	"github.com/jpashop/backend/internal/infrastructure/persistence"
	"github.com/jpashop/backend/internal/infrastructure/telemetry"
	"github.com/jpashop/backend/internal/interfaces/http/handler"
	"github.com/jpashop/backend/internal/interfaces/http/middleware"
	"github.com/jpashop/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

//	@title			jpashop API
//	@version		1.0
//	@description	Members, catalog items and orders of the jpashop sample store.

//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Optional bearer token. Its subject is recorded as created_by / last_modified_by.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, cfg.App.Env)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting jpashop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database_driver", cfg.Database.Driver),
	)

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	lp, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	defer func() {
		if err := lp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down log export", zap.Error(err))
		}
	}()
	log = lp.Bridge(log, cfg.Log.Level)

	mp, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics export", zap.Error(err))
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down metrics export", zap.Error(err))
		}
	}()

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() {
		tp.EnableSpanProfiles()
	}

	// Database with the zap backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Database.Driver == "sqlite" || cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate schema", zap.Error(err))
		}
		log.Info("Schema migrated from entity mappings")
	}
	if err := telemetry.NewDBTracing(cfg.Telemetry, cfg.Database.Driver, tp.Provider(), log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Event bus: every event is logged and counted, order events optionally go to kafka
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLogHandler(log))
	shopMetrics, err := telemetry.NewShopMetrics(mp.Meter("jpashop"), log)
	if err != nil {
		log.Fatal("Failed to register shop metrics", zap.Error(err))
	}
	eventBus.Subscribe(shopMetrics)
	if cfg.Kafka.Enabled {
		forwarder := event.NewKafkaForwarder(event.NewKafkaWriter(cfg.Kafka),
			order.EventTypeOrderPlaced, order.EventTypeOrderCancelled).
			WithTimeout(time.Duration(cfg.Kafka.MaxAttempts) * cfg.Kafka.WriteTimeout)
		eventBus.Subscribe(forwarder)
		defer func() {
			if err := forwarder.Close(); err != nil {
				log.Error("Error closing kafka writer", zap.Error(err))
			}
		}()
		log.Info("Kafka forwarding enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
			zap.Duration("write_timeout", cfg.Kafka.WriteTimeout),
			zap.Int("max_attempts", cfg.Kafka.MaxAttempts),
		)
	}
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	dispatcher := appevent.NewDispatcher(eventBus, log)

	memberCache, closeCache := newMemberCache(cfg, log)
	defer closeCache()

	// Repositories and services
	memberRepo := persistence.NewGormMemberRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	memberService := appmember.NewMemberService(memberRepo, memberCache, dispatcher)
	itemService := appcatalog.NewItemService(itemRepo)
	orderService := apporder.NewOrderService(scope, orderRepo, dispatcher)

	// HTTP
	gin.SetMode(ginMode(cfg.App.Env))
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		logger.GinMiddleware(log),
		middleware.Tracing(cfg.Telemetry.ServiceName, tp.Provider()),
		middleware.Auditor(auth.NewJWTService(cfg.JWT)),
		middleware.SpanAttributes(),
		middleware.Secure(cfg.App.Env == "production"),
		middleware.CORS(corsConfig(cfg.HTTP)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	if profiler.IsEnabled() {
		engine.Use(middleware.Profiling("/health", "/metrics"))
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, cfg.HTTP.RateLimitBurst)
		defer limiter.Stop()
		engine.Use(middleware.RateLimit(limiter))
	}
	if cfg.HTTP.MetricsEnabled {
		metrics := middleware.NewHTTPMetrics(cfg.App.Name)
		engine.Use(metrics.Middleware())
		engine.GET("/metrics", metrics.Handler())
	}

	router.RegisterAPI(engine, router.Handlers{
		Member: handler.NewMemberHandler(memberService),
		Order:  handler.NewOrderHandler(orderService),
		Item:   handler.NewItemHandler(itemService),
		Health: handler.NewHealthHandler(db, version),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newMemberCache builds the configured member cache. A redis backend that
// cannot be reached falls back to the in-memory cache.
func newMemberCache(cfg *config.Config, log *zap.Logger) (appmember.MemberCache, func()) {
	switch cfg.Cache.Backend {
	case "none":
		return nil, func() {}
	case "redis":
		client, err := cache.NewRedisClient(cfg.Redis)
		if err == nil {
			c := cache.NewRedisMemberCache(client, cfg.Cache.TTL, log)
			log.Info("Member cache backed by redis", zap.String("addr", cfg.Redis.Addr()))
			return c, func() { _ = c.Close() }
		}
		log.Warn("Redis unavailable, using in-memory member cache", zap.Error(err))
	}

	c := cache.NewInMemoryMemberCache(cfg.Cache.TTL)
	return c, func() { _ = c.Close() }
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig(cfg.CORSAllowOrigins)
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}

func ginMode(env string) string {
	if env == "production" {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}
