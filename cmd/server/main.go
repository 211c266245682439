package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"foresight/internal/abuse"
	"foresight/internal/cache"
	"foresight/internal/config"
	cronrunner "foresight/internal/cron"
	"foresight/internal/db"
	"foresight/internal/handler"
	"foresight/internal/logger"
	gormrepository "foresight/internal/repository/gorm"
	"foresight/internal/service"
)

func main() {
	cfgPath := os.Getenv("FS_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("FS_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}
	if err := db.SeedTags(dbConn); err != nil {
		logger.Warn("tag seed failed", zap.Error(err))
	}

	var redisClient *redis.Client
	statsCache := cache.NewFromClient(nil)
	if cfg.Redis.Addr != "" {
		statsCache, err = cache.New(context.Background(), cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, continuing without it", zap.Error(err))
			statsCache = cache.NewFromClient(nil)
		} else {
			redisClient = statsCache.Client()
		}
	}

	// Shared limiter state lives in Redis when available so multiple
	// instances see one window per client.
	var limiterStore abuse.LimiterStore = abuse.NewMemoryStore()
	if redisClient != nil {
		limiterStore = &abuse.RedisStore{Client: redisClient}
	}
	limiter := &abuse.Limiter{
		Store:               limiterStore,
		Window:              cfg.Abuse.Window,
		MaxRequests:         cfg.Abuse.MaxRequests,
		SuspiciousThreshold: cfg.Abuse.SuspiciousThreshold,
		BlockDuration:       cfg.Abuse.BlockDuration,
		StateTTL:            cfg.Abuse.StateTTL,
	}
	botChecker := &abuse.BotChecker{
		MinFormFillTime: cfg.Abuse.MinFormFillTime,
		UserAgentCheck:  cfg.Abuse.UserAgentCheck,
	}

	store := gormrepository.New(dbConn.Gorm)
	predService := &service.PredictionService{
		Repo:   store,
		Limits: cfg.Validation,
		Logger: logger,
	}
	statsService := &service.StatsService{
		Repo:   store,
		Cache:  statsCache,
		Config: cfg.StatsCache,
		Logger: logger,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	engine.Use(abuse.BodyLimitMiddleware(cfg.Abuse.MaxBodyBytes))
	engine.Use(abuse.RateLimitMiddleware(limiter, cfg.Abuse.MaxWriteRequests, logger))
	if cfg.Abuse.UserAgentCheck {
		engine.Use(abuse.UserAgentMiddleware(botChecker))
	}

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	predHandler := &handler.PredictionHandler{
		Service: predService,
		Bot:     botChecker,
		Logger:  logger,
	}
	predHandler.Register(engine)
	statsHandler := &handler.StatsHandler{Service: statsService, Logger: logger}
	statsHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		_, err = cronRunner.Add(cfg.Cron.AbusePrune, func(ctx context.Context) {
			pruned, err := limiter.Prune(ctx)
			if err != nil {
				logger.Warn("abuse state prune failed", zap.Error(err))
				return
			}
			if pruned > 0 {
				logger.Info("abuse state pruned", zap.Int("entries", pruned))
			}
		})
		if err != nil {
			logger.Warn("cron register abuse prune failed", zap.Error(err))
		}
		_, err = cronRunner.Add(cfg.Cron.StatsCacheRefresh, func(ctx context.Context) {
			if !cfg.StatsCache.Enabled || !statsCache.Available() {
				return
			}
			if _, err := statsService.Refresh(ctx); err != nil {
				logger.Warn("stats cache refresh failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register stats refresh failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
