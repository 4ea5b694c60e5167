package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/routineplus/backend/api/handler"
	"github.com/routineplus/backend/internal/config"
	"github.com/routineplus/backend/internal/infrastructure/drift"
	"github.com/routineplus/backend/internal/infrastructure/monitor"
	"github.com/routineplus/backend/internal/infrastructure/openweather"
	pgInfra "github.com/routineplus/backend/internal/infrastructure/postgres"
	redisInfra "github.com/routineplus/backend/internal/infrastructure/redis"
	"github.com/routineplus/backend/internal/middleware"
	"github.com/routineplus/backend/internal/router"
	"github.com/routineplus/backend/internal/services"
	"github.com/routineplus/backend/internal/services/lifecycle"
	"github.com/routineplus/backend/pkg/httpcontext"
	"github.com/routineplus/backend/pkg/logger"
	"github.com/routineplus/backend/repository/postgres"
	redisRepo "github.com/routineplus/backend/repository/redis"
	taskUC "github.com/routineplus/backend/usecase/task"
	weatherUC "github.com/routineplus/backend/usecase/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	driftJournal, err := drift.Open(cfg.Retention.DriftPath, "audit_drift")
	if err != nil {
		zapLogger.Fatal("failed to open drift journal", zap.Error(err))
	}
	manager.Register("drift_journal", func(ctx context.Context) error {
		return driftJournal.Close()
	})

	mon := monitor.New(pool, redisClient, driftJournal, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	taskRepo := postgres.NewTaskRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	forecastCache := redisRepo.NewForecastCache(redisClient, cfg.Weather.CacheTTL)
	pushTokenRepo := redisRepo.NewPushTokenRepository(redisClient)

	// Idempotent: the retention index survives restarts.
	if err := auditRepo.EnsureRetentionPolicy(appCtx); err != nil {
		zapLogger.Fatal("failed to ensure audit retention policy", zap.Error(err))
	}

	sweeper := services.NewRetentionSweeper(auditRepo, driftJournal, zapLogger, services.SweeperConfig{
		AuditWindow:    cfg.Retention.AuditWindow,
		DriftRetention: cfg.Retention.DriftRetention,
		Interval:       cfg.Retention.SweepInterval,
	})
	sweeper.Start()
	manager.Register("retention_sweeper", func(ctx context.Context) error {
		sweeper.Stop(ctx)
		return nil
	})

	weatherProvider := openweather.New(openweather.Config{
		BaseURL: cfg.Weather.BaseURL,
		APIKey:  cfg.Weather.APIKey,
		Timeout: cfg.Weather.Timeout,
		Units:   cfg.Weather.Units,
		Lang:    cfg.Weather.Lang,
	}, zapLogger)

	driftBridge := services.NewDriftBridge(driftJournal)

	taskUseCase := taskUC.New(taskRepo, auditRepo, driftBridge, zapLogger)
	weatherUseCase := weatherUC.New(weatherProvider, forecastCache, taskRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:         apiHandler.NewTaskHandler(taskUseCase, weatherUseCase, ctxAdapter, zapLogger),
		History:      apiHandler.NewHistoryHandler(taskUseCase, ctxAdapter, zapLogger),
		Weather:      apiHandler.NewWeatherHandler(weatherUseCase, ctxAdapter, zapLogger),
		Notification: apiHandler.NewNotificationHandler(pushTokenRepo, ctxAdapter, zapLogger),
		Health:       apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      middleware.CORS(r.Handler),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
