package main

import (
	"context"
	"errors"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/multitimer/backend/api/handler"
	"github.com/multitimer/backend/domain"
	"github.com/multitimer/backend/internal/config"
	"github.com/multitimer/backend/internal/infrastructure/monitor"
	"github.com/multitimer/backend/internal/infrastructure/notify"
	redisInfra "github.com/multitimer/backend/internal/infrastructure/redis"
	"github.com/multitimer/backend/internal/middleware"
	"github.com/multitimer/backend/internal/router"
	"github.com/multitimer/backend/internal/services"
	"github.com/multitimer/backend/internal/services/lifecycle"
	"github.com/multitimer/backend/pkg/httpcontext"
	"github.com/multitimer/backend/pkg/logger"
	"github.com/multitimer/backend/repository"
	boltRepo "github.com/multitimer/backend/repository/bolt"
	redisRepo "github.com/multitimer/backend/repository/redis"
	"github.com/multitimer/backend/usecase"
	"github.com/multitimer/backend/usecase/timers"
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

	stateRepo, notifier, err := buildCollaborators(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("infrastructure setup failed", zap.Error(err))
	}
	manager.Register("state_repository", func(ctx context.Context) error {
		return stateRepo.Close()
	})

	store := timers.New(notifier, zapLogger, timers.Config{
		TickInterval: cfg.Engine.TickInterval,
	})
	store.LoadSnapshot(loadState(appCtx, stateRepo, zapLogger))
	manager.Register("timer_store", func(ctx context.Context) error {
		store.Close()
		return nil
	})

	flusher := services.NewFlusher(store, stateRepo, zapLogger, services.FlusherConfig{
		Interval: cfg.Storage.FlushInterval,
	})
	flusher.Start()
	manager.Register("state_flusher", func(ctx context.Context) error {
		flusher.Stop(ctx)
		return nil
	})

	mon := monitor.New(stateRepo, store, cfg.Engine.MonitorInterval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Timer:   apiHandler.NewTimerHandler(store, ctxAdapter, zapLogger),
		History: apiHandler.NewHistoryHandler(store, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
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

// buildCollaborators selects the persistence backend and notification
// gateway from configuration. The Redis client is shared when both sides
// need it.
func buildCollaborators(cfg *config.Config, zapLogger *zap.Logger) (repository.StateRepository, usecase.Notifier, error) {
	var notifier usecase.Notifier = notify.NewLogNotifier(zapLogger)

	needsRedis := cfg.Storage.Backend == config.BackendRedis || cfg.Redis.NotifyEnabled
	if !needsRedis {
		repo, err := boltRepo.Open(cfg.Storage.BoltPath, cfg.Storage.BoltBucket, cfg.Storage.StateKey)
		return repo, notifier, err
	}

	client, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Redis.NotifyEnabled {
		notifier = notify.NewRedisNotifier(client, cfg.Redis.NotifyChannel)
	}
	if cfg.Storage.Backend == config.BackendRedis {
		return redisRepo.NewStateRepository(client, cfg.Storage.StateKey), notifier, nil
	}

	repo, err := boltRepo.Open(cfg.Storage.BoltPath, cfg.Storage.BoltBucket, cfg.Storage.StateKey)
	return repo, notifier, err
}

// loadState reads the persisted snapshot, falling back to the default state
// when nothing was saved yet or the payload cannot be decoded. A load
// failure is never fatal.
func loadState(ctx context.Context, repo repository.StateRepository, zapLogger *zap.Logger) domain.Snapshot {
	snapshot, err := repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrStateNotFound) {
			zapLogger.Error("state load failed, starting from defaults", zap.Error(err))
		}
		return domain.DefaultSnapshot()
	}
	return snapshot
}
