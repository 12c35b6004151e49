package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/limaJavier/coursetable/internal/repository"
	"github.com/limaJavier/coursetable/internal/service"
	"github.com/limaJavier/coursetable/pkg/cache"
	"github.com/limaJavier/coursetable/pkg/config"
	"github.com/limaJavier/coursetable/pkg/database"
	"github.com/limaJavier/coursetable/pkg/logger"
	"github.com/limaJavier/coursetable/pkg/model"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var db *sqlx.DB
	if cfg.Database.Enabled {
		if db, err = database.NewPostgres(cfg.Database); err != nil {
			logr.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if cfg.Database.AutoMigrate {
			migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err := database.EnsureSchema(migrateCtx, db)
			cancel()
			if err != nil {
				logr.Fatal("failed to prepare database schema", zap.Error(err))
			}
		}
	}

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		if redisClient, err = cache.NewRedis(cfg.Redis); err != nil {
			// Generation works without a cache
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
			redisClient = nil
		}
	}

	metrics := service.NewMetricsService()
	timetabler := model.NewBacktrackingTimetabler(model.SearchLimits{MaxNodes: cfg.Generator.MaxNodes}, logr.Named("timetabler"))
	svc := newTimetableService(cfg, timetabler, db, redisClient, metrics, logr)

	r := newRouter(cfg, logr, metrics, svc, newHealthInfo(cfg, db != nil, redisClient != nil))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "database", db != nil, "cache", redisClient != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

func newTimetableService(
	cfg *config.Config,
	timetabler model.Timetabler,
	db *sqlx.DB,
	redisClient *redis.Client,
	metrics *service.MetricsService,
	logr *zap.Logger,
) *service.TimetableService {
	svcCfg := service.TimetableServiceConfig{
		MaxSolutions: cfg.Generator.MaxSolutions,
		Timeout:      cfg.Generator.Timeout,
	}

	if redisClient != nil {
		svcCfg.CacheTTL = cfg.Cache.TTL
	}

	// Optional backends stay untyped nil so the service can detect them
	switch {
	case db != nil && redisClient != nil:
		timetables := repository.NewTimetableRepository(db)
		return service.NewTimetableService(timetabler, repository.NewPlanningRepository(db), timetables, timetables, repository.NewCacheRepository(redisClient), metrics, nil, logr, svcCfg)
	case db != nil:
		timetables := repository.NewTimetableRepository(db)
		return service.NewTimetableService(timetabler, repository.NewPlanningRepository(db), timetables, timetables, nil, metrics, nil, logr, svcCfg)
	case redisClient != nil:
		return service.NewTimetableService(timetabler, nil, nil, nil, repository.NewCacheRepository(redisClient), metrics, nil, logr, svcCfg)
	}
	return service.NewTimetableService(timetabler, nil, nil, nil, nil, metrics, nil, logr, svcCfg)
}
