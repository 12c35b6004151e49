package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/limaJavier/coursetable/internal/handler"
	internalmiddleware "github.com/limaJavier/coursetable/internal/middleware"
	"github.com/limaJavier/coursetable/internal/service"
	"github.com/limaJavier/coursetable/pkg/config"
	"github.com/limaJavier/coursetable/pkg/logger"
	reqidmiddleware "github.com/limaJavier/coursetable/pkg/middleware/requestid"
)

func newHealthInfo(cfg *config.Config, database, cache bool) handler.HealthInfo {
	return handler.HealthInfo{
		Database: database,
		Cache:    cache,
		Generator: handler.GeneratorInfo{
			MaxSolutions: cfg.Generator.MaxSolutions,
			MaxNodes:     cfg.Generator.MaxNodes,
			Timeout:      cfg.Generator.Timeout.String(),
		},
	}
}

func newRouter(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, svc *service.TimetableService, health handler.HealthInfo) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics, health)
	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	timetables := handler.NewTimetableHandler(svc)
	api := r.Group(cfg.APIPrefix)
	api.POST("/timetables/preview", timetables.Preview)
	api.GET("/timetables/:id", timetables.Get)
	api.POST("/users/:userId/timetables/generate", timetables.Generate)

	return r
}
