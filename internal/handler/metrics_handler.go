package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/limaJavier/coursetable/internal/service"
)

// GeneratorInfo reports the search defaults applied to requests that do not override them.
type GeneratorInfo struct {
	MaxSolutions int    `json:"max_solutions"`
	MaxNodes     uint64 `json:"max_nodes"`
	Timeout      string `json:"timeout"`
}

// HealthInfo describes which backends the generator runs with. Preview works with neither.
type HealthInfo struct {
	Database  bool          `json:"database"`
	Cache     bool          `json:"cache"`
	Generator GeneratorInfo `json:"generator"`
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	health  HealthInfo
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService, health HealthInfo) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, health: health}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health reports liveness together with the enabled backends and search defaults.
// Stored generation needs the database, so its absence is reported but not treated as unhealthy.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, struct {
		Status string `json:"status"`
		HealthInfo
	}{"ok", h.health})
}
