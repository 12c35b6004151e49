package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/limaJavier/coursetable/internal/dto"
	"github.com/limaJavier/coursetable/internal/models"
	"github.com/limaJavier/coursetable/internal/service"
	appErrors "github.com/limaJavier/coursetable/pkg/errors"
	"github.com/limaJavier/coursetable/pkg/logger"
	"github.com/limaJavier/coursetable/pkg/response"
)

type timetableGenerator interface {
	Preview(ctx context.Context, req dto.PreviewTimetableRequest) (*dto.GenerationResponse, error)
	Generate(ctx context.Context, userID string, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
	Get(ctx context.Context, id string) (*models.Timetable, error)
}

// TimetableHandler exposes timetable generation endpoints.
type TimetableHandler struct {
	service timetableGenerator
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// Preview ranks timetables for the courses and constraints in the body without storing anything.
func (h *TimetableHandler) Preview(c *gin.Context) {
	var req dto.PreviewTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid preview payload"))
		return
	}
	result, err := h.service.Preview(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	logGeneration(c, *result)
	response.JSON(c, http.StatusOK, result, map[string]interface{}{"mode": "preview"})
}

// Generate ranks timetables from the user's stored courses and saves the best one.
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	// An empty body keeps every default
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
			return
		}
	}
	result, err := h.service.Generate(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	logGeneration(c, result.Generation)
	logger.AddFields(c, zap.String("timetable_id", result.TimetableID))
	response.Created(c, result)
}

// Get returns a stored timetable with its entries.
func (h *TimetableHandler) Get(c *gin.Context) {
	timetable, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable)
}

func logGeneration(c *gin.Context, generation dto.GenerationResponse) {
	logger.AddFields(c,
		zap.Int("found", generation.Found),
		zap.Uint64("explored", generation.Explored),
		zap.Bool("exhaustive", generation.Exhaustive),
		zap.String("stop_reason", generation.StopReason),
	)
}
