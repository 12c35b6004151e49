package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/limaJavier/coursetable/internal/dto"
	"github.com/limaJavier/coursetable/internal/models"
	appErrors "github.com/limaJavier/coursetable/pkg/errors"
	"github.com/limaJavier/coursetable/pkg/logger"
)

type timetableGeneratorMock struct {
	previewReq  dto.PreviewTimetableRequest
	generateReq dto.GenerateTimetableRequest
	userID      string
	err         error
}

func (m *timetableGeneratorMock) Preview(ctx context.Context, req dto.PreviewTimetableRequest) (*dto.GenerationResponse, error) {
	m.previewReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.GenerationResponse{Solutions: []dto.SolutionResponse{{Rank: 1, Score: 3}}, Found: 1, Exhaustive: true, StopReason: "completed"}, nil
}

func (m *timetableGeneratorMock) Generate(ctx context.Context, userID string, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	m.userID = userID
	m.generateReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.GenerateTimetableResponse{TimetableID: "timetable-1", Message: "Generated 1 timetables."}, nil
}

func (m *timetableGeneratorMock) Get(ctx context.Context, id string) (*models.Timetable, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Timetable{ID: id, Name: "Fall"}, nil
}

func newTimetableRouter(mock *timetableGeneratorMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := &TimetableHandler{service: mock}
	router := gin.New()
	router.POST("/timetables/preview", handler.Preview)
	router.POST("/users/:userId/timetables/generate", handler.Generate)
	router.GET("/timetables/:id", handler.Get)
	return router
}

func TestTimetablePreviewSuccess(t *testing.T) {
	mock := &timetableGeneratorMock{}
	router := newTimetableRouter(mock)
	payload := []byte(`{"courses":[{"id":"c1","time_slots":[{"day_of_week":0,"start_time":"09:00","end_time":"10:00"}]}],"max_solutions":3}`)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/timetables/preview", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mock.previewReq.Courses, 1)
	assert.Equal(t, 3, mock.previewReq.MaxSolutions)

	var body struct {
		Data dto.GenerationResponse `json:"data"`
		Meta map[string]any         `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "preview", body.Meta["mode"])
	require.Len(t, body.Data.Solutions, 1)
	assert.Equal(t, 3, body.Data.Solutions[0].Score)
}

func TestTimetablePreviewMalformedBody(t *testing.T) {
	router := newTimetableRouter(&timetableGeneratorMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/timetables/preview", bytes.NewReader([]byte(`{"courses":`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableGenerateSuccess(t *testing.T) {
	mock := &timetableGeneratorMock{}
	router := newTimetableRouter(mock)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/users/user-7/timetables/generate", bytes.NewReader([]byte(`{"name":"Spring"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user-7", mock.userID)
	assert.Equal(t, "Spring", mock.generateReq.Name)
	assert.Contains(t, w.Body.String(), `"timetable_id":"timetable-1"`)
}

func TestTimetableGenerateEmptyBody(t *testing.T) {
	mock := &timetableGeneratorMock{}
	router := newTimetableRouter(mock)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/users/user-7/timetables/generate", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "", mock.generateReq.Name)
}

func TestTimetableGenerateNoSolution(t *testing.T) {
	router := newTimetableRouter(&timetableGeneratorMock{err: appErrors.Clone(appErrors.ErrNoSolution, "")})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/users/user-7/timetables/generate", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"NO_SOLUTION"`)
}

func TestTimetableGetNotFound(t *testing.T) {
	router := newTimetableRouter(&timetableGeneratorMock{err: appErrors.Clone(appErrors.ErrNotFound, "timetable not found")})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/timetables/missing", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTimetableGetSuccess(t *testing.T) {
	router := newTimetableRouter(&timetableGeneratorMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/timetables/timetable-3", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"timetable-3"`)
}

func TestMetricsHandlerHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	NewMetricsHandler(nil, HealthInfo{
		Database:  true,
		Generator: GeneratorInfo{MaxSolutions: 5, MaxNodes: 100000, Timeout: "10s"},
	}).Health(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":true,"cache":false,"generator":{"max_solutions":5,"max_nodes":100000,"timeout":"10s"}}`, w.Body.String())
}

func TestTimetableHandlerLogsGenerationOutcome(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	handler := &TimetableHandler{service: &timetableGeneratorMock{}}
	router := gin.New()
	router.Use(logger.GinMiddleware(zap.New(core)))
	router.POST("/timetables/preview", handler.Preview)
	router.POST("/users/:userId/timetables/generate", handler.Generate)

	preview := httptest.NewRequest(http.MethodPost, "/timetables/preview", bytes.NewBufferString(`{"courses":[]}`))
	preview.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), preview)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/users/u1/timetables/generate", nil))

	require.Equal(t, 2, logs.Len())
	previewFields := logs.All()[0].ContextMap()
	assert.EqualValues(t, 1, previewFields["found"])
	assert.Equal(t, true, previewFields["exhaustive"])
	assert.Equal(t, "completed", previewFields["stop_reason"])
	assert.Equal(t, "timetable-1", logs.All()[1].ContextMap()["timetable_id"])
}
