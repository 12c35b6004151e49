package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/limaJavier/coursetable/internal/dto"
	"github.com/limaJavier/coursetable/internal/models"
	"github.com/limaJavier/coursetable/pkg/cache"
	appErrors "github.com/limaJavier/coursetable/pkg/errors"
	"github.com/limaJavier/coursetable/pkg/model"
)

const (
	defaultTimetableName = "Generated Timetable"

	modePreview = "preview"
	modeStored  = "stored"
)

type planningLoader interface {
	LoadInput(ctx context.Context, userID string) (model.ModelInput, error)
}

type timetableStore interface {
	Create(ctx context.Context, exec sqlx.ExtContext, timetable *models.Timetable) error
	CreateEntries(ctx context.Context, exec sqlx.ExtContext, entries []models.TimetableEntry) error
	FindByID(ctx context.Context, id string) (*models.Timetable, error)
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type resultCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// TimetableServiceConfig governs generation behaviour.
type TimetableServiceConfig struct {
	MaxSolutions int           // Used when a request does not ask for a number of solutions
	Timeout      time.Duration // Deadline of each search, 0 disables it
	CacheTTL     time.Duration // 0 disables result caching
}

// TimetableService runs the timetable search and persists the best solution.
type TimetableService struct {
	timetabler model.Timetabler
	planning   planningLoader
	timetables timetableStore
	tx         txProvider
	cache      resultCache
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
	cfg        TimetableServiceConfig
}

// NewTimetableService wires timetable dependencies. planning, timetables, tx and cache may be nil when no database or Redis is configured.
func NewTimetableService(
	timetabler model.Timetabler,
	planning planningLoader,
	timetables timetableStore,
	tx txProvider,
	cache resultCache,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg TimetableServiceConfig,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxSolutions <= 0 {
		cfg.MaxSolutions = 5
	}
	return &TimetableService{
		timetabler: timetabler,
		planning:   planning,
		timetables: timetables,
		tx:         tx,
		cache:      cache,
		metrics:    metrics,
		validator:  validate,
		logger:     logger,
		cfg:        cfg,
	}
}

// Preview ranks timetables for the planning input carried by the request. Nothing is persisted and an empty result is not an error.
func (s *TimetableService) Preview(ctx context.Context, req dto.PreviewTimetableRequest) (*dto.GenerationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preview payload")
	}

	input, err := model.InputFromMap(map[string]any{
		"courses":     req.Courses,
		"constraints": req.Constraints,
	})
	if err != nil {
		s.metrics.ObserveGeneration(modePreview, OutcomeInvalid, 0, 0)
		return nil, validationError(err)
	}

	result, err := s.generate(ctx, modePreview, input, req.MaxSolutions)
	if err != nil {
		return nil, err
	}
	resp := dto.NewGenerationResponse(result)
	return &resp, nil
}

// Generate ranks timetables for the courses and constraints stored for the user and saves the best one.
func (s *TimetableService) Generate(ctx context.Context, userID string, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generate payload")
	}
	if s.planning == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "planning storage unavailable")
	}

	input, err := s.planning.LoadInput(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			s.metrics.ObserveGeneration(modeStored, OutcomeInvalid, 0, 0)
			return nil, validationError(err)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load planning input")
	}

	result, err := s.generate(ctx, modeStored, input, req.MaxSolutions)
	if err != nil {
		return nil, err
	}
	if result.Empty() {
		return nil, appErrors.Clone(appErrors.ErrNoSolution, "")
	}

	name := req.Name
	if name == "" {
		name = defaultTimetableName
	}
	selected, err := s.Materialize(ctx, userID, name, result.Solutions[0].Solution)
	if err != nil {
		return nil, err
	}

	return &dto.GenerateTimetableResponse{
		TimetableID: selected.ID,
		Message:     fmt.Sprintf("Generated %d timetables.", len(result.Solutions)),
		Selected:    selected,
		Generation:  dto.NewGenerationResponse(result),
	}, nil
}

// Materialize stores the solution as a named timetable with one entry per chosen slot, atomically.
func (s *TimetableService) Materialize(ctx context.Context, userID, name string, solution model.Solution) (timetable *models.Timetable, err error) {
	if s.tx == nil || s.timetables == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	record := &models.Timetable{UserID: userID, Name: name}
	if err = s.timetables.Create(ctx, tx, record); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create timetable")
		return nil, err
	}

	entries := lo.Map(solution, func(slot model.TimeSlot, _ int) models.TimetableEntry {
		return models.TimetableEntry{TimetableID: record.ID, TimeslotID: slot.Id}
	})
	if err = s.timetables.CreateEntries(ctx, tx, entries); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist timetable entries")
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit timetable")
		return nil, err
	}

	record.Entries = entries
	s.logger.Info("timetable materialized",
		zap.String("timetable_id", record.ID),
		zap.String("user_id", userID),
		zap.Int("entries", len(entries)),
	)
	return record, nil
}

// Get returns a stored timetable with its entries.
func (s *TimetableService) Get(ctx context.Context, id string) (*models.Timetable, error) {
	if s.timetables == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "timetable storage unavailable")
	}
	return s.timetables.FindByID(ctx, id)
}

func (s *TimetableService) generate(ctx context.Context, mode string, input model.ModelInput, maxSolutions int) (model.Result, error) {
	if maxSolutions <= 0 {
		maxSolutions = s.cfg.MaxSolutions
	}

	key, cacheable := s.cacheKey(input, maxSolutions)
	if cacheable {
		var cached model.Result
		err := s.cache.Get(ctx, key, &cached)
		s.metrics.RecordCacheOperation(err == nil)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("timetable cache lookup failed", zap.String("key", key), zap.Error(err))
		}
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.timetabler.Generate(ctx, input, maxSolutions)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			s.metrics.ObserveGeneration(mode, OutcomeInvalid, 0, time.Since(start))
			return model.Result{}, validationError(err)
		}
		return model.Result{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "timetable generation failed")
	}
	s.metrics.ObserveGeneration(mode, outcomeOf(result), result.Explored, time.Since(start))

	// Truncated searches depend on the deadline and are not reproducible
	if cacheable && result.Exhaustive {
		if err := s.cache.Set(ctx, key, result, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("timetable cache store failed", zap.String("key", key), zap.Error(err))
		}
	}
	return result, nil
}

func (s *TimetableService) cacheKey(input model.ModelInput, maxSolutions int) (string, bool) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return "", false
	}
	key, err := cache.GenerationKey(input, maxSolutions)
	if err != nil {
		s.logger.Warn("timetable cache key failed", zap.Error(err))
		return "", false
	}
	return key, true
}

func outcomeOf(result model.Result) string {
	switch {
	case result.Empty():
		return OutcomeEmpty
	case !result.Exhaustive:
		return OutcomeTruncated
	}
	return OutcomeSolved
}

func validationError(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
}
