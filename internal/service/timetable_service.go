package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/campushub/timetable-api/internal/conflict"
	"github.com/campushub/timetable-api/internal/dto"
	"github.com/campushub/timetable-api/internal/models"
	appErrors "github.com/campushub/timetable-api/pkg/errors"
)

const weekDateLayout = "2006-01-02"

var dayNames = [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func statsCacheKey(timetableID string) string {
	return "timetable:stats:" + timetableID
}

type timetableRepository interface {
	FindByID(ctx context.Context, id string) (*models.Timetable, error)
	List(ctx context.Context, filter models.TimetableFilter) ([]models.Timetable, int, error)
	Insert(ctx context.Context, exec sqlx.ExtContext, timetable *models.Timetable) error
	Update(ctx context.Context, exec sqlx.ExtContext, timetable *models.Timetable) error
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.TimetableStatus) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id string) error
}

type timetableSlotStore interface {
	ListByTimetable(ctx context.Context, timetableID string) ([]models.TimetableSlot, error)
	ListDetailByTimetable(ctx context.Context, timetableID string) ([]models.SlotDetail, error)
	DeleteByTimetable(ctx context.Context, exec sqlx.ExtContext, timetableID string) (int64, error)
}

type departmentReader interface {
	FindByID(ctx context.Context, id string) (*models.Department, error)
}

// slotReplayer re-validates and inserts slot copies inside the caller's
// transaction; used by Clone.
type slotReplayer interface {
	ReplaySlots(ctx context.Context, tx *sqlx.Tx, target *models.Timetable, source []models.TimetableSlot) ([]models.TimetableSlot, func(), error)
}

// TimetableService manages the slot containers: CRUD, the lifecycle
// transitions, cloning and cached statistics.
type TimetableService struct {
	timetables  timetableRepository
	slots       timetableSlotStore
	departments departmentReader
	replayer    slotReplayer
	tx          txProvider
	cache       *CacheService
	statsTTL    time.Duration
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewTimetableService wires the timetable dependencies.
func NewTimetableService(
	timetables timetableRepository,
	slots timetableSlotStore,
	departments departmentReader,
	replayer slotReplayer,
	tx txProvider,
	cache *CacheService,
	statsTTL time.Duration,
	validate *validator.Validate,
	logger *zap.Logger,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		timetables:  timetables,
		slots:       slots,
		departments: departments,
		replayer:    replayer,
		tx:          tx,
		cache:       cache,
		statsTTL:    statsTTL,
		validator:   validate,
		logger:      logger,
	}
}

// Get loads a single timetable.
func (s *TimetableService) Get(ctx context.Context, id string) (*models.Timetable, error) {
	timetable, err := s.timetables.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	return timetable, nil
}

// List returns timetables matching the filter.
func (s *TimetableService) List(ctx context.Context, filter models.TimetableFilter) ([]models.Timetable, *models.Pagination, error) {
	timetables, total, err := s.timetables.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetables")
	}
	return timetables, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Create registers a new draft timetable.
func (s *TimetableService) Create(ctx context.Context, req dto.CreateTimetableRequest) (*models.Timetable, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}
	if _, err := s.departments.FindByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department")
	}

	weekStart, err := time.Parse(weekDateLayout, req.WeekStart)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "week_start must use YYYY-MM-DD")
	}
	var weekEnd *time.Time
	if req.WeekEnd != nil {
		parsed, err := time.Parse(weekDateLayout, *req.WeekEnd)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "week_end must use YYYY-MM-DD")
		}
		weekEnd = &parsed
	}
	if err := validateWeekRange(weekStart, weekEnd); err != nil {
		return nil, err
	}

	timetable := &models.Timetable{
		Name:         req.Name,
		DepartmentID: req.DepartmentID,
		LevelID:      req.LevelID,
		WeekStart:    weekStart,
		WeekEnd:      weekEnd,
		AcademicYear: req.AcademicYear,
		Semester:     req.Semester,
		Status:       models.TimetableStatusDraft,
		CreatedBy:    req.CreatedBy,
	}
	if err := s.timetables.Insert(ctx, nil, timetable); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist timetable")
	}

	s.logger.Info("timetable created",
		zap.String("timetable_id", timetable.ID),
		zap.String("scope", timetable.Scope().String()),
	)
	return timetable, nil
}

// Update applies an explicit metadata patch. Changing the academic year or
// semester moves every slot of the timetable into the new conflict pool at
// once; the slots themselves are untouched.
func (s *TimetableService) Update(ctx context.Context, id string, patch dto.UpdateTimetableRequest) (*models.Timetable, error) {
	timetable, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		timetable.Name = *patch.Name
	}
	if patch.LevelID != nil {
		timetable.LevelID = patch.LevelID
	}
	if patch.WeekStart != nil {
		parsed, err := time.Parse(weekDateLayout, *patch.WeekStart)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "week_start must use YYYY-MM-DD")
		}
		timetable.WeekStart = parsed
	}
	if patch.WeekEnd != nil {
		if *patch.WeekEnd == "" {
			timetable.WeekEnd = nil
		} else {
			parsed, err := time.Parse(weekDateLayout, *patch.WeekEnd)
			if err != nil {
				return nil, appErrors.Clone(appErrors.ErrValidation, "week_end must use YYYY-MM-DD")
			}
			timetable.WeekEnd = &parsed
		}
	}
	if patch.AcademicYear != nil {
		timetable.AcademicYear = *patch.AcademicYear
	}
	if patch.Semester != nil {
		timetable.Semester = *patch.Semester
	}

	// The merged dates must still form a valid range, whichever side the
	// patch touched.
	if err := validateWeekRange(timetable.WeekStart, timetable.WeekEnd); err != nil {
		return nil, err
	}

	if err := s.timetables.Update(ctx, nil, timetable); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update timetable")
	}

	s.invalidateStats(ctx, id)
	s.logger.Info("timetable updated", zap.String("timetable_id", id))
	return timetable, nil
}

// Publish transitions a timetable to published. Only a timetable that is
// already published is rejected; archived timetables may be re-published.
func (s *TimetableService) Publish(ctx context.Context, id string) (*models.Timetable, error) {
	return s.transition(ctx, id, models.TimetableStatusPublished, appErrors.ErrAlreadyPublished)
}

// Archive transitions a timetable to archived. Only a timetable that is
// already archived is rejected.
func (s *TimetableService) Archive(ctx context.Context, id string) (*models.Timetable, error) {
	return s.transition(ctx, id, models.TimetableStatusArchived, appErrors.ErrAlreadyArchived)
}

func (s *TimetableService) transition(ctx context.Context, id string, target models.TimetableStatus, alreadyErr *appErrors.Error) (*models.Timetable, error) {
	timetable, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if timetable.Status == target {
		return nil, appErrors.Clone(alreadyErr, "")
	}
	if err := s.timetables.UpdateStatus(ctx, nil, id, target); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update timetable status")
	}
	timetable.Status = target
	s.invalidateStats(ctx, id)
	s.logger.Info("timetable status changed",
		zap.String("timetable_id", id),
		zap.String("status", string(target)),
	)
	return timetable, nil
}

// Clone copies a timetable's slots into a new draft timetable, replaying
// every slot through full conflict validation. The whole clone is one
// transaction: the first conflicting or invalid slot aborts it, leaving no
// partial copy behind.
func (s *TimetableService) Clone(ctx context.Context, sourceID string, req dto.CloneTimetableRequest) (*models.Timetable, []models.TimetableSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid clone payload")
	}

	source, err := s.Get(ctx, sourceID)
	if err != nil {
		return nil, nil, err
	}
	sourceSlots, err := s.slots.ListByTimetable(ctx, sourceID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load source slots")
	}

	target := &models.Timetable{
		Name:         req.Name,
		DepartmentID: source.DepartmentID,
		LevelID:      source.LevelID,
		WeekStart:    source.WeekStart,
		WeekEnd:      source.WeekEnd,
		AcademicYear: source.AcademicYear,
		Semester:     source.Semester,
		Status:       models.TimetableStatusDraft,
		CreatedBy:    req.CreatedBy,
	}
	if req.DepartmentID != nil {
		target.DepartmentID = *req.DepartmentID
	}
	if req.LevelID != nil {
		target.LevelID = req.LevelID
	}
	if req.WeekStart != nil {
		parsed, err := time.Parse(weekDateLayout, *req.WeekStart)
		if err != nil {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "week_start must use YYYY-MM-DD")
		}
		target.WeekStart = parsed
	}
	if req.WeekEnd != nil {
		if *req.WeekEnd == "" {
			target.WeekEnd = nil
		} else {
			parsed, err := time.Parse(weekDateLayout, *req.WeekEnd)
			if err != nil {
				return nil, nil, appErrors.Clone(appErrors.ErrValidation, "week_end must use YYYY-MM-DD")
			}
			target.WeekEnd = &parsed
		}
	}
	if req.AcademicYear != nil {
		target.AcademicYear = *req.AcademicYear
	}
	if req.Semester != nil {
		target.Semester = *req.Semester
	}
	if err := validateWeekRange(target.WeekStart, target.WeekEnd); err != nil {
		return nil, nil, err
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.timetables.Insert(ctx, tx, target); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist cloned timetable")
	}

	created, release, err := s.replayer.ReplaySlots(ctx, tx, target, sourceSlots)
	defer release()
	if err != nil {
		return nil, nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit clone")
	}

	s.logger.Info("timetable cloned",
		zap.String("source_id", sourceID),
		zap.String("timetable_id", target.ID),
		zap.Int("slots", len(created)),
	)
	return target, created, nil
}

// Delete removes a timetable and all of its slots in one transaction,
// reporting how many slots the cascade removed.
func (s *TimetableService) Delete(ctx context.Context, id string) (*dto.DeleteTimetableResult, error) {
	timetable, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
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

	deleted, err := s.slots.DeleteByTimetable(ctx, tx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete slots")
	}
	if err = s.timetables.Delete(ctx, tx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete timetable")
	}
	if err = tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit delete")
	}

	s.invalidateStats(ctx, id)
	s.logger.Info("timetable deleted",
		zap.String("timetable_id", id),
		zap.Int64("slots_deleted", deleted),
	)
	return &dto.DeleteTimetableResult{Name: timetable.Name, SlotsDeleted: int(deleted)}, nil
}

// Stats computes occupancy statistics for a timetable, serving from the
// cache when a fresh entry exists.
func (s *TimetableService) Stats(ctx context.Context, id string) (*models.TimetableStats, error) {
	key := statsCacheKey(id)
	if s.cache.Enabled() {
		var cached models.TimetableStats
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	timetable, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := s.slots.ListDetailByTimetable(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot details")
	}

	stats := computeStats(timetable, details)
	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, key, stats, s.statsTTL)
	}
	return stats, nil
}

func computeStats(timetable *models.Timetable, details []models.SlotDetail) *models.TimetableStats {
	courses := make(map[string]struct{})
	rooms := make(map[string]struct{})
	teachers := make(map[string]struct{})
	perDay := make(map[string]int, len(dayNames))
	for _, name := range dayNames {
		perDay[name] = 0
	}

	var totalMinutes int
	for _, detail := range details {
		courses[detail.CourseID] = struct{}{}
		rooms[detail.RoomID] = struct{}{}
		if detail.TeacherName != nil {
			teachers[*detail.TeacherName] = struct{}{}
		}
		if interval, err := conflict.ParseInterval(detail.StartTime, detail.EndTime); err == nil {
			totalMinutes += interval.Minutes()
		}
		if detail.DayOfWeek >= 0 && detail.DayOfWeek < len(dayNames) {
			perDay[dayNames[detail.DayOfWeek]]++
		}
	}

	return &models.TimetableStats{
		TimetableID:        timetable.ID,
		TimetableName:      timetable.Name,
		Status:             timetable.Status,
		TotalSlots:         len(details),
		UniqueCourses:      len(courses),
		UniqueRooms:        len(rooms),
		UniqueTeachers:     len(teachers),
		TotalTeachingHours: float64(totalMinutes) / 60.0,
		SlotsPerDay:        perDay,
	}
}

// validateWeekRange rejects a week_end on or before week_start. week_end is
// optional; open-ended timetables are fine.
func validateWeekRange(weekStart time.Time, weekEnd *time.Time) error {
	if weekEnd != nil && !weekEnd.After(weekStart) {
		return appErrors.Clone(appErrors.ErrValidation, "week_end must be after week_start")
	}
	return nil
}

func (s *TimetableService) invalidateStats(ctx context.Context, id string) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.Invalidate(ctx, statsCacheKey(id)); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.String("timetable_id", id), zap.Error(err))
	}
}
