package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/campushub/timetable-api/internal/conflict"
	"github.com/campushub/timetable-api/internal/dto"
	"github.com/campushub/timetable-api/internal/models"
	appErrors "github.com/campushub/timetable-api/pkg/errors"
)

type slotRepository interface {
	FindByID(ctx context.Context, id string) (*models.TimetableSlot, error)
	List(ctx context.Context, filter models.SlotFilter) ([]models.TimetableSlot, int, error)
	ListByTimetable(ctx context.Context, timetableID string) ([]models.TimetableSlot, error)
	FindOverlapping(ctx context.Context, exec sqlx.ExtContext, q models.OverlapQuery) ([]models.SlotDetail, error)
	Insert(ctx context.Context, exec sqlx.ExtContext, slot *models.TimetableSlot) error
	Update(ctx context.Context, exec sqlx.ExtContext, slot *models.TimetableSlot) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id string) error
}

type timetableReader interface {
	FindByID(ctx context.Context, id string) (*models.Timetable, error)
}

type courseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type roomReader interface {
	FindByID(ctx context.Context, id string) (*models.Room, error)
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type statsInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// SlotService validates and commits slot assignments: single proposals,
// explicit patches, all-or-nothing batches and read-only conflict checks.
// The conflict check and the insert run inside one transaction while a
// per-(scope, resource, day) lock is held, so two concurrent proposals for
// the same resource cannot both pass.
type SlotService struct {
	slots      slotRepository
	timetables timetableReader
	courses    courseReader
	rooms      roomReader
	tx         txProvider
	locks      *conflict.LockTable
	cache      statsInvalidator
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewSlotService wires the slot assignment dependencies.
func NewSlotService(
	slots slotRepository,
	timetables timetableReader,
	courses courseReader,
	rooms roomReader,
	tx txProvider,
	cache statsInvalidator,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *SlotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotService{
		slots:      slots,
		timetables: timetables,
		courses:    courses,
		rooms:      rooms,
		tx:         tx,
		locks:      conflict.NewLockTable(),
		cache:      cache,
		metrics:    metrics,
		validator:  validate,
		logger:     logger,
	}
}

// Get loads a single slot.
func (s *SlotService) Get(ctx context.Context, slotID string) (*models.TimetableSlot, error) {
	slot, err := s.slots.FindByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot")
	}
	return slot, nil
}

// List returns slots matching the filter.
func (s *SlotService) List(ctx context.Context, filter models.SlotFilter) ([]models.TimetableSlot, *models.Pagination, error) {
	if filter.DayOfWeek != nil && (*filter.DayOfWeek < 0 || *filter.DayOfWeek > 6) {
		return nil, nil, appErrors.Clone(appErrors.ErrInvalidDay, "")
	}
	slots, total, err := s.slots.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list slots")
	}
	return slots, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Create validates a proposed assignment and commits it atomically.
// Validation order is fixed: existence, day, time range, room availability,
// room conflict, teacher conflict. The first failure wins.
func (s *SlotService) Create(ctx context.Context, req dto.CreateSlotRequest) (*models.TimetableSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}

	timetable, course, room, err := s.loadRefs(ctx, req.TimetableID, req.CourseID, req.RoomID)
	if err != nil {
		return nil, err
	}
	interval, err := validatePlacement(room, req.DayOfWeek, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	scope := timetable.Scope()
	release := s.locks.Acquire(placementKeys(scope, room.ID, course, req.DayOfWeek)...)
	defer release()

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.checkPlacement(ctx, tx, scope, course, room.ID, req.DayOfWeek, interval, ""); err != nil {
		return nil, err
	}

	slot := &models.TimetableSlot{
		TimetableID: timetable.ID,
		CourseID:    course.ID,
		RoomID:      room.ID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   conflict.FormatClock(interval.Start),
		EndTime:     conflict.FormatClock(interval.End),
		Notes:       req.Notes,
	}
	if err = s.slots.Insert(ctx, tx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist slot")
	}
	if err = tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit slot")
	}

	s.metrics.RecordSlotCreated()
	s.invalidateStats(ctx, timetable.ID)
	s.logger.Info("slot created",
		zap.String("slot_id", slot.ID),
		zap.String("timetable_id", timetable.ID),
		zap.String("room_id", room.ID),
		zap.Int("day", slot.DayOfWeek),
		zap.String("range", interval.String()),
	)
	return slot, nil
}

// Update merges an explicit patch over the stored slot and re-runs the full
// validation with the slot itself excluded from conflict checks. Re-checking
// is not skipped for metadata-only patches; recomputing is cheap and safer
// than tracking which fields matter.
func (s *SlotService) Update(ctx context.Context, slotID string, patch dto.UpdateSlotRequest) (*models.TimetableSlot, error) {
	existing, err := s.Get(ctx, slotID)
	if err != nil {
		return nil, err
	}

	merged := *existing
	if patch.CourseID != nil {
		merged.CourseID = *patch.CourseID
	}
	if patch.RoomID != nil {
		merged.RoomID = *patch.RoomID
	}
	if patch.DayOfWeek != nil {
		merged.DayOfWeek = *patch.DayOfWeek
	}
	if patch.StartTime != nil {
		merged.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		merged.EndTime = *patch.EndTime
	}
	if patch.Notes != nil {
		merged.Notes = patch.Notes
	}

	timetable, course, room, err := s.loadRefs(ctx, merged.TimetableID, merged.CourseID, merged.RoomID)
	if err != nil {
		return nil, err
	}
	interval, err := validatePlacement(room, merged.DayOfWeek, merged.StartTime, merged.EndTime)
	if err != nil {
		return nil, err
	}
	merged.StartTime = conflict.FormatClock(interval.Start)
	merged.EndTime = conflict.FormatClock(interval.End)

	// Only the new placement needs locking: the old booking disappears
	// atomically with the row update inside the transaction.
	scope := timetable.Scope()
	keys := placementKeys(scope, room.ID, course, merged.DayOfWeek)
	release := s.locks.Acquire(keys...)
	defer release()

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.checkPlacement(ctx, tx, scope, course, room.ID, merged.DayOfWeek, interval, slotID); err != nil {
		return nil, err
	}
	if err = s.slots.Update(ctx, tx, &merged); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update slot")
	}
	if err = tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit slot update")
	}

	s.invalidateStats(ctx, timetable.ID)
	s.logger.Info("slot updated", zap.String("slot_id", slotID), zap.String("timetable_id", timetable.ID))
	return &merged, nil
}

// Delete removes a slot.
func (s *SlotService) Delete(ctx context.Context, slotID string) error {
	existing, err := s.Get(ctx, slotID)
	if err != nil {
		return err
	}
	if err := s.slots.Delete(ctx, nil, slotID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "slot not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete slot")
	}
	s.invalidateStats(ctx, existing.TimetableID)
	s.logger.Info("slot deleted", zap.String("slot_id", slotID), zap.String("timetable_id", existing.TimetableID))
	return nil
}

// BulkCreate applies a batch of proposals as one all-or-nothing unit.
// Proposals are validated in list order against the state produced by
// earlier successful proposals in the same batch, so intra-batch conflicts
// are detected and earlier entries win. Any failure rolls back every insert
// and reports the full per-item error list.
func (s *SlotService) BulkCreate(ctx context.Context, req dto.BulkCreateSlotsRequest) (*dto.BulkCreateSlotsResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk payload")
	}

	timetable, err := s.timetables.FindByID(ctx, req.TimetableID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	scope := timetable.Scope()

	type resolved struct {
		course   *models.Course
		room     *models.Room
		interval conflict.Interval
		ok       bool
	}
	items := make([]resolved, len(req.Slots))
	var itemErrs []models.BulkItemError
	var keys []conflict.Key

	for i, proposal := range req.Slots {
		_, course, room, refErr := s.loadRefs(ctx, req.TimetableID, proposal.CourseID, proposal.RoomID)
		if refErr != nil {
			itemErrs = append(itemErrs, bulkItemError(i, refErr))
			continue
		}
		interval, valErr := validatePlacement(room, proposal.DayOfWeek, proposal.StartTime, proposal.EndTime)
		if valErr != nil {
			itemErrs = append(itemErrs, bulkItemError(i, valErr))
			continue
		}
		items[i] = resolved{course: course, room: room, interval: interval, ok: true}
		keys = append(keys, placementKeys(scope, room.ID, course, proposal.DayOfWeek)...)
	}

	release := s.locks.Acquire(keys...)
	defer release()

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}

	created := make([]models.TimetableSlot, 0, len(req.Slots))
	for i, proposal := range req.Slots {
		if !items[i].ok {
			continue
		}
		item := items[i]
		if checkErr := s.checkPlacement(ctx, tx, scope, item.course, item.room.ID, proposal.DayOfWeek, item.interval, ""); checkErr != nil {
			itemErrs = append(itemErrs, bulkItemError(i, checkErr))
			continue
		}
		slot := models.TimetableSlot{
			TimetableID: timetable.ID,
			CourseID:    item.course.ID,
			RoomID:      item.room.ID,
			DayOfWeek:   proposal.DayOfWeek,
			StartTime:   conflict.FormatClock(item.interval.Start),
			EndTime:     conflict.FormatClock(item.interval.End),
			Notes:       proposal.Notes,
		}
		if insertErr := s.slots.Insert(ctx, tx, &slot); insertErr != nil {
			_ = tx.Rollback()
			return nil, appErrors.Wrap(insertErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist slot")
		}
		created = append(created, slot)
	}

	if len(itemErrs) > 0 {
		_ = tx.Rollback()
		sort.Slice(itemErrs, func(i, j int) bool { return itemErrs[i].Index < itemErrs[j].Index })
		rejection := &models.BulkRejectionError{
			Message: fmt.Sprintf("%d of %d proposals rejected", len(itemErrs), len(req.Slots)),
			Items:   itemErrs,
		}
		return nil, appErrors.Wrap(rejection, appErrors.ErrBulkRejected.Code, appErrors.ErrBulkRejected.Status, appErrors.ErrBulkRejected.Message)
	}

	if err = tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit bulk create")
	}

	for range created {
		s.metrics.RecordSlotCreated()
	}
	s.invalidateStats(ctx, timetable.ID)
	s.logger.Info("bulk slots created", zap.String("timetable_id", timetable.ID), zap.Int("count", len(created)))
	return &dto.BulkCreateSlotsResult{Created: created}, nil
}

// CheckConflicts is the read-only "would this conflict" probe. It runs the
// same overlap checks as Create but returns every match and never mutates
// state. When RoomID is absent only the teacher check executes.
func (s *SlotService) CheckConflicts(ctx context.Context, req dto.CheckConflictsRequest) (*dto.CheckConflictsResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid conflict check payload")
	}

	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, appErrors.Clone(appErrors.ErrInvalidDay, "")
	}
	interval, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	scope := models.Scope{AcademicYear: req.AcademicYear, Semester: req.Semester}
	conflicts := make([]models.Conflict, 0)

	if req.RoomID != nil {
		hits, findErr := s.slots.FindOverlapping(ctx, nil, models.OverlapQuery{
			Scope:         scope,
			Kind:          models.ResourceRoom,
			ResourceID:    *req.RoomID,
			DayOfWeek:     req.DayOfWeek,
			StartTime:     conflict.FormatClock(interval.Start),
			EndTime:       conflict.FormatClock(interval.End),
			ExcludeSlotID: req.ExcludeSlotID,
		})
		if findErr != nil {
			return nil, appErrors.Wrap(findErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check room conflicts")
		}
		for _, hit := range hits {
			conflicts = append(conflicts, conflictFromDetail(models.ResourceRoom, hit, scope))
		}
	}

	if course.TeacherID != nil {
		hits, findErr := s.slots.FindOverlapping(ctx, nil, models.OverlapQuery{
			Scope:         scope,
			Kind:          models.ResourceTeacher,
			ResourceID:    *course.TeacherID,
			DayOfWeek:     req.DayOfWeek,
			StartTime:     conflict.FormatClock(interval.Start),
			EndTime:       conflict.FormatClock(interval.End),
			ExcludeSlotID: req.ExcludeSlotID,
		})
		if findErr != nil {
			return nil, appErrors.Wrap(findErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher conflicts")
		}
		for _, hit := range hits {
			conflicts = append(conflicts, conflictFromDetail(models.ResourceTeacher, hit, scope))
		}
	}

	return &dto.CheckConflictsResult{Conflicts: conflicts, HasAny: len(conflicts) > 0}, nil
}

// ReplaySlots re-validates and inserts copies of the given slots into the
// target timetable using the caller's transaction. The first conflict aborts
// the replay. The returned release function unlocks the involved resource
// keys and must be called after the surrounding transaction is resolved.
func (s *SlotService) ReplaySlots(ctx context.Context, tx *sqlx.Tx, target *models.Timetable, source []models.TimetableSlot) ([]models.TimetableSlot, func(), error) {
	scope := target.Scope()

	type resolved struct {
		course   *models.Course
		room     *models.Room
		interval conflict.Interval
	}
	items := make([]resolved, len(source))
	var keys []conflict.Key
	for i, slot := range source {
		// The target timetable may be uncommitted in the caller's tx, so
		// only the course and room references are reloaded here.
		course, room, err := s.loadPlacementRefs(ctx, slot.CourseID, slot.RoomID)
		if err != nil {
			return nil, func() {}, err
		}
		interval, err := validatePlacement(room, slot.DayOfWeek, slot.StartTime, slot.EndTime)
		if err != nil {
			return nil, func() {}, err
		}
		items[i] = resolved{course: course, room: room, interval: interval}
		keys = append(keys, placementKeys(scope, room.ID, course, slot.DayOfWeek)...)
	}

	release := s.locks.Acquire(keys...)

	created := make([]models.TimetableSlot, 0, len(source))
	for i, slot := range source {
		item := items[i]
		if err := s.checkPlacement(ctx, tx, scope, item.course, item.room.ID, slot.DayOfWeek, item.interval, ""); err != nil {
			return nil, release, err
		}
		copied := models.TimetableSlot{
			TimetableID: target.ID,
			CourseID:    slot.CourseID,
			RoomID:      slot.RoomID,
			DayOfWeek:   slot.DayOfWeek,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			Notes:       slot.Notes,
		}
		if err := s.slots.Insert(ctx, tx, &copied); err != nil {
			return nil, release, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist cloned slot")
		}
		created = append(created, copied)
	}
	return created, release, nil
}

func (s *SlotService) loadRefs(ctx context.Context, timetableID, courseID, roomID string) (*models.Timetable, *models.Course, *models.Room, error) {
	timetable, err := s.timetables.FindByID(ctx, timetableID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	course, room, err := s.loadPlacementRefs(ctx, courseID, roomID)
	if err != nil {
		return nil, nil, nil, err
	}
	return timetable, course, room, nil
}

func (s *SlotService) loadPlacementRefs(ctx context.Context, courseID, roomID string) (*models.Course, *models.Room, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	return course, room, nil
}

// checkPlacement runs the room then teacher conflict checks against the
// query-backed index using the provided executor, so batched inserts in the
// same transaction are visible to later checks.
func (s *SlotService) checkPlacement(ctx context.Context, exec sqlx.ExtContext, scope models.Scope, course *models.Course, roomID string, day int, interval conflict.Interval, excludeSlotID string) error {
	hits, err := s.slots.FindOverlapping(ctx, exec, models.OverlapQuery{
		Scope:         scope,
		Kind:          models.ResourceRoom,
		ResourceID:    roomID,
		DayOfWeek:     day,
		StartTime:     conflict.FormatClock(interval.Start),
		EndTime:       conflict.FormatClock(interval.End),
		ExcludeSlotID: excludeSlotID,
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check room conflicts")
	}
	if len(hits) > 0 {
		s.metrics.RecordConflict(models.ResourceRoom)
		detail := hits[0]
		return appErrors.Wrap(&models.SlotConflictError{
			Kind:     models.ResourceRoom,
			Message:  fmt.Sprintf("room %s is already booked at this time", detail.RoomName),
			Conflict: conflictFromDetail(models.ResourceRoom, detail, scope),
		}, appErrors.ErrRoomConflict.Code, appErrors.ErrRoomConflict.Status, fmt.Sprintf("room %s is already booked at this time", detail.RoomName))
	}

	if course.TeacherID == nil {
		return nil
	}
	hits, err = s.slots.FindOverlapping(ctx, exec, models.OverlapQuery{
		Scope:         scope,
		Kind:          models.ResourceTeacher,
		ResourceID:    *course.TeacherID,
		DayOfWeek:     day,
		StartTime:     conflict.FormatClock(interval.Start),
		EndTime:       conflict.FormatClock(interval.End),
		ExcludeSlotID: excludeSlotID,
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher conflicts")
	}
	if len(hits) > 0 {
		s.metrics.RecordConflict(models.ResourceTeacher)
		detail := hits[0]
		name := "teacher"
		if detail.TeacherName != nil {
			name = *detail.TeacherName
		}
		return appErrors.Wrap(&models.SlotConflictError{
			Kind:     models.ResourceTeacher,
			Message:  fmt.Sprintf("%s is already scheduled at this time", name),
			Conflict: conflictFromDetail(models.ResourceTeacher, detail, scope),
		}, appErrors.ErrTeacherConflict.Code, appErrors.ErrTeacherConflict.Status, fmt.Sprintf("%s is already scheduled at this time", name))
	}
	return nil
}

func (s *SlotService) invalidateStats(ctx context.Context, timetableID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, statsCacheKey(timetableID)); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.String("timetable_id", timetableID), zap.Error(err))
	}
}

// validatePlacement applies the day, time-range and availability rules in
// spec order after the existence checks have passed.
func validatePlacement(room *models.Room, day int, startTime, endTime string) (conflict.Interval, error) {
	if day < 0 || day > 6 {
		return conflict.Interval{}, appErrors.Clone(appErrors.ErrInvalidDay, "")
	}
	interval, err := parseInterval(startTime, endTime)
	if err != nil {
		return conflict.Interval{}, err
	}
	if !room.IsAvailable {
		return conflict.Interval{}, appErrors.Clone(appErrors.ErrRoomUnavailable, fmt.Sprintf("room %s is not available", room.Name))
	}
	return interval, nil
}

func parseInterval(startTime, endTime string) (conflict.Interval, error) {
	interval, err := conflict.ParseInterval(startTime, endTime)
	if err != nil {
		return conflict.Interval{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time format, use HH:MM")
	}
	if !interval.Valid() {
		return conflict.Interval{}, appErrors.Clone(appErrors.ErrInvalidTimeRange, "")
	}
	return interval, nil
}

func placementKeys(scope models.Scope, roomID string, course *models.Course, day int) []conflict.Key {
	keys := []conflict.Key{{Scope: scope, Kind: models.ResourceRoom, ResourceID: roomID, Day: day}}
	if course.TeacherID != nil {
		keys = append(keys, conflict.Key{Scope: scope, Kind: models.ResourceTeacher, ResourceID: *course.TeacherID, Day: day})
	}
	return keys
}

func conflictFromDetail(kind models.ResourceKind, detail models.SlotDetail, scope models.Scope) models.Conflict {
	resource := detail.RoomName
	if kind == models.ResourceTeacher && detail.TeacherName != nil {
		resource = *detail.TeacherName
	}
	return models.Conflict{
		Kind:          kind,
		SlotID:        detail.ID,
		ResourceName:  resource,
		CourseName:    detail.CourseName,
		TimetableName: detail.TimetableName,
		Scope:         scope,
		DayOfWeek:     detail.DayOfWeek,
		StartTime:     detail.StartTime,
		EndTime:       detail.EndTime,
	}
}

func bulkItemError(index int, err error) models.BulkItemError {
	appErr := appErrors.FromError(err)
	return models.BulkItemError{Index: index, Code: appErr.Code, Message: appErr.Message}
}
