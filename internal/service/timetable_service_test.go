package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushub/timetable-api/internal/dto"
	"github.com/campushub/timetable-api/internal/models"
	appErrors "github.com/campushub/timetable-api/pkg/errors"
)

type timetableRepoStub struct {
	timetables map[string]*models.Timetable
	nextID     int
}

func (s *timetableRepoStub) FindByID(_ context.Context, id string) (*models.Timetable, error) {
	if timetable, ok := s.timetables[id]; ok {
		copied := *timetable
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (s *timetableRepoStub) List(_ context.Context, filter models.TimetableFilter) ([]models.Timetable, int, error) {
	var out []models.Timetable
	for _, timetable := range s.timetables {
		if filter.Status != "" && timetable.Status != filter.Status {
			continue
		}
		out = append(out, *timetable)
	}
	return out, len(out), nil
}

func (s *timetableRepoStub) Insert(_ context.Context, _ sqlx.ExtContext, timetable *models.Timetable) error {
	if timetable.ID == "" {
		s.nextID++
		timetable.ID = fmt.Sprintf("tt-%d", s.nextID)
	}
	if timetable.Status == "" {
		timetable.Status = models.TimetableStatusDraft
	}
	copied := *timetable
	s.timetables[timetable.ID] = &copied
	return nil
}

func (s *timetableRepoStub) Update(_ context.Context, _ sqlx.ExtContext, timetable *models.Timetable) error {
	if _, ok := s.timetables[timetable.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *timetable
	s.timetables[timetable.ID] = &copied
	return nil
}

func (s *timetableRepoStub) UpdateStatus(_ context.Context, _ sqlx.ExtContext, id string, status models.TimetableStatus) error {
	timetable, ok := s.timetables[id]
	if !ok {
		return sql.ErrNoRows
	}
	timetable.Status = status
	return nil
}

func (s *timetableRepoStub) Delete(_ context.Context, _ sqlx.ExtContext, id string) error {
	if _, ok := s.timetables[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.timetables, id)
	return nil
}

type timetableSlotStoreStub struct {
	slots   map[string][]models.TimetableSlot
	details map[string][]models.SlotDetail
}

func (s *timetableSlotStoreStub) ListByTimetable(_ context.Context, timetableID string) ([]models.TimetableSlot, error) {
	return s.slots[timetableID], nil
}

func (s *timetableSlotStoreStub) ListDetailByTimetable(_ context.Context, timetableID string) ([]models.SlotDetail, error) {
	return s.details[timetableID], nil
}

func (s *timetableSlotStoreStub) DeleteByTimetable(_ context.Context, _ sqlx.ExtContext, timetableID string) (int64, error) {
	count := int64(len(s.slots[timetableID]))
	delete(s.slots, timetableID)
	return count, nil
}

type departmentReaderStub struct {
	departments map[string]*models.Department
}

func (s *departmentReaderStub) FindByID(_ context.Context, id string) (*models.Department, error) {
	if department, ok := s.departments[id]; ok {
		return department, nil
	}
	return nil, sql.ErrNoRows
}

type replayerStub struct {
	err      error
	replayed []models.TimetableSlot
}

func (s *replayerStub) ReplaySlots(_ context.Context, _ *sqlx.Tx, target *models.Timetable, source []models.TimetableSlot) ([]models.TimetableSlot, func(), error) {
	if s.err != nil {
		return nil, func() {}, s.err
	}
	created := make([]models.TimetableSlot, 0, len(source))
	for i, slot := range source {
		copied := slot
		copied.ID = fmt.Sprintf("clone-%d", i)
		copied.TimetableID = target.ID
		created = append(created, copied)
	}
	s.replayed = created
	return created, func() {}, nil
}

type timetableServiceFixture struct {
	svc        *TimetableService
	timetables *timetableRepoStub
	slots      *timetableSlotStoreStub
	replayer   *replayerStub
	mock       sqlmock.Sqlmock
}

func newTimetableServiceFixture(t *testing.T) *timetableServiceFixture {
	weekStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	timetables := &timetableRepoStub{
		timetables: map[string]*models.Timetable{
			"tt-1": {ID: "tt-1", Name: "Main Draft", DepartmentID: "dept-1", WeekStart: weekStart, AcademicYear: "2025/2026", Semester: "1", Status: models.TimetableStatusDraft},
			"tt-2": {ID: "tt-2", Name: "Published Week", DepartmentID: "dept-1", WeekStart: weekStart, AcademicYear: "2025/2026", Semester: "1", Status: models.TimetableStatusPublished},
		},
		nextID: 10,
	}
	slots := &timetableSlotStoreStub{
		slots:   map[string][]models.TimetableSlot{},
		details: map[string][]models.SlotDetail{},
	}
	departments := &departmentReaderStub{
		departments: map[string]*models.Department{
			"dept-1": {ID: "dept-1", Name: "Science", Code: "SCI"},
		},
	}
	replayer := &replayerStub{}
	txp, mock := newTxProviderMock(t)

	svc := NewTimetableService(timetables, slots, departments, replayer, txp, nil, time.Minute, nil, zap.NewNop())
	return &timetableServiceFixture{svc: svc, timetables: timetables, slots: slots, replayer: replayer, mock: mock}
}

func TestTimetableServiceCreate(t *testing.T) {
	f := newTimetableServiceFixture(t)

	weekEnd := "2025-09-05"
	timetable, err := f.svc.Create(context.Background(), dto.CreateTimetableRequest{
		Name:         "New Week",
		DepartmentID: "dept-1",
		WeekStart:    "2025-09-01",
		WeekEnd:      &weekEnd,
		AcademicYear: "2025/2026",
		Semester:     "1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, timetable.ID)
	assert.Equal(t, models.TimetableStatusDraft, timetable.Status)
	require.NotNil(t, timetable.WeekEnd)
	assert.Equal(t, "2025-09-05", timetable.WeekEnd.Format("2006-01-02"))
}

func TestTimetableServiceCreateUnknownDepartment(t *testing.T) {
	f := newTimetableServiceFixture(t)

	_, err := f.svc.Create(context.Background(), dto.CreateTimetableRequest{
		Name:         "Orphan",
		DepartmentID: "nope",
		WeekStart:    "2025-09-01",
		AcademicYear: "2025/2026",
		Semester:     "1",
	})
	assertErrorCode(t, err, appErrors.ErrNotFound.Code)
}

func TestTimetableServiceCreateBadDate(t *testing.T) {
	f := newTimetableServiceFixture(t)

	_, err := f.svc.Create(context.Background(), dto.CreateTimetableRequest{
		Name:         "Bad Date",
		DepartmentID: "dept-1",
		WeekStart:    "01/09/2025",
		AcademicYear: "2025/2026",
		Semester:     "1",
	})
	assertErrorCode(t, err, appErrors.ErrValidation.Code)
}

func TestTimetableServiceCreateWeekEndNotAfterWeekStart(t *testing.T) {
	f := newTimetableServiceFixture(t)

	for _, weekEnd := range []string{"2025-08-01", "2025-09-01"} {
		end := weekEnd
		_, err := f.svc.Create(context.Background(), dto.CreateTimetableRequest{
			Name:         "Backwards Week",
			DepartmentID: "dept-1",
			WeekStart:    "2025-09-01",
			WeekEnd:      &end,
			AcademicYear: "2025/2026",
			Semester:     "1",
		})
		assertErrorCode(t, err, appErrors.ErrValidation.Code)
	}
}

func TestTimetableServiceUpdateWeekRangeChecksMergedDates(t *testing.T) {
	f := newTimetableServiceFixture(t)
	weekEnd := time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)
	f.timetables.timetables["tt-1"].WeekEnd = &weekEnd

	// Moving week_start past the stored week_end must fail even though the
	// patch never mentions week_end.
	weekStart := "2025-09-10"
	_, err := f.svc.Update(context.Background(), "tt-1", dto.UpdateTimetableRequest{WeekStart: &weekStart})
	assertErrorCode(t, err, appErrors.ErrValidation.Code)

	badEnd := "2025-08-20"
	_, err = f.svc.Update(context.Background(), "tt-1", dto.UpdateTimetableRequest{WeekEnd: &badEnd})
	assertErrorCode(t, err, appErrors.ErrValidation.Code)

	// The stored timetable is untouched by the rejected patches.
	stored, err := f.svc.Get(context.Background(), "tt-1")
	require.NoError(t, err)
	assert.Equal(t, "2025-09-01", stored.WeekStart.Format("2006-01-02"))
	require.NotNil(t, stored.WeekEnd)
}

func TestTimetableServiceUpdateClearsWeekEnd(t *testing.T) {
	f := newTimetableServiceFixture(t)
	weekEnd := time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)
	f.timetables.timetables["tt-1"].WeekEnd = &weekEnd

	empty := ""
	updated, err := f.svc.Update(context.Background(), "tt-1", dto.UpdateTimetableRequest{WeekEnd: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.WeekEnd)

	// Clearing week_end also lifts the range constraint on week_start.
	weekStart := "2025-12-01"
	moved, err := f.svc.Update(context.Background(), "tt-1", dto.UpdateTimetableRequest{WeekStart: &weekStart})
	require.NoError(t, err)
	assert.Equal(t, "2025-12-01", moved.WeekStart.Format("2006-01-02"))
}

func TestTimetableServicePublish(t *testing.T) {
	f := newTimetableServiceFixture(t)

	timetable, err := f.svc.Publish(context.Background(), "tt-1")
	require.NoError(t, err)
	assert.Equal(t, models.TimetableStatusPublished, timetable.Status)
}

func TestTimetableServicePublishAlreadyPublished(t *testing.T) {
	f := newTimetableServiceFixture(t)

	_, err := f.svc.Publish(context.Background(), "tt-2")
	assertErrorCode(t, err, appErrors.ErrAlreadyPublished.Code)
}

func TestTimetableServiceArchiveThenRepublish(t *testing.T) {
	f := newTimetableServiceFixture(t)

	archived, err := f.svc.Archive(context.Background(), "tt-2")
	require.NoError(t, err)
	assert.Equal(t, models.TimetableStatusArchived, archived.Status)

	// An archived timetable may return to published.
	republished, err := f.svc.Publish(context.Background(), "tt-2")
	require.NoError(t, err)
	assert.Equal(t, models.TimetableStatusPublished, republished.Status)

	_, err = f.svc.Archive(context.Background(), "missing")
	assertErrorCode(t, err, appErrors.ErrNotFound.Code)
}

func TestTimetableServiceUpdateMovesScope(t *testing.T) {
	f := newTimetableServiceFixture(t)

	semester := "2"
	updated, err := f.svc.Update(context.Background(), "tt-1", dto.UpdateTimetableRequest{Semester: &semester})
	require.NoError(t, err)
	assert.Equal(t, models.Scope{AcademicYear: "2025/2026", Semester: "2"}, updated.Scope())
}

func TestTimetableServiceCloneSuccess(t *testing.T) {
	f := newTimetableServiceFixture(t)
	f.slots.slots["tt-1"] = []models.TimetableSlot{
		{ID: "slot-1", TimetableID: "tt-1", CourseID: "math", RoomID: "room-1", DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00"},
		{ID: "slot-2", TimetableID: "tt-1", CourseID: "club", RoomID: "room-2", DayOfWeek: 1, StartTime: "10:00", EndTime: "11:00"},
	}

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	semester := "2"
	target, created, err := f.svc.Clone(context.Background(), "tt-1", dto.CloneTimetableRequest{
		Name:     "Second Run",
		Semester: &semester,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TimetableStatusDraft, target.Status)
	assert.Equal(t, "2", target.Semester)
	require.Len(t, created, 2)
	for _, slot := range created {
		assert.Equal(t, target.ID, slot.TimetableID)
	}
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestTimetableServiceCloneConflictRollsBack(t *testing.T) {
	f := newTimetableServiceFixture(t)
	f.slots.slots["tt-1"] = []models.TimetableSlot{
		{ID: "slot-1", TimetableID: "tt-1", CourseID: "math", RoomID: "room-1", DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00"},
	}
	f.replayer.err = appErrors.Clone(appErrors.ErrRoomConflict, "")

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, _, err := f.svc.Clone(context.Background(), "tt-1", dto.CloneTimetableRequest{Name: "Doomed"})
	assertErrorCode(t, err, appErrors.ErrRoomConflict.Code)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestTimetableServiceCloneWeekEndOverrideValidated(t *testing.T) {
	f := newTimetableServiceFixture(t)
	f.slots.slots["tt-1"] = []models.TimetableSlot{
		{ID: "slot-1", TimetableID: "tt-1", CourseID: "math", RoomID: "room-1", DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00"},
	}

	// Rejected before any transaction starts; no Begin expected.
	badEnd := "2025-08-01"
	_, _, err := f.svc.Clone(context.Background(), "tt-1", dto.CloneTimetableRequest{
		Name:    "Backwards Clone",
		WeekEnd: &badEnd,
	})
	assertErrorCode(t, err, appErrors.ErrValidation.Code)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestTimetableServiceCloneUnknownSource(t *testing.T) {
	f := newTimetableServiceFixture(t)
	_, _, err := f.svc.Clone(context.Background(), "missing", dto.CloneTimetableRequest{Name: "Ghost"})
	assertErrorCode(t, err, appErrors.ErrNotFound.Code)
}

func TestTimetableServiceDeleteCascades(t *testing.T) {
	f := newTimetableServiceFixture(t)
	f.slots.slots["tt-1"] = []models.TimetableSlot{
		{ID: "slot-1", TimetableID: "tt-1"},
		{ID: "slot-2", TimetableID: "tt-1"},
		{ID: "slot-3", TimetableID: "tt-1"},
	}

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	result, err := f.svc.Delete(context.Background(), "tt-1")
	require.NoError(t, err)
	assert.Equal(t, "Main Draft", result.Name)
	assert.Equal(t, 3, result.SlotsDeleted)
	_, err = f.svc.Get(context.Background(), "tt-1")
	assertErrorCode(t, err, appErrors.ErrNotFound.Code)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestTimetableServiceStats(t *testing.T) {
	f := newTimetableServiceFixture(t)
	teacher := "Jane Poe"
	f.slots.details["tt-1"] = []models.SlotDetail{
		{
			TimetableSlot: models.TimetableSlot{ID: "slot-1", TimetableID: "tt-1", CourseID: "math", RoomID: "room-1", DayOfWeek: 0, StartTime: "08:00", EndTime: "09:30"},
			CourseName:    "Mathematics", RoomName: "Room A", TeacherName: &teacher,
		},
		{
			TimetableSlot: models.TimetableSlot{ID: "slot-2", TimetableID: "tt-1", CourseID: "math", RoomID: "room-2", DayOfWeek: 0, StartTime: "10:00", EndTime: "11:00"},
			CourseName:    "Mathematics", RoomName: "Room B", TeacherName: &teacher,
		},
		{
			TimetableSlot: models.TimetableSlot{ID: "slot-3", TimetableID: "tt-1", CourseID: "club", RoomID: "room-1", DayOfWeek: 2, StartTime: "14:00", EndTime: "15:00"},
			CourseName:    "Chess Club", RoomName: "Room A",
		},
	}

	stats, err := f.svc.Stats(context.Background(), "tt-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalSlots)
	assert.Equal(t, 2, stats.UniqueCourses)
	assert.Equal(t, 2, stats.UniqueRooms)
	assert.Equal(t, 1, stats.UniqueTeachers)
	assert.InDelta(t, 3.5, stats.TotalTeachingHours, 0.001)
	assert.Equal(t, 2, stats.SlotsPerDay["monday"])
	assert.Equal(t, 1, stats.SlotsPerDay["wednesday"])
	assert.Equal(t, 0, stats.SlotsPerDay["friday"])
}
