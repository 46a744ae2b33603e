package service

import (
	"context"
	"database/sql"
	"errors"
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

type timetableReaderStub struct {
	timetables map[string]*models.Timetable
}

func (s *timetableReaderStub) FindByID(_ context.Context, id string) (*models.Timetable, error) {
	if timetable, ok := s.timetables[id]; ok {
		copied := *timetable
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

type courseReaderStub struct {
	courses map[string]*models.Course
}

func (s *courseReaderStub) FindByID(_ context.Context, id string) (*models.Course, error) {
	if course, ok := s.courses[id]; ok {
		copied := *course
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

type roomReaderStub struct {
	rooms map[string]*models.Room
}

func (s *roomReaderStub) FindByID(_ context.Context, id string) (*models.Room, error) {
	if room, ok := s.rooms[id]; ok {
		copied := *room
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

// slotRepoStub keeps slots in memory and answers overlap queries with a
// naive scan, resolving scope through the timetable and teachers through the
// course, mirroring the SQL joins.
type slotRepoStub struct {
	slots      []models.TimetableSlot
	timetables map[string]*models.Timetable
	courses    map[string]*models.Course
	nextID     int
	insertErr  error
}

func (s *slotRepoStub) FindByID(_ context.Context, id string) (*models.TimetableSlot, error) {
	for _, slot := range s.slots {
		if slot.ID == id {
			copied := slot
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *slotRepoStub) List(_ context.Context, filter models.SlotFilter) ([]models.TimetableSlot, int, error) {
	var out []models.TimetableSlot
	for _, slot := range s.slots {
		if filter.TimetableID != "" && slot.TimetableID != filter.TimetableID {
			continue
		}
		out = append(out, slot)
	}
	return out, len(out), nil
}

func (s *slotRepoStub) ListByTimetable(_ context.Context, timetableID string) ([]models.TimetableSlot, error) {
	var out []models.TimetableSlot
	for _, slot := range s.slots {
		if slot.TimetableID == timetableID {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (s *slotRepoStub) FindOverlapping(_ context.Context, _ sqlx.ExtContext, q models.OverlapQuery) ([]models.SlotDetail, error) {
	var hits []models.SlotDetail
	for _, slot := range s.slots {
		timetable, ok := s.timetables[slot.TimetableID]
		if !ok || timetable.AcademicYear != q.Scope.AcademicYear || timetable.Semester != q.Scope.Semester {
			continue
		}
		if slot.DayOfWeek != q.DayOfWeek {
			continue
		}
		if !(slot.StartTime < q.EndTime && slot.EndTime > q.StartTime) {
			continue
		}
		resourceID := slot.RoomID
		if q.Kind == models.ResourceTeacher {
			course, ok := s.courses[slot.CourseID]
			if !ok || course.TeacherID == nil {
				continue
			}
			resourceID = *course.TeacherID
		}
		if resourceID != q.ResourceID {
			continue
		}
		if q.ExcludeSlotID != "" && slot.ID == q.ExcludeSlotID {
			continue
		}
		detail := models.SlotDetail{TimetableSlot: slot, RoomName: slot.RoomID, TimetableName: timetable.Name}
		if course, ok := s.courses[slot.CourseID]; ok {
			detail.CourseCode = course.Code
			detail.CourseName = course.Name
			if course.TeacherID != nil {
				detail.TeacherName = course.TeacherID
			}
		}
		hits = append(hits, detail)
	}
	return hits, nil
}

func (s *slotRepoStub) Insert(_ context.Context, _ sqlx.ExtContext, slot *models.TimetableSlot) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	if slot.ID == "" {
		s.nextID++
		slot.ID = fmt.Sprintf("slot-%d", s.nextID)
	}
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = slot.CreatedAt
	s.slots = append(s.slots, *slot)
	return nil
}

func (s *slotRepoStub) Update(_ context.Context, _ sqlx.ExtContext, slot *models.TimetableSlot) error {
	for i, existing := range s.slots {
		if existing.ID == slot.ID {
			s.slots[i] = *slot
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *slotRepoStub) Delete(_ context.Context, _ sqlx.ExtContext, id string) error {
	for i, existing := range s.slots {
		if existing.ID == id {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type txProviderMock struct {
	db *sqlx.DB
}

func (t *txProviderMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return t.db.BeginTxx(ctx, opts)
}

func newTxProviderMock(t *testing.T) (*txProviderMock, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return &txProviderMock{db: sqlxdb}, mock
}

type slotServiceFixture struct {
	svc   *SlotService
	slots *slotRepoStub
	mock  sqlmock.Sqlmock
}

func newSlotServiceFixture(t *testing.T) *slotServiceFixture {
	teacher1 := "teacher-1"
	timetables := map[string]*models.Timetable{
		"tt-1":       {ID: "tt-1", Name: "Main Draft", DepartmentID: "dept-1", AcademicYear: "2025/2026", Semester: "1", Status: models.TimetableStatusDraft},
		"tt-2":       {ID: "tt-2", Name: "Peer Published", DepartmentID: "dept-1", AcademicYear: "2025/2026", Semester: "1", Status: models.TimetableStatusPublished},
		"tt-other":   {ID: "tt-other", Name: "Last Year", DepartmentID: "dept-1", AcademicYear: "2024/2025", Semester: "1", Status: models.TimetableStatusArchived},
		"tt-sibling": {ID: "tt-sibling", Name: "Semester Two", DepartmentID: "dept-1", AcademicYear: "2025/2026", Semester: "2", Status: models.TimetableStatusDraft},
	}
	courses := map[string]*models.Course{
		"math":    {ID: "math", Code: "MATH101", Name: "Mathematics", DepartmentID: "dept-1", TeacherID: &teacher1},
		"physics": {ID: "physics", Code: "PHYS101", Name: "Physics", DepartmentID: "dept-1", TeacherID: &teacher1},
		"club":    {ID: "club", Code: "CLUB01", Name: "Chess Club", DepartmentID: "dept-1"},
	}
	rooms := map[string]*models.Room{
		"room-1":      {ID: "room-1", Name: "Room A", IsAvailable: true},
		"room-2":      {ID: "room-2", Name: "Room B", IsAvailable: true},
		"room-closed": {ID: "room-closed", Name: "Storage", IsAvailable: false},
	}

	slots := &slotRepoStub{timetables: timetables, courses: courses}
	txp, mock := newTxProviderMock(t)

	svc := NewSlotService(
		slots,
		&timetableReaderStub{timetables: timetables},
		&courseReaderStub{courses: courses},
		&roomReaderStub{rooms: rooms},
		txp,
		nil,
		nil,
		nil,
		zap.NewNop(),
	)
	return &slotServiceFixture{svc: svc, slots: slots, mock: mock}
}

func (f *slotServiceFixture) seed(t *testing.T, timetableID, courseID, roomID string, day int, start, end string) models.TimetableSlot {
	slot := models.TimetableSlot{TimetableID: timetableID, CourseID: courseID, RoomID: roomID, DayOfWeek: day, StartTime: start, EndTime: end}
	require.NoError(t, f.slots.Insert(context.Background(), nil, &slot))
	return slot
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, code, appErr.Code)
}

func TestSlotServiceCreateSuccess(t *testing.T) {
	f := newSlotServiceFixture(t)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	slot, err := f.svc.Create(context.Background(), dto.CreateSlotRequest{
		TimetableID: "tt-1", CourseID: "math", RoomID: "room-1",
		DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, slot.ID)
	assert.Equal(t, "08:00", slot.StartTime)
	assert.Equal(t, "09:00", slot.EndTime)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSlotServiceCreateRoomConflict(t *testing.T) {
	f := newSlotServiceFixture(t)
	f.seed(t, "tt-2", "club", "room-1", 0, "08:30", "10:00")

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.svc.Create(context.Background(), dto.CreateSlotRequest{
		TimetableID: "tt-1", CourseID: "math", RoomID: "room-1",
		DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00",
	})
	assertErrorCode(t, err, appErrors.ErrRoomConflict.Code)

	var conflictErr *models.SlotConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, models.ResourceRoom, conflictErr.Kind)
	assert.Equal(t, "Peer Published", conflictErr.Conflict.TimetableName)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSlotServiceCreateTeacherConflictAcrossRooms(t *testing.T) {
	f := newSlotServiceFixture(t)
	// Same teacher, different course, different room, same scope.
	f.seed(t, "tt-2", "math", "room-2", 1, "10:00", "11:00")

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.svc.Create(context.Background(), dto.CreateSlotRequest{
		TimetableID: "tt-1", CourseID: "physics", RoomID: "room-1",
		DayOfWeek: 1, StartTime: "10:30", EndTime: "11:30",
	})
	assertErrorCode(t, err, appErrors.ErrTeacherConflict.Code)

	var conflictErr *models.SlotConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, models.ResourceTeacher, conflictErr.Kind)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSlotServiceCreateBackToBack(t *testing.T) {
	f := newSlotServiceFixture(t)
	f.seed(t, "tt-1", "math", "room-1", 0, "08:00", "09:00")

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	_, err := f.svc.Create(context.Background(), dto.CreateSlotRequest{
		TimetableID: "tt-1", CourseID: "math", RoomID: "room-1",
		DayOfWeek: 0, StartTime: "09:00", EndTime: "10:00",
	})
	require.NoError(t, err, "adjacent slots share a boundary without conflicting")
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSlotServiceCreateScopeIsolation(t *testing.T) {
	f := newSlotServiceFixture(t)
	// Identical booking, different academic year.
	f.seed(t, "tt-other", "math", "room-1", 0, "08:00", "09:00")

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	_, err := f.svc.Create(context.Background(), dto.CreateSlotRequest{
		TimetableID: "tt-1", CourseID: "math", RoomID: "room-1",
		DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00",
	})
	require.NoError(t, err)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSlotServiceCreateValidationFailures(t *testing.T) {
	f := newSlotServiceFixture(t)

	cases := []struct {
		name string
		req  dto.CreateSlotRequest
		code string
	}{
		{
			"unknown timetable",
			dto.CreateSlotRequest{TimetableID: "nope", CourseID: "math", RoomID: "room-1", DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00"},
			appErrors.ErrNotFound.Code,
		},
		{
			"unknown course",
			dto.CreateSlotRequest{TimetableID: "tt-1", CourseID: "nope", RoomID: "room-1", DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00"},
			appErrors.ErrNotFound.Code,
		},
		{
			"unknown room",
			dto.CreateSlotRequest{TimetableID: "tt-1", CourseID: "math", RoomID: "nope", DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00"},
			appErrors.ErrNotFound.Code,
		},
		{
			"day out of range",
			dto.CreateSlotRequest{TimetableID: "tt-1", CourseID: "math", RoomID: "room-1", DayOfWeek: 7, StartTime: "08:00", EndTime: "09:00"},
			appErrors.ErrInvalidDay.Code,
		},
		{
			"negative day",
			dto.CreateSlotRequest{TimetableID: "tt-1", CourseID: "math", RoomID: "room-1", DayOfWeek: -1, StartTime: "08:00", EndTime: "09:00"},
			appErrors.ErrInvalidDay.Code,
		},
		{
			"inverted range",
			dto.CreateSlotRequest{TimetableID: "tt-1", CourseID: "math", RoomID: "room-1", DayOfWeek: 0, StartTime: "10:00", EndTime: "09:00"},
			appErrors.ErrInvalidTimeRange.Code,
		},
		{
			"zero length",
			dto.CreateSlotRequest{TimetableID: "tt-1", CourseID: "math", RoomID: "room-1", DayOfWeek: 0, StartTime: "09:00", EndTime: "09:00"},
			appErrors.ErrInvalidTimeRange.Code,
		},
		{
			"bad time format",
			dto.CreateSlotRequest{TimetableID: "tt-1", CourseID: "math", RoomID: "room-1", DayOfWeek: 0, StartTime: "9am", EndTime: "10:00"},
			appErrors.ErrValidation.Code,
		},
		{
			"unavailable room",
			dto.CreateSlotRequest{TimetableID: "tt-1", CourseID: "math", RoomID: "room-closed", DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00"},
			appErrors.ErrRoomUnavailable.Code,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tc.req)
			assertErrorCode(t, err, tc.code)
		})
	}
	assert.Empty(t, f.slots.slots, "rejected proposals must not be stored")
	assert.NoError(t, f.mock.ExpectationsWereMet(), "rejections happen before any transaction")
}

func TestSlotServiceCreateRejectionIsRepeatable(t *testing.T) {
	f := newSlotServiceFixture(t)
	f.seed(t, "tt-2", "club", "room-1", 0, "08:00", "09:00")

	req := dto.CreateSlotRequest{
		TimetableID: "tt-1", CourseID: "math", RoomID: "room-1",
		DayOfWeek: 0, StartTime: "08:30", EndTime: "09:30",
	}
	for i := 0; i < 2; i++ {
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()
		_, err := f.svc.Create(context.Background(), req)
		assertErrorCode(t, err, appErrors.ErrRoomConflict.Code)
	}
	assert.Len(t, f.slots.slots, 1, "rejection must not change state")
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSlotServiceUpdateNotesKeepsPlacement(t *testing.T) {
	f := newSlotServiceFixture(t)
	seeded := f.seed(t, "tt-1", "math", "room-1", 0, "08:00", "09:00")

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	notes := "bring projector"
	updated, err := f.svc.Update(context.Background(), seeded.ID, dto.UpdateSlotRequest{Notes: &notes})
	require.NoError(t, err, "a slot must not conflict with itself")
	assert.Equal(t, "08:00", updated.StartTime)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSlotServiceUpdateMoveOntoBookedRange(t *testing.T) {
	f := newSlotServiceFixture(t)
	f.seed(t, "tt-1", "club", "room-1", 0, "10:00", "11:00")
	seeded := f.seed(t, "tt-1", "math", "room-1", 0, "08:00", "09:00")

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	start, end := "10:30", "11:30"
	_, err := f.svc.Update(context.Background(), seeded.ID, dto.UpdateSlotRequest{StartTime: &start, EndTime: &end})
	assertErrorCode(t, err, appErrors.ErrRoomConflict.Code)

	stored, findErr := f.slots.FindByID(context.Background(), seeded.ID)
	require.NoError(t, findErr)
	assert.Equal(t, "08:00", stored.StartTime, "failed update leaves the slot unchanged")
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSlotServiceUpdateMoveRoomFreesOldBooking(t *testing.T) {
	f := newSlotServiceFixture(t)
	seeded := f.seed(t, "tt-1", "math", "room-1", 0, "08:00", "09:00")

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	newRoom := "room-2"
	moved, err := f.svc.Update(context.Background(), seeded.ID, dto.UpdateSlotRequest{RoomID: &newRoom})
	require.NoError(t, err)
	assert.Equal(t, "room-2", moved.RoomID)

	// The vacated room accepts a new booking on the old range right away.
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	_, err = f.svc.Create(context.Background(), dto.CreateSlotRequest{
		TimetableID: "tt-1", CourseID: "club", RoomID: "room-1",
		DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00",
	})
	require.NoError(t, err)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSlotServiceBulkCreateSuccess(t *testing.T) {
	f := newSlotServiceFixture(t)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	result, err := f.svc.BulkCreate(context.Background(), dto.BulkCreateSlotsRequest{
		TimetableID: "tt-1",
		Slots: []dto.SlotProposal{
			{CourseID: "math", RoomID: "room-1", DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00"},
			{CourseID: "math", RoomID: "room-1", DayOfWeek: 0, StartTime: "09:00", EndTime: "10:00"},
			{CourseID: "club", RoomID: "room-2", DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, result.Created, 3)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSlotServiceBulkCreateIntraBatchConflict(t *testing.T) {
	f := newSlotServiceFixture(t)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.svc.BulkCreate(context.Background(), dto.BulkCreateSlotsRequest{
		TimetableID: "tt-1",
		Slots: []dto.SlotProposal{
			{CourseID: "math", RoomID: "room-1", DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00"},
			{CourseID: "club", RoomID: "room-1", DayOfWeek: 0, StartTime: "08:30", EndTime: "09:30"},
		},
	})
	assertErrorCode(t, err, appErrors.ErrBulkRejected.Code)

	var rejection *models.BulkRejectionError
	require.True(t, errors.As(err, &rejection))
	require.Len(t, rejection.Items, 1)
	assert.Equal(t, 1, rejection.Items[0].Index, "earlier proposals win within a batch")
	assert.Equal(t, appErrors.ErrRoomConflict.Code, rejection.Items[0].Code)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSlotServiceBulkCreateCollectsEveryItemError(t *testing.T) {
	f := newSlotServiceFixture(t)
	f.seed(t, "tt-2", "club", "room-2", 2, "08:00", "09:00")

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.svc.BulkCreate(context.Background(), dto.BulkCreateSlotsRequest{
		TimetableID: "tt-1",
		Slots: []dto.SlotProposal{
			{CourseID: "math", RoomID: "room-1", DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00"}, // fine
			{CourseID: "missing", RoomID: "room-1", DayOfWeek: 0, StartTime: "10:00", EndTime: "11:00"},
			{CourseID: "math", RoomID: "room-1", DayOfWeek: 9, StartTime: "08:00", EndTime: "09:00"},
			{CourseID: "physics", RoomID: "room-2", DayOfWeek: 2, StartTime: "08:30", EndTime: "09:30"}, // room busy in peer timetable
		},
	})
	assertErrorCode(t, err, appErrors.ErrBulkRejected.Code)

	var rejection *models.BulkRejectionError
	require.True(t, errors.As(err, &rejection))
	require.Len(t, rejection.Items, 3)
	assert.Equal(t, 1, rejection.Items[0].Index)
	assert.Equal(t, appErrors.ErrNotFound.Code, rejection.Items[0].Code)
	assert.Equal(t, 2, rejection.Items[1].Index)
	assert.Equal(t, appErrors.ErrInvalidDay.Code, rejection.Items[1].Code)
	assert.Equal(t, 3, rejection.Items[2].Index)
	assert.Equal(t, appErrors.ErrRoomConflict.Code, rejection.Items[2].Code)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSlotServiceCheckConflictsReturnsAllMatches(t *testing.T) {
	f := newSlotServiceFixture(t)
	f.seed(t, "tt-1", "club", "room-1", 0, "08:00", "09:00")
	f.seed(t, "tt-2", "club", "room-1", 0, "09:30", "10:30")
	f.seed(t, "tt-2", "math", "room-2", 0, "08:30", "09:30") // teacher-1 busy

	roomID := "room-1"
	result, err := f.svc.CheckConflicts(context.Background(), dto.CheckConflictsRequest{
		CourseID: "physics", RoomID: &roomID,
		DayOfWeek: 0, StartTime: "08:00", EndTime: "11:00",
		AcademicYear: "2025/2026", Semester: "1",
	})
	require.NoError(t, err)
	assert.True(t, result.HasAny)
	require.Len(t, result.Conflicts, 3)

	kinds := map[models.ResourceKind]int{}
	for _, c := range result.Conflicts {
		kinds[c.Kind]++
	}
	assert.Equal(t, 2, kinds[models.ResourceRoom])
	assert.Equal(t, 1, kinds[models.ResourceTeacher])
	assert.Len(t, f.slots.slots, 3, "check is read-only")
}

func TestSlotServiceCheckConflictsWithoutRoom(t *testing.T) {
	f := newSlotServiceFixture(t)
	f.seed(t, "tt-2", "club", "room-1", 0, "08:00", "09:00")
	f.seed(t, "tt-2", "math", "room-2", 0, "08:00", "09:00")

	result, err := f.svc.CheckConflicts(context.Background(), dto.CheckConflictsRequest{
		CourseID:  "physics",
		DayOfWeek: 0, StartTime: "08:30", EndTime: "09:30",
		AcademicYear: "2025/2026", Semester: "1",
	})
	require.NoError(t, err)
	require.Len(t, result.Conflicts, 1, "without a room only the teacher check runs")
	assert.Equal(t, models.ResourceTeacher, result.Conflicts[0].Kind)
}

func TestSlotServiceCheckConflictsCleanSlate(t *testing.T) {
	f := newSlotServiceFixture(t)

	roomID := "room-1"
	result, err := f.svc.CheckConflicts(context.Background(), dto.CheckConflictsRequest{
		CourseID: "club", RoomID: &roomID,
		DayOfWeek: 4, StartTime: "08:00", EndTime: "09:00",
		AcademicYear: "2025/2026", Semester: "1",
	})
	require.NoError(t, err)
	assert.False(t, result.HasAny)
	assert.Empty(t, result.Conflicts)
}

func TestSlotServiceDeleteNotFound(t *testing.T) {
	f := newSlotServiceFixture(t)
	err := f.svc.Delete(context.Background(), "missing")
	assertErrorCode(t, err, appErrors.ErrNotFound.Code)
}

func TestSlotServiceDelete(t *testing.T) {
	f := newSlotServiceFixture(t)
	seeded := f.seed(t, "tt-1", "math", "room-1", 0, "08:00", "09:00")

	require.NoError(t, f.svc.Delete(context.Background(), seeded.ID))
	assert.Empty(t, f.slots.slots)
}
