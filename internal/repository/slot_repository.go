package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushub/timetable-api/internal/models"
)

const slotColumns = "id, timetable_id, course_id, room_id, day_of_week, start_time, end_time, notes, created_at, updated_at"

// SlotRepository provides persistence for timetable slots, including the
// query-backed side of the conflict index.
type SlotRepository struct {
	db *sqlx.DB
}

// NewSlotRepository creates a new slot repository.
func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// FindByID loads a slot by id.
func (r *SlotRepository) FindByID(ctx context.Context, id string) (*models.TimetableSlot, error) {
	query := fmt.Sprintf("SELECT %s FROM timetable_slots WHERE id = $1", slotColumns)
	var slot models.TimetableSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// List returns slots with optional filtering and pagination, ordered by
// day and start time.
func (r *SlotRepository) List(ctx context.Context, filter models.SlotFilter) ([]models.TimetableSlot, int, error) {
	base := "FROM timetable_slots WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.TimetableID != "" {
		conditions = append(conditions, fmt.Sprintf("timetable_id = $%d", len(args)+1))
		args = append(args, filter.TimetableID)
	}
	if filter.CourseID != "" {
		conditions = append(conditions, fmt.Sprintf("course_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.RoomID != "" {
		conditions = append(conditions, fmt.Sprintf("room_id = $%d", len(args)+1))
		args = append(args, filter.RoomID)
	}
	if filter.DayOfWeek != nil {
		conditions = append(conditions, fmt.Sprintf("day_of_week = $%d", len(args)+1))
		args = append(args, *filter.DayOfWeek)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY day_of_week ASC, start_time ASC LIMIT %d OFFSET %d", slotColumns, base, size, offset)
	var slots []models.TimetableSlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list slots: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count slots: %w", err)
	}

	return slots, total, nil
}

// ListByTimetable returns all slots of a timetable ordered by day/start.
func (r *SlotRepository) ListByTimetable(ctx context.Context, timetableID string) ([]models.TimetableSlot, error) {
	query := fmt.Sprintf("SELECT %s FROM timetable_slots WHERE timetable_id = $1 ORDER BY day_of_week ASC, start_time ASC", slotColumns)
	var slots []models.TimetableSlot
	if err := r.db.SelectContext(ctx, &slots, query, timetableID); err != nil {
		return nil, fmt.Errorf("list slots by timetable: %w", err)
	}
	return slots, nil
}

// ListDetailByTimetable returns a timetable's slots joined with course, room,
// teacher and timetable names for exports and statistics.
func (r *SlotRepository) ListDetailByTimetable(ctx context.Context, timetableID string) ([]models.SlotDetail, error) {
	const query = `
SELECT s.id, s.timetable_id, s.course_id, s.room_id, s.day_of_week, s.start_time, s.end_time, s.notes, s.created_at, s.updated_at,
       c.code AS course_code, c.name AS course_name, r.name AS room_name, te.name AS teacher_name, t.name AS timetable_name
FROM timetable_slots s
JOIN timetables t ON t.id = s.timetable_id
JOIN courses c ON c.id = s.course_id
JOIN rooms r ON r.id = s.room_id
LEFT JOIN teachers te ON te.id = c.teacher_id
WHERE s.timetable_id = $1
ORDER BY s.day_of_week ASC, s.start_time ASC`
	var details []models.SlotDetail
	if err := r.db.SelectContext(ctx, &details, query, timetableID); err != nil {
		return nil, fmt.Errorf("list slot details: %w", err)
	}
	return details, nil
}

// FindOverlapping is the query-backed conflict index lookup. It returns every
// committed slot whose interval intersects the queried range for the same
// resource, day and scope. The scope join goes through the owning timetable;
// the teacher kind resolves the resource through the slot's course.
func (r *SlotRepository) FindOverlapping(ctx context.Context, exec sqlx.ExtContext, q models.OverlapQuery) ([]models.SlotDetail, error) {
	resourceClause := "s.room_id = $6"
	if q.Kind == models.ResourceTeacher {
		resourceClause = "c.teacher_id = $6"
	}

	query := fmt.Sprintf(`
SELECT s.id, s.timetable_id, s.course_id, s.room_id, s.day_of_week, s.start_time, s.end_time, s.notes, s.created_at, s.updated_at,
       c.code AS course_code, c.name AS course_name, r.name AS room_name, te.name AS teacher_name, t.name AS timetable_name
FROM timetable_slots s
JOIN timetables t ON t.id = s.timetable_id
JOIN courses c ON c.id = s.course_id
JOIN rooms r ON r.id = s.room_id
LEFT JOIN teachers te ON te.id = c.teacher_id
WHERE t.academic_year = $1 AND t.semester = $2
  AND s.day_of_week = $3
  AND s.start_time < $4 AND s.end_time > $5
  AND %s
  AND ($7 = '' OR s.id <> $7)
ORDER BY s.start_time ASC`, resourceClause)

	rows, err := r.exec(exec).QueryxContext(ctx, query,
		q.Scope.AcademicYear, q.Scope.Semester, q.DayOfWeek, q.EndTime, q.StartTime, q.ResourceID, q.ExcludeSlotID)
	if err != nil {
		return nil, fmt.Errorf("find overlapping slots: %w", err)
	}
	defer rows.Close()

	var hits []models.SlotDetail
	for rows.Next() {
		var detail models.SlotDetail
		if err := rows.StructScan(&detail); err != nil {
			return nil, fmt.Errorf("scan overlapping slot: %w", err)
		}
		hits = append(hits, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate overlapping slots: %w", err)
	}
	return hits, nil
}

// Insert stores a new slot record.
func (r *SlotRepository) Insert(ctx context.Context, exec sqlx.ExtContext, slot *models.TimetableSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = now
	}
	slot.UpdatedAt = now

	const query = `INSERT INTO timetable_slots (id, timetable_id, course_id, room_id, day_of_week, start_time, end_time, notes, created_at, updated_at)
VALUES (:id, :timetable_id, :course_id, :room_id, :day_of_week, :start_time, :end_time, :notes, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, slot); err != nil {
		return fmt.Errorf("insert slot: %w", err)
	}
	return nil
}

// Update modifies a slot record.
func (r *SlotRepository) Update(ctx context.Context, exec sqlx.ExtContext, slot *models.TimetableSlot) error {
	slot.UpdatedAt = time.Now().UTC()
	const query = `UPDATE timetable_slots SET course_id = :course_id, room_id = :room_id, day_of_week = :day_of_week,
start_time = :start_time, end_time = :end_time, notes = :notes, updated_at = :updated_at WHERE id = :id`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, slot); err != nil {
		return fmt.Errorf("update slot: %w", err)
	}
	return nil
}

// Delete removes a slot by id. Returns sql.ErrNoRows when nothing matched.
func (r *SlotRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id string) error {
	result, err := r.exec(exec).ExecContext(ctx, `DELETE FROM timetable_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete slot rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByTimetable removes every slot of a timetable and reports the count.
func (r *SlotRepository) DeleteByTimetable(ctx context.Context, exec sqlx.ExtContext, timetableID string) (int64, error) {
	result, err := r.exec(exec).ExecContext(ctx, `DELETE FROM timetable_slots WHERE timetable_id = $1`, timetableID)
	if err != nil {
		return 0, fmt.Errorf("delete slots by timetable: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete slots rows affected: %w", err)
	}
	return affected, nil
}
