package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/timetable-api/internal/models"
)

const courseColumns = "id, code, name, department_id, teacher_id, weekly_sessions, academic_year, semester, created_at, updated_at"

// CourseRepository reads course records. Course lifecycle is owned by the
// surrounding CRUD surface; the engine only needs lookups.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindByID loads a course by id.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = $1", courseColumns)
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// ListByScope returns courses belonging to a department within a scope,
// ordered by code. Used by the seeding script.
func (r *CourseRepository) ListByScope(ctx context.Context, departmentID, academicYear, semester string) ([]models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE department_id = $1 AND academic_year = $2 AND semester = $3 ORDER BY code ASC", courseColumns)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, departmentID, academicYear, semester); err != nil {
		return nil, fmt.Errorf("list courses by scope: %w", err)
	}
	return courses, nil
}
