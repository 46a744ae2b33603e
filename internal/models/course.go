package models

import "time"

// Course is the scheduling subject. Its teacher, when assigned, is the
// resource checked for teacher conflicts.
type Course struct {
	ID             string    `db:"id" json:"id"`
	Code           string    `db:"code" json:"code"`
	Name           string    `db:"name" json:"name"`
	DepartmentID   string    `db:"department_id" json:"department_id"`
	TeacherID      *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	WeeklySessions int       `db:"weekly_sessions" json:"weekly_sessions"`
	AcademicYear   string    `db:"academic_year" json:"academic_year"`
	Semester       string    `db:"semester" json:"semester"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
