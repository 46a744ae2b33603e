package models

import "time"

// TimetableStatus represents lifecycle phases of a timetable.
type TimetableStatus string

const (
	TimetableStatusDraft     TimetableStatus = "draft"
	TimetableStatusPublished TimetableStatus = "published"
	TimetableStatusArchived  TimetableStatus = "archived"
)

// Scope identifies the pool within which scheduling conflicts are checked.
// Timetables sharing a scope compete for rooms and teachers; timetables in
// different scopes never conflict with each other.
type Scope struct {
	AcademicYear string `db:"academic_year" json:"academic_year"`
	Semester     string `db:"semester" json:"semester"`
}

// String renders the scope for log and conflict messages.
func (s Scope) String() string {
	return s.AcademicYear + "/" + s.Semester
}

// Timetable is a named container of slots for one department within one scope.
type Timetable struct {
	ID           string          `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	DepartmentID string          `db:"department_id" json:"department_id"`
	LevelID      *string         `db:"level_id" json:"level_id,omitempty"`
	WeekStart    time.Time       `db:"week_start" json:"week_start"`
	WeekEnd      *time.Time      `db:"week_end" json:"week_end,omitempty"`
	AcademicYear string          `db:"academic_year" json:"academic_year"`
	Semester     string          `db:"semester" json:"semester"`
	Status       TimetableStatus `db:"status" json:"status"`
	CreatedBy    *string         `db:"created_by" json:"created_by,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Scope returns the conflict-checking scope this timetable belongs to.
func (t *Timetable) Scope() Scope {
	return Scope{AcademicYear: t.AcademicYear, Semester: t.Semester}
}

// TimetableFilter describes query params for listing timetables.
type TimetableFilter struct {
	DepartmentID string
	Status       TimetableStatus
	AcademicYear string
	Semester     string
	Page         int
	PageSize     int
}

// TimetableStats aggregates occupancy figures for a single timetable.
type TimetableStats struct {
	TimetableID        string         `json:"timetable_id"`
	TimetableName      string         `json:"timetable_name"`
	Status             TimetableStatus `json:"status"`
	TotalSlots         int            `json:"total_slots"`
	UniqueCourses      int            `json:"unique_courses"`
	UniqueRooms        int            `json:"unique_rooms"`
	UniqueTeachers     int            `json:"unique_teachers"`
	TotalTeachingHours float64        `json:"total_teaching_hours"`
	SlotsPerDay        map[string]int `json:"slots_per_day"`
}
