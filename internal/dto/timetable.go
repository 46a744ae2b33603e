package dto

// CreateTimetableRequest creates a new slot container. Dates use ISO
// "2006-01-02" format.
type CreateTimetableRequest struct {
	Name         string  `json:"name" validate:"required"`
	DepartmentID string  `json:"department_id" validate:"required"`
	LevelID      *string `json:"level_id,omitempty"`
	WeekStart    string  `json:"week_start" validate:"required"`
	WeekEnd      *string `json:"week_end,omitempty"`
	AcademicYear string  `json:"academic_year" validate:"required"`
	Semester     string  `json:"semester" validate:"required"`
	CreatedBy    *string `json:"created_by,omitempty"`
}

// UpdateTimetableRequest is an explicit patch over timetable metadata.
// Status changes go through publish/archive, not here. An empty week_end
// string clears the stored date; omitting the field leaves it untouched.
type UpdateTimetableRequest struct {
	Name         *string `json:"name,omitempty"`
	LevelID      *string `json:"level_id,omitempty"`
	WeekStart    *string `json:"week_start,omitempty"`
	WeekEnd      *string `json:"week_end,omitempty"`
	AcademicYear *string `json:"academic_year,omitempty"`
	Semester     *string `json:"semester,omitempty"`
}

// CloneTimetableRequest replicates a source timetable's slots into a new
// draft timetable. Unset fields copy from the source; overriding the scope
// fields moves the clone into a different conflict pool. An empty week_end
// string clears the copied date.
type CloneTimetableRequest struct {
	Name         string  `json:"name" validate:"required"`
	DepartmentID *string `json:"department_id,omitempty"`
	LevelID      *string `json:"level_id,omitempty"`
	WeekStart    *string `json:"week_start,omitempty"`
	WeekEnd      *string `json:"week_end,omitempty"`
	AcademicYear *string `json:"academic_year,omitempty"`
	Semester     *string `json:"semester,omitempty"`
	CreatedBy    *string `json:"created_by,omitempty"`
}

// DeleteTimetableResult reports what the cascade removed.
type DeleteTimetableResult struct {
	Name         string `json:"name"`
	SlotsDeleted int    `json:"slots_deleted"`
}
