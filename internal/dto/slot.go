package dto

import "github.com/campushub/timetable-api/internal/models"

// CreateSlotRequest proposes a single assignment inside a timetable.
type CreateSlotRequest struct {
	TimetableID string  `json:"timetable_id" validate:"required"`
	CourseID    string  `json:"course_id" validate:"required"`
	RoomID      string  `json:"room_id" validate:"required"`
	DayOfWeek   int     `json:"day_of_week"`
	StartTime   string  `json:"start_time" validate:"required"`
	EndTime     string  `json:"end_time" validate:"required"`
	Notes       *string `json:"notes,omitempty"`
}

// SlotProposal is one entry of a bulk create; the timetable comes from the
// enclosing request.
type SlotProposal struct {
	CourseID  string  `json:"course_id" validate:"required"`
	RoomID    string  `json:"room_id" validate:"required"`
	DayOfWeek int     `json:"day_of_week"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time" validate:"required"`
	Notes     *string `json:"notes,omitempty"`
}

// BulkCreateSlotsRequest applies a batch of proposals as one all-or-nothing
// unit.
type BulkCreateSlotsRequest struct {
	TimetableID string         `json:"timetable_id" validate:"required"`
	Slots       []SlotProposal `json:"slots" validate:"required,min=1,dive"`
}

// BulkCreateSlotsResult reports the committed slots of a successful batch.
type BulkCreateSlotsResult struct {
	Created []models.TimetableSlot `json:"created"`
}

// UpdateSlotRequest is an explicit patch: only non-nil fields are applied.
// Every update re-runs the full conflict validation against the merged slot.
type UpdateSlotRequest struct {
	CourseID  *string `json:"course_id,omitempty"`
	RoomID    *string `json:"room_id,omitempty"`
	DayOfWeek *int    `json:"day_of_week,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// Empty reports whether the patch carries no changes.
func (r UpdateSlotRequest) Empty() bool {
	return r.CourseID == nil && r.RoomID == nil && r.DayOfWeek == nil &&
		r.StartTime == nil && r.EndTime == nil && r.Notes == nil
}

// CheckConflictsRequest asks "would this assignment conflict" without
// committing anything. RoomID is optional; when absent only the teacher
// check runs.
type CheckConflictsRequest struct {
	CourseID      string  `json:"course_id" validate:"required"`
	RoomID        *string `json:"room_id,omitempty"`
	DayOfWeek     int     `json:"day_of_week"`
	StartTime     string  `json:"start_time" validate:"required"`
	EndTime       string  `json:"end_time" validate:"required"`
	AcademicYear  string  `json:"academic_year" validate:"required"`
	Semester      string  `json:"semester" validate:"required"`
	ExcludeSlotID string  `json:"exclude_slot_id,omitempty"`
}

// CheckConflictsResult lists every detected conflict.
type CheckConflictsResult struct {
	Conflicts []models.Conflict `json:"conflicts"`
	HasAny    bool              `json:"has_conflicts"`
}
