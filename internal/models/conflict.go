package models

// ResourceKind tags the two resource types that must never be double-booked.
type ResourceKind string

const (
	ResourceRoom    ResourceKind = "ROOM"
	ResourceTeacher ResourceKind = "TEACHER"
)

// OverlapQuery addresses one conflict lookup: all committed bookings of a
// resource on a weekday within a scope that intersect the [StartTime,
// EndTime) range. ExcludeSlotID, when set, skips the named slot so that an
// update never conflicts with itself.
type OverlapQuery struct {
	Scope         Scope
	Kind          ResourceKind
	ResourceID    string
	DayOfWeek     int
	StartTime     string
	EndTime       string
	ExcludeSlotID string
}

// Conflict describes a detected overlap with a committed slot. It is a pure
// output value and is never persisted.
type Conflict struct {
	Kind          ResourceKind `json:"kind"`
	SlotID        string       `json:"slot_id"`
	ResourceName  string       `json:"resource_name"`
	CourseName    string       `json:"course_name"`
	TimetableName string       `json:"timetable_name"`
	Scope         Scope        `json:"scope"`
	DayOfWeek     int          `json:"day_of_week"`
	StartTime     string       `json:"start_time"`
	EndTime       string       `json:"end_time"`
}

// SlotConflictError is returned when a proposed slot collides with an
// existing booking for the same room or teacher.
type SlotConflictError struct {
	Kind      ResourceKind `json:"kind"`
	Message   string       `json:"message"`
	Conflict  Conflict     `json:"conflict"`
	Conflicts []Conflict   `json:"conflicts,omitempty"`
}

// Error implements the error interface for conflict errors.
func (e *SlotConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// BulkItemError ties a rejected bulk proposal to its position in the request.
type BulkItemError struct {
	Index   int    `json:"index"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BulkRejectionError carries every per-item failure of an all-or-nothing
// bulk create. The batch is never partially applied.
type BulkRejectionError struct {
	Message string          `json:"message"`
	Items   []BulkItemError `json:"items"`
}

// Error implements the error interface.
func (e *BulkRejectionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}
