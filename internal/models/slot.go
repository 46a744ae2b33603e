package models

import "time"

// TimetableSlot is the atomic scheduling fact: a course occupying a room on a
// weekday for a [start, end) wall-clock range inside one timetable. Day 0 is
// Monday, day 6 is Sunday. Times are zero-padded "HH:MM" strings, which sort
// and compare correctly both in SQL and in Go.
type TimetableSlot struct {
	ID          string    `db:"id" json:"id"`
	TimetableID string    `db:"timetable_id" json:"timetable_id"`
	CourseID    string    `db:"course_id" json:"course_id"`
	RoomID      string    `db:"room_id" json:"room_id"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SlotFilter describes query params for listing slots.
type SlotFilter struct {
	TimetableID string
	CourseID    string
	RoomID      string
	DayOfWeek   *int
	Page        int
	PageSize    int
}

// SlotDetail joins a slot with the display names needed for exports and
// conflict reports.
type SlotDetail struct {
	TimetableSlot
	CourseCode    string  `db:"course_code" json:"course_code"`
	CourseName    string  `db:"course_name" json:"course_name"`
	RoomName      string  `db:"room_name" json:"room_name"`
	TeacherName   *string `db:"teacher_name" json:"teacher_name,omitempty"`
	TimetableName string  `db:"timetable_name" json:"timetable_name"`
}
