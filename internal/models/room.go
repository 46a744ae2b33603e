package models

import "time"

// Room is a physical resource. An unavailable room never accepts new slots
// regardless of conflicts.
type Room struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	RoomType    string    `db:"room_type" json:"room_type"`
	Capacity    int       `db:"capacity" json:"capacity"`
	IsAvailable bool      `db:"is_available" json:"is_available"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
