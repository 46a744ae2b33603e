package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/timetable-api/internal/models"
	appErrors "github.com/campushub/timetable-api/pkg/errors"
	"github.com/campushub/timetable-api/pkg/response"
)

type teacherReader interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

type roomLister interface {
	FindByID(ctx context.Context, id string) (*models.Room, error)
	ListAvailable(ctx context.Context) ([]models.Room, error)
}

// ReferenceHandler serves the read-only reference lookups scheduling clients
// need when composing slot proposals.
type ReferenceHandler struct {
	teachers teacherReader
	rooms    roomLister
}

// NewReferenceHandler constructs handler.
func NewReferenceHandler(teachers teacherReader, rooms roomLister) *ReferenceHandler {
	return &ReferenceHandler{teachers: teachers, rooms: rooms}
}

// GetTeacher handles GET /teachers/:id.
func (h *ReferenceHandler) GetTeacher(c *gin.Context) {
	teacher, err := h.teachers.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "teacher not found"))
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

// GetRoom handles GET /rooms/:id.
func (h *ReferenceHandler) GetRoom(c *gin.Context) {
	room, err := h.rooms.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "room not found"))
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}

// ListAvailableRooms handles GET /rooms.
func (h *ReferenceHandler) ListAvailableRooms(c *gin.Context) {
	rooms, err := h.rooms.ListAvailable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, nil)
}
