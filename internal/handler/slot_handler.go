package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushub/timetable-api/internal/dto"
	"github.com/campushub/timetable-api/internal/models"
	appErrors "github.com/campushub/timetable-api/pkg/errors"
	"github.com/campushub/timetable-api/pkg/response"
)

// SlotAssigner is the slot service surface the handler consumes.
type SlotAssigner interface {
	List(ctx context.Context, filter models.SlotFilter) ([]models.TimetableSlot, *models.Pagination, error)
	Get(ctx context.Context, slotID string) (*models.TimetableSlot, error)
	Create(ctx context.Context, req dto.CreateSlotRequest) (*models.TimetableSlot, error)
	BulkCreate(ctx context.Context, req dto.BulkCreateSlotsRequest) (*dto.BulkCreateSlotsResult, error)
	Update(ctx context.Context, slotID string, patch dto.UpdateSlotRequest) (*models.TimetableSlot, error)
	Delete(ctx context.Context, slotID string) error
	CheckConflicts(ctx context.Context, req dto.CheckConflictsRequest) (*dto.CheckConflictsResult, error)
}

// SlotHandler manages slot assignment endpoints.
type SlotHandler struct {
	service SlotAssigner
}

// NewSlotHandler constructs handler.
func NewSlotHandler(svc SlotAssigner) *SlotHandler {
	return &SlotHandler{service: svc}
}

// List handles GET /slots.
func (h *SlotHandler) List(c *gin.Context) {
	var filter models.SlotFilter
	filter.TimetableID = c.Query("timetableId")
	filter.CourseID = c.Query("courseId")
	filter.RoomID = c.Query("roomId")
	if raw := c.Query("dayOfWeek"); raw != "" {
		day, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "dayOfWeek must be an integer"))
			return
		}
		filter.DayOfWeek = &day
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = limit
	}

	slots, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, pagination)
}

// Get handles GET /slots/:id.
func (h *SlotHandler) Get(c *gin.Context) {
	slot, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// Create handles POST /slots.
func (h *SlotHandler) Create(c *gin.Context) {
	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	slot, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondSlotError(c, err)
		return
	}
	response.Created(c, slot)
}

// BulkCreate handles POST /slots/bulk.
func (h *SlotHandler) BulkCreate(c *gin.Context) {
	var req dto.BulkCreateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.BulkCreate(c.Request.Context(), req)
	if err != nil {
		respondSlotError(c, err)
		return
	}
	response.Created(c, result)
}

// Update handles PATCH /slots/:id.
func (h *SlotHandler) Update(c *gin.Context) {
	var req dto.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if req.Empty() {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "patch contains no fields"))
		return
	}
	slot, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondSlotError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// Delete handles DELETE /slots/:id.
func (h *SlotHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CheckConflicts handles POST /slots/check-conflicts.
func (h *SlotHandler) CheckConflicts(c *gin.Context) {
	var req dto.CheckConflictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.CheckConflicts(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// respondSlotError surfaces structured conflict and bulk rejection details in
// the response metadata; other errors pass through the common envelope.
func respondSlotError(c *gin.Context, err error) {
	var conflictErr *models.SlotConflictError
	if errors.As(err, &conflictErr) {
		response.ErrorWithMeta(c, err, map[string]interface{}{"conflict": conflictErr.Conflict})
		return
	}
	var rejection *models.BulkRejectionError
	if errors.As(err, &rejection) {
		response.ErrorWithMeta(c, err, map[string]interface{}{"items": rejection.Items})
		return
	}
	response.Error(c, err)
}
