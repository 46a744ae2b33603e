package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushub/timetable-api/internal/dto"
	"github.com/campushub/timetable-api/internal/models"
	"github.com/campushub/timetable-api/internal/service"
	appErrors "github.com/campushub/timetable-api/pkg/errors"
	"github.com/campushub/timetable-api/pkg/response"
)

// TimetableManager is the timetable service surface the handler consumes.
type TimetableManager interface {
	List(ctx context.Context, filter models.TimetableFilter) ([]models.Timetable, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Timetable, error)
	Create(ctx context.Context, req dto.CreateTimetableRequest) (*models.Timetable, error)
	Update(ctx context.Context, id string, patch dto.UpdateTimetableRequest) (*models.Timetable, error)
	Publish(ctx context.Context, id string) (*models.Timetable, error)
	Archive(ctx context.Context, id string) (*models.Timetable, error)
	Clone(ctx context.Context, sourceID string, req dto.CloneTimetableRequest) (*models.Timetable, []models.TimetableSlot, error)
	Delete(ctx context.Context, id string) (*dto.DeleteTimetableResult, error)
	Stats(ctx context.Context, id string) (*models.TimetableStats, error)
}

// TimetableExporter renders a timetable for download.
type TimetableExporter interface {
	Export(ctx context.Context, timetableID string, format service.ExportFormat) (*service.ExportResult, error)
}

// TimetableHandler manages timetable endpoints.
type TimetableHandler struct {
	service TimetableManager
	slots   SlotAssigner
	exports TimetableExporter
}

// NewTimetableHandler constructs handler.
func NewTimetableHandler(svc TimetableManager, slots SlotAssigner, exports TimetableExporter) *TimetableHandler {
	return &TimetableHandler{service: svc, slots: slots, exports: exports}
}

// List handles GET /timetables.
func (h *TimetableHandler) List(c *gin.Context) {
	var filter models.TimetableFilter
	filter.DepartmentID = c.Query("departmentId")
	filter.Status = models.TimetableStatus(c.Query("status"))
	filter.AcademicYear = c.Query("academicYear")
	filter.Semester = c.Query("semester")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}

	timetables, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetables, pagination)
}

// Get handles GET /timetables/:id.
func (h *TimetableHandler) Get(c *gin.Context) {
	timetable, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable, nil)
}

// Create handles POST /timetables.
func (h *TimetableHandler) Create(c *gin.Context) {
	var req dto.CreateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	timetable, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, timetable)
}

// Update handles PATCH /timetables/:id.
func (h *TimetableHandler) Update(c *gin.Context) {
	var req dto.UpdateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	timetable, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable, nil)
}

// Publish handles POST /timetables/:id/publish.
func (h *TimetableHandler) Publish(c *gin.Context) {
	timetable, err := h.service.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable, nil)
}

// Archive handles POST /timetables/:id/archive.
func (h *TimetableHandler) Archive(c *gin.Context) {
	timetable, err := h.service.Archive(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable, nil)
}

// Clone handles POST /timetables/:id/clone.
func (h *TimetableHandler) Clone(c *gin.Context) {
	var req dto.CloneTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	timetable, slots, err := h.service.Clone(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondSlotError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"timetable": timetable, "slots": slots}, nil)
}

// Delete handles DELETE /timetables/:id.
func (h *TimetableHandler) Delete(c *gin.Context) {
	result, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Stats handles GET /timetables/:id/stats.
func (h *TimetableHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Export handles GET /timetables/:id/export?format=csv|pdf.
func (h *TimetableHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.Export(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// ListSlots handles GET /timetables/:id/slots.
func (h *TimetableHandler) ListSlots(c *gin.Context) {
	var filter models.SlotFilter
	filter.TimetableID = c.Param("id")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = limit
	}
	// Existence is checked first so an unknown timetable reads as 404, not an
	// empty list.
	if _, err := h.service.Get(c.Request.Context(), filter.TimetableID); err != nil {
		response.Error(c, err)
		return
	}
	slots, pagination, err := h.slots.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, pagination)
}
