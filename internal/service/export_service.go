package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/campushub/timetable-api/internal/models"
	appErrors "github.com/campushub/timetable-api/pkg/errors"
	"github.com/campushub/timetable-api/pkg/export"
)

// ExportFormat selects the export encoding.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

var exportColumns = []string{"Start", "End", "Course Code", "Course", "Teacher", "Room", "Notes"}

type timetableGetter interface {
	Get(ctx context.Context, id string) (*models.Timetable, error)
}

type slotDetailLister interface {
	ListDetailByTimetable(ctx context.Context, timetableID string) ([]models.SlotDetail, error)
}

// ExportResult carries rendered export bytes plus the response metadata.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportService renders a timetable's slots as CSV or PDF.
type ExportService struct {
	timetables timetableGetter
	slots      slotDetailLister
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

// NewExportService wires the export dependencies.
func NewExportService(timetables timetableGetter, slots slotDetailLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		timetables: timetables,
		slots:      slots,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

// Export renders the timetable in the requested format.
func (s *ExportService) Export(ctx context.Context, timetableID string, format ExportFormat) (*ExportResult, error) {
	timetable, err := s.timetables.Get(ctx, timetableID)
	if err != nil {
		return nil, err
	}
	details, err := s.slots.ListDetailByTimetable(ctx, timetableID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot details")
	}

	grid := buildWeekGrid(timetable, details)
	base := exportFileName(timetable.Name)

	switch format {
	case ExportFormatCSV:
		data, err := s.csv.Render(grid)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		s.logger.Info("timetable exported", zap.String("timetable_id", timetableID), zap.String("format", "csv"))
		return &ExportResult{FileName: base + ".csv", ContentType: "text/csv", Data: data}, nil
	case ExportFormatPDF:
		data, err := s.pdf.Render(grid)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		s.logger.Info("timetable exported", zap.String("timetable_id", timetableID), zap.String("format", "pdf"))
		return &ExportResult{FileName: base + ".pdf", ContentType: "application/pdf", Data: data}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

// buildWeekGrid groups the slot details by weekday in week order. The lister
// already orders by day and start time, so rows within a day stay sorted.
func buildWeekGrid(timetable *models.Timetable, details []models.SlotDetail) export.WeekGrid {
	byDay := make(map[int][][]string)
	for _, detail := range details {
		teacher := ""
		if detail.TeacherName != nil {
			teacher = *detail.TeacherName
		}
		notes := ""
		if detail.Notes != nil {
			notes = *detail.Notes
		}
		byDay[detail.DayOfWeek] = append(byDay[detail.DayOfWeek], []string{
			detail.StartTime,
			detail.EndTime,
			detail.CourseCode,
			detail.CourseName,
			teacher,
			detail.RoomName,
			notes,
		})
	}

	grid := export.WeekGrid{
		Title:   fmt.Sprintf("%s (%s)", timetable.Name, timetable.Scope().String()),
		Columns: exportColumns,
	}
	for day := 0; day < len(dayNames); day++ {
		rows := byDay[day]
		if len(rows) == 0 {
			continue
		}
		grid.Days = append(grid.Days, export.DaySection{Day: capitalize(dayNames[day]), Rows: rows})
	}
	return grid
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func exportFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(name))
	if cleaned == "" {
		cleaned = "timetable"
	}
	return strings.ToLower(cleaned)
}
