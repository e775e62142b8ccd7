package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/droplet-hq/jibble-export/internal/attendance"
	"github.com/droplet-hq/jibble-export/internal/models"
	"github.com/droplet-hq/jibble-export/pkg/export"
)

type trackedTimeFetcher interface {
	Entries(ctx context.Context, d models.Duration) ([]models.TrackedTimeEntry, error)
}

type holidayFetcher interface {
	HolidaysByCalendar(ctx context.Context, name string, years []int) ([]models.HolidayEntry, error)
}

type timeOffFetcher interface {
	Approved(ctx context.Context, d models.Duration) ([]models.TimeOffEntry, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	WriteLastExport(relativePath string) error
	Path(relativePath string) string
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type xlsxRenderer interface {
	Render(sheet export.AttendanceSheet) ([]byte, error)
}

// ReportConfig tunes report generation.
type ReportConfig struct {
	// CalendarName is the holiday calendar applied when a request names none.
	CalendarName string
}

// ExportRequest describes one report to generate.
type ExportRequest struct {
	Duration models.Duration
	Format   models.ExportFormat
	// Filename is relative to the reports directory; derived from the
	// duration when empty.
	Filename string
	// Calendar overrides the configured holiday calendar when set.
	Calendar string
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Path         string
	Format       models.ExportFormat
	People       int
	PresentDays  map[string]int
}

// ReportService fetches the three source collections, assembles the
// attendance matrix and writes the rendered report file. Fetches run
// sequentially; each export is a single-shot run.
type ReportService struct {
	tracked  trackedTimeFetcher
	holidays holidayFetcher
	timeOffs timeOffFetcher
	storage  fileStorage
	csv      csvRenderer
	pdf      pdfRenderer
	xlsx     xlsxRenderer
	logger   *zap.Logger
	cfg      ReportConfig
}

// NewReportService constructs a ReportService.
func NewReportService(tracked trackedTimeFetcher, holidays holidayFetcher, timeOffs timeOffFetcher,
	storage fileStorage, cfg ReportConfig, logger *zap.Logger,
	csv csvRenderer, pdf pdfRenderer, xlsx xlsxRenderer) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if xlsx == nil {
		xlsx = export.NewXLSXExporter()
	}
	return &ReportService{
		tracked:  tracked,
		holidays: holidays,
		timeOffs: timeOffs,
		storage:  storage,
		csv:      csv,
		pdf:      pdf,
		xlsx:     xlsx,
		logger:   logger,
		cfg:      cfg,
	}
}

// Export generates one attendance report.
func (s *ReportService) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	if !req.Format.Valid() {
		return nil, fmt.Errorf("unsupported format %q", req.Format)
	}
	calendar := req.Calendar
	if calendar == "" {
		calendar = s.cfg.CalendarName
	}

	tracked, err := s.tracked.Entries(ctx, req.Duration)
	if err != nil {
		return nil, err
	}
	holidays, err := s.holidays.HolidaysByCalendar(ctx, calendar, req.Duration.Years())
	if err != nil {
		return nil, err
	}
	timeOffs, err := s.timeOffs.Approved(ctx, req.Duration)
	if err != nil {
		return nil, err
	}

	matrix, err := attendance.BuildMatrix(req.Duration, tracked, holidays, timeOffs)
	if err != nil {
		return nil, fmt.Errorf("calendar %q: %w", calendar, err)
	}
	labels := matrix.Labels()
	present := presentCounts(labels)

	var payload []byte
	switch req.Format {
	case models.FormatCSV:
		payload, err = s.csv.Render(dataset(matrix, labels, present))
	case models.FormatPDF:
		title := fmt.Sprintf("Attendance %s", req.Duration)
		payload, err = s.pdf.Render(dataset(matrix, labels, present), title)
	case models.FormatXLSX:
		payload, err = s.xlsx.Render(attendanceSheet(matrix, labels, present))
	}
	if err != nil {
		return nil, err
	}

	filename := req.Filename
	if filename == "" {
		filename = fmt.Sprintf("attendance_report_%s_%s%s",
			req.Duration.Start.Format(models.DateLayout),
			req.Duration.End.Format(models.DateLayout),
			req.Format.Ext())
	}
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, err
	}
	if err := s.storage.WriteLastExport(relPath); err != nil {
		s.logger.Warn("record last export", zap.Error(err))
	}

	result := &ExportResult{
		RelativePath: relPath,
		Path:         s.storage.Path(relPath),
		Format:       req.Format,
		People:       len(matrix.People),
		PresentDays:  make(map[string]int, len(matrix.People)),
	}
	for i, person := range matrix.People {
		result.PresentDays[matrix.Names[person]] = present[i]
	}

	s.logger.Info("attendance report exported",
		zap.String("file", result.Path),
		zap.String("duration", req.Duration.String()),
		zap.String("calendar", calendar),
		zap.Int("people", result.People))
	return result, nil
}

func presentCounts(labels [][]string) []int {
	counts := make([]int, len(labels))
	for i, row := range labels {
		for _, label := range row {
			if label == attendance.LabelPresent {
				counts[i]++
			}
		}
	}
	return counts
}

func dataset(m *attendance.Matrix, labels [][]string, present []int) export.Dataset {
	headers := make([]string, 0, len(m.Days)+2)
	headers = append(headers, "Member")
	for _, day := range m.Days {
		headers = append(headers, day.Format(models.DateLayout))
	}
	headers = append(headers, "Present")

	rows := make([]map[string]string, len(m.People))
	for i, person := range m.People {
		row := make(map[string]string, len(headers))
		row["Member"] = m.Names[person]
		for j, day := range m.Days {
			row[day.Format(models.DateLayout)] = labels[i][j]
		}
		row["Present"] = strconv.Itoa(present[i])
		rows[i] = row
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func attendanceSheet(m *attendance.Matrix, labels [][]string, present []int) export.AttendanceSheet {
	people := make([]string, len(m.People))
	for i, person := range m.People {
		people[i] = m.Names[person]
	}
	holidays := make(map[time.Time]bool, len(m.Holiday))
	for day, name := range m.Holiday {
		if name != "" {
			holidays[day] = true
		}
	}
	return export.AttendanceSheet{
		Days:     m.Days,
		People:   people,
		Cells:    labels,
		Present:  present,
		Holidays: holidays,
	}
}
