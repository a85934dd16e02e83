package service

import (
	"context"
	"fmt"
	"time"

	"github.com/contentfactory/panel-api/internal/models"
	appErrors "github.com/contentfactory/panel-api/pkg/errors"
	"github.com/contentfactory/panel-api/pkg/export"
)

// ExportFormat selects the download encoding.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportResult is the rendered download.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportService renders the visible week's content plan for download.
type ExportService struct {
	schedules scheduleClient
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
}

// NewExportService constructs the service.
func NewExportService(schedules scheduleClient) *ExportService {
	return &ExportService{
		schedules: schedules,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

var exportHeaders = []string{"Date", "Time", "Platform", "Title", "Status"}

// WeekPlan renders the week containing cursor as CSV or PDF.
func (s *ExportService) WeekPlan(ctx context.Context, cursor time.Time, format ExportFormat) (*ExportResult, error) {
	dates := WeekDates(cursor)
	from := dates[0]
	to := dates[len(dates)-1].AddDate(0, 0, 1)

	items, err := s.schedules.ListSchedules(ctx, models.ScheduleFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	view := BuildView(items, cursor, models.CalendarViewWeek)
	dataset := export.Dataset{Headers: exportHeaders}
	for _, key := range view.Dates {
		for _, item := range view.Buckets[key] {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Date":     key,
				"Time":     item.TimeLabel,
				"Platform": item.Platform,
				"Title":    item.Title,
				"Status":   string(item.Status),
			})
		}
	}

	weekStart := DateKey(dates[0])
	switch format {
	case ExportCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv export")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("content-plan-%s.csv", weekStart),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case ExportPDF:
		data, err := s.pdf.Render(dataset, fmt.Sprintf("Content plan, week of %s", weekStart))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf export")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("content-plan-%s.pdf", weekStart),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
