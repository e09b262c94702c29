package report

import (
	"context"
	"time"

	"trackthething/internal/domain/models"
)

// ReportService aggregates entries into reports
type ReportService interface {
	// Weekly builds the Wednesday-to-Wednesday report containing date.
	// An empty date means today.
	Weekly(ctx context.Context, date string, entries []models.ReportEntry) (*models.WeeklyReport, error)

	// AllEntries builds a report of every entry regardless of report flags
	AllEntries(ctx context.Context, entries []models.ReportEntry) (*models.AllEntriesReport, error)

	// Weeks lists the weeks that contain report-flagged entries, newest first
	Weeks(ctx context.Context, entries []models.ReportEntry) ([]models.Week, error)
}

// ReportRequest is the JSON body accepted by report endpoints
type ReportRequest struct {
	Entries []models.ReportEntry `json:"entries"`
}

// Clock returns the current time; injected so reports are reproducible in tests
type Clock func() time.Time
