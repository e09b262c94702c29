package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"trackthething/internal/config"
	"trackthething/internal/domain"
	"trackthething/internal/domain/models"
	exportSvc "trackthething/internal/domain/services/export"
	reportSvc "trackthething/internal/domain/services/report"
)

// reportService implements the ReportService interface
type reportService struct {
	markdown exportSvc.Converter
	text     exportSvc.Converter
	location *time.Location
	now      reportSvc.Clock
	logger   *slog.Logger
}

// NewReportService creates a new report service. Entry bodies are rendered
// with the given Markdown and plain-text converters. A nil clock uses
// time.Now; a nil location uses UTC.
func NewReportService(
	markdown exportSvc.Converter,
	text exportSvc.Converter,
	location *time.Location,
	clock reportSvc.Clock,
	logger *slog.Logger,
) reportSvc.ReportService {
	if clock == nil {
		clock = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	return &reportService{
		markdown: markdown,
		text:     text,
		location: location,
		now:      clock,
		logger:   logger,
	}
}

// Weekly builds the Wednesday-to-Wednesday report containing date
func (s *reportService) Weekly(ctx context.Context, date string, entries []models.ReportEntry) (*models.WeeklyReport, error) {
	if err := s.validateEntries(entries); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := s.now().In(s.location)
	reportDate := now
	if date != "" {
		parsed, err := time.ParseInLocation(dateLayout, date, s.location)
		if err != nil {
			s.logger.Debug("unparsable report date, using today", "date", date)
		} else {
			reportDate = parsed
		}
	}

	start, end := WeekBounds(reportDate)
	startStr, endStr := start.Format(dateLayout), end.Format(dateLayout)

	// Dates are YYYY-MM-DD, so string order is date order
	var selected []models.ReportEntry
	for _, e := range entries {
		if e.IncludeInReport && e.Date >= startStr && e.Date < endStr {
			selected = append(selected, e)
		}
	}
	sortEntries(selected)

	var completed, inProgress []models.ReportEntry
	for _, e := range selected {
		if e.IsCompleted {
			completed = append(completed, e)
		} else {
			inProgress = append(inProgress, e)
		}
	}

	report := &models.WeeklyReport{
		WeekStart:   startStr,
		WeekEnd:     end.AddDate(0, 0, -1).Format(dateLayout),
		GeneratedAt: now,
		Entries:     nonNil(selected),
		Completed:   groupByDate(completed),
		InProgress:  groupByDate(inProgress),
	}

	r := s.newRenderer(ctx)
	var err error
	if report.Markdown, err = r.weeklyMarkdown(report); err != nil {
		return nil, err
	}
	if report.Text.Completed, err = r.sectionText(sectionCompleted, report.Completed); err != nil {
		return nil, err
	}
	if report.Text.InProgress, err = r.sectionText(sectionInProgress, report.InProgress); err != nil {
		return nil, err
	}

	s.logger.Info("weekly report generated",
		"week_start", report.WeekStart,
		"week_end", report.WeekEnd,
		"entries", len(report.Entries),
		"completed", len(completed),
		"in_progress", len(inProgress),
	)

	return report, nil
}

// AllEntries builds a report of every entry regardless of report flags
func (s *reportService) AllEntries(ctx context.Context, entries []models.ReportEntry) (*models.AllEntriesReport, error) {
	if err := s.validateEntries(entries); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	sorted := append([]models.ReportEntry(nil), entries...)
	sortEntries(sorted)

	report := &models.AllEntriesReport{
		GeneratedAt: s.now().In(s.location),
		Entries:     nonNil(sorted),
		Groups:      groupByDate(sorted),
	}

	r := s.newRenderer(ctx)
	var err error
	if report.Markdown, err = r.allEntriesMarkdown(report); err != nil {
		return nil, err
	}
	if report.Text, err = r.allEntriesText(report); err != nil {
		return nil, err
	}

	s.logger.Info("all-entries report generated", "entries", len(report.Entries))

	return report, nil
}

// Weeks lists the weeks that contain report-flagged entries, newest first
func (s *reportService) Weeks(ctx context.Context, entries []models.ReportEntry) ([]models.Week, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validateEntries(entries); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	seen := make(map[string]models.Week)
	for _, e := range entries {
		if !e.IncludeInReport {
			continue
		}
		// Already validated
		date, _ := time.ParseInLocation(dateLayout, e.Date, s.location)
		start, end := weekOf(date)
		if _, ok := seen[start]; !ok {
			seen[start] = models.Week{Start: start, End: end, Label: start + " to " + end}
		}
	}

	weeks := make([]models.Week, 0, len(seen))
	for _, w := range seen {
		weeks = append(weeks, w)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Start > weeks[j].Start })

	return weeks, nil
}

func (s *reportService) validateEntries(entries []models.ReportEntry) error {
	if len(entries) > config.MaxReportEntries {
		return fmt.Errorf("entries: at most %d entries per report", config.MaxReportEntries)
	}
	for i := range entries {
		e := &entries[i]
		err := validation.ValidateStruct(e,
			validation.Field(&e.Date, validation.Required, validation.Date(dateLayout)),
			validation.Field(&e.Content, validation.Length(0, config.MaxContentLength)),
			validation.Field(&e.ContentType,
				validation.In(models.ContentTypeRichText, models.ContentTypeCode, models.ContentTypeMarkdown),
			),
		)
		if err != nil {
			return fmt.Errorf("entries[%d]: %v", i, err)
		}
	}
	return nil
}

// sortEntries orders entries by date, then creation time, keeping
// submission order for ties
func sortEntries(entries []models.ReportEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
}

// groupByDate splits sorted entries into runs sharing a date
func groupByDate(entries []models.ReportEntry) []models.DateGroup {
	groups := []models.DateGroup{}
	for _, e := range entries {
		if n := len(groups); n > 0 && groups[n-1].Date == e.Date {
			groups[n-1].Entries = append(groups[n-1].Entries, e)
			continue
		}
		groups = append(groups, models.DateGroup{Date: e.Date, Entries: []models.ReportEntry{e}})
	}
	return groups
}

func nonNil(entries []models.ReportEntry) []models.ReportEntry {
	if entries == nil {
		return []models.ReportEntry{}
	}
	return entries
}
