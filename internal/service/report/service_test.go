package report

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"trackthething/internal/domain"
	"trackthething/internal/domain/models"
	reportSvc "trackthething/internal/domain/services/report"
	"trackthething/internal/service/export/converter"
)

// Friday 2024-01-05 14:30 UTC; its report week is Wed 2024-01-03 .. Tue 2024-01-09
var fixedNow = time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC)

func newTestService(loc *time.Location) reportSvc.ReportService {
	return NewReportService(
		converter.NewMarkdownConverter(converter.NewMarkdownEngine(), nil, ""),
		converter.NewTextConverter(converter.NewSourceRenderer()),
		loc,
		func() time.Time { return fixedNow },
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func at(date string, hour int) time.Time {
	d, _ := time.Parse(dateLayout, date)
	return d.Add(time.Duration(hour) * time.Hour)
}

func testEntries() []models.ReportEntry {
	return []models.ReportEntry{
		{
			Date: "2024-01-04", EntryID: 2, Content: "<p>Writing docs</p>",
			CreatedAt: at("2024-01-04", 10), IncludeInReport: true,
		},
		{
			Date: "2024-01-03", EntryID: 1, Title: "Release", Content: "<p>Shipped <strong>v2</strong></p>",
			Labels:    []models.Label{{Name: "work"}, {Name: "release"}},
			CreatedAt: at("2024-01-03", 9), IncludeInReport: true, IsCompleted: true,
		},
		{
			Date: "2024-01-04", EntryID: 3, Content: "make test", ContentType: models.ContentTypeCode,
			CreatedAt: at("2024-01-04", 8), IncludeInReport: true, IsCompleted: true,
		},
		{
			Date: "2024-01-10", EntryID: 4, Content: "<p>Next week</p>",
			CreatedAt: at("2024-01-10", 9), IncludeInReport: true,
		},
		{
			Date: "2024-01-05", EntryID: 5, Content: "<p>Private</p>",
			CreatedAt: at("2024-01-05", 9), IsImportant: true,
		},
	}
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		date  string
		start string
	}{
		{"2024-01-03", "2024-01-03"}, // Wednesday
		{"2024-01-04", "2024-01-03"},
		{"2024-01-05", "2024-01-03"},
		{"2024-01-06", "2024-01-03"},
		{"2024-01-07", "2024-01-03"},
		{"2024-01-08", "2024-01-03"},
		{"2024-01-09", "2024-01-03"}, // Tuesday
		{"2024-01-10", "2024-01-10"},
		{"2024-01-02", "2023-12-27"}, // across a year boundary
		{"2024-03-01", "2024-02-28"}, // leap year
	}

	for _, tt := range tests {
		d, _ := time.Parse(dateLayout, tt.date)
		d = d.Add(17*time.Hour + 45*time.Minute)

		start, end := WeekBounds(d)
		if got := start.Format(dateLayout); got != tt.start {
			t.Errorf("WeekBounds(%s) start = %s, want %s", tt.date, got, tt.start)
		}
		if start.Weekday() != time.Wednesday {
			t.Errorf("WeekBounds(%s) start is a %s", tt.date, start.Weekday())
		}
		if start.Hour() != 0 || start.Minute() != 0 {
			t.Errorf("WeekBounds(%s) start not at midnight: %v", tt.date, start)
		}
		if !end.Equal(start.AddDate(0, 0, 7)) {
			t.Errorf("WeekBounds(%s) end = %v, want start+7d", tt.date, end)
		}
		if d.Before(start) || !d.Before(end) {
			t.Errorf("WeekBounds(%s) = [%v, %v) does not contain the date", tt.date, start, end)
		}
	}
}

func TestWeekly(t *testing.T) {
	svc := newTestService(time.UTC)

	report, err := svc.Weekly(context.Background(), "2024-01-05", testEntries())
	if err != nil {
		t.Fatalf("Weekly() error = %v", err)
	}

	if report.WeekStart != "2024-01-03" || report.WeekEnd != "2024-01-09" {
		t.Errorf("week = %s to %s", report.WeekStart, report.WeekEnd)
	}

	var ids []int64
	for _, e := range report.Entries {
		ids = append(ids, e.EntryID)
	}
	if want := []int64{1, 3, 2}; !reflect.DeepEqual(ids, want) {
		t.Errorf("entry order = %v, want %v", ids, want)
	}

	if len(report.Completed) != 2 || report.Completed[0].Date != "2024-01-03" || report.Completed[1].Date != "2024-01-04" {
		t.Errorf("completed groups = %+v", report.Completed)
	}
	if len(report.InProgress) != 1 || report.InProgress[0].Entries[0].EntryID != 2 {
		t.Errorf("in-progress groups = %+v", report.InProgress)
	}

	wantMarkdown := "# Weekly Report\n\n" +
		"**Week:** 2024-01-03 to 2024-01-09\n\n" +
		"**Generated:** Jan 5, 2024 2:30 PM\n\n" +
		"---\n\n" +
		"## ✓ Completed\n\n" +
		"\n### 2024-01-03\n\n" +
		"**Release**\n\nShipped **v2**\n\n" +
		"*Labels: work, release*\n\n" +
		"\n### 2024-01-04\n\n" +
		"```\nmake test\n```\n\n" +
		"\n## ⚙ In Progress\n\n" +
		"\n### 2024-01-04\n\n" +
		"Writing docs\n"
	if report.Markdown != wantMarkdown {
		t.Errorf("Markdown\n got: %q\nwant: %q", report.Markdown, wantMarkdown)
	}

	wantCompleted := "✓ Completed\n\n" +
		"\n2024-01-03\n\n" +
		"Release\n\nShipped v2\n\n" +
		"Labels: work, release\n\n" +
		"\n2024-01-04\n\n" +
		"make test\n\n"
	if report.Text.Completed != wantCompleted {
		t.Errorf("Text.Completed\n got: %q\nwant: %q", report.Text.Completed, wantCompleted)
	}

	wantInProgress := "⚙ In Progress\n\n\n2024-01-04\n\nWriting docs\n\n"
	if report.Text.InProgress != wantInProgress {
		t.Errorf("Text.InProgress\n got: %q\nwant: %q", report.Text.InProgress, wantInProgress)
	}
}

func TestWeekly_Empty(t *testing.T) {
	svc := newTestService(time.UTC)

	report, err := svc.Weekly(context.Background(), "2023-06-01", testEntries())
	if err != nil {
		t.Fatalf("Weekly() error = %v", err)
	}

	if len(report.Entries) != 0 {
		t.Errorf("Entries = %d, want 0", len(report.Entries))
	}
	if !strings.HasSuffix(report.Markdown, "---\n\nNo entries marked for report this week.\n") {
		t.Errorf("Markdown = %q", report.Markdown)
	}
	if report.Text.Completed != "✓ Completed\n\nNo completed items\n" {
		t.Errorf("Text.Completed = %q", report.Text.Completed)
	}
	if report.Text.InProgress != "⚙ In Progress\n\nNo in progress items\n" {
		t.Errorf("Text.InProgress = %q", report.Text.InProgress)
	}
}

func TestWeekly_EmptySection(t *testing.T) {
	svc := newTestService(time.UTC)

	report, err := svc.Weekly(context.Background(), "2024-01-12", testEntries())
	if err != nil {
		t.Fatalf("Weekly() error = %v", err)
	}

	if report.WeekStart != "2024-01-10" {
		t.Fatalf("WeekStart = %s", report.WeekStart)
	}
	if !strings.Contains(report.Markdown, "## ✓ Completed\n\n*No completed items*\n\n") {
		t.Errorf("Markdown missing empty completed marker: %q", report.Markdown)
	}
	if strings.Contains(report.Markdown, "*No items in progress*") {
		t.Errorf("Markdown has empty in-progress marker: %q", report.Markdown)
	}
}

func TestWeekly_TitlesAndLabelsVerbatim(t *testing.T) {
	svc := newTestService(time.UTC)

	entries := []models.ReportEntry{{
		Date: "2024-01-04", Title: "Use List<String> here", Content: "<p>Done</p>",
		Labels:    []models.Label{{Name: "a<b>"}, {Name: "plain"}},
		CreatedAt: at("2024-01-04", 9), IsCompleted: true, IncludeInReport: true,
	}}

	report, err := svc.Weekly(context.Background(), "2024-01-05", entries)
	if err != nil {
		t.Fatalf("Weekly() error = %v", err)
	}

	for _, want := range []string{"**Use List<String> here**\n\nDone", "*Labels: a<b>, plain*"} {
		if !strings.Contains(report.Markdown, want) {
			t.Errorf("Markdown missing %q:\n%s", want, report.Markdown)
		}
	}
	for _, want := range []string{"Use List<String> here\n\nDone", "Labels: a<b>, plain"} {
		if !strings.Contains(report.Text.Completed, want) {
			t.Errorf("Text.Completed missing %q:\n%s", want, report.Text.Completed)
		}
	}
}

func TestWeekly_DateFallback(t *testing.T) {
	svc := newTestService(time.UTC)

	for _, date := range []string{"", "not-a-date", "2024-13-40"} {
		report, err := svc.Weekly(context.Background(), date, nil)
		if err != nil {
			t.Fatalf("Weekly(%q) error = %v", date, err)
		}
		if report.WeekStart != "2024-01-03" {
			t.Errorf("Weekly(%q) WeekStart = %s, want today's week", date, report.WeekStart)
		}
	}
}

func TestWeekly_InvalidEntry(t *testing.T) {
	svc := newTestService(time.UTC)

	entries := []models.ReportEntry{{Date: "01/03/2024", Content: "x", IncludeInReport: true}}
	_, err := svc.Weekly(context.Background(), "", entries)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}

	entries = []models.ReportEntry{{Date: "2024-01-03", ContentType: "binary"}}
	_, err = svc.Weekly(context.Background(), "", entries)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestAllEntries(t *testing.T) {
	svc := newTestService(time.UTC)

	report, err := svc.AllEntries(context.Background(), testEntries())
	if err != nil {
		t.Fatalf("AllEntries() error = %v", err)
	}

	if len(report.Entries) != 5 {
		t.Fatalf("Entries = %d, want 5", len(report.Entries))
	}
	if len(report.Groups) != 4 {
		t.Errorf("Groups = %d, want 4", len(report.Groups))
	}

	for _, want := range []string{
		"# All Entries Report\n\n**Generated:** Jan 5, 2024 2:30 PM\n\n**Total Entries:** 5\n\n---\n\n",
		"\n## 2024-01-03\n\n### 9:00 AM ✓\n\n*Labels: work, release*\n\n**Release**\n\nShipped **v2**\n\n---\n\n",
		"### 9:00 AM ⭐\n\nPrivate\n\n---",
	} {
		if !strings.Contains(report.Markdown, want) {
			t.Errorf("Markdown missing %q\n got: %q", want, report.Markdown)
		}
	}

	rule := strings.Repeat("=", 60)
	for _, want := range []string{
		"All Entries Report\n\nTotal Entries: 5\n\n" + rule + "\n\n",
		"\n2024-01-03\n" + rule + "\n\n9:00 AM ✓\nLabels: work, release\n\nRelease\n\nShipped v2\n\n" + strings.Repeat("-", 60),
		"8:00 AM ✓\n\nmake test\n\n",
	} {
		if !strings.Contains(report.Text, want) {
			t.Errorf("Text missing %q\n got: %q", want, report.Text)
		}
	}
}

func TestAllEntries_Empty(t *testing.T) {
	svc := newTestService(time.UTC)

	report, err := svc.AllEntries(context.Background(), nil)
	if err != nil {
		t.Fatalf("AllEntries() error = %v", err)
	}
	if !strings.HasSuffix(report.Markdown, "No entries found.\n") {
		t.Errorf("Markdown = %q", report.Markdown)
	}
	if !strings.HasSuffix(report.Text, "No entries found.\n") {
		t.Errorf("Text = %q", report.Text)
	}
	if report.Entries == nil || report.Groups == nil {
		t.Error("empty report should have non-nil slices")
	}
}

func TestAllEntries_Timezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	svc := newTestService(loc)

	entries := []models.ReportEntry{{
		Date: "2024-01-03", Content: "<p>x</p>",
		CreatedAt: time.Date(2024, 1, 3, 14, 0, 0, 0, time.UTC),
	}}
	report, err := svc.AllEntries(context.Background(), entries)
	if err != nil {
		t.Fatalf("AllEntries() error = %v", err)
	}
	if !strings.Contains(report.Markdown, "### 9:00 AM\n") {
		t.Errorf("time not rendered in configured zone: %q", report.Markdown)
	}
	if !strings.Contains(report.Markdown, "**Generated:** Jan 5, 2024 9:30 AM") {
		t.Errorf("generated time not rendered in configured zone: %q", report.Markdown)
	}
}

func TestWeeks(t *testing.T) {
	svc := newTestService(time.UTC)

	entries := append(testEntries(), models.ReportEntry{
		Date: "2023-12-30", Content: "<p>old</p>", IncludeInReport: true,
	})

	weeks, err := svc.Weeks(context.Background(), entries)
	if err != nil {
		t.Fatalf("Weeks() error = %v", err)
	}

	want := []models.Week{
		{Start: "2024-01-10", End: "2024-01-16", Label: "2024-01-10 to 2024-01-16"},
		{Start: "2024-01-03", End: "2024-01-09", Label: "2024-01-03 to 2024-01-09"},
		{Start: "2023-12-27", End: "2024-01-02", Label: "2023-12-27 to 2024-01-02"},
	}
	if !reflect.DeepEqual(weeks, want) {
		t.Errorf("Weeks() = %+v, want %+v", weeks, want)
	}

	none, err := svc.Weeks(context.Background(), nil)
	if err != nil {
		t.Fatalf("Weeks(nil) error = %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("Weeks(nil) = %#v, want empty slice", none)
	}
}
