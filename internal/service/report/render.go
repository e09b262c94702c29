package report

import (
	"context"
	"fmt"
	"strings"

	"trackthething/internal/domain/models"
)

const (
	generatedLayout = "Jan 2, 2006 3:04 PM"
	timeLayout      = "3:04 PM"
)

var (
	heavyRule = strings.Repeat("=", 60)
	lightRule = strings.Repeat("-", 60)
)

type section int

const (
	sectionCompleted section = iota
	sectionInProgress
)

// renderer writes report documents for a single request
type renderer struct {
	ctx context.Context
	svc *reportService
}

func (s *reportService) newRenderer(ctx context.Context) *renderer {
	return &renderer{ctx: ctx, svc: s}
}

// markdownBody renders an entry body, preceded by its bold title if any
func (r *renderer) markdownBody(e *models.ReportEntry) (string, error) {
	result, err := r.svc.markdown.Convert(r.ctx, e.Document())
	if err != nil {
		return "", fmt.Errorf("render entry %d: %w", e.EntryID, err)
	}
	if e.Title == "" {
		return result.Text, nil
	}
	if result.Text == "" {
		return "**" + e.Title + "**", nil
	}
	return "**" + e.Title + "**\n\n" + result.Text, nil
}

// labels joins the entry's label names for a "Labels:" line
func (r *renderer) labels(e *models.ReportEntry) string {
	return strings.Join(e.LabelNames(), ", ")
}

// textBody renders an entry body as plain text, preceded by its title if any
func (r *renderer) textBody(e *models.ReportEntry) (string, error) {
	doc := e.Document()
	doc.Title = e.Title
	result, err := r.svc.text.Convert(r.ctx, doc)
	if err != nil {
		return "", fmt.Errorf("render entry %d: %w", e.EntryID, err)
	}
	return result.Text, nil
}

func (r *renderer) weeklyMarkdown(report *models.WeeklyReport) (string, error) {
	var b strings.Builder
	b.WriteString("# Weekly Report\n\n")
	fmt.Fprintf(&b, "**Week:** %s to %s\n\n", report.WeekStart, report.WeekEnd)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", report.GeneratedAt.Format(generatedLayout))
	b.WriteString("---\n\n")

	if len(report.Entries) == 0 {
		b.WriteString("No entries marked for report this week.\n")
		return b.String(), nil
	}

	b.WriteString("## ✓ Completed\n\n")
	if err := r.markdownGroups(&b, report.Completed, "*No completed items*\n\n"); err != nil {
		return "", err
	}

	b.WriteString("\n## ⚙ In Progress\n\n")
	if err := r.markdownGroups(&b, report.InProgress, "*No items in progress*\n\n"); err != nil {
		return "", err
	}

	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

func (r *renderer) markdownGroups(b *strings.Builder, groups []models.DateGroup, empty string) error {
	if len(groups) == 0 {
		b.WriteString(empty)
		return nil
	}
	for _, g := range groups {
		fmt.Fprintf(b, "\n### %s\n\n", g.Date)
		for i := range g.Entries {
			body, err := r.markdownBody(&g.Entries[i])
			if err != nil {
				return err
			}
			b.WriteString(body)
			b.WriteString("\n\n")
			if labels := r.labels(&g.Entries[i]); labels != "" {
				fmt.Fprintf(b, "*Labels: %s*\n\n", labels)
			}
		}
	}
	return nil
}

// sectionText renders one weekly section in the clipboard copy format
func (r *renderer) sectionText(sec section, groups []models.DateGroup) (string, error) {
	var b strings.Builder
	if sec == sectionCompleted {
		b.WriteString("✓ Completed\n\n")
	} else {
		b.WriteString("⚙ In Progress\n\n")
	}

	if len(groups) == 0 {
		if sec == sectionCompleted {
			b.WriteString("No completed items\n")
		} else {
			b.WriteString("No in progress items\n")
		}
		return b.String(), nil
	}

	for _, g := range groups {
		fmt.Fprintf(&b, "\n%s\n\n", g.Date)
		for i := range g.Entries {
			body, err := r.textBody(&g.Entries[i])
			if err != nil {
				return "", err
			}
			b.WriteString(body)
			b.WriteString("\n\n")
			if labels := r.labels(&g.Entries[i]); labels != "" {
				fmt.Fprintf(&b, "Labels: %s\n\n", labels)
			}
		}
	}
	return b.String(), nil
}

func (r *renderer) allEntriesMarkdown(report *models.AllEntriesReport) (string, error) {
	var b strings.Builder
	b.WriteString("# All Entries Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", report.GeneratedAt.Format(generatedLayout))
	fmt.Fprintf(&b, "**Total Entries:** %d\n\n", len(report.Entries))
	b.WriteString("---\n\n")

	if len(report.Entries) == 0 {
		b.WriteString("No entries found.\n")
		return b.String(), nil
	}

	for _, g := range report.Groups {
		fmt.Fprintf(&b, "\n## %s\n\n", g.Date)
		for i := range g.Entries {
			e := &g.Entries[i]
			fmt.Fprintf(&b, "### %s%s\n\n", e.CreatedAt.In(r.svc.location).Format(timeLayout), markers(e))
			if labels := r.labels(e); labels != "" {
				fmt.Fprintf(&b, "*Labels: %s*\n\n", labels)
			}
			body, err := r.markdownBody(e)
			if err != nil {
				return "", err
			}
			b.WriteString(body)
			b.WriteString("\n\n---\n\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

func (r *renderer) allEntriesText(report *models.AllEntriesReport) (string, error) {
	var b strings.Builder
	b.WriteString("All Entries Report\n\n")
	fmt.Fprintf(&b, "Total Entries: %d\n\n", len(report.Entries))
	b.WriteString(heavyRule + "\n\n")

	if len(report.Entries) == 0 {
		b.WriteString("No entries found.\n")
		return b.String(), nil
	}

	for _, g := range report.Groups {
		fmt.Fprintf(&b, "\n%s\n%s\n\n", g.Date, heavyRule)
		for i := range g.Entries {
			e := &g.Entries[i]
			b.WriteString(e.CreatedAt.In(r.svc.location).Format(timeLayout) + markers(e) + "\n")
			if labels := r.labels(e); labels != "" {
				fmt.Fprintf(&b, "Labels: %s\n", labels)
			}
			b.WriteString("\n")
			body, err := r.textBody(e)
			if err != nil {
				return "", err
			}
			b.WriteString(body)
			b.WriteString("\n\n" + lightRule + "\n\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

// markers returns the importance and completion suffix of a time heading
func markers(e *models.ReportEntry) string {
	var m string
	if e.IsImportant {
		m += " ⭐"
	}
	if e.IsCompleted {
		m += " ✓"
	}
	return m
}
