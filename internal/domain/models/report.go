package models

import "time"

// ReportEntry is one journal entry as submitted for report generation
type ReportEntry struct {
	Date            string      `json:"date"` // YYYY-MM-DD of the daily note
	EntryID         int64       `json:"entry_id"`
	Title           string      `json:"title,omitempty"`
	Content         string      `json:"content"`
	ContentType     ContentType `json:"content_type"`
	Labels          []Label     `json:"labels"`
	CreatedAt       time.Time   `json:"created_at"`
	IsCompleted     bool        `json:"is_completed"`
	IsImportant     bool        `json:"is_important"`
	IncludeInReport bool        `json:"include_in_report"`
}

// Document returns the conversion input for the entry body (no title line)
func (e *ReportEntry) Document() *Document {
	return &Document{Content: e.Content, ContentType: e.ContentType}
}

// LabelNames returns the label names in submission order
func (e *ReportEntry) LabelNames() []string {
	names := make([]string, 0, len(e.Labels))
	for _, l := range e.Labels {
		names = append(names, l.Name)
	}
	return names
}

// DateGroup is a run of entries sharing the same date
type DateGroup struct {
	Date    string        `json:"date"`
	Entries []ReportEntry `json:"entries"`
}

// WeeklyReport covers one Wednesday-to-Wednesday week
type WeeklyReport struct {
	WeekStart   string        `json:"week_start"`
	WeekEnd     string        `json:"week_end"` // Inclusive display end (start + 6 days)
	GeneratedAt time.Time     `json:"generated_at"`
	Entries     []ReportEntry `json:"entries"`
	Completed   []DateGroup   `json:"completed"`
	InProgress  []DateGroup   `json:"in_progress"`
	Markdown    string        `json:"markdown"`
	Text        ReportText    `json:"text"`
}

// ReportText holds the plain-text copy variants of a weekly report
type ReportText struct {
	Completed  string `json:"completed"`
	InProgress string `json:"in_progress"`
}

// AllEntriesReport lists every submitted entry regardless of report flags
type AllEntriesReport struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Entries     []ReportEntry `json:"entries"`
	Groups      []DateGroup   `json:"groups"`
	Markdown    string        `json:"markdown"`
	Text        string        `json:"text"`
}

// Week is a reportable week
type Week struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}
