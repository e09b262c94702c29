package export

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"trackthething/internal/config"
	"trackthething/internal/domain"
	"trackthething/internal/domain/models"
	exportSvc "trackthething/internal/domain/services/export"
	"trackthething/internal/profiles"
	"trackthething/internal/service/export/converter"
)

func newTestService(t *testing.T) exportSvc.ExportService {
	t.Helper()

	profileRegistry, err := profiles.NewRegistry()
	if err != nil {
		t.Fatalf("profiles.NewRegistry() error = %v", err)
	}

	registry := converter.NewDefaultRegistry(
		converter.NewMarkdownEngine(),
		converter.NewSourceRenderer(),
		profileRegistry,
		"default",
	)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewExportService(registry, profileRegistry, logger)
}

func TestExportService_Export(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		format models.Format
		req    exportSvc.ExportRequest
		want   string
	}{
		{
			name:   "jira with title",
			format: models.FormatJira,
			req:    exportSvc.ExportRequest{Title: "My Entry", Content: "<p>Hello</p>"},
			want:   "h1. My Entry\n\nHello",
		},
		{
			name:   "markdown code entry",
			format: models.FormatMarkdown,
			req:    exportSvc.ExportRequest{Content: `print("hi")`, ContentType: models.ContentTypeCode},
			want:   "```\nprint(\"hi\")\n```",
		},
		{
			name:   "text",
			format: models.FormatText,
			req:    exportSvc.ExportRequest{Content: `<p>See <a href="http://x">this</a>.</p>`},
			want:   "See this (http://x) .",
		},
		{
			name:   "jira title kept verbatim",
			format: models.FormatJira,
			req:    exportSvc.ExportRequest{Title: "Use List<String> here", Content: "<p>Hello</p>"},
			want:   "h1. Use List<String> here\n\nHello",
		},
		{
			name:   "markdown title kept verbatim",
			format: models.FormatMarkdown,
			req:    exportSvc.ExportRequest{Title: "Use List<String> here", Content: "<p>Hello</p>"},
			want:   "# Use List<String> here\n\nHello",
		},
		{
			name:   "text title kept verbatim",
			format: models.FormatText,
			req:    exportSvc.ExportRequest{Title: "Tom &amp; <b>Jerry</b>", Content: "<p>Hello</p>"},
			want:   "Tom &amp; <b>Jerry</b>\n\nHello",
		},
		{
			name:   "format is case-insensitive",
			format: "JIRA",
			req:    exportSvc.ExportRequest{Content: "<ul><li>One</li><li>Two</li></ul>"},
			want:   "* One\n* Two",
		},
		{
			name:   "markdown with profile",
			format: models.FormatMarkdown,
			req:    exportSvc.ExportRequest{Content: "<p><em>soft</em></p>", Profile: "github"},
			want:   "_soft_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			result, err := svc.Export(ctx, tt.format, &req)
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if result.Text != tt.want {
				t.Errorf("Text\n got: %q\nwant: %q", result.Text, tt.want)
			}
		})
	}
}

func TestExportService_Errors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		format  models.Format
		req     exportSvc.ExportRequest
		wantErr error
	}{
		{
			name:    "unknown format",
			format:  "docx",
			req:     exportSvc.ExportRequest{Content: "<p>x</p>"},
			wantErr: domain.ErrUnsupportedFormat,
		},
		{
			name:    "unknown content type",
			format:  models.FormatJira,
			req:     exportSvc.ExportRequest{Content: "x", ContentType: "binary"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "title too long",
			format:  models.FormatJira,
			req:     exportSvc.ExportRequest{Title: strings.Repeat("t", config.MaxTitleLength+1)},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "content too large",
			format:  models.FormatText,
			req:     exportSvc.ExportRequest{Content: strings.Repeat("x", config.MaxContentLength+1)},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown profile",
			format:  models.FormatMarkdown,
			req:     exportSvc.ExportRequest{Content: "<p>x</p>", Profile: "nope"},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.Export(ctx, tt.format, &req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Export() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExportService_Formats(t *testing.T) {
	svc := newTestService(t)
	if got := len(svc.Formats()); got != 3 {
		t.Errorf("Formats() returned %d formats, want 3", got)
	}
}
