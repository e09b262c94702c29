package converter

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"trackthething/internal/domain"
	"trackthething/internal/domain/models"
)

func TestConverterRegistry(t *testing.T) {
	registry := NewDefaultRegistry(NewMarkdownEngine(), NewSourceRenderer(), nil, "")

	want := []models.Format{models.FormatJira, models.FormatMarkdown, models.FormatText}
	if got := registry.Formats(); !reflect.DeepEqual(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}

	tests := []struct {
		format models.Format
		name   string
	}{
		{"jira", "jira"},
		{"JIRA", "jira"},
		{" markdown ", "markdown"},
		{"text", "plaintext"},
	}
	for _, tt := range tests {
		conv := registry.GetConverter(tt.format)
		if conv == nil {
			t.Errorf("GetConverter(%q) = nil", tt.format)
			continue
		}
		if conv.Name() != tt.name {
			t.Errorf("GetConverter(%q).Name() = %q, want %q", tt.format, conv.Name(), tt.name)
		}
	}

	if conv := registry.GetConverter("html"); conv != nil {
		t.Errorf("GetConverter(html) = %v, want nil", conv)
	}
}

func TestConverterRegistry_Convert(t *testing.T) {
	registry := NewDefaultRegistry(NewMarkdownEngine(), NewSourceRenderer(), nil, "")
	ctx := context.Background()
	doc := &models.Document{Title: "My Entry", Content: "<p>Hello</p>"}

	result, err := registry.Convert(ctx, models.FormatJira, doc)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if result.Text != "h1. My Entry\n\nHello" {
		t.Errorf("Text = %q", result.Text)
	}

	_, err = registry.Convert(ctx, "docx", doc)
	if !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("error = %v, want ErrUnsupportedFormat", err)
	}
	if !strings.Contains(err.Error(), "docx") {
		t.Errorf("error %q does not name the format", err)
	}
}

func TestSourceRenderer(t *testing.T) {
	html, err := NewSourceRenderer().RenderHTML("# Hi\n\n**b** ~~s~~")
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	for _, want := range []string{"<h1>Hi</h1>", "<strong>b</strong>", "<del>s</del>"} {
		if !strings.Contains(html, want) {
			t.Errorf("RenderHTML() = %q, missing %q", html, want)
		}
	}
}
