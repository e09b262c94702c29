package converter

import (
	"context"
	"fmt"
	"strings"

	"trackthething/internal/domain/models"
	exportSvc "trackthething/internal/domain/services/export"
	"trackthething/internal/service/export/converter/sanitizer"
	"trackthething/internal/utils"
)

// ProfileLookup resolves a Markdown profile name to engine options
type ProfileLookup interface {
	Options(name string) (models.MarkdownOptions, bool)
}

// MarkdownConverter assembles "# title" plus a Markdown body.
// Rich-text bodies go through two stages:
// 1. Sanitize the fragment (script tags, event handlers, javascript: URLs)
// 2. Convert the sanitized fragment with the Markdown engine
type MarkdownConverter struct {
	engine    exportSvc.MarkdownEngine
	sanitizer *sanitizer.HTMLSanitizer
	profiles  ProfileLookup
	profile   string
}

// NewMarkdownConverter creates a Markdown converter that renders rich text
// with the options of the named default profile.
func NewMarkdownConverter(engine exportSvc.MarkdownEngine, profiles ProfileLookup, defaultProfile string) *MarkdownConverter {
	return &MarkdownConverter{
		engine:    engine,
		sanitizer: sanitizer.NewHTMLSanitizer(),
		profiles:  profiles,
		profile:   defaultProfile,
	}
}

// Convert renders doc with the default profile
func (c *MarkdownConverter) Convert(ctx context.Context, doc *models.Document) (*models.ConversionResult, error) {
	return c.ConvertWithProfile(ctx, doc, "")
}

// ConvertWithProfile renders doc with the named profile; an empty name
// selects the default profile.
func (c *MarkdownConverter) ConvertWithProfile(ctx context.Context, doc *models.Document, profile string) (*models.ConversionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := c.body(doc, profile)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if doc.Title != "" {
		b.WriteString("# ")
		b.WriteString(doc.Title)
		b.WriteString("\n\n")
	}
	b.WriteString(body)

	words := utils.CountWords(body)
	if doc.IsCode() {
		words = utils.CountTextWords(doc.Content)
	}

	return &models.ConversionResult{
		Format:    models.FormatMarkdown,
		Text:      strings.TrimSpace(b.String()),
		WordCount: words,
	}, nil
}

// Body renders only the entry body, as used inside reports
func (c *MarkdownConverter) Body(doc *models.Document) (string, error) {
	return c.body(doc, "")
}

func (c *MarkdownConverter) body(doc *models.Document, profile string) (string, error) {
	switch {
	case doc.IsCode():
		return "```\n" + doc.Content + "\n```", nil
	case doc.IsMarkdown():
		return strings.TrimSpace(doc.Content), nil
	}

	if strings.TrimSpace(doc.Content) == "" {
		return "", nil
	}

	opts, err := c.options(profile)
	if err != nil {
		return "", err
	}

	sanitized, err := c.sanitizer.Sanitize(doc.Content)
	if err != nil {
		return "", fmt.Errorf("failed to sanitize HTML: %w", err)
	}

	markdown, err := c.engine.HTMLToMarkdown(sanitized, opts)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

func (c *MarkdownConverter) options(profile string) (models.MarkdownOptions, error) {
	if profile == "" {
		profile = c.profile
	}
	if c.profiles == nil {
		return models.DefaultMarkdownOptions(), nil
	}
	opts, ok := c.profiles.Options(profile)
	if !ok {
		return models.MarkdownOptions{}, fmt.Errorf("unknown markdown profile %q", profile)
	}
	return opts, nil
}

func (c *MarkdownConverter) Format() models.Format { return models.FormatMarkdown }

func (c *MarkdownConverter) Name() string { return "markdown" }
