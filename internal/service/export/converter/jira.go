package converter

import (
	"context"
	"strings"

	"golang.org/x/net/html"

	"trackthething/internal/domain/models"
	exportSvc "trackthething/internal/domain/services/export"
)

// jiraConverter renders entries as Jira/Confluence wiki markup.
// It is a best-effort, one-way translation driven by jiraRules.
type jiraConverter struct {
	source exportSvc.SourceRenderer
}

// NewJiraConverter creates a Jira converter. source renders Markdown-typed
// entries to HTML before the rule table runs; it may be nil when such entries
// are not expected.
func NewJiraConverter(source exportSvc.SourceRenderer) exportSvc.Converter {
	return &jiraConverter{source: source}
}

// Convert never fails on content; an error is returned only when ctx is done
// or a Markdown-typed entry cannot be rendered.
func (c *jiraConverter) Convert(ctx context.Context, doc *models.Document) (*models.ConversionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var body string
	switch {
	case doc.IsCode():
		body = "{code}\n" + doc.Content + "\n{code}"
	case doc.IsMarkdown() && c.source != nil:
		rendered, err := c.source.RenderHTML(doc.Content)
		if err != nil {
			return nil, err
		}
		body = HTMLToJira(rendered)
	default:
		body = HTMLToJira(doc.Content)
	}

	text := body
	if doc.Title != "" {
		text = "h1. " + doc.Title + "\n\n" + body
	}

	return &models.ConversionResult{
		Format:    models.FormatJira,
		Text:      text,
		WordCount: bodyWordCount(doc, c.source),
	}, nil
}

func (c *jiraConverter) Format() models.Format { return models.FormatJira }

func (c *jiraConverter) Name() string { return "jira" }

// HTMLToJira converts an editor HTML fragment to Jira wiki markup
func HTMLToJira(fragment string) string {
	out := fragment
	for _, rule := range jiraRules {
		out = rule.apply(out)
	}

	out = StripTags(out)
	out = html.UnescapeString(out)
	out = blankRunPattern.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
