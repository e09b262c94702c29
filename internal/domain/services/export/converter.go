package export

import (
	"context"

	"trackthething/internal/domain/models"
)

// Converter renders a document into one export format.
//
// Implementations should be stateless and thread-safe. Conversion of content
// never fails on malformed markup; errors are reserved for cancellation and
// delegate failures.
type Converter interface {
	// Convert renders doc into the converter's format.
	Convert(ctx context.Context, doc *models.Document) (*models.ConversionResult, error)

	// Format returns the format this converter produces.
	Format() models.Format

	// Name returns a human-readable converter name for logging/debugging.
	Name() string
}

// MarkdownEngine converts an HTML fragment to Markdown.
// Any conformant HTML to Markdown library can sit behind it.
type MarkdownEngine interface {
	HTMLToMarkdown(html string, opts models.MarkdownOptions) (string, error)
}

// SourceRenderer turns Markdown source into an HTML fragment so that
// Markdown-typed entries can share the HTML-based converters.
type SourceRenderer interface {
	RenderHTML(markdown string) (string, error)
}
