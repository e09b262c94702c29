package converter

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	exportSvc "trackthething/internal/domain/services/export"
)

// goldmarkRenderer renders Markdown-typed entries to HTML.
// Raw HTML inside the Markdown is omitted by goldmark's default renderer.
type goldmarkRenderer struct {
	md goldmark.Markdown
}

// NewSourceRenderer creates a GFM Markdown renderer
func NewSourceRenderer() exportSvc.SourceRenderer {
	return &goldmarkRenderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// RenderHTML converts Markdown source to an HTML fragment
func (r *goldmarkRenderer) RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
