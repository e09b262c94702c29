package models

// ContentType is the storage format of an entry's content
type ContentType string

const (
	ContentTypeRichText ContentType = "rich_text" // HTML fragment emitted by the editor
	ContentTypeCode     ContentType = "code"      // Raw source text, never parsed as HTML
	ContentTypeMarkdown ContentType = "markdown"  // Markdown source
)

// Document is the input of a single conversion: an entry's optional title plus its content.
// Title is empty when the entry has none.
type Document struct {
	Title       string      `json:"title,omitempty"`
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type,omitempty"`
}

// IsCode reports whether the content is raw source text
func (d *Document) IsCode() bool {
	return d.ContentType == ContentTypeCode
}

// IsMarkdown reports whether the content is Markdown source
func (d *Document) IsMarkdown() bool {
	return d.ContentType == ContentTypeMarkdown
}

// Label is an entry label as carried in report payloads
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}
