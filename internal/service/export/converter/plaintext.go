package converter

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"trackthething/internal/domain/models"
	exportSvc "trackthething/internal/domain/services/export"
	"trackthething/internal/utils"
)

var (
	horizontalSpacePattern = regexp.MustCompile(`[^\S\n]+`)
	newlineSpacePattern    = regexp.MustCompile(` ?\n ?`)
)

// textConverter renders entries as plain text for clipboard copy and flat reports
type textConverter struct {
	source exportSvc.SourceRenderer
}

// NewTextConverter creates a plain-text converter. source renders
// Markdown-typed entries to HTML first; it may be nil.
func NewTextConverter(source exportSvc.SourceRenderer) exportSvc.Converter {
	return &textConverter{source: source}
}

// Convert extracts readable text, keeping link targets and image alt text.
// Code entries are returned verbatim.
func (c *textConverter) Convert(ctx context.Context, doc *models.Document) (*models.ConversionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := plainBody(doc, c.source)
	if err != nil {
		return nil, err
	}

	text := body
	if doc.Title != "" {
		text = strings.TrimSpace(doc.Title + "\n\n" + body)
	}

	return &models.ConversionResult{
		Format:    models.FormatText,
		Text:      text,
		WordCount: utils.CountTextWords(body),
	}, nil
}

func (c *textConverter) Format() models.Format { return models.FormatText }

func (c *textConverter) Name() string { return "plaintext" }

// plainBody returns the plain-text rendering of an entry body
func plainBody(doc *models.Document, source exportSvc.SourceRenderer) (string, error) {
	switch {
	case doc.IsCode():
		return doc.Content, nil
	case doc.IsMarkdown() && source != nil:
		rendered, err := source.RenderHTML(doc.Content)
		if err != nil {
			return "", err
		}
		return ExtractText(rendered), nil
	default:
		return ExtractText(doc.Content), nil
	}
}

// bodyWordCount counts body words for converters that do not otherwise
// produce plain text. Render failures count as zero words.
func bodyWordCount(doc *models.Document, source exportSvc.SourceRenderer) int {
	body, err := plainBody(doc, source)
	if err != nil {
		return 0
	}
	return utils.CountTextWords(body)
}

// ExtractText converts an HTML fragment to plain text. Links become
// "text (url)", images "[Image: alt]"; other formatting is dropped.
func ExtractText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	nodes, err := parseFragment(fragment)
	if err != nil {
		// Tokenizer-level failure: fall back to tag stripping
		return normalizeText(html.UnescapeString(StripTags(fragment)))
	}

	var out strings.Builder
	for _, n := range nodes {
		writeText(&out, n)
	}
	return normalizeText(out.String())
}

// parseFragment parses HTML in a <body> context with browser error recovery
func parseFragment(fragment string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	return html.ParseFragment(strings.NewReader(fragment), body)
}

func writeText(out *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		// Source indentation and line wrapping inside a text node are not content
		if t := collapseSpace(n.Data); t != "" {
			out.WriteString(t)
			out.WriteString(" ")
		}
		return
	case html.ElementNode:
	default:
		// comments, doctypes
		return
	}

	switch n.DataAtom {
	case atom.A:
		href := strings.TrimSpace(attr(n, "href"))
		label := collapseSpace(textContent(n))
		if href == "" {
			if label != "" {
				out.WriteString(label + " ")
			}
			return
		}
		if label == "" {
			label = href
		}
		out.WriteString(label + " (" + href + ") ")
	case atom.Img:
		label := strings.TrimSpace(attr(n, "alt"))
		if label == "" {
			label = strings.TrimSpace(attr(n, "src"))
		}
		out.WriteString("[Image: " + label + "] ")
	case atom.Br:
		out.WriteString("\n")
	case atom.P, atom.Div:
		writeChildren(out, n)
		out.WriteString("\n")
	default:
		writeChildren(out, n)
	}
}

func writeChildren(out *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(out, c)
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// textContent returns the concatenated text of n's subtree
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// normalizeText collapses horizontal whitespace runs to one space. Unlike a
// plain \s+ collapse it keeps the newlines emitted for <br>, <p> and <div>,
// so "<p>a</p><p>b</p>" yields "a\nb" rather than "a b".
func normalizeText(s string) string {
	s = horizontalSpacePattern.ReplaceAllString(s, " ")
	s = newlineSpacePattern.ReplaceAllString(s, "\n")
	s = blankRunPattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
