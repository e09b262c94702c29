package sanitizer

import "github.com/microcosm-cc/bluemonday"

// HTMLSanitizer strips unsafe markup from editor HTML before it reaches
// the Markdown engine.
//
// Thread-safe for concurrent use.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewHTMLSanitizer creates a sanitizer for rich-text entry bodies.
// The UGC policy keeps formatting, links, lists, tables and code blocks.
// Pasted screenshots arrive as data: URIs, so those are allowed on <img>.
func NewHTMLSanitizer() *HTMLSanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowDataURIImages()
	// language-xxx on <pre>/<code> drives the fence info string
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("pre", "code")

	return &HTMLSanitizer{policy: policy}
}

// Sanitize removes script tags, event handlers, javascript: URLs and
// anything else the policy does not allow.
func (s *HTMLSanitizer) Sanitize(fragment string) (string, error) {
	return s.policy.Sanitize(fragment), nil
}
