package models

// Format identifies a textual export representation
type Format string

const (
	FormatJira     Format = "jira"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Formats lists every export format in display order
var Formats = []Format{FormatJira, FormatMarkdown, FormatText}

// ConversionResult is the output of a single conversion
type ConversionResult struct {
	Format    Format `json:"format"`
	Text      string `json:"text"`
	WordCount int    `json:"word_count"` // Words in the plain-text rendering of the body
}

// MarkdownOptions configures the HTML to Markdown engine.
// Field names follow the engine's option names.
type MarkdownOptions struct {
	HeadingStyle     string   `yaml:"heading_style" json:"heading_style"`           // "atx" or "setext"
	CodeBlockStyle   string   `yaml:"code_block_style" json:"code_block_style"`     // "fenced" or "indented"
	BulletListMarker string   `yaml:"bullet_list_marker" json:"bullet_list_marker"` // "-", "*" or "+"
	EmDelimiter      string   `yaml:"em_delimiter" json:"em_delimiter"`             // "*" or "_"
	StrongDelimiter  string   `yaml:"strong_delimiter" json:"strong_delimiter"`     // "**" or "__"
	Fence            string   `yaml:"fence" json:"fence"`                           // "```" or "~~~"
	Plugins          []string `yaml:"plugins" json:"plugins,omitempty"`             // e.g. "strikethrough", "table"
}

// Markdown engine plugins a profile may enable
const (
	PluginStrikethrough = "strikethrough"
	PluginTable         = "table"
	PluginTaskList      = "task_list"
	PluginGitHub        = "github"
)

// MarkdownPlugins returns the plugin names a profile may list
func MarkdownPlugins() []string {
	return []string{PluginStrikethrough, PluginTable, PluginTaskList, PluginGitHub}
}

// DefaultMarkdownOptions returns the option set used when no profile is configured
func DefaultMarkdownOptions() MarkdownOptions {
	return MarkdownOptions{
		HeadingStyle:     "atx",
		CodeBlockStyle:   "fenced",
		BulletListMarker: "-",
		EmDelimiter:      "*",
		StrongDelimiter:  "**",
		Fence:            "```",
	}
}
