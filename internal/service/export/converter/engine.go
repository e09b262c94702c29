package converter

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"

	"trackthething/internal/domain/models"
	exportSvc "trackthething/internal/domain/services/export"
)

// htmlToMarkdownEngine implements MarkdownEngine with html-to-markdown.
// One converter is built per distinct option set and reused.
//
// Thread-safe for concurrent use.
type htmlToMarkdownEngine struct {
	mu         sync.Mutex
	converters map[string]*md.Converter
}

// NewMarkdownEngine creates the default HTML to Markdown engine
func NewMarkdownEngine() exportSvc.MarkdownEngine {
	return &htmlToMarkdownEngine{converters: make(map[string]*md.Converter)}
}

// HTMLToMarkdown converts a sanitized HTML fragment using opts
func (e *htmlToMarkdownEngine) HTMLToMarkdown(html string, opts models.MarkdownOptions) (string, error) {
	conv, err := e.converter(opts)
	if err != nil {
		return "", err
	}
	out, err := conv.ConvertString(html)
	if err != nil {
		return "", err
	}
	// Block rules pad with blank lines; a list ending before a code block leaves three
	return blankLineRun.ReplaceAllString(out, "\n\n"), nil
}

var blankLineRun = regexp.MustCompile(`\n{3,}`)

func (e *htmlToMarkdownEngine) converter(opts models.MarkdownOptions) (*md.Converter, error) {
	key := optionsKey(opts)

	e.mu.Lock()
	defer e.mu.Unlock()

	if conv, ok := e.converters[key]; ok {
		return conv, nil
	}

	conv := md.NewConverter("", true, &md.Options{
		HeadingStyle:     opts.HeadingStyle,
		CodeBlockStyle:   opts.CodeBlockStyle,
		BulletListMarker: opts.BulletListMarker,
		EmDelimiter:      opts.EmDelimiter,
		StrongDelimiter:  opts.StrongDelimiter,
		Fence:            opts.Fence,
	})

	for _, name := range opts.Plugins {
		p, err := pluginByName(name)
		if err != nil {
			return nil, err
		}
		conv.Use(p)
	}
	if opts.CodeBlockStyle == "fenced" {
		conv.AddRules(preRule())
	}

	e.converters[key] = conv
	return conv, nil
}

func optionsKey(opts models.MarkdownOptions) string {
	return strings.Join([]string{
		opts.HeadingStyle, opts.CodeBlockStyle, opts.BulletListMarker,
		opts.EmDelimiter, opts.StrongDelimiter, opts.Fence,
		strings.Join(opts.Plugins, ","),
	}, "|")
}

func pluginByName(name string) (md.Plugin, error) {
	switch name {
	case models.PluginStrikethrough:
		return plugin.Strikethrough("~~"), nil
	case models.PluginTable:
		return plugin.Table(), nil
	case models.PluginTaskList:
		return plugin.TaskListItems(), nil
	case models.PluginGitHub:
		return plugin.GitHubFlavored(), nil
	default:
		return nil, fmt.Errorf("unknown markdown plugin %q", name)
	}
}

// preRule renders code blocks as fences and keeps the editor's
// "language-xxx" class as the info string.
func preRule() md.Rule {
	return md.Rule{
		Filter: []string{"pre"},
		Replacement: func(_ string, s *goquery.Selection, opt *md.Options) *string {
			code := s.Find("code").First()
			lang := languageOf(code)
			if lang == "" {
				lang = languageOf(s)
			}

			raw := strings.TrimRight(s.Text(), "\n")

			fence := opt.Fence
			if fence == "" {
				fence = "```"
			}
			for strings.Contains(raw, fence) {
				fence += fence[:1]
			}

			return md.String("\n\n" + fence + lang + "\n" + raw + "\n" + fence + "\n\n")
		},
	}
}

func languageOf(s *goquery.Selection) string {
	for _, chunk := range strings.Fields(strings.ToLower(s.AttrOr("class", ""))) {
		if lang, ok := strings.CutPrefix(chunk, "language-"); ok {
			return lang
		}
		if lang, ok := strings.CutPrefix(chunk, "lang-"); ok {
			return lang
		}
	}
	return ""
}
