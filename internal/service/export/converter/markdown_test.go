package converter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"trackthething/internal/domain/models"
)

type profileMap map[string]models.MarkdownOptions

func (p profileMap) Options(name string) (models.MarkdownOptions, bool) {
	opts, ok := p[name]
	return opts, ok
}

// recordingEngine captures what the converter hands to the engine
type recordingEngine struct {
	html string
	opts models.MarkdownOptions
	err  error
}

func (e *recordingEngine) HTMLToMarkdown(html string, opts models.MarkdownOptions) (string, error) {
	e.html = html
	e.opts = opts
	return "converted", e.err
}

func TestMarkdownConverter_Convert(t *testing.T) {
	conv := NewMarkdownConverter(NewMarkdownEngine(), nil, "")
	ctx := context.Background()

	tests := []struct {
		name string
		doc  models.Document
		want string
	}{
		{
			name: "marks",
			doc:  models.Document{Content: "<p><strong>Bold</strong> and <em>italic</em></p>"},
			want: "**Bold** and *italic*",
		},
		{
			name: "title and heading",
			doc:  models.Document{Title: "My Entry", Content: "<h2>Sub</h2><p>Body</p>"},
			want: "# My Entry\n\n## Sub\n\nBody",
		},
		{
			name: "bullet list",
			doc:  models.Document{Content: "<ul><li>One</li><li>Two</li></ul>"},
			want: "- One\n- Two",
		},
		{
			name: "code block keeps language",
			doc:  models.Document{Content: `<pre><code class="language-go">fmt.Println(1)</code></pre>`},
			want: "```go\nfmt.Println(1)\n```",
		},
		{
			name: "code entry",
			doc:  models.Document{Content: `print("hi")`, ContentType: models.ContentTypeCode},
			want: "```\nprint(\"hi\")\n```",
		},
		{
			name: "markdown entry passes through",
			doc:  models.Document{Title: "Notes", Content: "  * keep _this_  ", ContentType: models.ContentTypeMarkdown},
			want: "# Notes\n\n* keep _this_",
		},
		{
			name: "title only",
			doc:  models.Document{Title: "Empty", Content: "   "},
			want: "# Empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := tt.doc
			result, err := conv.Convert(ctx, &doc)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if result.Format != models.FormatMarkdown {
				t.Errorf("Format = %q, want markdown", result.Format)
			}
			if result.Text != tt.want {
				t.Errorf("Text\n got: %q\nwant: %q", result.Text, tt.want)
			}
		})
	}
}

func TestMarkdownConverter_CodeWordCount(t *testing.T) {
	conv := NewMarkdownConverter(&recordingEngine{}, nil, "")
	doc := &models.Document{Content: "go test ./...", ContentType: models.ContentTypeCode}

	result, err := conv.Convert(context.Background(), doc)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if result.WordCount != 2 {
		t.Errorf("WordCount = %d, want 2", result.WordCount)
	}
}

func TestMarkdownConverter_SanitizesBeforeEngine(t *testing.T) {
	engine := &recordingEngine{}
	conv := NewMarkdownConverter(engine, nil, "")

	doc := &models.Document{Content: `<p onclick="steal()">Hi</p><script>alert(1)</script><a href="javascript:alert(1)">x</a>`}
	if _, err := conv.Convert(context.Background(), doc); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	for _, bad := range []string{"onclick", "<script", "alert", "javascript:"} {
		if strings.Contains(engine.html, bad) {
			t.Errorf("engine received %q, contains %q", engine.html, bad)
		}
	}
	if !strings.Contains(engine.html, "Hi") {
		t.Errorf("engine received %q, text lost", engine.html)
	}
}

func TestMarkdownConverter_Profiles(t *testing.T) {
	github := models.DefaultMarkdownOptions()
	github.BulletListMarker = "*"
	profiles := profileMap{
		"default": models.DefaultMarkdownOptions(),
		"github":  github,
	}

	engine := &recordingEngine{}
	conv := NewMarkdownConverter(engine, profiles, "default")
	doc := &models.Document{Content: "<p>x</p>"}

	if _, err := conv.Convert(context.Background(), doc); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if engine.opts.BulletListMarker != "-" {
		t.Errorf("default profile marker = %q, want -", engine.opts.BulletListMarker)
	}

	if _, err := conv.ConvertWithProfile(context.Background(), doc, "github"); err != nil {
		t.Fatalf("ConvertWithProfile() error = %v", err)
	}
	if engine.opts.BulletListMarker != "*" {
		t.Errorf("github profile marker = %q, want *", engine.opts.BulletListMarker)
	}

	if _, err := conv.ConvertWithProfile(context.Background(), doc, "nope"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestMarkdownConverter_EngineError(t *testing.T) {
	engineErr := errors.New("boom")
	conv := NewMarkdownConverter(&recordingEngine{err: engineErr}, nil, "")

	_, err := conv.Convert(context.Background(), &models.Document{Content: "<p>x</p>"})
	if !errors.Is(err, engineErr) {
		t.Errorf("error = %v, want wrapped engine error", err)
	}
}

func TestMarkdownEngine_Plugins(t *testing.T) {
	engine := NewMarkdownEngine()

	opts := models.DefaultMarkdownOptions()
	opts.Plugins = []string{"strikethrough"}
	got, err := engine.HTMLToMarkdown("<p><del>old</del> new</p>", opts)
	if err != nil {
		t.Fatalf("HTMLToMarkdown() error = %v", err)
	}
	if !strings.Contains(got, "~~old~~") {
		t.Errorf("strikethrough plugin not applied: %q", got)
	}

	opts.Plugins = []string{"no-such-plugin"}
	if _, err := engine.HTMLToMarkdown("<p>x</p>", opts); err == nil {
		t.Error("expected error for unknown plugin")
	}
}

func TestMarkdownEngine_ListBeforeCodeBlock(t *testing.T) {
	engine := NewMarkdownEngine()

	got, err := engine.HTMLToMarkdown(
		`<ul><li>a</li></ul><pre><code class="language-go">x := 1</code></pre><p>after</p>`,
		models.DefaultMarkdownOptions(),
	)
	if err != nil {
		t.Fatalf("HTMLToMarkdown() error = %v", err)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("output has a run of blank lines: %q", got)
	}
	if !strings.Contains(got, "- a\n\n```go\nx := 1\n```") {
		t.Errorf("list and fence not separated by one blank line: %q", got)
	}
}
