package converter

import (
	"regexp"
	"strconv"
	"strings"
)

// ElementRule maps one HTML construct to Jira wiki markup.
// Exactly one of Template or Replace is set.
type ElementRule struct {
	Name     string
	Pattern  *regexp.Regexp
	Template string
	Replace  func(match []string) string
}

// apply runs the rule over the whole string
func (r ElementRule) apply(s string) string {
	if r.Replace == nil {
		return r.Pattern.ReplaceAllString(s, r.Template)
	}
	return r.Pattern.ReplaceAllStringFunc(s, func(m string) string {
		return r.Replace(r.Pattern.FindStringSubmatch(m))
	})
}

// attrs matches the optional attribute list of an opening tag without
// letting <b> match <br> or <p> match <pre>.
const attrs = `(?:\s[^>]*)?`

var (
	tagPattern       = regexp.MustCompile(`<[^>]+>`)
	blankRunPattern  = regexp.MustCompile(`\n{3,}`)
	listItemPattern  = regexp.MustCompile(`(?is)<li` + attrs + `>(.*?)</li>`)
	itemParaPattern  = regexp.MustCompile(`(?i)</?p` + attrs + `>`)
	itemSpacePattern = regexp.MustCompile(`\s+`)
	hrefPattern      = regexp.MustCompile(`(?is)\shref\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	srcPattern       = regexp.MustCompile(`(?is)\ssrc\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	altPattern       = regexp.MustCompile(`(?is)\salt\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// jiraRules is applied top to bottom. Later rules see the output of earlier
// ones, and every block rule must run before tags are stripped.
var jiraRules = []ElementRule{
	heading(1), heading(2), heading(3), heading(4), heading(5), heading(6),
	{
		Name:     "bold",
		Pattern:  regexp.MustCompile(`(?i)<(?:strong|b)` + attrs + `>(.*?)</(?:strong|b)>`),
		Template: "*${1}*",
	},
	{
		Name:     "italic",
		Pattern:  regexp.MustCompile(`(?i)<(?:em|i)` + attrs + `>(.*?)</(?:em|i)>`),
		Template: "_${1}_",
	},
	{
		Name:     "strikethrough",
		Pattern:  regexp.MustCompile(`(?i)<(?:s|del|strike)` + attrs + `>(.*?)</(?:s|del|strike)>`),
		Template: "-${1}-",
	},
	{
		Name:     "underline",
		Pattern:  regexp.MustCompile(`(?i)<u` + attrs + `>(.*?)</u>`),
		Template: "+${1}+",
	},
	{
		// A <code> opening right after <pre> belongs to a code block and is
		// left for the pre rule.
		Name:    "inline code",
		Pattern: regexp.MustCompile(`(?i)(<pre` + attrs + `>\s*)?<code` + attrs + `>(.*?)</code>`),
		Replace: func(m []string) string {
			if m[1] != "" {
				return m[0]
			}
			return "{{" + m[2] + "}}"
		},
	},
	{
		Name:     "preformatted",
		Pattern:  regexp.MustCompile(`(?is)<pre` + attrs + `>(.*?)</pre>`),
		Template: "{code}\n${1}\n{code}\n\n",
	},
	{
		Name:    "link",
		Pattern: regexp.MustCompile(`(?is)<a(\s[^>]*)?>(.*?)</a>`),
		Replace: func(m []string) string {
			href := attrValue(hrefPattern, m[1])
			text := m[2]
			switch {
			case href == "":
				return text
			case strings.TrimSpace(text) == "":
				// [url] rather than [|url]
				return "[" + href + "]"
			}
			return "[" + text + "|" + href + "]"
		},
	},
	{
		// alt-aware form first, bare form as the fallback
		Name:    "image",
		Pattern: regexp.MustCompile(`(?i)<img(\s[^>]*)?/?>`),
		Replace: func(m []string) string {
			src := attrValue(srcPattern, m[1])
			if src == "" {
				return ""
			}
			if alt := attrValue(altPattern, m[1]); alt != "" {
				return "!" + src + "|alt=" + alt + "!"
			}
			return "!" + src + "!"
		},
	},
	listRule("unordered list", "ul", "*"),
	listRule("ordered list", "ol", "#"),
	{
		Name:     "blockquote",
		Pattern:  regexp.MustCompile(`(?is)<blockquote` + attrs + `>(.*?)</blockquote>`),
		Template: "{quote}\n${1}\n{quote}\n\n",
	},
	{
		Name:     "line break",
		Pattern:  regexp.MustCompile(`(?i)<br\s*/?>`),
		Template: "\n",
	},
	{
		Name:     "paragraph",
		Pattern:  regexp.MustCompile(`(?is)<p` + attrs + `>(.*?)</p>`),
		Template: "${1}\n\n",
	},
}

func heading(level int) ElementRule {
	n := strconv.Itoa(level)
	return ElementRule{
		Name:     "heading h" + n,
		Pattern:  regexp.MustCompile(`(?i)<h` + n + attrs + `>(.*?)</h` + n + `>`),
		Template: "h" + n + ". ${1}\n\n",
	}
}

// listRule converts <li> items only inside the matched list span so that
// ordered and unordered items keep their own markers.
func listRule(name, tag, marker string) ElementRule {
	return ElementRule{
		Name:    name,
		Pattern: regexp.MustCompile(`(?is)<` + tag + attrs + `>(.*?)</` + tag + `>`),
		Replace: func(m []string) string {
			return listItemPattern.ReplaceAllStringFunc(m[1], func(item string) string {
				inner := listItemPattern.FindStringSubmatch(item)[1]
				// The editor wraps item text in <p>; keep each item on one line.
				inner = itemParaPattern.ReplaceAllString(inner, " ")
				inner = strings.TrimSpace(itemSpacePattern.ReplaceAllString(inner, " "))
				return marker + " " + inner + "\n"
			})
		},
	}
}

// attrValue extracts a quoted attribute value from a raw attribute list
func attrValue(p *regexp.Regexp, raw string) string {
	m := p.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	v := m[1]
	if v == "" {
		v = m[2]
	}
	return strings.TrimSpace(v)
}

// StripTags removes every remaining tag, keeping the text between them
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}
