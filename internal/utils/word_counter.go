package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	fencedBlockPattern = regexp.MustCompile("(?s)```.*?```")
	markdownLinkTarget = regexp.MustCompile(`\]\([^)]*\)`)
	orderedListMarker  = regexp.MustCompile(`^\d+\.\s+`)
)

// CountWords counts the words in a Markdown string, ignoring syntax
// and the contents of fenced code blocks.
func CountWords(markdown string) int {
	return CountTextWords(cleanMarkdown(markdown))
}

// CountTextWords counts whitespace-separated tokens that contain at least
// one letter or digit. Bare punctuation like "-" or "|" is not a word.
func CountTextWords(text string) int {
	count := 0
	for _, field := range strings.FieldsFunc(text, unicode.IsSpace) {
		if strings.IndexFunc(field, isWordRune) >= 0 {
			count++
		}
	}
	return count
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func cleanMarkdown(markdown string) string {
	text := fencedBlockPattern.ReplaceAllString(markdown, " ")

	// Link targets are not prose
	text = markdownLinkTarget.ReplaceAllString(text, "]")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "#>")
		line = strings.TrimSpace(line)
		for _, marker := range []string{"- ", "* ", "+ "} {
			line = strings.TrimPrefix(line, marker)
		}
		lines[i] = orderedListMarker.ReplaceAllString(line, "")
	}
	return strings.Join(lines, " ")
}
