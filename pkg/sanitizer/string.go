package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	dotRegex        = regexp.MustCompile(`\.{2,}`)
	phoneNoiseRegex = regexp.MustCompile(`[^0-9]`)
)

func Trim(s string) string {
	return strings.TrimSpace(s)
}

// CollapseWhitespace replaces whitespace runs with a single space and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// SingleLine folds line breaks and whitespace runs into single spaces.
func SingleLine(s string) string {
	return CollapseWhitespace(s)
}

// NormalizeNewlines converts CRLF and CR to LF and trims surrounding space.
// Line structure is kept, so it suits multi-line notes and addresses.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}

// RemoveControlChars drops control characters other than newline and tab.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// StripHTML removes tags and unescapes entities.
func StripHTML(s string) string {
	return html.UnescapeString(htmlTagRegex.ReplaceAllString(s, ""))
}

// Truncate cuts s to at most max characters.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// TruncateFunc returns Truncate bound to max, for use in pipelines.
func TruncateFunc(max int) func(string) string {
	return func(s string) string { return Truncate(s, max) }
}
