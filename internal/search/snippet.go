package search

import (
	"strings"
	"unicode/utf8"

	"github.com/pmallory/sessionsearch/internal/index"
)

const (
	maxSnippetLen       = 200
	snippetContextChars = 80
)

// Snippet extracts text around the first occurrence of the whole
// query, falling back to the first occurrence of any single term,
// falling back to a plain prefix. Clipped edges get ellipses; rune
// boundaries are never split.
func Snippet(text, query string) string {
	textLower := strings.ToLower(text)

	idx := strings.Index(textLower, strings.ToLower(query))
	if idx < 0 {
		for _, term := range strings.Fields(query) {
			if i := strings.Index(
				textLower, strings.ToLower(term),
			); i >= 0 {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return index.Clip(text, maxSnippetLen)
	}

	// Lowercasing can shift byte offsets for a handful of code
	// points, so clamp to rune boundaries in the original text.
	start := idx - snippetContextChars
	if start < 0 {
		start = 0
	}
	end := idx + len(query) + snippetContextChars
	if end > len(text) {
		end = len(text)
	}
	start = floorRuneBoundary(text, start)
	end = ceilRuneBoundary(text, end)

	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(text[start:end])
	if end < len(text) {
		b.WriteString("...")
	}
	return b.String()
}

func floorRuneBoundary(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

func ceilRuneBoundary(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
