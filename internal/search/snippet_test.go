package search

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSnippet(t *testing.T) {
	t.Run("match in the middle gets both ellipses", func(t *testing.T) {
		text := strings.Repeat("a", 100) + " needle " +
			strings.Repeat("b", 100)
		got := Snippet(text, "needle")
		assert.True(t, strings.HasPrefix(got, "..."))
		assert.True(t, strings.HasSuffix(got, "..."))
		assert.Contains(t, got, "needle")
	})

	t.Run("match at the start has no leading ellipsis",
		func(t *testing.T) {
			text := "needle " + strings.Repeat("b", 200)
			got := Snippet(text, "needle")
			assert.True(t, strings.HasPrefix(got, "needle"))
			assert.True(t, strings.HasSuffix(got, "..."))
		})

	t.Run("short text returned whole", func(t *testing.T) {
		got := Snippet("just a needle here", "needle")
		assert.Equal(t, "just a needle here", got)
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := Snippet("found the NEEDLE here", "needle")
		assert.Contains(t, got, "NEEDLE")
	})

	t.Run("falls back to single term", func(t *testing.T) {
		text := strings.Repeat("x", 120) + " needle " +
			strings.Repeat("y", 120)
		// Whole query absent; second term present.
		got := Snippet(text, "missing needle")
		assert.Contains(t, got, "needle")
	})

	t.Run("no match returns prefix", func(t *testing.T) {
		text := strings.Repeat("z", 400)
		got := Snippet(text, "needle")
		assert.Len(t, got, maxSnippetLen)
	})

	t.Run("never splits runes", func(t *testing.T) {
		text := strings.Repeat("héllo wörld ", 30) + "needle" +
			strings.Repeat(" börked", 30)
		got := Snippet(text, "needle")
		assert.True(t, utf8.ValidString(got))
	})
}

func TestMatchesAllTerms(t *testing.T) {
	text := "the kafka consumer lag grew overnight"
	assert.True(t, matchesAllTerms(text, []string{"kafka", "lag"}))
	assert.False(t, matchesAllTerms(text, []string{"kafka", "redis"}))
	assert.True(t, matchesAllTerms(text, nil))
}
