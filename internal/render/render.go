// Package render prints search results for terminal consumption.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pmallory/sessionsearch/internal/index"
	"github.com/pmallory/sessionsearch/internal/search"
)

const (
	bannerWidth      = 60
	promptPreviewLen = 100
	metaLabelLen     = 60
)

var (
	bannerStyle = lipgloss.NewStyle().Faint(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	roleStyle   = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("3"))
	sessionStyle = lipgloss.NewStyle().Faint(true)
	tipStyle     = lipgloss.NewStyle().Italic(true)
)

func banner() string {
	return bannerStyle.Render(strings.Repeat("=", bannerWidth))
}

func header(w io.Writer, mode, query string, total, limit int) {
	fmt.Fprintf(w, "\n%s\n", banner())
	fmt.Fprintf(w, "  %s\n",
		titleStyle.Render(fmt.Sprintf("%s: %q", mode, query)))
	if total > limit {
		fmt.Fprintf(w, "  %d matches found (showing top %d)\n",
			total, limit)
	} else {
		fmt.Fprintf(w, "  %d matches found\n", total)
	}
	fmt.Fprintf(w, "%s\n\n", banner())
}

func field(w io.Writer, name, value string) {
	fmt.Fprintf(w, "      %s %s\n",
		labelStyle.Render(fmt.Sprintf("%-9s", name+":")), value)
}

func tip(w io.Writer, text string) {
	fmt.Fprintf(w, "  %s\n", tipStyle.Render(text))
}

// FormatDate renders an ISO timestamp as "2006-01-02 15:04",
// falling back to a raw prefix for unparseable input.
func FormatDate(iso string) string {
	if iso == "" {
		return "unknown"
	}
	if t, err := time.Parse(time.RFC3339, iso); err == nil {
		return t.Format("2006-01-02 15:04")
	}
	if len(iso) >= 16 {
		return iso[:16]
	}
	return iso
}

// ShortenHome replaces a leading home directory with "~".
func ShortenHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if rest, ok := strings.CutPrefix(path, home); ok {
		return "~" + rest
	}
	return path
}

// IndexResults prints metadata scan results.
func IndexResults(
	w io.Writer, matches []index.Match, query string, limit int,
) {
	header(w, "INDEX SEARCH", query, len(matches), limit)

	if len(matches) == 0 {
		fmt.Fprintln(w, "  No matches found in session metadata.")
		tip(w, "Tip: Try --deep to search full message content.")
		fmt.Fprintln(w)
		return
	}

	shown := matches
	if len(shown) > limit {
		shown = shown[:limit]
	}
	for i, m := range shown {
		label := m.Summary
		if label == "" {
			label = "(no summary)"
		}
		fmt.Fprintf(w, "  [%d] %s\n", i+1, titleStyle.Render(label))
		field(w, "Project", ShortenHome(m.ProjectPath))
		if m.GitBranch != "" {
			field(w, "Branch", m.GitBranch)
		}
		field(w, "Date", FormatDate(m.Created))
		field(w, "Messages", fmt.Sprintf("%d", m.MessageCount))
		field(w, "Matched", m.MatchedField)
		if m.FirstPrompt != "" && m.MatchedField != "firstPrompt" {
			preview := index.Clip(m.FirstPrompt, promptPreviewLen)
			if preview != m.FirstPrompt {
				preview += "..."
			}
			field(w, "Prompt", preview)
		}
		field(w, "Session", sessionStyle.Render(m.SessionID))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s\n", banner())
	tip(w, "Tip: Use --deep to search inside message content.")
	fmt.Fprintf(w, "%s\n\n", banner())
}

// DeepResults prints content scan results.
func DeepResults(
	w io.Writer, matches []search.Match, query string,
	limit int, openclaw bool,
) {
	mode := "DEEP SEARCH (CLAUDE CODE)"
	if openclaw {
		mode = "DEEP SEARCH (OPENCLAW)"
	}
	header(w, mode, query, len(matches), limit)

	if len(matches) == 0 {
		fmt.Fprintln(w,
			"  No matches found in session message content.")
		tip(w, "Tip: Try without --deep to search metadata only.")
		fmt.Fprintln(w)
		return
	}

	shown := matches
	if len(shown) > limit {
		shown = shown[:limit]
	}
	for i, m := range shown {
		role := "ASST"
		if m.Role == "user" {
			role = "USER"
		}
		label := m.Summary
		if label == "" {
			label = m.FirstPrompt
		}
		if label == "" {
			label = "(no summary)"
		}
		fmt.Fprintf(w, "  [%d] %s %s\n", i+1,
			roleStyle.Render("["+role+"]"),
			titleStyle.Render(label))
		field(w, "Project", ShortenHome(m.ProjectPath))
		field(w, "Date", FormatDate(m.Timestamp))
		field(w, "Snippet", collapseWhitespace(m.Snippet))
		field(w, "Session", sessionStyle.Render(m.SessionID))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s\n\n", banner())
}

// OpenClawResults prints OpenClaw metadata scan results.
func OpenClawResults(
	w io.Writer, matches []search.MetaMatch, query string,
	limit int,
) {
	header(w, "OPENCLAW SEARCH", query, len(matches), limit)

	if len(matches) == 0 {
		fmt.Fprintln(w, "  No matches found in session metadata.")
		tip(w, "Tip: Try --deep to search full message content.")
		fmt.Fprintln(w)
		return
	}

	for i, m := range matches {
		label := m.FirstPrompt
		if label == "" {
			label = "(no prompt)"
		}
		fmt.Fprintf(w, "  [%d] %s\n", i+1,
			titleStyle.Render(index.Clip(label, metaLabelLen)))
		field(w, "Date", FormatDate(m.Timestamp))
		field(w, "Messages", fmt.Sprintf("%d", m.MessageCount))
		field(w, "Session", sessionStyle.Render(m.SessionID))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s\n", banner())
	tip(w, "Tip: Use --deep to search inside message content.")
	fmt.Fprintf(w, "%s\n\n", banner())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
