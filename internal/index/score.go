package index

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// maxPromptLen bounds the first-prompt text carried into a match.
const maxPromptLen = 200

// scoredFields lists the searchable entry fields with their weights.
// The matched field reported for a hit is the highest-weight field
// that contained any query term.
var scoredFields = []struct {
	name   string
	weight float64
	value  func(Entry) string
}{
	{"summary", 3.0, func(e Entry) string { return e.Summary }},
	{"firstPrompt", 2.0, func(e Entry) string { return e.FirstPrompt }},
	{"gitBranch", 1.0, func(e Entry) string { return e.GitBranch }},
	{"projectPath", 1.0, func(e Entry) string { return e.ProjectPath }},
}

// Score ranks an entry against query terms. Every term must appear,
// case-insensitively, in at least one field; otherwise the score is
// zero and the entry is dropped.
func Score(e Entry, terms []string) (float64, string) {
	var (
		total          float64
		bestField      string
		bestFieldScore float64
	)

	for _, term := range terms {
		termLower := strings.ToLower(term)
		found := false

		for _, f := range scoredFields {
			if !strings.Contains(
				strings.ToLower(f.value(e)), termLower,
			) {
				continue
			}
			found = true
			total += f.weight
			if f.weight > bestFieldScore {
				bestFieldScore = f.weight
				bestField = f.name
			}
		}

		if !found {
			return 0, ""
		}
	}

	return total, bestField
}

// Match is a scored index entry.
type Match struct {
	SessionID    string
	ProjectPath  string
	FirstPrompt  string
	Summary      string
	GitBranch    string
	Created      string
	Modified     string
	MessageCount int
	MatchedField string
	Score        float64
}

// Search scans every index file under projectsDir and returns scored
// matches, best first. Ties on score break by most recently modified.
func Search(
	projectsDir, projectFilter string,
	terms []string, log *zap.Logger,
) []Match {
	filterLower := strings.ToLower(projectFilter)
	var matches []Match

	for _, path := range Discover(projectsDir) {
		originalPath, entries := Load(path, log)

		if projectFilter != "" && !strings.Contains(
			strings.ToLower(originalPath), filterLower,
		) {
			continue
		}

		for _, e := range entries {
			score, field := Score(e, terms)
			if score <= 0 {
				continue
			}
			projectPath := e.ProjectPath
			if projectPath == "" {
				projectPath = originalPath
			}
			matches = append(matches, Match{
				SessionID:    e.SessionID,
				ProjectPath:  projectPath,
				FirstPrompt:  Clip(e.FirstPrompt, maxPromptLen),
				Summary:      e.Summary,
				GitBranch:    e.GitBranch,
				Created:      e.Created,
				Modified:     e.Modified,
				MessageCount: e.MessageCount,
				MatchedField: field,
				Score:        score,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Modified > matches[j].Modified
	})

	return matches
}

// Clip cuts s at maxLen bytes without splitting a rune.
func Clip(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	for maxLen > 0 && s[maxLen]&0xC0 == 0x80 {
		maxLen--
	}
	return s[:maxLen]
}
