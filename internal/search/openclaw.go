package search

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pmallory/sessionsearch/internal/parser"
)

// firstPromptWeight is the per-term score contribution when a query
// term appears in a session's first prompt.
const firstPromptWeight = 2.0

// MetaMatch is an OpenClaw session scored by its header metadata.
type MetaMatch struct {
	SessionID    string
	FirstPrompt  string
	Timestamp    string
	MessageCount int
	Score        float64
}

// OpenClawMetadata scores OpenClaw sessions by their first prompt.
// OpenClaw has no pre-built index files, so metadata comes from each
// session file's header. Scoring is additive per term; sessions with
// no matching term are dropped. Ties on score break by recency.
func OpenClawMetadata(
	sessionsDir string, terms []string, limit int,
	log *zap.Logger,
) []MetaMatch {
	paths := parser.DiscoverSessions(sessionsDir)
	log.Debug("scanning openclaw session headers",
		zap.Int("sessions", len(paths)))

	var matches []MetaMatch
	for _, path := range paths {
		meta := parser.ReadSessionMeta(path)
		promptLower := strings.ToLower(meta.FirstPrompt)

		var score float64
		for _, term := range terms {
			if strings.Contains(promptLower, strings.ToLower(term)) {
				score += firstPromptWeight
			}
		}
		if score <= 0 {
			continue
		}

		matches = append(matches, MetaMatch{
			SessionID:    meta.ID,
			FirstPrompt:  meta.FirstPrompt,
			Timestamp:    meta.Timestamp,
			MessageCount: meta.MessageCount,
			Score:        score,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Timestamp > matches[j].Timestamp
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
