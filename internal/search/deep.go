package search

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pmallory/sessionsearch/internal/index"
	"github.com/pmallory/sessionsearch/internal/parser"
)

const (
	// DefaultLimit is the default cap on displayed results.
	DefaultLimit = 20

	// MaxPerSession caps deep matches per session so one long
	// session cannot crowd out the rest.
	MaxPerSession = 2

	// firstPromptLabelLen bounds the first-prompt text carried into
	// a deep match for use as a display label.
	firstPromptLabelLen = 120
)

// Match is a deep-search hit in raw session content.
type Match struct {
	SessionID   string
	ProjectPath string
	SourcePath  string
	LineNo      int
	Role        string
	Snippet     string
	Timestamp   string
	Summary     string
	FirstPrompt string
}

// Options control a deep search.
type Options struct {
	Terms         []string
	Limit         int
	ProjectFilter string
}

func (o Options) query() string {
	return strings.Join(o.Terms, " ")
}

func (o Options) limit() int {
	if o.Limit > 0 {
		return o.Limit
	}
	return DefaultLimit
}

func (o Options) lowerTerms() []string {
	terms := make([]string, len(o.Terms))
	for i, t := range o.Terms {
		terms[i] = strings.ToLower(t)
	}
	return terms
}

// DeepClaude searches Claude Code session content under projectsDir
// via ripgrep, cross-referencing index metadata for display labels.
func DeepClaude(
	ctx context.Context, projectsDir string,
	opts Options, log *zap.Logger,
) ([]Match, error) {
	searchPath := resolveSearchPath(projectsDir, opts.ProjectFilter)
	lookup := index.BuildLookup(projectsDir, log)

	stdout, err := runRipgrep(
		ctx, claudeRgArgs(opts.query()), searchPath, log,
	)
	if err != nil {
		return nil, err
	}
	return collectClaude(stdout, lookup, opts), nil
}

// collectClaude turns raw ripgrep output into deep matches: keeps
// user/assistant records, verifies the terms appear in the readable
// text, caps matches per session, and stops at the limit.
func collectClaude(
	stdout string, lookup map[string]index.LookupEntry,
	opts Options,
) []Match {
	termsLower := opts.lowerTerms()
	perSession := make(map[string]int)
	var matches []Match

	for _, line := range strings.Split(stdout, "\n") {
		if len(matches) >= opts.limit() {
			break
		}
		raw, ok := parseRgLine(line)
		if !ok {
			continue
		}

		recordType := raw.record.Get("type").Str
		if recordType != "user" && recordType != "assistant" {
			continue
		}

		sessionID := raw.record.Get("sessionId").Str
		if perSession[sessionID] >= MaxPerSession {
			continue
		}

		text := parser.ExtractText(raw.record)
		if text == "" {
			continue
		}
		// rg matched the raw JSON line; confirm the terms appear in
		// the readable text and not just in structural fields.
		if !matchesAllTerms(strings.ToLower(text), termsLower) {
			continue
		}

		entry, hasEntry := lookup[sessionID]

		projectPath := raw.record.Get("cwd").Str
		if projectPath == "" && hasEntry {
			projectPath = entry.ProjectPath
		}
		if projectPath == "" && hasEntry {
			projectPath = entry.OriginalPath
		}
		if projectPath == "" {
			projectPath = "unknown"
		}

		m := Match{
			SessionID:   sessionID,
			ProjectPath: projectPath,
			SourcePath:  raw.path,
			LineNo:      raw.lineNo,
			Role:        recordType,
			Snippet:     Snippet(text, opts.query()),
			Timestamp:   raw.record.Get("timestamp").Str,
		}
		if hasEntry {
			m.Summary = entry.Summary
			m.FirstPrompt = index.Clip(
				entry.FirstPrompt, firstPromptLabelLen,
			)
		}

		matches = append(matches, m)
		perSession[sessionID]++
	}

	return matches
}

// DeepOpenClaw searches OpenClaw session content under sessionsDir
// via ripgrep. Session metadata comes from pre-loaded file headers;
// the session ID is the file stem.
func DeepOpenClaw(
	ctx context.Context, sessionsDir string,
	opts Options, log *zap.Logger,
) ([]Match, error) {
	metas := parser.LoadSessionMetadata(sessionsDir)

	stdout, err := runRipgrep(
		ctx, openclawRgArgs(opts.query()), sessionsDir, log,
	)
	if err != nil {
		return nil, err
	}
	return collectOpenClaw(stdout, metas, opts), nil
}

func collectOpenClaw(
	stdout string, metas map[string]parser.SessionMeta,
	opts Options,
) []Match {
	termsLower := opts.lowerTerms()
	perSession := make(map[string]int)
	var matches []Match

	for _, line := range strings.Split(stdout, "\n") {
		if len(matches) >= opts.limit() {
			break
		}
		raw, ok := parseRgLine(line)
		if !ok {
			continue
		}

		// Skip session headers, tool calls, etc.
		if raw.record.Get("type").Str != "message" {
			continue
		}

		sessionID := parser.SessionIDFromPath(raw.path)
		if perSession[sessionID] >= MaxPerSession {
			continue
		}

		role, text := parser.ExtractRoleText(raw.record)
		if text == "" || (role != "user" && role != "assistant") {
			continue
		}
		if strings.Contains(text, "HEARTBEAT") {
			continue
		}
		if !matchesAllTerms(strings.ToLower(text), termsLower) {
			continue
		}

		meta := metas[sessionID]

		timestamp := raw.record.Get("timestamp").Str
		if timestamp == "" {
			timestamp = meta.Timestamp
		}
		projectPath := meta.Cwd
		if projectPath == "" {
			projectPath = "unknown"
		}

		matches = append(matches, Match{
			SessionID:   sessionID,
			ProjectPath: projectPath,
			SourcePath:  raw.path,
			LineNo:      raw.lineNo,
			Role:        role,
			Snippet:     Snippet(text, opts.query()),
			Timestamp:   timestamp,
			FirstPrompt: meta.FirstPrompt,
		})
		perSession[sessionID]++
	}

	return matches
}

// resolveSearchPath narrows a deep search to the first project
// directory whose name contains the filter, case-insensitively.
func resolveSearchPath(base, filter string) string {
	if filter == "" {
		return base
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		return base
	}
	filterLower := strings.ToLower(filter)
	for _, e := range entries {
		if e.IsDir() && strings.Contains(
			strings.ToLower(e.Name()), filterLower,
		) {
			return filepath.Join(base, e.Name())
		}
	}
	return base
}

func matchesAllTerms(textLower string, termsLower []string) bool {
	for _, t := range termsLower {
		if !strings.Contains(textLower, t) {
			return false
		}
	}
	return true
}
