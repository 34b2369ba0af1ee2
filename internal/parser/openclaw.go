package parser

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/gjson"
)

const (
	initialScanBufSize = 64 * 1024        // 64KB
	maxScanTokenSize   = 20 * 1024 * 1024 // 20MB

	// headerScanLimit bounds how many lines are examined per file
	// when extracting metadata; sessions can be huge.
	headerScanLimit = 100

	maxFirstPromptLen = 200
)

// SessionMeta is the lightweight metadata extracted from the head of
// an OpenClaw session file.
type SessionMeta struct {
	ID           string
	Path         string
	Cwd          string
	Timestamp    string
	FirstPrompt  string
	MessageCount int
}

// IsHeartbeat reports whether text is an OpenClaw heartbeat poll
// rather than a real user message.
func IsHeartbeat(text string) bool {
	return strings.Contains(strings.ToLower(text), "heartbeat")
}

// SessionIDFromPath derives the session ID from a session file path;
// OpenClaw names session files after their ID.
func SessionIDFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".jsonl")
}

// DiscoverSessions lists OpenClaw session files in dir, skipping
// deleted sessions, in stable order.
func DiscoverSessions(dir string) []string {
	pattern := filepath.Join(dir, "*.jsonl")
	files, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil
	}
	var out []string
	for _, f := range files {
		if strings.Contains(filepath.Base(f), ".deleted.") {
			continue
		}
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ReadSessionMeta scans the head of an OpenClaw session file for its
// header record, first real user prompt, and message count.
// Malformed lines are skipped.
func ReadSessionMeta(path string) SessionMeta {
	meta := SessionMeta{
		ID:   SessionIDFromPath(path),
		Path: path,
	}

	f, err := os.Open(path)
	if err != nil {
		return meta
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(
		make([]byte, 0, initialScanBufSize), maxScanTokenSize,
	)

	for i := 0; scanner.Scan() && i <= headerScanLimit; i++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || !gjson.Valid(line) {
			continue
		}
		record := gjson.Parse(line)

		switch record.Get("type").Str {
		case "session":
			meta.Timestamp = record.Get("timestamp").Str
			meta.Cwd = record.Get("cwd").Str
		case "message":
			meta.MessageCount++
			if meta.FirstPrompt != "" {
				continue
			}
			role, text := ExtractRoleText(record)
			if role != "user" || text == "" || IsHeartbeat(text) {
				continue
			}
			meta.FirstPrompt = clip(text, maxFirstPromptLen)
		}
	}

	return meta
}

// LoadSessionMetadata reads header metadata for every session file
// in dir, keyed by session ID.
func LoadSessionMetadata(dir string) map[string]SessionMeta {
	metas := make(map[string]SessionMeta)
	for _, path := range DiscoverSessions(dir) {
		meta := ReadSessionMeta(path)
		if meta.ID != "" {
			metas[meta.ID] = meta
		}
	}
	return metas
}

// clip cuts s at maxLen bytes without splitting a rune.
func clip(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	for maxLen > 0 && s[maxLen]&0xC0 == 0x80 {
		maxLen--
	}
	return s[:maxLen]
}
