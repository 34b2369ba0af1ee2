// Package index implements the metadata scan over pre-built
// sessions-index.json files.
package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Entry is one session's metadata in a sessions-index.json file.
type Entry struct {
	SessionID    string `json:"sessionId"`
	FirstPrompt  string `json:"firstPrompt"`
	Summary      string `json:"summary"`
	MessageCount int    `json:"messageCount"`
	Created      string `json:"created"`
	Modified     string `json:"modified"`
	GitBranch    string `json:"gitBranch"`
	ProjectPath  string `json:"projectPath"`
}

// File is the on-disk shape of a sessions-index.json file.
type File struct {
	OriginalPath string  `json:"originalPath"`
	Entries      []Entry `json:"entries"`
}

// Discover finds all sessions-index.json files one level below
// projectsDir, in stable order.
func Discover(projectsDir string) []string {
	pattern := filepath.Join(projectsDir, "*", "sessions-index.json")
	files, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil
	}
	sort.Strings(files)
	return files
}

// Load reads one index file. Unreadable or malformed files yield no
// entries, and originalPath falls back to the parent directory name.
func Load(path string, log *zap.Logger) (string, []Entry) {
	fallback := filepath.Base(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		log.Debug("skipping unreadable index file",
			zap.String("path", path), zap.Error(err))
		return fallback, nil
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		log.Warn("skipping malformed index file",
			zap.String("path", path), zap.Error(err))
		return fallback, nil
	}

	if f.OriginalPath == "" {
		f.OriginalPath = fallback
	}
	return f.OriginalPath, f.Entries
}

// LookupEntry pairs an index entry with the originalPath of the file
// it came from.
type LookupEntry struct {
	Entry
	OriginalPath string
}

// BuildLookup maps sessionId to its index entry across all index
// files, for cross-referencing deep-search hits.
func BuildLookup(
	projectsDir string, log *zap.Logger,
) map[string]LookupEntry {
	lookup := make(map[string]LookupEntry)
	for _, path := range Discover(projectsDir) {
		originalPath, entries := Load(path, log)
		for _, e := range entries {
			if e.SessionID == "" {
				continue
			}
			lookup[e.SessionID] = LookupEntry{
				Entry:        e,
				OriginalPath: originalPath,
			}
		}
	}
	return lookup
}
