package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pmallory/sessionsearch/internal/testjsonl"
)

func writeSession(t *testing.T, dir, id, prompt, ts string) {
	t.Helper()
	content := testjsonl.JoinJSONL(
		testjsonl.OpenClawHeaderJSON(id, "/home/user/work", ts),
		testjsonl.OpenClawMessageJSON("user", prompt, ts),
	)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, id+".jsonl"), []byte(content), 0o644,
	))
}

func TestOpenClawMetadata(t *testing.T) {
	log := zap.NewNop()

	t.Run("scores and ranks", func(t *testing.T) {
		dir := t.TempDir()
		writeSession(t, dir, "both",
			"fix the docker compose network",
			"2024-03-01T10:00:00Z")
		writeSession(t, dir, "one-newer",
			"docker build keeps failing",
			"2024-03-05T10:00:00Z")
		writeSession(t, dir, "one-older",
			"docker image too large",
			"2024-03-02T10:00:00Z")
		writeSession(t, dir, "none",
			"unrelated prompt",
			"2024-03-09T10:00:00Z")

		got := OpenClawMetadata(dir,
			[]string{"docker", "network"}, 20, log)
		require.Len(t, got, 3)
		// Two matching terms beat one; recency breaks the tie.
		assert.Equal(t, "both", got[0].SessionID)
		assert.Equal(t, "one-newer", got[1].SessionID)
		assert.Equal(t, "one-older", got[2].SessionID)
		assert.Equal(t, 2*firstPromptWeight, got[0].Score)
	})

	t.Run("limit applied", func(t *testing.T) {
		dir := t.TempDir()
		writeSession(t, dir, "a", "docker one", "2024-03-01T10:00:00Z")
		writeSession(t, dir, "b", "docker two", "2024-03-02T10:00:00Z")
		writeSession(t, dir, "c", "docker three", "2024-03-03T10:00:00Z")

		got := OpenClawMetadata(dir, []string{"docker"}, 2, log)
		assert.Len(t, got, 2)
	})

	t.Run("empty directory", func(t *testing.T) {
		got := OpenClawMetadata(t.TempDir(), []string{"x"}, 20, log)
		assert.Empty(t, got)
	})
}
