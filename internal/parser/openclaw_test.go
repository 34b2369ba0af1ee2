package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmallory/sessionsearch/internal/testjsonl"
)

func writeSessionFile(
	t *testing.T, dir, name, content string,
) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadSessionMeta(t *testing.T) {
	t.Run("header and first prompt", func(t *testing.T) {
		dir := t.TempDir()
		content := testjsonl.JoinJSONL(
			testjsonl.OpenClawHeaderJSON("sess-1",
				"/home/user/projects/myapp",
				"2024-03-01T10:00:00Z"),
			testjsonl.OpenClawMessageJSON("user",
				"HEARTBEAT poll", "2024-03-01T10:00:01Z"),
			testjsonl.OpenClawMessageJSON("user",
				"configure the webhook retries",
				"2024-03-01T10:00:02Z"),
			testjsonl.OpenClawMessageJSON("assistant",
				"sure, here is how", "2024-03-01T10:00:03Z"),
		)
		path := writeSessionFile(t, dir, "sess-1.jsonl", content)

		meta := ReadSessionMeta(path)
		assert.Equal(t, "sess-1", meta.ID)
		assert.Equal(t, "/home/user/projects/myapp", meta.Cwd)
		assert.Equal(t, "2024-03-01T10:00:00Z", meta.Timestamp)
		assert.Equal(t, "configure the webhook retries",
			meta.FirstPrompt)
		assert.Equal(t, 3, meta.MessageCount)
	})

	t.Run("malformed lines skipped", func(t *testing.T) {
		dir := t.TempDir()
		content := "not json at all\n" +
			testjsonl.OpenClawMessageJSON("user", "real prompt",
				"2024-03-01T10:00:00Z") + "\n" +
			"{\"truncated\n"
		path := writeSessionFile(t, dir, "sess-2.jsonl", content)

		meta := ReadSessionMeta(path)
		assert.Equal(t, "real prompt", meta.FirstPrompt)
		assert.Equal(t, 1, meta.MessageCount)
	})

	t.Run("long prompt clipped", func(t *testing.T) {
		dir := t.TempDir()
		long := strings.Repeat("x", 500)
		content := testjsonl.JoinJSONL(
			testjsonl.OpenClawMessageJSON("user", long,
				"2024-03-01T10:00:00Z"),
		)
		path := writeSessionFile(t, dir, "sess-3.jsonl", content)

		meta := ReadSessionMeta(path)
		assert.Len(t, meta.FirstPrompt, maxFirstPromptLen)
	})

	t.Run("missing file", func(t *testing.T) {
		meta := ReadSessionMeta(
			filepath.Join(t.TempDir(), "gone.jsonl"),
		)
		assert.Equal(t, "gone", meta.ID)
		assert.Equal(t, 0, meta.MessageCount)
	})
}

func TestDiscoverSessions(t *testing.T) {
	dir := t.TempDir()
	writeSessionFile(t, dir, "b.jsonl", "{}")
	writeSessionFile(t, dir, "a.jsonl", "{}")
	writeSessionFile(t, dir, "old.deleted.jsonl", "{}")
	writeSessionFile(t, dir, "notes.txt", "")

	files := DiscoverSessions(dir)
	require.Len(t, files, 2)
	assert.Equal(t, "a", SessionIDFromPath(files[0]))
	assert.Equal(t, "b", SessionIDFromPath(files[1]))
}

func TestLoadSessionMetadata(t *testing.T) {
	dir := t.TempDir()
	writeSessionFile(t, dir, "sess-1.jsonl", testjsonl.JoinJSONL(
		testjsonl.OpenClawHeaderJSON("sess-1", "/cwd/one",
			"2024-03-01T10:00:00Z"),
	))
	writeSessionFile(t, dir, "sess-2.jsonl", testjsonl.JoinJSONL(
		testjsonl.OpenClawHeaderJSON("sess-2", "/cwd/two",
			"2024-03-02T10:00:00Z"),
	))

	metas := LoadSessionMetadata(dir)
	require.Len(t, metas, 2)
	assert.Equal(t, "/cwd/one", metas["sess-1"].Cwd)
	assert.Equal(t, "/cwd/two", metas["sess-2"].Cwd)
}
