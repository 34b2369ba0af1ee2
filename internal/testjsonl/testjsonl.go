// Package testjsonl provides shared fixture builders for Claude Code
// and OpenClaw session test data. Used by the parser, search, and
// index test packages.
package testjsonl

import (
	"encoding/json"
	"strings"
)

// ClaudeUserJSON returns a Claude user message record as a JSON
// string. Optional cwd is attached when given.
func ClaudeUserJSON(
	content, timestamp, sessionID string, cwd ...string,
) string {
	m := map[string]any{
		"type":      "user",
		"timestamp": timestamp,
		"sessionId": sessionID,
		"message": map[string]any{
			"content": content,
		},
	}
	if len(cwd) > 0 {
		m["cwd"] = cwd[0]
	}
	return mustMarshal(m)
}

// ClaudeAssistantJSON returns a Claude assistant message record as a
// JSON string. content may be a plain string or a block array.
func ClaudeAssistantJSON(
	content any, timestamp, sessionID string,
) string {
	return mustMarshal(map[string]any{
		"type":      "assistant",
		"timestamp": timestamp,
		"sessionId": sessionID,
		"message": map[string]any{
			"content": content,
		},
	})
}

// TextBlock returns a text content block.
func TextBlock(text string) map[string]any {
	return map[string]any{"type": "text", "text": text}
}

// ToolResultBlock returns a tool_result content block.
func ToolResultBlock(content string) map[string]any {
	return map[string]any{
		"type":    "tool_result",
		"content": content,
	}
}

// OpenClawHeaderJSON returns an OpenClaw session header record as a
// JSON string.
func OpenClawHeaderJSON(id, cwd, timestamp string) string {
	return mustMarshal(map[string]any{
		"type":      "session",
		"id":        id,
		"cwd":       cwd,
		"timestamp": timestamp,
	})
}

// OpenClawMessageJSON returns an OpenClaw message record as a JSON
// string, with its text wrapped in a single text block.
func OpenClawMessageJSON(role, text, timestamp string) string {
	m := map[string]any{
		"type": "message",
		"message": map[string]any{
			"role":    role,
			"content": []any{TextBlock(text)},
		},
	}
	if timestamp != "" {
		m["timestamp"] = timestamp
	}
	return mustMarshal(m)
}

// IndexFileJSON returns a sessions-index.json document as a JSON
// string. Each entry is a map of index fields.
func IndexFileJSON(
	originalPath string, entries ...map[string]any,
) string {
	es := make([]any, 0, len(entries))
	for _, e := range entries {
		es = append(es, e)
	}
	return mustMarshal(map[string]any{
		"originalPath": originalPath,
		"entries":      es,
	})
}

// IndexEntry returns a sessions-index.json entry with the common
// fields filled in.
func IndexEntry(
	sessionID, summary, firstPrompt, modified string,
) map[string]any {
	return map[string]any{
		"sessionId":    sessionID,
		"summary":      summary,
		"firstPrompt":  firstPrompt,
		"messageCount": 4,
		"created":      "2024-03-01T10:00:00Z",
		"modified":     modified,
		"gitBranch":    "main",
		"projectPath":  "/home/user/projects/myapp",
	}
}

// JoinJSONL joins records into JSONL content with a trailing newline.
func JoinJSONL(records ...string) string {
	return strings.Join(records, "\n") + "\n"
}

// RgLine formats a record the way ripgrep emits matches:
// path:lineNo:json.
func RgLine(path string, lineNo int, record string) string {
	return path + ":" + itoa(lineNo) + ":" + record
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func mustMarshal(m map[string]any) string {
	b, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	return string(b)
}
