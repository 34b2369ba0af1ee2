// Package parser extracts readable text and lightweight session
// metadata from agent JSONL records.
package parser

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractText pulls readable text out of a Claude Code record's
// message content.
func ExtractText(record gjson.Result) string {
	return flattenContent(record.Get("message.content"))
}

// ExtractRoleText pulls the role and readable text out of an
// OpenClaw message record.
func ExtractRoleText(record gjson.Result) (role, text string) {
	msg := record.Get("message")
	return msg.Get("role").Str, flattenContent(msg.Get("content"))
}

// flattenContent handles both content shapes: a plain string, or an
// array of typed blocks where text blocks and tool_result payloads
// count as readable text.
func flattenContent(content gjson.Result) string {
	if content.Type == gjson.String {
		return content.Str
	}
	if !content.IsArray() {
		if !content.Exists() {
			return ""
		}
		return content.String()
	}

	var parts []string
	content.ForEach(func(_, block gjson.Result) bool {
		switch block.Get("type").Str {
		case "text":
			if t := block.Get("text").Str; t != "" {
				parts = append(parts, t)
			}
		case "tool_result":
			if rc := block.Get("content"); rc.Exists() {
				parts = append(parts, rc.String())
			}
		}
		return true
	})
	return strings.Join(parts, " ")
}
