package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// maxStderrLog bounds how much of ripgrep's stderr ends up in a
// warning log entry.
const maxStderrLog = 500

// claudeRgArgs builds the ripgrep arguments for scanning Claude Code
// session logs: one output line per match with path and line number,
// excluding subagent transcripts and the index files themselves.
func claudeRgArgs(query string) []string {
	return []string{
		"--no-heading",
		"--line-number",
		"--ignore-case",
		"--glob", "*.jsonl",
		"--glob", "!**/subagents/**",
		"--glob", "!**/sessions-index.json",
		query,
	}
}

// openclawRgArgs builds the ripgrep arguments for scanning OpenClaw
// session logs, excluding deleted sessions.
func openclawRgArgs(query string) []string {
	return []string{
		"--no-heading",
		"--line-number",
		"--ignore-case",
		"--glob", "*.jsonl",
		"--glob", "!*.deleted.*",
		query,
	}
}

// runRipgrep executes rg over path and returns its stdout. Exit code
// 1 (no matches) is success; other failures are logged and whatever
// output rg produced is still returned. A missing rg binary is the
// one hard error.
func runRipgrep(
	ctx context.Context, args []string, path string,
	log *zap.Logger,
) (string, error) {
	cmd := exec.CommandContext(ctx, "rg", append(args, path)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		log.Warn("search timed out; try a more specific query")
		return stdout.String(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.ExitCode() == 1 {
			// No matches.
			return stdout.String(), nil
		}
		log.Warn("ripgrep returned unexpected exit code",
			zap.Int("code", exitErr.ExitCode()),
			zap.String("stderr", clipString(stderr.String(), maxStderrLog)),
		)
		return stdout.String(), nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return "", errors.New(
			"ripgrep (rg) not found; install it first " +
				"(e.g. brew install ripgrep)",
		)
	}
	return "", fmt.Errorf("running ripgrep: %w", err)
}

// rawMatch is one parsed ripgrep output line.
type rawMatch struct {
	path   string
	lineNo int
	record gjson.Result
}

// parseRgLine splits a ripgrep output line of the form
// path:lineNo:json and parses the JSON payload.
func parseRgLine(line string) (rawMatch, bool) {
	first := strings.Index(line, ":")
	if first < 0 {
		return rawMatch{}, false
	}
	rest := line[first+1:]
	second := strings.Index(rest, ":")
	if second < 0 {
		return rawMatch{}, false
	}
	lineNo, err := strconv.Atoi(rest[:second])
	if err != nil {
		return rawMatch{}, false
	}
	payload := rest[second+1:]
	if !gjson.Valid(payload) {
		return rawMatch{}, false
	}
	return rawMatch{
		path:   line[:first],
		lineNo: lineNo,
		record: gjson.Parse(payload),
	}, true
}

func clipString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
