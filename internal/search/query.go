// Package search implements the deep content scan over raw session
// logs and the OpenClaw metadata scan.
package search

import (
	"strings"

	"github.com/google/shlex"
)

// ParseTerms splits raw CLI arguments into query terms. Terms are
// ANDed by the pipelines. Callers sometimes hand the whole query over
// as a single string, so a lone argument is re-tokenized shell-style,
// which also keeps quoted phrases intact.
func ParseTerms(args []string) []string {
	if len(args) == 1 {
		if fields, err := shlex.Split(args[0]); err == nil {
			return fields
		}
	}
	var terms []string
	for _, a := range args {
		terms = append(terms, strings.Fields(a)...)
	}
	return terms
}
