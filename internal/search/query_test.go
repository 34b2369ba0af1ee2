package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTerms(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "separate args",
			args: []string{"kafka", "consumer"},
			want: []string{"kafka", "consumer"},
		},
		{
			name: "single arg with spaces",
			args: []string{"kafka consumer lag"},
			want: []string{"kafka", "consumer", "lag"},
		},
		{
			name: "quoted phrase inside a single arg",
			args: []string{`"connection refused" retry`},
			want: []string{"connection refused", "retry"},
		},
		{
			name: "multi arg with embedded spaces",
			args: []string{"kafka consumer", "lag"},
			want: []string{"kafka", "consumer", "lag"},
		},
		{
			name: "unbalanced quote falls back to fields",
			args: []string{`kafka "consumer`},
			want: []string{"kafka", `"consumer`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTerms(tt.args))
		})
	}
}
