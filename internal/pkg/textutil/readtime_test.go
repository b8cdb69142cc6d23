package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateReadTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty content", "", 1},
		{"whitespace only", " \n\t ", 1},
		{"single word", "osteology", 1},
		{"exactly one page", strings.Repeat("word ", 200), 1},
		{"just over one page", strings.Repeat("word ", 201), 2},
		{"just under one page", strings.Repeat("word ", 199), 1},
		{"several pages", strings.Repeat("word ", 1000), 5},
		{"rounds up", strings.Repeat("word ", 401), 3},
		{"irregular whitespace", "one  two\nthree\t four", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateReadTime(tt.content))
		})
	}
}
