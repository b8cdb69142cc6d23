package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationInfo(t *testing.T) {
	t.Run("full pages", func(t *testing.T) {
		info := NewPaginationInfo(25, 2, 10)
		assert.Equal(t, 2, info.CurrentPage)
		assert.Equal(t, 3, info.TotalPages)
		assert.Equal(t, 10, info.PageSize)
		assert.Equal(t, int64(25), info.TotalItems)
	})

	t.Run("empty listing still has one page", func(t *testing.T) {
		info := NewPaginationInfo(0, 1, 10)
		assert.Equal(t, 1, info.CurrentPage)
		assert.Equal(t, 1, info.TotalPages)
	})

	t.Run("page clamped to last", func(t *testing.T) {
		info := NewPaginationInfo(5, 9, 10)
		assert.Equal(t, 1, info.CurrentPage)
		assert.Equal(t, 1, info.TotalPages)
	})

	t.Run("invalid size falls back to default", func(t *testing.T) {
		info := NewPaginationInfo(30, 1, 0)
		assert.Equal(t, DefaultPageSize, info.PageSize)
	})
}

func TestCalculateSliceIndices(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		total      int
		start, end int
	}{
		{"first page", 1, 10, 25, 0, 10},
		{"middle page", 2, 10, 25, 10, 20},
		{"short last page", 3, 10, 25, 20, 25},
		{"past the end", 4, 10, 25, 25, 25},
		{"empty listing", 1, 10, 0, 0, 0},
		{"zero page treated as first", 0, 10, 5, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := CalculateSliceIndices(tt.page, tt.size, tt.total)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}
