package missing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMissing(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   int
	}{
		{"unordered gap", []int{2, 5, 1, 7, 8, 6, 3}, 4},
		{"empty", nil, NotFound},
		{"single gap", []int{1, 3}, 2},
		{"gap in the middle", []int{2, 5, 3, 6, 1}, 4},
		{"longer run", []int{15, 9, 3, 13, 1, 2, 7, 10, 8, 5, 12, 4, 6, 14}, 11},
		{"complete", []int{1, 2, 3}, NotFound},
		{"one missing at start", []int{3, 2}, 1},
		{"duplicates", []int{1, 1, 3, 3}, 2},
		{"non-positive ignored", []int{-4, 0, 1, 2}, NotFound},
		{"only non-positive", []int{0, -1}, NotFound},
		{"huge value", []int{1, 2, 100_000_000_000}, 3},
		{"max int", []int{1, math.MaxInt}, 2},
		{"max int alone", []int{math.MaxInt}, 1},
		{"gap below huge value", []int{2, 3, 1 << 40}, 1},
		{"duplicates above range", []int{1, 9, 9}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindMissing(tt.values))
		})
	}
}

func TestParseNumbers(t *testing.T) {
	got, err := ParseNumbers("2,5, 1", "7", "8 6\t3")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 1, 7, 8, 6, 3}, got)

	got, err = ParseNumbers()
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseNumbers("1,two,3")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `"two"`)
}
