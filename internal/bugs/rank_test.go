package bugs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankCategoryOf(t *testing.T) {
	tests := []struct {
		rank     int
		expected RankCategory
	}{
		{1, Scariest},
		{4, Scariest},
		{5, Scary},
		{9, Scary},
		{10, Troubling},
		{14, Troubling},
		{15, OfConcern},
		{20, OfConcern},
	}
	for _, tt := range tests {
		got, err := RankCategoryOf(tt.rank)
		assert.NoError(t, err, "rank %d", tt.rank)
		assert.Equal(t, tt.expected, got, "rank %d", tt.rank)
	}

	for _, rank := range []int{-1, 0, 21, 100} {
		_, err := RankCategoryOf(rank)
		assert.True(t, errors.Is(err, ErrIllegalRank), "rank %d", rank)
	}
}

func TestRankCategoryString(t *testing.T) {
	assert.Equal(t, "SCARIEST", Scariest.String())
	assert.Equal(t, "OF_CONCERN", OfConcern.String())
	assert.Equal(t, "RankCategory(9)", RankCategory(9).String())
}
