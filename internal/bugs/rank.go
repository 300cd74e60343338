package bugs

import (
	"errors"
	"fmt"
)

// Rank bounds. Lower ranks are more severe.
const (
	MinRank = 1
	MaxRank = 20
)

var ErrIllegalRank = errors.New("illegal bug rank")

// RankCategory groups bug ranks into four severity bands.
type RankCategory int

const (
	Scariest RankCategory = iota + 1
	Scary
	Troubling
	OfConcern
)

var rankBands = []struct {
	category RankCategory
	maxRank  int
}{
	{Scariest, 4},
	{Scary, 9},
	{Troubling, 14},
	{OfConcern, MaxRank},
}

// RankCategoryOf returns the category a rank belongs to.
func RankCategoryOf(rank int) (RankCategory, error) {
	if rank < MinRank || rank > MaxRank {
		return 0, fmt.Errorf("%w: %d is outside %d-%d", ErrIllegalRank, rank, MinRank, MaxRank)
	}
	for _, band := range rankBands {
		if rank <= band.maxRank {
			return band.category, nil
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrIllegalRank, rank)
}

func (c RankCategory) String() string {
	switch c {
	case Scariest:
		return "SCARIEST"
	case Scary:
		return "SCARY"
	case Troubling:
		return "TROUBLING"
	case OfConcern:
		return "OF_CONCERN"
	default:
		return fmt.Sprintf("RankCategory(%d)", int(c))
	}
}
