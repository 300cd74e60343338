package report

import (
	"errors"
	"fmt"

	"github.com/scan-io-git/sarif-reporter/internal/bugs"
)

// SARIF result levels.
const (
	LevelError   = "error"
	LevelWarning = "warning"
	LevelNote    = "note"
)

var ErrUnknownRankCategory = errors.New("unknown rank category")

// Level maps a bug rank to a SARIF result level.
func Level(rank int) (string, error) {
	category, err := bugs.RankCategoryOf(rank)
	if err != nil {
		return "", err
	}
	return levelOf(category)
}

func levelOf(category bugs.RankCategory) (string, error) {
	switch category {
	case bugs.Scariest, bugs.Scary:
		return LevelError, nil
	case bugs.Troubling:
		return LevelWarning, nil
	case bugs.OfConcern:
		return LevelNote, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownRankCategory, category)
	}
}
