package matchstats

import (
	"context"

	"github.com/riskibarqy/esports-hub/internal/domain/match"
)

// SaveSet is one stats save: map rows, tuple upserts and deletes, and the series projection.
type SaveSet struct {
	MatchID         int64
	ExpectedVersion int64
	Maps            []match.Map
	Upserts         []PlayerMapStat
	Deletes         []Key
	Result          match.SeriesResult
}

// Repository persists per-map player statistics.
type Repository interface {
	ListByMatch(ctx context.Context, matchID int64) ([]PlayerMapStat, error)
	// SaveSheet writes the whole set atomically and returns the updated match.
	// A non-zero ExpectedVersion that no longer matches fails with store.ErrStale.
	SaveSheet(ctx context.Context, set SaveSet) (match.Match, error)
}
