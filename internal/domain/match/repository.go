package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	// List orders by scheduled time descending with unscheduled matches last.
	List(ctx context.Context, filter Filter) ([]Listing, error)
	GetByID(ctx context.Context, matchID int64) (Listing, bool, error)
	Create(ctx context.Context, item Match) (Match, error)
	// Update writes editable fields and bumps the version. A non-zero expectedVersion
	// makes the write conditional and fails with store.ErrStale on mismatch.
	Update(ctx context.Context, item Match, expectedVersion int64) (Match, error)
	Delete(ctx context.Context, matchID int64) error
	UpdateSeriesResult(ctx context.Context, matchID int64, result SeriesResult, expectedVersion int64) (Match, error)
}

// MapRepository persists the maps of a series.
type MapRepository interface {
	ListByMatch(ctx context.Context, matchID int64) ([]Map, error)
	ListByMatches(ctx context.Context, matchIDs []int64) (map[int64][]Map, error)
	// CreateMany inserts maps that do not exist yet and leaves existing map numbers untouched.
	CreateMany(ctx context.Context, items []Map) error
}
