package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/domain/store"
)

type MatchRepository struct {
	db *DB
}

func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(_ context.Context, filter match.Filter) ([]match.Listing, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]match.Listing, 0)
	for _, item := range r.db.matches {
		if filter.TournamentID != 0 && item.TournamentID != filter.TournamentID {
			continue
		}
		if filter.TeamID != 0 && !item.HasTeam(filter.TeamID) {
			continue
		}
		out = append(out, r.listingLocked(item))
	}
	sort.Slice(out, func(i, j int) bool {
		left, right := out[i].ScheduledAt, out[j].ScheduledAt
		switch {
		case left == nil && right == nil:
			return out[i].ID > out[j].ID
		case left == nil:
			return false
		case right == nil:
			return true
		case left.Equal(*right):
			return out[i].ID > out[j].ID
		default:
			return left.After(*right)
		}
	})

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID int64) (match.Listing, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	item, ok := r.db.matches[matchID]
	if !ok {
		return match.Listing{}, false, nil
	}
	return r.listingLocked(item), true, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) (match.Match, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err := r.checkReferencesLocked(item); err != nil {
		return match.Match{}, err
	}
	if item.ID == 0 {
		item.ID = r.db.nextID("matches")
	} else {
		r.db.bumpSeq("matches", item.ID)
	}
	item.Version = 1
	r.db.matches[item.ID] = item

	return item, nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match, expectedVersion int64) (match.Match, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.matches[item.ID]
	if !ok {
		return match.Match{}, store.ErrNoRows
	}
	if expectedVersion != 0 && current.Version != expectedVersion {
		return match.Match{}, store.ErrStale
	}
	if err := r.checkReferencesLocked(item); err != nil {
		return match.Match{}, err
	}

	current.TournamentID = item.TournamentID
	current.Team1ID = item.Team1ID
	current.Team2ID = item.Team2ID
	current.ScheduledAt = item.ScheduledAt
	current.MapName = item.MapName
	current.GameMode = item.GameMode
	current.Round = item.Round
	current.Status = item.Status
	current.SeriesFormat = item.SeriesFormat
	current.UpdatedAt = item.UpdatedAt
	current.Version++
	r.db.matches[current.ID] = current

	return current, nil
}

func (r *MatchRepository) Delete(_ context.Context, matchID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.matches[matchID]; !ok {
		return store.ErrNoRows
	}
	r.db.deleteMatchLocked(matchID)

	return nil
}

func (r *MatchRepository) UpdateSeriesResult(_ context.Context, matchID int64, result match.SeriesResult, expectedVersion int64) (match.Match, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return r.db.applySeriesResultLocked(matchID, result, expectedVersion)
}

func (r *MatchRepository) checkReferencesLocked(item match.Match) error {
	if _, ok := r.db.tournaments[item.TournamentID]; !ok {
		return &store.BackendError{
			Kind:    store.ErrReferenced,
			Code:    "23503",
			Message: `insert or update on table "matches" violates foreign key constraint "matches_tournament_id_fkey"`,
		}
	}
	if _, ok := r.db.teams[item.Team1ID]; !ok {
		return &store.BackendError{
			Kind:    store.ErrReferenced,
			Code:    "23503",
			Message: `insert or update on table "matches" violates foreign key constraint "matches_team1_id_fkey"`,
		}
	}
	if _, ok := r.db.teams[item.Team2ID]; !ok {
		return &store.BackendError{
			Kind:    store.ErrReferenced,
			Code:    "23503",
			Message: `insert or update on table "matches" violates foreign key constraint "matches_team2_id_fkey"`,
		}
	}
	return nil
}

func (r *MatchRepository) listingLocked(item match.Match) match.Listing {
	out := match.Listing{Match: item}
	if t, ok := r.db.teams[item.Team1ID]; ok {
		out.Team1 = match.TeamRef{ID: t.ID, Name: t.Name, LogoURL: t.LogoURL}
	}
	if t, ok := r.db.teams[item.Team2ID]; ok {
		out.Team2 = match.TeamRef{ID: t.ID, Name: t.Name, LogoURL: t.LogoURL}
	}
	if t, ok := r.db.tournaments[item.TournamentID]; ok {
		out.TournamentName = t.Name
	}
	return out
}

// applySeriesResultLocked writes a projection and bumps the version. mu must be held.
func (db *DB) applySeriesResultLocked(matchID int64, result match.SeriesResult, expectedVersion int64) (match.Match, error) {
	current, ok := db.matches[matchID]
	if !ok {
		return match.Match{}, store.ErrNoRows
	}
	if expectedVersion != 0 && current.Version != expectedVersion {
		return match.Match{}, store.ErrStale
	}

	current.ApplyResult(result)
	current.Version++
	db.matches[matchID] = current

	return current, nil
}

type MapRepository struct {
	db *DB
}

func NewMapRepository(db *DB) *MapRepository {
	return &MapRepository{db: db}
}

func (r *MapRepository) ListByMatch(_ context.Context, matchID int64) ([]match.Map, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.listLocked(matchID), nil
}

func (r *MapRepository) ListByMatches(_ context.Context, matchIDs []int64) (map[int64][]match.Map, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make(map[int64][]match.Map, len(matchIDs))
	for _, id := range matchIDs {
		if items := r.listLocked(id); len(items) > 0 {
			out[id] = items
		}
	}
	return out, nil
}

// CreateMany behaves like ON CONFLICT (match_id, map_number) DO NOTHING.
func (r *MapRepository) CreateMany(_ context.Context, items []match.Map) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing := make(map[[2]int64]struct{}, len(r.db.maps))
	for _, item := range r.db.maps {
		existing[[2]int64{item.MatchID, int64(item.Number)}] = struct{}{}
	}

	for _, item := range items {
		if _, ok := r.db.matches[item.MatchID]; !ok {
			return &store.BackendError{
				Kind:    store.ErrReferenced,
				Code:    "23503",
				Message: `insert or update on table "match_maps" violates foreign key constraint "match_maps_match_id_fkey"`,
			}
		}
		key := [2]int64{item.MatchID, int64(item.Number)}
		if _, ok := existing[key]; ok {
			continue
		}
		existing[key] = struct{}{}
		item.ID = r.db.nextID("match_maps")
		r.db.maps[item.ID] = item
	}

	return nil
}

func (r *MapRepository) listLocked(matchID int64) []match.Map {
	out := make([]match.Map, 0)
	for _, item := range r.db.maps {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
