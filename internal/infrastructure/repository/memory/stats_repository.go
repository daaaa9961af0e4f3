package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/domain/matchstats"
	"github.com/riskibarqy/esports-hub/internal/domain/store"
)

type StatsRepository struct {
	db *DB
}

func NewStatsRepository(db *DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) ListByMatch(_ context.Context, matchID int64) ([]matchstats.PlayerMapStat, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]matchstats.PlayerMapStat, 0)
	for _, row := range r.db.stats {
		if row.MatchID == matchID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MapID != out[j].MapID {
			return out[i].MapID < out[j].MapID
		}
		return out[i].PlayerID < out[j].PlayerID
	})

	return out, nil
}

// SaveSheet validates the whole set before writing anything so a failure leaves no partial state.
func (r *StatsRepository) SaveSheet(_ context.Context, set matchstats.SaveSet) (match.Match, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.matches[set.MatchID]
	if !ok {
		return match.Match{}, store.ErrNoRows
	}
	if set.ExpectedVersion != 0 && current.Version != set.ExpectedVersion {
		return match.Match{}, store.ErrStale
	}

	for _, item := range set.Maps {
		stored, ok := r.db.maps[item.ID]
		if !ok || stored.MatchID != set.MatchID {
			return match.Match{}, fmt.Errorf("update match map %d: %w", item.ID, store.ErrNoRows)
		}
	}
	for _, row := range set.Upserts {
		stored, ok := r.db.maps[row.MapID]
		if !ok || stored.MatchID != set.MatchID {
			return match.Match{}, &store.BackendError{
				Kind:    store.ErrReferenced,
				Code:    "23503",
				Message: `insert or update on table "player_match_stats" violates foreign key constraint "player_match_stats_match_map_id_fkey"`,
			}
		}
		if _, ok := r.db.players[row.PlayerID]; !ok {
			return match.Match{}, &store.BackendError{
				Kind:    store.ErrReferenced,
				Code:    "23503",
				Message: `insert or update on table "player_match_stats" violates foreign key constraint "player_match_stats_player_id_fkey"`,
			}
		}
	}

	for _, item := range set.Maps {
		r.db.maps[item.ID] = item
	}
	for _, row := range set.Upserts {
		key := row.Key()
		if existing, ok := r.db.stats[key]; ok {
			row.ID = existing.ID
		} else {
			row.ID = r.db.nextID("player_match_stats")
		}
		row.MatchID = set.MatchID
		r.db.stats[key] = row
	}
	for _, key := range set.Deletes {
		delete(r.db.stats, key)
	}

	return r.db.applySeriesResultLocked(set.MatchID, set.Result, 0)
}
