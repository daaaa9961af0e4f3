package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/esports-hub/internal/domain/store"
	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
)

type TournamentRepository struct {
	db *DB
}

func NewTournamentRepository(db *DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) List(_ context.Context) ([]tournament.Tournament, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]tournament.Tournament, 0, len(r.db.tournaments))
	for _, item := range r.db.tournaments {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		left, right := out[i].StartDate, out[j].StartDate
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

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	item, ok := r.db.tournaments[tournamentID]
	return item, ok, nil
}

func (r *TournamentRepository) Create(_ context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if item.ID == 0 {
		item.ID = r.db.nextID("tournaments")
	} else {
		r.db.bumpSeq("tournaments", item.ID)
	}
	r.db.tournaments[item.ID] = item

	return item, nil
}

func (r *TournamentRepository) Update(_ context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.tournaments[item.ID]
	if !ok {
		return tournament.Tournament{}, store.ErrNoRows
	}
	item.CreatedAt = current.CreatedAt
	r.db.tournaments[item.ID] = item

	return item, nil
}

// Delete cascades to the tournament's matches, maps and statistics.
func (r *TournamentRepository) Delete(_ context.Context, tournamentID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.tournaments[tournamentID]; !ok {
		return store.ErrNoRows
	}
	for id, m := range r.db.matches {
		if m.TournamentID == tournamentID {
			r.db.deleteMatchLocked(id)
		}
	}
	delete(r.db.tournaments, tournamentID)

	return nil
}
