package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/esports-hub/internal/domain/player"
	"github.com/riskibarqy/esports-hub/internal/domain/store"
)

type PlayerRepository struct {
	db *DB
}

func NewPlayerRepository(db *DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]player.Player, 0, len(r.db.players))
	for _, item := range r.db.players {
		out = append(out, item)
	}
	sortPlayers(out)

	return out, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID int64, limit int) ([]player.Player, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]player.Player, 0, player.RosterSize)
	for _, item := range r.db.players {
		if item.PlaysFor(teamID) {
			out = append(out, item)
		}
	}
	sortPlayers(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	item, ok := r.db.players[playerID]
	return item, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []int64) ([]player.Player, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if item, ok := r.db.players[id]; ok {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) (player.Player, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err := r.checkTeamLocked(item); err != nil {
		return player.Player{}, err
	}
	if item.ID == 0 {
		item.ID = r.db.nextID("players")
	} else {
		r.db.bumpSeq("players", item.ID)
	}
	r.db.players[item.ID] = item

	return item, nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) (player.Player, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.players[item.ID]
	if !ok {
		return player.Player{}, store.ErrNoRows
	}
	if err := r.checkTeamLocked(item); err != nil {
		return player.Player{}, err
	}

	item.CreatedAt = current.CreatedAt
	r.db.players[item.ID] = item

	return item, nil
}

// Delete removes the player together with their statistics rows.
func (r *PlayerRepository) Delete(_ context.Context, playerID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.players[playerID]; !ok {
		return store.ErrNoRows
	}
	delete(r.db.players, playerID)
	for key := range r.db.stats {
		if key.PlayerID == playerID {
			delete(r.db.stats, key)
		}
	}

	return nil
}

func (r *PlayerRepository) checkTeamLocked(item player.Player) error {
	if item.TeamID == nil {
		return nil
	}
	if _, ok := r.db.teams[*item.TeamID]; !ok {
		return &store.BackendError{
			Kind:    store.ErrReferenced,
			Code:    "23503",
			Message: `insert or update on table "players" violates foreign key constraint "players_team_id_fkey"`,
		}
	}
	return nil
}

func sortPlayers(items []player.Player) {
	sort.Slice(items, func(i, j int) bool {
		left, right := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
		if left != right {
			return left < right
		}
		return items[i].ID < items[j].ID
	})
}
