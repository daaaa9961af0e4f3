package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/esports-hub/internal/domain/store"
	"github.com/riskibarqy/esports-hub/internal/domain/team"
)

type TeamRepository struct {
	db *DB
}

func NewTeamRepository(db *DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]team.Team, 0, len(r.db.teams))
	for _, item := range r.db.teams {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	item, ok := r.db.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) GetByIDs(_ context.Context, teamIDs []int64) ([]team.Team, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]team.Team, 0, len(teamIDs))
	seen := make(map[int64]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if item, ok := r.db.teams[id]; ok {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) (team.Team, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.teams {
		if strings.EqualFold(existing.Name, item.Name) {
			return team.Team{}, uniqueViolation("teams_name_key")
		}
	}

	if item.ID == 0 {
		item.ID = r.db.nextID("teams")
	} else {
		r.db.bumpSeq("teams", item.ID)
	}
	r.db.teams[item.ID] = item

	return item, nil
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) (team.Team, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.teams[item.ID]
	if !ok {
		return team.Team{}, store.ErrNoRows
	}
	for _, existing := range r.db.teams {
		if existing.ID != item.ID && strings.EqualFold(existing.Name, item.Name) {
			return team.Team{}, uniqueViolation("teams_name_key")
		}
	}

	item.CreatedAt = current.CreatedAt
	r.db.teams[item.ID] = item

	return item, nil
}

// Delete mirrors ON DELETE RESTRICT from matches and ON DELETE SET NULL from players.
func (r *TeamRepository) Delete(_ context.Context, teamID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.teams[teamID]; !ok {
		return store.ErrNoRows
	}
	for _, m := range r.db.matches {
		if m.Team1ID == teamID {
			return foreignKeyViolation("teams", "matches_team1_id_fkey", "matches")
		}
		if m.Team2ID == teamID {
			return foreignKeyViolation("teams", "matches_team2_id_fkey", "matches")
		}
	}

	for id, p := range r.db.players {
		if p.PlaysFor(teamID) {
			p.TeamID = nil
			r.db.players[id] = p
		}
	}
	delete(r.db.teams, teamID)

	return nil
}
