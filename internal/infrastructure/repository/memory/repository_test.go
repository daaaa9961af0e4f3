package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/domain/matchstats"
	"github.com/riskibarqy/esports-hub/internal/domain/store"
)

func TestTeamDeleteRejectedWhileReferencedByMatch(t *testing.T) {
	ctx := context.Background()
	db := NewSeededDB(time.Now())
	repo := NewTeamRepository(db)

	err := repo.Delete(ctx, TeamIDNightfall)
	if !errors.Is(err, store.ErrReferenced) {
		t.Fatalf("expected ErrReferenced, got %v", err)
	}
	msg, ok := store.BackendMessage(err)
	if !ok || msg == "" {
		t.Fatalf("expected backend message, got %q ok=%v", msg, ok)
	}
	if _, exists, _ := repo.GetByID(ctx, TeamIDNightfall); !exists {
		t.Fatalf("referenced team must not be deleted")
	}
}

func TestTeamDeleteDetachesPlayers(t *testing.T) {
	ctx := context.Background()
	db := NewSeededDB(time.Now())
	teams := NewTeamRepository(db)
	players := NewPlayerRepository(db)

	if err := teams.Delete(ctx, TeamIDRedline); err != nil {
		t.Fatalf("delete team: %v", err)
	}
	p, exists, err := players.GetByID(ctx, 11)
	if err != nil || !exists {
		t.Fatalf("expected player to survive team delete, exists=%v err=%v", exists, err)
	}
	if p.TeamID != nil {
		t.Fatalf("expected player to be unassigned, got team %d", *p.TeamID)
	}
}

func TestTeamCreateDuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := NewTeamRepository(NewSeededDB(time.Now()))

	created, err := repo.Create(ctx, SeedTeams()[0])
	if err == nil {
		t.Fatalf("expected duplicate error, created %+v", created)
	}
	if !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestMapCreateManyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := NewSeededDB(time.Now())
	matches := NewMatchRepository(db)
	maps := NewMapRepository(db)

	item, _, err := matches.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	plan := match.PlanMaps(item.Match)
	if err := maps.CreateMany(ctx, plan); err != nil {
		t.Fatalf("create maps: %v", err)
	}
	if err := maps.CreateMany(ctx, plan); err != nil {
		t.Fatalf("create maps again: %v", err)
	}

	got, err := maps.ListByMatch(ctx, 1)
	if err != nil {
		t.Fatalf("list maps: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 maps, got %d", len(got))
	}
}

func TestMatchUpdateStaleVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository(NewSeededDB(time.Now()))

	item, _, _ := repo.GetByID(ctx, 1)
	item.Round = "Grand Final"
	if _, err := repo.Update(ctx, item.Match, item.Version+5); !errors.Is(err, store.ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}

	updated, err := repo.Update(ctx, item.Match, item.Version)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Version != item.Version+1 || updated.Round != "Grand Final" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestStatsSaveSheetIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	db := NewSeededDB(time.Now())
	matches := NewMatchRepository(db)
	maps := NewMapRepository(db)
	stats := NewStatsRepository(db)

	item, _, _ := matches.GetByID(ctx, 1)
	if err := maps.CreateMany(ctx, match.PlanMaps(item.Match)); err != nil {
		t.Fatalf("create maps: %v", err)
	}
	stored, _ := maps.ListByMatch(ctx, 1)

	winner := TeamIDNightfall
	stored[0].WinnerTeamID = &winner
	stored[0].Status = match.MapCompleted
	set := matchstats.SaveSet{
		MatchID:         1,
		ExpectedVersion: item.Version,
		Maps:            stored,
		Upserts: []matchstats.PlayerMapStat{
			{MatchID: 1, MapID: stored[0].ID, PlayerID: 1, TeamID: TeamIDNightfall, Counters: matchstats.Counters{Kills: 10}},
			{MatchID: 1, MapID: 9999, PlayerID: 2, TeamID: TeamIDNightfall, Counters: matchstats.Counters{Kills: 1}},
		},
		Result: match.SeriesResult{Team1Wins: 1, Status: match.StatusLive},
	}
	if _, err := stats.SaveSheet(ctx, set); err == nil {
		t.Fatalf("expected foreign map to fail the save")
	}
	if rows, _ := stats.ListByMatch(ctx, 1); len(rows) != 0 {
		t.Fatalf("failed save must not persist rows, got %d", len(rows))
	}
	if again, _ := maps.ListByMatch(ctx, 1); again[0].WinnerTeamID != nil {
		t.Fatalf("failed save must not persist map results")
	}

	set.Upserts = set.Upserts[:1]
	saved, err := stats.SaveSheet(ctx, set)
	if err != nil {
		t.Fatalf("save sheet: %v", err)
	}
	if saved.Version != item.Version+1 || saved.Team1Wins != 1 || saved.Status != match.StatusLive {
		t.Fatalf("unexpected saved match: %+v", saved)
	}

	if _, err := stats.SaveSheet(ctx, set); !errors.Is(err, store.ErrStale) {
		t.Fatalf("expected stale version on replay, got %v", err)
	}
}
