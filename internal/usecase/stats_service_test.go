package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/domain/matchstats"
	"github.com/riskibarqy/esports-hub/internal/domain/player"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/memory"
)

type statsFixture struct {
	service    *StatsService
	matchRepo  *memory.MatchRepository
	mapRepo    *memory.MapRepository
	statsRepo  *memory.StatsRepository
	playerRepo *memory.PlayerRepository
}

func newStatsFixture(t *testing.T, exporter StatsExporter) statsFixture {
	t.Helper()

	db := memory.NewSeededDB(time.Now())
	matchRepo := memory.NewMatchRepository(db)
	mapRepo := memory.NewMapRepository(db)
	statsRepo := memory.NewStatsRepository(db)
	playerRepo := memory.NewPlayerRepository(db)

	return statsFixture{
		service:    NewStatsService(matchRepo, mapRepo, statsRepo, playerRepo, exporter, nil),
		matchRepo:  matchRepo,
		mapRepo:    mapRepo,
		statsRepo:  statsRepo,
		playerRepo: playerRepo,
	}
}

func intValue(v int) *int       { return &v }
func int64Value(v int64) *int64 { return &v }

func TestStatsService_OpenMaterialisesMapsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newStatsFixture(t, nil)

	sheet, err := f.service.Open(ctx, 1)
	if err != nil {
		t.Fatalf("open stats: %v", err)
	}
	want := []match.GameMode{match.ModeHardpoint, match.ModeSearchAndDestroy, match.ModeControl}
	if len(sheet.Maps) != len(want) {
		t.Fatalf("expected %d maps, got %d", len(want), len(sheet.Maps))
	}
	for i, item := range sheet.Maps {
		if item.Number != i+1 || item.GameMode != want[i] || item.Status != match.MapPending {
			t.Fatalf("unexpected map %d: %+v", i+1, item)
		}
	}
	if len(sheet.Team1Roster) != 5 || len(sheet.Team2Roster) != 5 {
		t.Fatalf("expected full rosters, got %d and %d", len(sheet.Team1Roster), len(sheet.Team2Roster))
	}

	again, err := f.service.Open(ctx, 1)
	if err != nil {
		t.Fatalf("reopen stats: %v", err)
	}
	for i := range again.Maps {
		if again.Maps[i].ID != sheet.Maps[i].ID {
			t.Fatalf("reopen must not recreate maps: %d != %d", again.Maps[i].ID, sheet.Maps[i].ID)
		}
	}
	stored, _ := f.mapRepo.ListByMatch(ctx, 1)
	if len(stored) != 3 {
		t.Fatalf("expected 3 stored maps, got %d", len(stored))
	}
}

func TestStatsService_OpenUnknownMatch(t *testing.T) {
	t.Parallel()

	f := newStatsFixture(t, nil)
	if _, err := f.service.Open(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatsService_SaveTwoMapSweepCompletesSeries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newStatsFixture(t, nil)
	sheet, err := f.service.Open(ctx, 1)
	if err != nil {
		t.Fatalf("open stats: %v", err)
	}
	team1 := sheet.Match.Team1ID

	saved, err := f.service.Save(ctx, SaveStatsInput{
		MatchID: 1,
		Maps: []MapUpdate{
			{MapID: sheet.Maps[0].ID, Patch: matchstats.MapPatch{Team1Score: intValue(250), Team2Score: intValue(190), WinnerTeamID: int64Value(team1)}},
			{MapID: sheet.Maps[1].ID, Patch: matchstats.MapPatch{Team1Score: intValue(6), Team2Score: intValue(2), WinnerTeamID: int64Value(team1)}},
		},
	})
	if err != nil {
		t.Fatalf("save stats: %v", err)
	}

	got, _, _ := f.matchRepo.GetByID(ctx, 1)
	if got.Team1Wins != 2 || got.Team2Wins != 0 {
		t.Fatalf("expected 2-0, got %d-%d", got.Team1Wins, got.Team2Wins)
	}
	if got.WinnerTeamID == nil || *got.WinnerTeamID != team1 {
		t.Fatalf("expected team %d to win, got %v", team1, got.WinnerTeamID)
	}
	if got.Status != match.StatusCompleted {
		t.Fatalf("expected completed, got %q", got.Status)
	}
	if saved.Match.Version != got.Version {
		t.Fatalf("returned sheet must carry the new version, got %d want %d", saved.Match.Version, got.Version)
	}
}

func TestStatsService_SaveSkipsAllZeroTuples(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newStatsFixture(t, nil)
	sheet, _ := f.service.Open(ctx, 1)
	mapID := sheet.Maps[0].ID
	playerID := sheet.Team1Roster[0].ID

	if _, err := f.service.Save(ctx, SaveStatsInput{
		MatchID: 1,
		Stats:   []StatUpdate{{MapID: mapID, PlayerID: playerID, Patch: matchstats.Patch{Kills: intValue(0), Deaths: intValue(0)}}},
	}); err != nil {
		t.Fatalf("save zero stats: %v", err)
	}
	if rows, _ := f.statsRepo.ListByMatch(ctx, 1); len(rows) != 0 {
		t.Fatalf("expected no rows for all-zero tuple, got %d", len(rows))
	}

	if _, err := f.service.Save(ctx, SaveStatsInput{
		MatchID: 1,
		Stats:   []StatUpdate{{MapID: mapID, PlayerID: playerID, Patch: matchstats.Patch{Kills: intValue(1)}}},
	}); err != nil {
		t.Fatalf("save stats: %v", err)
	}
	rows, _ := f.statsRepo.ListByMatch(ctx, 1)
	if len(rows) != 1 || rows[0].Kills != 1 || rows[0].MapID != mapID || rows[0].PlayerID != playerID {
		t.Fatalf("expected exactly one row with kills=1, got %+v", rows)
	}
}

func TestStatsService_SaveKeepsPreviouslySetFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newStatsFixture(t, nil)
	sheet, _ := f.service.Open(ctx, 1)
	mapID := sheet.Maps[1].ID
	playerID := sheet.Team2Roster[0].ID

	for _, patch := range []matchstats.Patch{{Kills: intValue(14)}, {Deaths: intValue(9)}} {
		if _, err := f.service.Save(ctx, SaveStatsInput{
			MatchID: 1,
			Stats:   []StatUpdate{{MapID: mapID, PlayerID: playerID, Patch: patch}},
		}); err != nil {
			t.Fatalf("save stats: %v", err)
		}
	}

	reopened, _ := f.service.Open(ctx, 1)
	got := reopened.Stat(mapID, playerID)
	if got.Kills != 14 || got.Deaths != 9 {
		t.Fatalf("expected kills=14 deaths=9, got kills=%d deaths=%d", got.Kills, got.Deaths)
	}
	if got.TeamID != sheet.Match.Team2ID {
		t.Fatalf("expected team %d, got %d", sheet.Match.Team2ID, got.TeamID)
	}
}

func TestStatsService_SaveDeletesZeroedTuple(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newStatsFixture(t, nil)
	sheet, _ := f.service.Open(ctx, 1)
	mapID := sheet.Maps[0].ID
	playerID := sheet.Team1Roster[1].ID

	if _, err := f.service.Save(ctx, SaveStatsInput{
		MatchID: 1,
		Stats:   []StatUpdate{{MapID: mapID, PlayerID: playerID, Patch: matchstats.Patch{Assists: intValue(3)}}},
	}); err != nil {
		t.Fatalf("save stats: %v", err)
	}
	if _, err := f.service.Save(ctx, SaveStatsInput{
		MatchID: 1,
		Stats:   []StatUpdate{{MapID: mapID, PlayerID: playerID, Patch: matchstats.Patch{Assists: intValue(0)}}},
	}); err != nil {
		t.Fatalf("zero stats: %v", err)
	}

	if rows, _ := f.statsRepo.ListByMatch(ctx, 1); len(rows) != 0 {
		t.Fatalf("expected zeroed tuple to be deleted, got %+v", rows)
	}
}

func TestStatsService_SaveRejectsStaleVersion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newStatsFixture(t, nil)
	sheet, _ := f.service.Open(ctx, 1)

	_, err := f.service.Save(ctx, SaveStatsInput{
		MatchID:         1,
		ExpectedVersion: sheet.Match.Version + 1,
		Stats:           []StatUpdate{{MapID: sheet.Maps[0].ID, PlayerID: sheet.Team1Roster[0].ID, Patch: matchstats.Patch{Kills: intValue(5)}}},
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if rows, _ := f.statsRepo.ListByMatch(ctx, 1); len(rows) != 0 {
		t.Fatalf("stale save must not persist anything, got %d rows", len(rows))
	}
}

func TestStatsService_SaveRejectsPlayerOutsideMatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newStatsFixture(t, nil)
	sheet, _ := f.service.Open(ctx, 1)

	_, err := f.service.Save(ctx, SaveStatsInput{
		MatchID: 1,
		Stats:   []StatUpdate{{MapID: sheet.Maps[0].ID, PlayerID: 11, Patch: matchstats.Patch{Kills: intValue(5)}}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

type recordingExporter struct {
	maps int
}

func (e *recordingExporter) WriteSheet(w io.Writer, sheet *matchstats.Sheet) error {
	e.maps = len(sheet.Maps)
	_, err := w.Write([]byte("xlsx"))
	return err
}

func TestStatsService_Export(t *testing.T) {
	t.Parallel()

	exporter := &recordingExporter{}
	f := newStatsFixture(t, exporter)

	var buf bytes.Buffer
	if err := f.service.Export(context.Background(), 1, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	if exporter.maps != 3 || buf.String() != "xlsx" {
		t.Fatalf("unexpected export: maps=%d body=%q", exporter.maps, buf.String())
	}

	noExporter := newStatsFixture(t, nil)
	if err := noExporter.service.Export(context.Background(), 1, &buf); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestStatsService_SaveAcceptsEveryTeamMember(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newStatsFixture(t, nil)
	nightfall := memory.TeamIDNightfall

	sub, err := f.playerRepo.Create(ctx, player.Player{Name: "Zenith", TeamID: &nightfall, Country: "ID"})
	if err != nil {
		t.Fatalf("create sixth player: %v", err)
	}
	first, err := f.playerRepo.Create(ctx, player.Player{Name: "Aardvark", TeamID: &nightfall, Country: "ID"})
	if err != nil {
		t.Fatalf("create seventh player: %v", err)
	}

	sheet, err := f.service.Open(ctx, 1)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(sheet.Team1Roster) != 7 {
		t.Fatalf("expected full roster of 7, got %d", len(sheet.Team1Roster))
	}

	mapID := sheet.Maps[0].ID
	if _, err := f.service.Save(ctx, SaveStatsInput{
		MatchID: 1,
		Stats: []StatUpdate{
			{MapID: mapID, PlayerID: sub.ID, Patch: matchstats.Patch{Kills: intValue(3)}},
			{MapID: mapID, PlayerID: first.ID, Patch: matchstats.Patch{Kills: intValue(2)}},
			{MapID: mapID, PlayerID: 5, Patch: matchstats.Patch{Kills: intValue(1)}},
		},
	}); err != nil {
		t.Fatalf("save stats for bench players: %v", err)
	}

	rows, _ := f.statsRepo.ListByMatch(ctx, 1)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.TeamID != memory.TeamIDNightfall {
			t.Fatalf("row %+v should belong to team %d", row, memory.TeamIDNightfall)
		}
	}
}
