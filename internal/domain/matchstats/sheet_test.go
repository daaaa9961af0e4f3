package matchstats

import (
	"testing"

	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/domain/player"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func newTestSheet(rows ...PlayerMapStat) *Sheet {
	m := match.Listing{Match: match.Match{
		ID:           1,
		TournamentID: 1,
		Team1ID:      10,
		Team2ID:      20,
		Status:       match.StatusScheduled,
		SeriesFormat: match.FormatBo3,
	}}
	maps := match.PlanMaps(m.Match)
	for i := range maps {
		maps[i].ID = int64(100 + i + 1)
	}
	team1 := []player.Player{{ID: 1, Name: "Alpha", TeamID: int64Ptr(10)}}
	team2 := []player.Player{{ID: 2, Name: "Bravo", TeamID: int64Ptr(20)}}
	return NewSheet(m, maps, team1, team2, rows)
}

func TestSheetStatDefaultsToZero(t *testing.T) {
	sheet := newTestSheet()

	got := sheet.Stat(101, 1)
	if got.HasActivity() || got.MVP {
		t.Fatalf("expected zero tuple, got %+v", got)
	}
	if got.TeamID != 10 || got.MatchID != 1 {
		t.Fatalf("expected team and match to be filled, got %+v", got)
	}
}

func TestSheetApplyKeepsEarlierFields(t *testing.T) {
	sheet := newTestSheet()

	if _, err := sheet.Apply(101, 1, Patch{Kills: intPtr(12)}); err != nil {
		t.Fatalf("apply kills: %v", err)
	}
	if _, err := sheet.Apply(101, 1, Patch{Deaths: intPtr(7)}); err != nil {
		t.Fatalf("apply deaths: %v", err)
	}

	got := sheet.Stat(101, 1)
	if got.Kills != 12 || got.Deaths != 7 {
		t.Fatalf("expected kills=12 deaths=7, got kills=%d deaths=%d", got.Kills, got.Deaths)
	}
}

func TestSheetApplyRejectsOutsiders(t *testing.T) {
	sheet := newTestSheet()

	if _, err := sheet.Apply(101, 99, Patch{Kills: intPtr(1)}); err == nil {
		t.Fatalf("expected player outside both teams to be rejected")
	}
	if _, err := sheet.Apply(999, 1, Patch{Kills: intPtr(1)}); err == nil {
		t.Fatalf("expected foreign map to be rejected")
	}
	if _, err := sheet.Apply(101, 1, Patch{Kills: intPtr(-1)}); err == nil {
		t.Fatalf("expected negative counter to be rejected")
	}
	if got := sheet.Stat(101, 1); got.Kills != 0 {
		t.Fatalf("rejected patch must not change state, got kills=%d", got.Kills)
	}
}

func TestSheetSkipsEmptyTuples(t *testing.T) {
	sheet := newTestSheet()

	if _, err := sheet.Apply(101, 1, Patch{Kills: intPtr(0), MVP: boolPtr(true)}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := sheet.Stats(); len(got) != 0 {
		t.Fatalf("expected no persistable rows, got %d", len(got))
	}

	if _, err := sheet.Apply(101, 1, Patch{Kills: intPtr(1)}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	got := sheet.Stats()
	if len(got) != 1 || got[0].Kills != 1 || !got[0].MVP {
		t.Fatalf("expected one row with kills=1 and mvp, got %+v", got)
	}
}

func TestSheetClearedReturnsZeroedPersistedRows(t *testing.T) {
	persisted := PlayerMapStat{ID: 5, MatchID: 1, MapID: 101, PlayerID: 2, TeamID: 20, Counters: Counters{Kills: 3}}
	sheet := newTestSheet(persisted)

	if _, err := sheet.Apply(101, 2, Patch{Kills: intPtr(0)}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	cleared := sheet.Cleared()
	if len(cleared) != 1 || cleared[0] != (Key{MapID: 101, PlayerID: 2}) {
		t.Fatalf("expected cleared key, got %+v", cleared)
	}
	if len(sheet.Stats()) != 0 {
		t.Fatalf("expected no upserts after zeroing")
	}
}

func TestSheetUpdateMapSetsStatusAndResult(t *testing.T) {
	sheet := newTestSheet()

	updated, err := sheet.UpdateMap(101, MapPatch{Team1Score: intPtr(250), Team2Score: intPtr(200), WinnerTeamID: int64Ptr(10)})
	if err != nil {
		t.Fatalf("update map 1: %v", err)
	}
	if updated.Status != match.MapCompleted {
		t.Fatalf("expected completed map, got %q", updated.Status)
	}
	if _, err := sheet.UpdateMap(102, MapPatch{WinnerTeamID: int64Ptr(10)}); err != nil {
		t.Fatalf("update map 2: %v", err)
	}

	result := sheet.Result()
	if result.Team1Wins != 2 || result.Team2Wins != 0 || result.Status != match.StatusCompleted {
		t.Fatalf("expected 2-0 completed, got %+v", result)
	}
	if result.WinnerTeamID == nil || *result.WinnerTeamID != 10 {
		t.Fatalf("expected team 10 to win, got %v", result.WinnerTeamID)
	}

	cleared, err := sheet.UpdateMap(102, MapPatch{WinnerTeamID: int64Ptr(0)})
	if err != nil {
		t.Fatalf("clear winner: %v", err)
	}
	if cleared.WinnerTeamID != nil || cleared.Status != match.MapPending {
		t.Fatalf("expected cleared pending map, got %+v", cleared)
	}
}

func TestSheetUpdateMapRejectsForeignWinner(t *testing.T) {
	sheet := newTestSheet()

	if _, err := sheet.UpdateMap(101, MapPatch{WinnerTeamID: int64Ptr(99)}); err == nil {
		t.Fatalf("expected foreign winner to be rejected")
	}
	if m, _ := sheet.Map(101); m.WinnerTeamID != nil {
		t.Fatalf("rejected patch must not change the map")
	}
}

func TestSheetSaveSet(t *testing.T) {
	sheet := newTestSheet()
	if _, err := sheet.Apply(102, 2, Patch{Kills: intPtr(4)}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	set := sheet.SaveSet(3)
	if set.MatchID != 1 || set.ExpectedVersion != 3 {
		t.Fatalf("unexpected set header: %+v", set)
	}
	if len(set.Maps) != 3 || len(set.Upserts) != 1 || len(set.Deletes) != 0 {
		t.Fatalf("unexpected set contents: maps=%d upserts=%d deletes=%d", len(set.Maps), len(set.Upserts), len(set.Deletes))
	}
	if set.Upserts[0].TeamID != 20 {
		t.Fatalf("expected team id from roster, got %d", set.Upserts[0].TeamID)
	}
}
