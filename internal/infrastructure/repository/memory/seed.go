package memory

import (
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/domain/player"
	"github.com/riskibarqy/esports-hub/internal/domain/team"
	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
)

const (
	TournamentIDWinterCup int64 = 1

	TeamIDNightfall int64 = 1
	TeamIDVanguard  int64 = 2
	TeamIDRedline   int64 = 3
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDNightfall, Name: "Nightfall", Country: "ID"},
		{ID: TeamIDVanguard, Name: "Vanguard", Country: "PH"},
		{ID: TeamIDRedline, Name: "Redline", Country: "MY"},
	}
}

func SeedPlayers() []player.Player {
	nightfall, vanguard, redline := TeamIDNightfall, TeamIDVanguard, TeamIDRedline
	return []player.Player{
		{ID: 1, Name: "Aether", TeamID: &nightfall, Country: "ID"},
		{ID: 2, Name: "Blitz", TeamID: &nightfall, Country: "ID"},
		{ID: 3, Name: "Cipher", TeamID: &nightfall, Country: "ID"},
		{ID: 4, Name: "Drift", TeamID: &nightfall, Country: "ID"},
		{ID: 5, Name: "Echo", TeamID: &nightfall, Country: "ID"},
		{ID: 6, Name: "Fang", TeamID: &vanguard, Country: "PH"},
		{ID: 7, Name: "Ghost", TeamID: &vanguard, Country: "PH"},
		{ID: 8, Name: "Havoc", TeamID: &vanguard, Country: "PH"},
		{ID: 9, Name: "Ion", TeamID: &vanguard, Country: "PH"},
		{ID: 10, Name: "Jinx", TeamID: &vanguard, Country: "PH"},
		{ID: 11, Name: "Kite", TeamID: &redline, Country: "MY"},
		{ID: 12, Name: "Lumen", Country: "SG"},
	}
}

func SeedTournaments() []tournament.Tournament {
	start := time.Date(2026, time.December, 5, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)
	prize := int64(500000)
	return []tournament.Tournament{
		{
			ID:             TournamentIDWinterCup,
			Name:           "Winter Cup",
			Game:           "Call of Duty: Mobile",
			StartDate:      &start,
			EndDate:        &end,
			PrizePoolCents: &prize,
			Status:         tournament.StatusUpcoming,
		},
	}
}

func SeedMatches() []match.Match {
	kickoff := time.Date(2026, time.December, 5, 9, 0, 0, 0, time.UTC)
	return []match.Match{
		{
			ID:           1,
			TournamentID: TournamentIDWinterCup,
			Team1ID:      TeamIDNightfall,
			Team2ID:      TeamIDVanguard,
			ScheduledAt:  &kickoff,
			Round:        "Upper Bracket Round 1",
			Status:       match.StatusScheduled,
			SeriesFormat: match.FormatBo3,
			Version:      1,
		},
	}
}

// NewSeededDB returns a DB holding the demo dataset used by the memory store driver.
func NewSeededDB(now time.Time) *DB {
	db := NewDB()
	now = now.UTC()

	for _, item := range SeedTeams() {
		item.CreatedAt, item.UpdatedAt = now, now
		db.teams[item.ID] = item
		db.bumpSeq("teams", item.ID)
	}
	for _, item := range SeedPlayers() {
		item.CreatedAt, item.UpdatedAt = now, now
		db.players[item.ID] = item
		db.bumpSeq("players", item.ID)
	}
	for _, item := range SeedTournaments() {
		item.CreatedAt, item.UpdatedAt = now, now
		db.tournaments[item.ID] = item
		db.bumpSeq("tournaments", item.ID)
	}
	for _, item := range SeedMatches() {
		item.CreatedAt, item.UpdatedAt = now, now
		db.matches[item.ID] = item
		db.bumpSeq("matches", item.ID)
	}

	return db
}
