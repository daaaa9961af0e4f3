package match

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var AllStatuses = map[Status]struct{}{
	StatusScheduled: {},
	StatusLive:      {},
	StatusCompleted: {},
	StatusCancelled: {},
}

// NormalizeStatus lowercases a status label and falls back to scheduled when blank.
func NormalizeStatus(value string) Status {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	if status == "" {
		return StatusScheduled
	}
	return status
}

// Match is one series between two teams inside a tournament.
// Team1Wins, Team2Wins and WinnerTeamID are a projection of the map results.
type Match struct {
	ID           int64
	TournamentID int64
	Team1ID      int64
	Team2ID      int64
	ScheduledAt  *time.Time
	MapName      string
	GameMode     string
	Round        string
	Status       Status
	SeriesFormat SeriesFormat
	Team1Wins    int
	Team2Wins    int
	WinnerTeamID *int64
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (m Match) Validate() error {
	if m.TournamentID <= 0 {
		return fmt.Errorf("match tournament is required")
	}
	if m.Team1ID <= 0 || m.Team2ID <= 0 {
		return fmt.Errorf("match requires two teams")
	}
	if m.Team1ID == m.Team2ID {
		return fmt.Errorf("match teams must differ")
	}
	if _, ok := AllStatuses[m.Status]; !ok {
		return fmt.Errorf("invalid match status: %s", m.Status)
	}
	if !m.SeriesFormat.Valid() {
		return fmt.Errorf("invalid series format: %s", m.SeriesFormat)
	}
	if m.Team1Wins < 0 || m.Team2Wins < 0 {
		return fmt.Errorf("series wins must not be negative")
	}
	if m.WinnerTeamID != nil && !m.HasTeam(*m.WinnerTeamID) {
		return fmt.Errorf("match winner must be one of the match teams")
	}

	return nil
}

// HasTeam reports whether teamID is one of the two sides.
func (m Match) HasTeam(teamID int64) bool {
	return teamID == m.Team1ID || teamID == m.Team2ID
}

// TeamRef is the embedded team summary shown in match listings.
type TeamRef struct {
	ID      int64
	Name    string
	LogoURL string
}

// Listing is a match joined with its teams and tournament name.
type Listing struct {
	Match
	Team1          TeamRef
	Team2          TeamRef
	TournamentName string
}

// Filter narrows match listings. Zero values mean no filter.
type Filter struct {
	TournamentID int64
	TeamID       int64
}
