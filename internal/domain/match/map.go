package match

import "fmt"

type MapStatus string

const (
	MapPending   MapStatus = "pending"
	MapCompleted MapStatus = "completed"
)

// Map is one game instance within a series.
type Map struct {
	ID              int64
	MatchID         int64
	Number          int
	MapName         string
	GameMode        GameMode
	Team1Score      int
	Team2Score      int
	WinnerTeamID    *int64
	Status          MapStatus
	DurationSeconds *int
}

// Played reports whether the map carries any result.
func (m Map) Played() bool {
	return m.Team1Score > 0 || m.Team2Score > 0 || m.WinnerTeamID != nil
}

// Validate checks a map against the match it belongs to.
func (m Map) Validate(parent Match) error {
	if m.MatchID != parent.ID {
		return fmt.Errorf("map %d does not belong to match %d", m.Number, parent.ID)
	}
	if m.Number < 1 {
		return fmt.Errorf("map number must be at least 1")
	}
	if m.Team1Score < 0 || m.Team2Score < 0 {
		return fmt.Errorf("map %d scores must not be negative", m.Number)
	}
	if m.WinnerTeamID != nil && !parent.HasTeam(*m.WinnerTeamID) {
		return fmt.Errorf("map %d winner must be one of the match teams", m.Number)
	}
	if m.DurationSeconds != nil && *m.DurationSeconds < 0 {
		return fmt.Errorf("map %d duration must not be negative", m.Number)
	}
	switch m.Status {
	case MapPending, MapCompleted:
	default:
		return fmt.Errorf("invalid map status: %s", m.Status)
	}

	return nil
}

// PlanMaps returns the pending maps a match starts with, following the format's rotation.
func PlanMaps(m Match) []Map {
	rotation := ResolveRotation(m.SeriesFormat)
	out := make([]Map, 0, len(rotation))
	for i, mode := range rotation {
		out = append(out, Map{
			MatchID:  m.ID,
			Number:   i + 1,
			GameMode: mode,
			Status:   MapPending,
		})
	}
	return out
}
