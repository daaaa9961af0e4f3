package match

// SeriesResult is the derived series projection stored on a match.
type SeriesResult struct {
	Team1Wins    int
	Team2Wins    int
	WinnerTeamID *int64
	Status       Status
}

// Equal reports whether two projections carry the same values.
func (r SeriesResult) Equal(other SeriesResult) bool {
	if r.Team1Wins != other.Team1Wins || r.Team2Wins != other.Team2Wins || r.Status != other.Status {
		return false
	}
	if r.WinnerTeamID == nil || other.WinnerTeamID == nil {
		return r.WinnerTeamID == nil && other.WinnerTeamID == nil
	}
	return *r.WinnerTeamID == *other.WinnerTeamID
}

// Result returns the projection currently stored on the match.
func (m Match) Result() SeriesResult {
	return SeriesResult{
		Team1Wins:    m.Team1Wins,
		Team2Wins:    m.Team2Wins,
		WinnerTeamID: m.WinnerTeamID,
		Status:       m.Status,
	}
}

// ComputeSeriesProgress derives win counts, winner and status from map results.
//
// A side wins the series once its map wins exceed half the map total. Until then
// there is no winner, and the status moves to live as soon as any map has a score
// or a winner. Matches with no map activity keep their current status, and a
// cancelled match stays cancelled with its map wins counted but no winner.
func ComputeSeriesProgress(m Match, maps []Map) SeriesResult {
	result := SeriesResult{Status: m.Status}

	played := false
	for _, item := range maps {
		if item.Played() {
			played = true
		}
		if item.WinnerTeamID == nil {
			continue
		}
		switch *item.WinnerTeamID {
		case m.Team1ID:
			result.Team1Wins++
		case m.Team2ID:
			result.Team2Wins++
		}
	}

	if m.Status == StatusCancelled {
		return result
	}

	total := len(maps)
	if total == 0 {
		total = m.SeriesFormat.MapCount()
	}

	switch {
	case result.Team1Wins*2 > total:
		winner := m.Team1ID
		result.WinnerTeamID = &winner
		result.Status = StatusCompleted
	case result.Team2Wins*2 > total:
		winner := m.Team2ID
		result.WinnerTeamID = &winner
		result.Status = StatusCompleted
	case played:
		result.Status = StatusLive
	}

	return result
}

// ApplyResult copies a projection onto the match.
func (m *Match) ApplyResult(r SeriesResult) {
	m.Team1Wins = r.Team1Wins
	m.Team2Wins = r.Team2Wins
	m.WinnerTeamID = r.WinnerTeamID
	m.Status = r.Status
}
