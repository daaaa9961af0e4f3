package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/match"
)

type matchTableModel struct {
	ID           int64         `db:"id,readonly"`
	TournamentID int64         `db:"tournament_id"`
	Team1ID      int64         `db:"team1_id"`
	Team2ID      int64         `db:"team2_id"`
	ScheduledAt  *time.Time    `db:"scheduled_at"`
	MapName      string        `db:"map_name"`
	GameMode     string        `db:"game_mode"`
	Round        string        `db:"round"`
	Status       string        `db:"status"`
	SeriesFormat string        `db:"series_format"`
	Team1Wins    int           `db:"team1_wins"`
	Team2Wins    int           `db:"team2_wins"`
	WinnerTeamID sql.NullInt64 `db:"winner_team_id"`
	Version      int64         `db:"version"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

// matchListingRow is a match joined with both teams and its tournament.
type matchListingRow struct {
	matchTableModel
	Team1Name      string `db:"team1_name"`
	Team1LogoURL   string `db:"team1_logo_url"`
	Team2Name      string `db:"team2_name"`
	Team2LogoURL   string `db:"team2_logo_url"`
	TournamentName string `db:"tournament_name"`
}

type matchMapTableModel struct {
	ID              int64         `db:"id,readonly"`
	MatchID         int64         `db:"match_id"`
	MapNumber       int           `db:"map_number"`
	MapName         string        `db:"map_name"`
	GameMode        string        `db:"game_mode"`
	Team1Score      int           `db:"team1_score"`
	Team2Score      int           `db:"team2_score"`
	WinnerTeamID    sql.NullInt64 `db:"winner_team_id"`
	Status          string        `db:"status"`
	DurationSeconds sql.NullInt64 `db:"duration_seconds"`
}

func newMatchTableModel(item match.Match) matchTableModel {
	return matchTableModel{
		ID:           item.ID,
		TournamentID: item.TournamentID,
		Team1ID:      item.Team1ID,
		Team2ID:      item.Team2ID,
		ScheduledAt:  item.ScheduledAt,
		MapName:      item.MapName,
		GameMode:     item.GameMode,
		Round:        item.Round,
		Status:       string(item.Status),
		SeriesFormat: string(item.SeriesFormat),
		Team1Wins:    item.Team1Wins,
		Team2Wins:    item.Team2Wins,
		WinnerTeamID: nullInt64(item.WinnerTeamID),
		Version:      item.Version,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:           m.ID,
		TournamentID: m.TournamentID,
		Team1ID:      m.Team1ID,
		Team2ID:      m.Team2ID,
		ScheduledAt:  m.ScheduledAt,
		MapName:      m.MapName,
		GameMode:     m.GameMode,
		Round:        m.Round,
		Status:       match.Status(m.Status),
		SeriesFormat: match.SeriesFormat(m.SeriesFormat),
		Team1Wins:    m.Team1Wins,
		Team2Wins:    m.Team2Wins,
		WinnerTeamID: int64Ptr(m.WinnerTeamID),
		Version:      m.Version,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r matchListingRow) toDomain() match.Listing {
	return match.Listing{
		Match:          r.matchTableModel.toDomain(),
		Team1:          match.TeamRef{ID: r.Team1ID, Name: r.Team1Name, LogoURL: r.Team1LogoURL},
		Team2:          match.TeamRef{ID: r.Team2ID, Name: r.Team2Name, LogoURL: r.Team2LogoURL},
		TournamentName: r.TournamentName,
	}
}

func newMatchMapTableModel(item match.Map) matchMapTableModel {
	return matchMapTableModel{
		ID:              item.ID,
		MatchID:         item.MatchID,
		MapNumber:       item.Number,
		MapName:         item.MapName,
		GameMode:        string(item.GameMode),
		Team1Score:      item.Team1Score,
		Team2Score:      item.Team2Score,
		WinnerTeamID:    nullInt64(item.WinnerTeamID),
		Status:          string(item.Status),
		DurationSeconds: nullInt(item.DurationSeconds),
	}
}

func (m matchMapTableModel) toDomain() match.Map {
	return match.Map{
		ID:              m.ID,
		MatchID:         m.MatchID,
		Number:          m.MapNumber,
		MapName:         m.MapName,
		GameMode:        match.GameMode(m.GameMode),
		Team1Score:      m.Team1Score,
		Team2Score:      m.Team2Score,
		WinnerTeamID:    int64Ptr(m.WinnerTeamID),
		Status:          match.MapStatus(m.Status),
		DurationSeconds: intPtr(m.DurationSeconds),
	}
}
