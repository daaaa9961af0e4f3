package matchstats

import (
	"strings"

	"github.com/riskibarqy/esports-hub/internal/domain/match"
)

// Patch carries the fields of a statistics tuple to overwrite. Nil fields are left unchanged.
type Patch struct {
	Kills           *int
	Deaths          *int
	Assists         *int
	DamageDealt     *int
	DamageTaken     *int
	ShotsFired      *int
	ShotsHit        *int
	Headshots       *int
	Score           *int
	TimeOnObjective *int
	Captures        *int
	Defends         *int
	Plants          *int
	Defuses         *int
	Clutches        *int
	FirstBloods     *int
	BestStreak      *int
	MVP             *bool
}

func (p Patch) applyTo(s *PlayerMapStat) {
	set := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.Kills, p.Kills)
	set(&s.Deaths, p.Deaths)
	set(&s.Assists, p.Assists)
	set(&s.DamageDealt, p.DamageDealt)
	set(&s.DamageTaken, p.DamageTaken)
	set(&s.ShotsFired, p.ShotsFired)
	set(&s.ShotsHit, p.ShotsHit)
	set(&s.Headshots, p.Headshots)
	set(&s.Score, p.Score)
	set(&s.TimeOnObjective, p.TimeOnObjective)
	set(&s.Captures, p.Captures)
	set(&s.Defends, p.Defends)
	set(&s.Plants, p.Plants)
	set(&s.Defuses, p.Defuses)
	set(&s.Clutches, p.Clutches)
	set(&s.FirstBloods, p.FirstBloods)
	set(&s.BestStreak, p.BestStreak)
	if p.MVP != nil {
		s.MVP = *p.MVP
	}
}

// MapPatch carries map fields to overwrite. A WinnerTeamID of 0 clears the winner.
type MapPatch struct {
	MapName         *string
	GameMode        *string
	Team1Score      *int
	Team2Score      *int
	WinnerTeamID    *int64
	DurationSeconds *int
}

func (p MapPatch) applyTo(m *match.Map) {
	if p.MapName != nil {
		m.MapName = strings.TrimSpace(*p.MapName)
	}
	if p.GameMode != nil {
		if mode := strings.TrimSpace(*p.GameMode); mode != "" {
			m.GameMode = match.GameMode(mode)
		}
	}
	if p.Team1Score != nil {
		m.Team1Score = *p.Team1Score
	}
	if p.Team2Score != nil {
		m.Team2Score = *p.Team2Score
	}
	if p.WinnerTeamID != nil {
		if *p.WinnerTeamID == 0 {
			m.WinnerTeamID = nil
		} else {
			winner := *p.WinnerTeamID
			m.WinnerTeamID = &winner
		}
	}
	if p.DurationSeconds != nil {
		duration := *p.DurationSeconds
		m.DurationSeconds = &duration
	}

	if m.Played() {
		m.Status = match.MapCompleted
	} else {
		m.Status = match.MapPending
	}
}
