package postgres

import "github.com/riskibarqy/esports-hub/internal/domain/matchstats"

type playerMatchStatTableModel struct {
	ID              int64 `db:"id,readonly"`
	MatchID         int64 `db:"match_id"`
	MapID           int64 `db:"match_map_id"`
	PlayerID        int64 `db:"player_id"`
	TeamID          int64 `db:"team_id"`
	Kills           int   `db:"kills"`
	Deaths          int   `db:"deaths"`
	Assists         int   `db:"assists"`
	DamageDealt     int   `db:"damage_dealt"`
	DamageTaken     int   `db:"damage_taken"`
	ShotsFired      int   `db:"shots_fired"`
	ShotsHit        int   `db:"shots_hit"`
	Headshots       int   `db:"headshots"`
	Score           int   `db:"score"`
	TimeOnObjective int   `db:"time_on_objective"`
	Captures        int   `db:"captures"`
	Defends         int   `db:"defends"`
	Plants          int   `db:"plants"`
	Defuses         int   `db:"defuses"`
	Clutches        int   `db:"clutches"`
	FirstBloods     int   `db:"first_bloods"`
	BestStreak      int   `db:"best_streak"`
	MVP             bool  `db:"mvp"`
}

func newPlayerMatchStatTableModel(item matchstats.PlayerMapStat) playerMatchStatTableModel {
	c := item.Counters
	return playerMatchStatTableModel{
		ID:              item.ID,
		MatchID:         item.MatchID,
		MapID:           item.MapID,
		PlayerID:        item.PlayerID,
		TeamID:          item.TeamID,
		Kills:           c.Kills,
		Deaths:          c.Deaths,
		Assists:         c.Assists,
		DamageDealt:     c.DamageDealt,
		DamageTaken:     c.DamageTaken,
		ShotsFired:      c.ShotsFired,
		ShotsHit:        c.ShotsHit,
		Headshots:       c.Headshots,
		Score:           c.Score,
		TimeOnObjective: c.TimeOnObjective,
		Captures:        c.Captures,
		Defends:         c.Defends,
		Plants:          c.Plants,
		Defuses:         c.Defuses,
		Clutches:        c.Clutches,
		FirstBloods:     c.FirstBloods,
		BestStreak:      c.BestStreak,
		MVP:             item.MVP,
	}
}

func (m playerMatchStatTableModel) toDomain() matchstats.PlayerMapStat {
	return matchstats.PlayerMapStat{
		ID:       m.ID,
		MatchID:  m.MatchID,
		MapID:    m.MapID,
		PlayerID: m.PlayerID,
		TeamID:   m.TeamID,
		Counters: matchstats.Counters{
			Kills:           m.Kills,
			Deaths:          m.Deaths,
			Assists:         m.Assists,
			DamageDealt:     m.DamageDealt,
			DamageTaken:     m.DamageTaken,
			ShotsFired:      m.ShotsFired,
			ShotsHit:        m.ShotsHit,
			Headshots:       m.Headshots,
			Score:           m.Score,
			TimeOnObjective: m.TimeOnObjective,
			Captures:        m.Captures,
			Defends:         m.Defends,
			Plants:          m.Plants,
			Defuses:         m.Defuses,
			Clutches:        m.Clutches,
			FirstBloods:     m.FirstBloods,
			BestStreak:      m.BestStreak,
		},
		MVP: m.MVP,
	}
}
