package matchstats

import "fmt"

// Key identifies one statistics tuple.
type Key struct {
	MapID    int64
	PlayerID int64
}

// Counters are the per-map numeric statistics of one player.
type Counters struct {
	Kills           int
	Deaths          int
	Assists         int
	DamageDealt     int
	DamageTaken     int
	ShotsFired      int
	ShotsHit        int
	Headshots       int
	Score           int
	TimeOnObjective int
	Captures        int
	Defends         int
	Plants          int
	Defuses         int
	Clutches        int
	FirstBloods     int
	BestStreak      int
}

// CounterLabels are column headers matching the order of Counters.Values.
var CounterLabels = []string{
	"Kills",
	"Deaths",
	"Assists",
	"Damage Dealt",
	"Damage Taken",
	"Shots Fired",
	"Shots Hit",
	"Headshots",
	"Score",
	"Time on Objective",
	"Captures",
	"Defends",
	"Plants",
	"Defuses",
	"Clutches",
	"First Bloods",
	"Best Streak",
}

func (c Counters) Values() []int {
	return []int{
		c.Kills,
		c.Deaths,
		c.Assists,
		c.DamageDealt,
		c.DamageTaken,
		c.ShotsFired,
		c.ShotsHit,
		c.Headshots,
		c.Score,
		c.TimeOnObjective,
		c.Captures,
		c.Defends,
		c.Plants,
		c.Defuses,
		c.Clutches,
		c.FirstBloods,
		c.BestStreak,
	}
}

// HasActivity reports whether at least one counter is positive.
func (c Counters) HasActivity() bool {
	for _, v := range c.Values() {
		if v > 0 {
			return true
		}
	}
	return false
}

func (c Counters) Validate() error {
	for i, v := range c.Values() {
		if v < 0 {
			return fmt.Errorf("%s must not be negative", CounterLabels[i])
		}
	}
	if c.ShotsHit > c.ShotsFired && c.ShotsFired > 0 {
		return fmt.Errorf("shots hit must not exceed shots fired")
	}
	return nil
}

// PlayerMapStat is the statistics row of one player on one map.
type PlayerMapStat struct {
	ID       int64
	MatchID  int64
	MapID    int64
	PlayerID int64
	TeamID   int64
	Counters
	MVP bool
}

func (s PlayerMapStat) Key() Key {
	return Key{MapID: s.MapID, PlayerID: s.PlayerID}
}

// Persistable reports whether the row is worth storing. MVP alone does not count.
func (s PlayerMapStat) Persistable() bool {
	return s.HasActivity()
}
