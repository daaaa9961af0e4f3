package match

import "strings"

type SeriesFormat string

const (
	FormatBo1 SeriesFormat = "bo1"
	FormatBo3 SeriesFormat = "bo3"
	FormatBo5 SeriesFormat = "bo5"
	FormatBo7 SeriesFormat = "bo7"
)

// ParseSeriesFormat accepts "bo3", "BO3" and " bo3 ". Blank input defaults to bo1.
func ParseSeriesFormat(value string) (SeriesFormat, bool) {
	format := SeriesFormat(strings.ToLower(strings.TrimSpace(value)))
	if format == "" {
		return FormatBo1, true
	}
	return format, format.Valid()
}

func (f SeriesFormat) Valid() bool {
	switch f {
	case FormatBo1, FormatBo3, FormatBo5, FormatBo7:
		return true
	default:
		return false
	}
}

// MapCount is the fixed number of maps in the series; unknown formats play one map.
func (f SeriesFormat) MapCount() int {
	switch f {
	case FormatBo3:
		return 3
	case FormatBo5:
		return 5
	case FormatBo7:
		return 7
	default:
		return 1
	}
}

type GameMode string

const (
	ModeHardpoint        GameMode = "Hardpoint"
	ModeSearchAndDestroy GameMode = "Search and Destroy"
	ModeControl          GameMode = "Control"
)

var modeCycle = [...]GameMode{ModeHardpoint, ModeSearchAndDestroy, ModeControl}

// ResolveRotation returns the ordered game modes played in a series of the given format.
func ResolveRotation(format SeriesFormat) []GameMode {
	count := format.MapCount()
	out := make([]GameMode, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, modeCycle[i%len(modeCycle)])
	}
	return out
}

// ModeFor returns the rotation mode for a 1-based map number, or Hardpoint when out of range.
func ModeFor(format SeriesFormat, mapNumber int) GameMode {
	rotation := ResolveRotation(format)
	if mapNumber < 1 || mapNumber > len(rotation) {
		return ModeHardpoint
	}
	return rotation[mapNumber-1]
}

// Stat names the mode-specific counters surfaced by the stats editor.
type Stat string

const (
	StatTimeOnObjective Stat = "time_on_objective"
	StatCaptures        Stat = "captures"
	StatDefends         Stat = "defends"
	StatPlants          Stat = "plants"
	StatDefuses         Stat = "defuses"
	StatFirstBloods     Stat = "first_bloods"
	StatClutches        Stat = "clutches"
)

// ModeStats lists the objective counters relevant to mode.
func ModeStats(mode GameMode) []Stat {
	switch mode {
	case ModeHardpoint:
		return []Stat{StatTimeOnObjective, StatCaptures}
	case ModeControl:
		return []Stat{StatTimeOnObjective, StatCaptures, StatDefends}
	case ModeSearchAndDestroy:
		return []Stat{StatPlants, StatDefuses, StatFirstBloods, StatClutches}
	default:
		return nil
	}
}

// MapPool is the advisory list of competitive maps. Map names are free text.
var MapPool = []string{
	"Apocalypse",
	"Crossfire",
	"Firing Range",
	"Raid",
	"Standoff",
	"Summit",
}
