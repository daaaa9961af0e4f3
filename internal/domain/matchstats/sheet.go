package matchstats

import (
	"fmt"
	"sort"

	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/domain/player"
)

// Sheet is the editing state of one match's statistics. Changes stay local until saved.
type Sheet struct {
	Match       match.Listing
	Maps        []match.Map
	Team1Roster []player.Player
	Team2Roster []player.Player

	stats      map[Key]PlayerMapStat
	persisted  map[Key]struct{}
	playerTeam map[int64]int64
}

// NewSheet builds editing state from persisted rows.
func NewSheet(m match.Listing, maps []match.Map, team1, team2 []player.Player, rows []PlayerMapStat) *Sheet {
	s := &Sheet{
		Match:       m,
		Maps:        append([]match.Map(nil), maps...),
		Team1Roster: team1,
		Team2Roster: team2,
		stats:       make(map[Key]PlayerMapStat, len(rows)),
		persisted:   make(map[Key]struct{}, len(rows)),
		playerTeam:  make(map[int64]int64, len(team1)+len(team2)),
	}
	sort.Slice(s.Maps, func(i, j int) bool { return s.Maps[i].Number < s.Maps[j].Number })

	for _, p := range team1 {
		s.playerTeam[p.ID] = m.Team1ID
	}
	for _, p := range team2 {
		s.playerTeam[p.ID] = m.Team2ID
	}
	for _, row := range rows {
		key := row.Key()
		s.stats[key] = row
		s.persisted[key] = struct{}{}
		if _, ok := s.playerTeam[row.PlayerID]; !ok && m.HasTeam(row.TeamID) {
			s.playerTeam[row.PlayerID] = row.TeamID
		}
	}

	return s
}

// Map returns the map with the given id.
func (s *Sheet) Map(mapID int64) (match.Map, bool) {
	idx := s.mapIndex(mapID)
	if idx < 0 {
		return match.Map{}, false
	}
	return s.Maps[idx], true
}

// Stat returns the tuple for (mapID, playerID), zero-valued when nothing is recorded.
func (s *Sheet) Stat(mapID, playerID int64) PlayerMapStat {
	key := Key{MapID: mapID, PlayerID: playerID}
	if row, ok := s.stats[key]; ok {
		return row
	}
	return PlayerMapStat{
		MatchID:  s.Match.ID,
		MapID:    mapID,
		PlayerID: playerID,
		TeamID:   s.playerTeam[playerID],
	}
}

// Apply merges patch into the tuple, keeping every field the patch leaves nil.
func (s *Sheet) Apply(mapID, playerID int64, patch Patch) (PlayerMapStat, error) {
	if s.mapIndex(mapID) < 0 {
		return PlayerMapStat{}, fmt.Errorf("map %d does not belong to match %d", mapID, s.Match.ID)
	}
	teamID, ok := s.playerTeam[playerID]
	if !ok {
		return PlayerMapStat{}, fmt.Errorf("player %d is not on either team of match %d", playerID, s.Match.ID)
	}

	row := s.Stat(mapID, playerID)
	row.TeamID = teamID
	patch.applyTo(&row)
	if err := row.Counters.Validate(); err != nil {
		return PlayerMapStat{}, fmt.Errorf("player %d on map %d: %w", playerID, mapID, err)
	}

	s.stats[row.Key()] = row
	return row, nil
}

// UpdateMap merges patch into a map and recomputes its status.
func (s *Sheet) UpdateMap(mapID int64, patch MapPatch) (match.Map, error) {
	idx := s.mapIndex(mapID)
	if idx < 0 {
		return match.Map{}, fmt.Errorf("map %d does not belong to match %d", mapID, s.Match.ID)
	}

	item := s.Maps[idx]
	patch.applyTo(&item)
	if err := item.Validate(s.Match.Match); err != nil {
		return match.Map{}, err
	}

	s.Maps[idx] = item
	return item, nil
}

// Result derives the series projection from the current map state.
func (s *Sheet) Result() match.SeriesResult {
	return match.ComputeSeriesProgress(s.Match.Match, s.Maps)
}

// Stats returns every tuple worth storing, ordered by map then player.
func (s *Sheet) Stats() []PlayerMapStat {
	out := make([]PlayerMapStat, 0, len(s.stats))
	for _, row := range s.stats {
		if row.Persistable() {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MapID != out[j].MapID {
			return out[i].MapID < out[j].MapID
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

// Cleared returns persisted tuples that no longer carry any activity.
func (s *Sheet) Cleared() []Key {
	out := make([]Key, 0)
	for key := range s.persisted {
		if row, ok := s.stats[key]; ok && !row.Persistable() {
			out = append(out, key)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MapID != out[j].MapID {
			return out[i].MapID < out[j].MapID
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

// SaveSet collects everything a save writes.
func (s *Sheet) SaveSet(expectedVersion int64) SaveSet {
	return SaveSet{
		MatchID:         s.Match.ID,
		ExpectedVersion: expectedVersion,
		Maps:            append([]match.Map(nil), s.Maps...),
		Upserts:         s.Stats(),
		Deletes:         s.Cleared(),
		Result:          s.Result(),
	}
}

func (s *Sheet) mapIndex(mapID int64) int {
	for i, item := range s.Maps {
		if item.ID == mapID {
			return i
		}
	}
	return -1
}
