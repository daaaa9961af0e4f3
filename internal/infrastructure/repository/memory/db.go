package memory

import (
	"fmt"
	"sync"

	"github.com/riskibarqy/esports-hub/internal/domain/inquiry"
	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/domain/matchstats"
	"github.com/riskibarqy/esports-hub/internal/domain/player"
	"github.com/riskibarqy/esports-hub/internal/domain/store"
	"github.com/riskibarqy/esports-hub/internal/domain/team"
	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
)

// DB holds every table behind one lock so repositories can honour the same
// referential rules as the relational schema.
type DB struct {
	mu           sync.RWMutex
	seq          map[string]int64
	teams        map[int64]team.Team
	players      map[int64]player.Player
	tournaments  map[int64]tournament.Tournament
	matches      map[int64]match.Match
	maps         map[int64]match.Map
	stats        map[matchstats.Key]matchstats.PlayerMapStat
	contacts     []inquiry.ContactMessage
	applications []inquiry.Application
}

func NewDB() *DB {
	return &DB{
		seq:         make(map[string]int64),
		teams:       make(map[int64]team.Team),
		players:     make(map[int64]player.Player),
		tournaments: make(map[int64]tournament.Tournament),
		matches:     make(map[int64]match.Match),
		maps:        make(map[int64]match.Map),
		stats:       make(map[matchstats.Key]matchstats.PlayerMapStat),
	}
}

// nextID must be called with mu held.
func (db *DB) nextID(table string) int64 {
	db.seq[table]++
	return db.seq[table]
}

// bumpSeq keeps sequences ahead of explicitly provided ids. mu must be held.
func (db *DB) bumpSeq(table string, id int64) {
	if id > db.seq[table] {
		db.seq[table] = id
	}
}

func foreignKeyViolation(table, constraint, referencing string) error {
	return &store.BackendError{
		Kind: store.ErrReferenced,
		Code: "23503",
		Message: fmt.Sprintf(
			"update or delete on table %q violates foreign key constraint %q on table %q",
			table, constraint, referencing,
		),
	}
}

func uniqueViolation(constraint string) error {
	return &store.BackendError{
		Kind:    store.ErrDuplicate,
		Code:    "23505",
		Message: fmt.Sprintf("duplicate key value violates unique constraint %q", constraint),
	}
}

// deleteMatchLocked removes a match with its maps and stats. mu must be held.
func (db *DB) deleteMatchLocked(matchID int64) {
	delete(db.matches, matchID)
	for id, item := range db.maps {
		if item.MatchID == matchID {
			delete(db.maps, id)
		}
	}
	for key, row := range db.stats {
		if row.MatchID == matchID {
			delete(db.stats, key)
		}
	}
}
