package player

import (
	"fmt"
	"strings"
	"time"
)

// RosterSize is the number of players a team fields on a map. Teams may carry more.
const RosterSize = 5

// Player is an individual competitor; TeamID is nil while unassigned.
type Player struct {
	ID        int64
	Name      string
	TeamID    *int64
	Country   string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.TeamID != nil && *p.TeamID <= 0 {
		return fmt.Errorf("player team id must be positive")
	}

	return nil
}

// PlaysFor reports whether the player is currently assigned to teamID.
func (p Player) PlaysFor(teamID int64) bool {
	return p.TeamID != nil && *p.TeamID == teamID
}
