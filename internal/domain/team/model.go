package team

import (
	"fmt"
	"strings"
	"time"
)

const MaxNameLength = 100

// Team is an esports organisation fielding a roster.
type Team struct {
	ID        int64
	Name      string
	Country   string
	LogoURL   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t Team) Validate() error {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return fmt.Errorf("team name is required")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("team name must be at most %d characters", MaxNameLength)
	}

	return nil
}
