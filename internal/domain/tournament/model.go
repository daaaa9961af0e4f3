package tournament

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

var AllStatuses = map[Status]struct{}{
	StatusUpcoming:  {},
	StatusLive:      {},
	StatusCompleted: {},
}

// Tournament groups matches under one event. PrizePoolCents is in minor currency units.
type Tournament struct {
	ID             int64
	Name           string
	Game           string
	StartDate      *time.Time
	EndDate        *time.Time
	PrizePoolCents *int64
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (t Tournament) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tournament name is required")
	}
	if strings.TrimSpace(t.Game) == "" {
		return fmt.Errorf("tournament game is required")
	}
	if _, ok := AllStatuses[t.Status]; !ok {
		return fmt.Errorf("invalid tournament status: %s", t.Status)
	}
	if t.PrizePoolCents != nil && *t.PrizePoolCents < 0 {
		return fmt.Errorf("tournament prize pool must not be negative")
	}
	if t.StartDate != nil && t.EndDate != nil && t.EndDate.Before(*t.StartDate) {
		return fmt.Errorf("tournament end date must not be before start date")
	}

	return nil
}
