package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
)

type tournamentTableModel struct {
	ID             int64         `db:"id,readonly"`
	Name           string        `db:"name"`
	Game           string        `db:"game"`
	StartDate      *time.Time    `db:"start_date"`
	EndDate        *time.Time    `db:"end_date"`
	PrizePoolCents sql.NullInt64 `db:"prize_pool_cents"`
	Status         string        `db:"status"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

func newTournamentTableModel(item tournament.Tournament) tournamentTableModel {
	return tournamentTableModel{
		ID:             item.ID,
		Name:           item.Name,
		Game:           item.Game,
		StartDate:      item.StartDate,
		EndDate:        item.EndDate,
		PrizePoolCents: nullInt64(item.PrizePoolCents),
		Status:         string(item.Status),
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

func (m tournamentTableModel) toDomain() tournament.Tournament {
	return tournament.Tournament{
		ID:             m.ID,
		Name:           m.Name,
		Game:           m.Game,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		PrizePoolCents: int64Ptr(m.PrizePoolCents),
		Status:         tournament.Status(m.Status),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
