package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/player"
)

type playerTableModel struct {
	ID        int64         `db:"id,readonly"`
	Name      string        `db:"name"`
	TeamID    sql.NullInt64 `db:"team_id"`
	Country   string        `db:"country"`
	AvatarURL string        `db:"avatar_url"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

func newPlayerTableModel(item player.Player) playerTableModel {
	return playerTableModel{
		ID:        item.ID,
		Name:      item.Name,
		TeamID:    nullInt64(item.TeamID),
		Country:   item.Country,
		AvatarURL: item.AvatarURL,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:        m.ID,
		Name:      m.Name,
		TeamID:    int64Ptr(m.TeamID),
		Country:   m.Country,
		AvatarURL: m.AvatarURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
