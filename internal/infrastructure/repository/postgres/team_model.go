package postgres

import (
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/team"
)

type teamTableModel struct {
	ID        int64     `db:"id,readonly"`
	Name      string    `db:"name"`
	Country   string    `db:"country"`
	LogoURL   string    `db:"logo_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func newTeamTableModel(item team.Team) teamTableModel {
	return teamTableModel{
		ID:        item.ID,
		Name:      item.Name,
		Country:   item.Country,
		LogoURL:   item.LogoURL,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:        m.ID,
		Name:      m.Name,
		Country:   m.Country,
		LogoURL:   m.LogoURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
