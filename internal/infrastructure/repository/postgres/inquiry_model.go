package postgres

import (
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/inquiry"
)

type contactMessageTableModel struct {
	ID        int64     `db:"id,readonly"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

type jobApplicationTableModel struct {
	ID           int64     `db:"id,readonly"`
	JobSlug      string    `db:"job_slug"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PortfolioURL string    `db:"portfolio_url"`
	CoverLetter  string    `db:"cover_letter"`
	CreatedAt    time.Time `db:"created_at"`
}

func (m contactMessageTableModel) toDomain() inquiry.ContactMessage {
	return inquiry.ContactMessage{ID: m.ID, Name: m.Name, Email: m.Email, Message: m.Message, CreatedAt: m.CreatedAt}
}

func (m jobApplicationTableModel) toDomain() inquiry.Application {
	return inquiry.Application{
		ID:           m.ID,
		JobSlug:      m.JobSlug,
		Name:         m.Name,
		Email:        m.Email,
		PortfolioURL: m.PortfolioURL,
		CoverLetter:  m.CoverLetter,
		CreatedAt:    m.CreatedAt,
	}
}
