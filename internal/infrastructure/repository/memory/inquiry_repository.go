package memory

import (
	"context"

	"github.com/riskibarqy/esports-hub/internal/domain/inquiry"
)

type InquiryRepository struct {
	db *DB
}

func NewInquiryRepository(db *DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) CreateContactMessage(_ context.Context, item inquiry.ContactMessage) (inquiry.ContactMessage, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item.ID = r.db.nextID("contact_messages")
	r.db.contacts = append(r.db.contacts, item)
	return item, nil
}

func (r *InquiryRepository) ListContactMessages(_ context.Context, limit int) ([]inquiry.ContactMessage, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]inquiry.ContactMessage, 0, len(r.db.contacts))
	for i := len(r.db.contacts) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, r.db.contacts[i])
	}
	return out, nil
}

func (r *InquiryRepository) CreateApplication(_ context.Context, item inquiry.Application) (inquiry.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item.ID = r.db.nextID("job_applications")
	r.db.applications = append(r.db.applications, item)
	return item, nil
}

func (r *InquiryRepository) ListApplications(_ context.Context, jobSlug string, limit int) ([]inquiry.Application, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]inquiry.Application, 0)
	for i := len(r.db.applications) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		item := r.db.applications[i]
		if jobSlug != "" && item.JobSlug != jobSlug {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
