package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/esports-hub/internal/domain/inquiry"
	qb "github.com/riskibarqy/esports-hub/internal/platform/querybuilder"
)

type InquiryRepository struct {
	db *sqlx.DB
}

func NewInquiryRepository(db *sqlx.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) CreateContactMessage(ctx context.Context, item inquiry.ContactMessage) (inquiry.ContactMessage, error) {
	model := contactMessageTableModel{Name: item.Name, Email: item.Email, Message: item.Message, CreatedAt: item.CreatedAt}
	insert, err := qb.InsertModel("contact_messages", model)
	if err != nil {
		return inquiry.ContactMessage{}, fmt.Errorf("build insert contact message query: %w", err)
	}
	query, args, err := insert.Suffix(returning(model)).ToSql()
	if err != nil {
		return inquiry.ContactMessage{}, fmt.Errorf("build insert contact message query: %w", err)
	}

	var row contactMessageTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return inquiry.ContactMessage{}, fmt.Errorf("insert contact message: %w", classifyError(err))
	}
	return row.toDomain(), nil
}

func (r *InquiryRepository) ListContactMessages(ctx context.Context, limit int) ([]inquiry.ContactMessage, error) {
	builder := qb.Select(qb.Columns(contactMessageTableModel{})...).
		From("contact_messages").
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select contact messages query: %w", err)
	}

	var rows []contactMessageTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select contact messages: %w", err)
	}
	out := make([]inquiry.ContactMessage, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *InquiryRepository) CreateApplication(ctx context.Context, item inquiry.Application) (inquiry.Application, error) {
	model := jobApplicationTableModel{
		JobSlug:      item.JobSlug,
		Name:         item.Name,
		Email:        item.Email,
		PortfolioURL: item.PortfolioURL,
		CoverLetter:  item.CoverLetter,
		CreatedAt:    item.CreatedAt,
	}
	insert, err := qb.InsertModel("job_applications", model)
	if err != nil {
		return inquiry.Application{}, fmt.Errorf("build insert job application query: %w", err)
	}
	query, args, err := insert.Suffix(returning(model)).ToSql()
	if err != nil {
		return inquiry.Application{}, fmt.Errorf("build insert job application query: %w", err)
	}

	var row jobApplicationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return inquiry.Application{}, fmt.Errorf("insert job application: %w", classifyError(err))
	}
	return row.toDomain(), nil
}

func (r *InquiryRepository) ListApplications(ctx context.Context, jobSlug string, limit int) ([]inquiry.Application, error) {
	builder := qb.Select(qb.Columns(jobApplicationTableModel{})...).
		From("job_applications").
		OrderBy("created_at DESC", "id DESC")
	if jobSlug != "" {
		builder = builder.Where(qb.Eq{"job_slug": jobSlug})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select job applications query: %w", err)
	}

	var rows []jobApplicationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select job applications: %w", err)
	}
	out := make([]inquiry.Application, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
