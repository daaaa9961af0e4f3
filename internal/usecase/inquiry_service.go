package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/inquiry"
)

const defaultInquiryLimit = 100

type ContactInput struct {
	Name    string
	Email   string
	Message string
}

type ApplicationInput struct {
	JobSlug      string
	Name         string
	Email        string
	PortfolioURL string
	CoverLetter  string
}

type InquiryService struct {
	repo inquiry.Repository
	now  func() time.Time
}

func NewInquiryService(repo inquiry.Repository) *InquiryService {
	return &InquiryService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *InquiryService) SubmitContact(ctx context.Context, input ContactInput) (inquiry.ContactMessage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InquiryService.SubmitContact")
	defer span.End()

	email, err := normalizeEmail(input.Email)
	if err != nil {
		return inquiry.ContactMessage{}, err
	}

	item := inquiry.ContactMessage{
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Message:   strings.TrimSpace(input.Message),
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return inquiry.ContactMessage{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.repo.CreateContactMessage(ctx, item)
	if err != nil {
		return inquiry.ContactMessage{}, wrapStoreError("create contact message", err)
	}
	return created, nil
}

func (s *InquiryService) ListContactMessages(ctx context.Context, limit int) ([]inquiry.ContactMessage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InquiryService.ListContactMessages")
	defer span.End()

	items, err := s.repo.ListContactMessages(ctx, normalizeInquiryLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return items, nil
}

func (s *InquiryService) ListOpenings(ctx context.Context) []inquiry.Job {
	_, span := startUsecaseSpan(ctx, "usecase.InquiryService.ListOpenings")
	defer span.End()

	return inquiry.Openings()
}

func (s *InquiryService) Apply(ctx context.Context, input ApplicationInput) (inquiry.Application, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InquiryService.Apply")
	defer span.End()

	job, ok := inquiry.FindOpening(input.JobSlug)
	if !ok {
		return inquiry.Application{}, fmt.Errorf("%w: job=%s", ErrNotFound, strings.TrimSpace(input.JobSlug))
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return inquiry.Application{}, err
	}

	item := inquiry.Application{
		JobSlug:      job.Slug,
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PortfolioURL: strings.TrimSpace(input.PortfolioURL),
		CoverLetter:  strings.TrimSpace(input.CoverLetter),
		CreatedAt:    s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return inquiry.Application{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.repo.CreateApplication(ctx, item)
	if err != nil {
		return inquiry.Application{}, wrapStoreError("create job application", err)
	}
	return created, nil
}

// ListApplications lists applications newest first; a blank slug lists all openings.
func (s *InquiryService) ListApplications(ctx context.Context, jobSlug string, limit int) ([]inquiry.Application, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InquiryService.ListApplications")
	defer span.End()

	jobSlug = strings.ToLower(strings.TrimSpace(jobSlug))
	if jobSlug != "" {
		if _, ok := inquiry.FindOpening(jobSlug); !ok {
			return nil, fmt.Errorf("%w: job=%s", ErrNotFound, jobSlug)
		}
	}

	items, err := s.repo.ListApplications(ctx, jobSlug, normalizeInquiryLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list job applications: %w", err)
	}
	return items, nil
}

func normalizeInquiryLimit(limit int) int {
	if limit <= 0 || limit > defaultInquiryLimit {
		return defaultInquiryLimit
	}
	return limit
}
