package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/memory"
)

func TestInquiryService_ApplyAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewInquiryService(memory.NewInquiryRepository(memory.NewDB()))

	if _, err := service.Apply(ctx, ApplicationInput{JobSlug: "esports-caster", Name: "Rin", Email: "rin@example.com"}); err != nil {
		t.Fatalf("apply caster: %v", err)
	}
	if _, err := service.Apply(ctx, ApplicationInput{JobSlug: "graphic-designer", Name: "Sol", Email: "sol@example.com"}); err != nil {
		t.Fatalf("apply designer: %v", err)
	}

	all, err := service.ListApplications(ctx, "", 0)
	if err != nil {
		t.Fatalf("list applications: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Sol" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	casters, err := service.ListApplications(ctx, "esports-caster", 10)
	if err != nil {
		t.Fatalf("list caster applications: %v", err)
	}
	if len(casters) != 1 || casters[0].Name != "Rin" {
		t.Fatalf("unexpected caster applications: %+v", casters)
	}
}

func TestInquiryService_ApplyUnknownJob(t *testing.T) {
	t.Parallel()

	service := NewInquiryService(memory.NewInquiryRepository(memory.NewDB()))

	_, err := service.Apply(context.Background(), ApplicationInput{JobSlug: "janitor", Name: "Rin", Email: "rin@example.com"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInquiryService_SubmitContactValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewInquiryService(memory.NewInquiryRepository(memory.NewDB()))

	if _, err := service.SubmitContact(ctx, ContactInput{Name: "Rin", Email: "nope", Message: "hi"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid email, got %v", err)
	}
	if _, err := service.SubmitContact(ctx, ContactInput{Name: "Rin", Email: "rin@example.com", Message: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected empty message rejection, got %v", err)
	}

	created, err := service.SubmitContact(ctx, ContactInput{Name: "Rin", Email: "Rin@Example.com", Message: "Need a caster"})
	if err != nil {
		t.Fatalf("submit contact: %v", err)
	}
	if created.ID == 0 || created.Email != "rin@example.com" || created.CreatedAt.IsZero() {
		t.Fatalf("unexpected contact message: %+v", created)
	}
}
