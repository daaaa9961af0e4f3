package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/memory"
)

func TestTournamentService_CreateParsesPrizePool(t *testing.T) {
	t.Parallel()

	service := NewTournamentService(memory.NewTournamentRepository(memory.NewDB()))

	got, err := service.Create(context.Background(), TournamentInput{
		Name:      " Summer Clash ",
		Game:      "Call of Duty: Mobile",
		PrizePool: "1,250.50",
	})
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	if got.PrizePoolCents == nil || *got.PrizePoolCents != 125050 {
		t.Fatalf("expected 125050 cents, got %v", got.PrizePoolCents)
	}
	if got.Status != tournament.StatusUpcoming || got.Name != "Summer Clash" {
		t.Fatalf("unexpected tournament: %+v", got)
	}
}

func TestTournamentService_CreateValidation(t *testing.T) {
	t.Parallel()

	service := NewTournamentService(memory.NewTournamentRepository(memory.NewDB()))
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -3)

	cases := map[string]TournamentInput{
		"negative prize": {Name: "Cup", Game: "CoD", PrizePool: "-5"},
		"bad prize":      {Name: "Cup", Game: "CoD", PrizePool: "lots"},
		"bad status":     {Name: "Cup", Game: "CoD", Status: "archived"},
		"missing game":   {Name: "Cup"},
		"end before":     {Name: "Cup", Game: "CoD", StartDate: &start, EndDate: &end},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := service.Create(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestTournamentService_ListOrdersByStartDate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewTournamentService(memory.NewTournamentRepository(memory.NewDB()))
	early := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	for _, input := range []TournamentInput{
		{Name: "Undated", Game: "CoD"},
		{Name: "Early", Game: "CoD", StartDate: &early},
		{Name: "Late", Game: "CoD", StartDate: &late},
	} {
		if _, err := service.Create(ctx, input); err != nil {
			t.Fatalf("create %s: %v", input.Name, err)
		}
	}

	items, err := service.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := []string{items[0].Name, items[1].Name, items[2].Name}
	want := []string{"Late", "Early", "Undated"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got %v want %v", got, want)
		}
	}
}
