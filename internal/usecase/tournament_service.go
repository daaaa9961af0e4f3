package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
)

type TournamentInput struct {
	Name      string
	Game      string
	StartDate *time.Time
	EndDate   *time.Time
	// PrizePool is a decimal amount such as "2500.50"; blank means none.
	PrizePool string
	Status    string
}

type TournamentService struct {
	tournamentRepo tournament.Repository
	now            func() time.Time
}

func NewTournamentService(tournamentRepo tournament.Repository) *TournamentService {
	return &TournamentService{
		tournamentRepo: tournamentRepo,
		now:            time.Now,
	}
}

func (s *TournamentService) List(ctx context.Context) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.List")
	defer span.End()

	items, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return items, nil
}

func (s *TournamentService) Get(ctx context.Context, tournamentID int64) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Get")
	defer span.End()

	return s.getTournament(ctx, tournamentID)
}

func (s *TournamentService) Create(ctx context.Context, input TournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Create")
	defer span.End()

	now := s.now().UTC()
	item := tournament.Tournament{CreatedAt: now}
	if err := applyTournamentInput(&item, input, now); err != nil {
		return tournament.Tournament{}, err
	}

	created, err := s.tournamentRepo.Create(ctx, item)
	if err != nil {
		return tournament.Tournament{}, wrapStoreError("create tournament", err)
	}
	return created, nil
}

func (s *TournamentService) Update(ctx context.Context, tournamentID int64, input TournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Update")
	defer span.End()

	item, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, err
	}
	if err := applyTournamentInput(&item, input, s.now().UTC()); err != nil {
		return tournament.Tournament{}, err
	}

	updated, err := s.tournamentRepo.Update(ctx, item)
	if err != nil {
		return tournament.Tournament{}, wrapStoreError("update tournament", err)
	}
	return updated, nil
}

func (s *TournamentService) Delete(ctx context.Context, tournamentID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Delete")
	defer span.End()

	if tournamentID <= 0 {
		return fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	if err := s.tournamentRepo.Delete(ctx, tournamentID); err != nil {
		return wrapStoreError("delete tournament", err)
	}
	return nil
}

func (s *TournamentService) getTournament(ctx context.Context, tournamentID int64) (tournament.Tournament, error) {
	if tournamentID <= 0 {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	item, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament by id: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%d", ErrNotFound, tournamentID)
	}
	return item, nil
}

func applyTournamentInput(item *tournament.Tournament, input TournamentInput, now time.Time) error {
	prize, err := tournament.ParsePrizePool(input.PrizePool)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	status := tournament.Status(strings.ToLower(strings.TrimSpace(input.Status)))
	if status == "" {
		status = tournament.StatusUpcoming
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Game = strings.TrimSpace(input.Game)
	item.StartDate = input.StartDate
	item.EndDate = input.EndDate
	item.PrizePoolCents = prize
	item.Status = status
	item.UpdatedAt = now

	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
