package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/player"
	"github.com/riskibarqy/esports-hub/internal/domain/team"
)

type PlayerInput struct {
	Name      string
	TeamID    *int64
	Country   string
	AvatarURL string
}

type PlayerService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	now        func() time.Time
}

func NewPlayerService(playerRepo player.Repository, teamRepo team.Repository) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		now:        time.Now,
	}
}

func (s *PlayerService) List(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	items, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return items, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	return s.getPlayer(ctx, playerID)
}

func (s *PlayerService) Create(ctx context.Context, input PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	now := s.now().UTC()
	item := player.Player{CreatedAt: now}
	if err := s.apply(ctx, &item, input, now); err != nil {
		return player.Player{}, err
	}

	created, err := s.playerRepo.Create(ctx, item)
	if err != nil {
		return player.Player{}, wrapStoreError("create player", err)
	}
	return created, nil
}

func (s *PlayerService) Update(ctx context.Context, playerID int64, input PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	item, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}
	if err := s.apply(ctx, &item, input, s.now().UTC()); err != nil {
		return player.Player{}, err
	}

	updated, err := s.playerRepo.Update(ctx, item)
	if err != nil {
		return player.Player{}, wrapStoreError("update player", err)
	}
	return updated, nil
}

func (s *PlayerService) Delete(ctx context.Context, playerID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete")
	defer span.End()

	if playerID <= 0 {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if err := s.playerRepo.Delete(ctx, playerID); err != nil {
		return wrapStoreError("delete player", err)
	}
	return nil
}

func (s *PlayerService) apply(ctx context.Context, item *player.Player, input PlayerInput, now time.Time) error {
	item.Name = strings.TrimSpace(input.Name)
	item.Country = strings.TrimSpace(input.Country)
	item.AvatarURL = strings.TrimSpace(input.AvatarURL)
	item.TeamID = nil
	if input.TeamID != nil && *input.TeamID != 0 {
		teamID := *input.TeamID
		item.TeamID = &teamID
	}
	item.UpdatedAt = now

	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if item.TeamID == nil {
		return nil
	}

	_, exists, err := s.teamRepo.GetByID(ctx, *item.TeamID)
	if err != nil {
		return fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team %d does not exist", ErrInvalidInput, *item.TeamID)
	}
	return nil
}

func (s *PlayerService) getPlayer(ctx context.Context, playerID int64) (player.Player, error) {
	if playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	return item, nil
}
