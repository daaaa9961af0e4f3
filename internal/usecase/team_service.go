package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/player"
	"github.com/riskibarqy/esports-hub/internal/domain/team"
)

type TeamInput struct {
	Name    string
	Country string
	LogoURL string
}

type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	now        func() time.Time
}

func NewTeamService(teamRepo team.Repository, playerRepo player.Repository) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		now:        time.Now,
	}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *TeamService) Get(ctx context.Context, teamID int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	return s.getTeam(ctx, teamID)
}

// Roster lists a team's players by name; limit <= 0 returns all of them.
func (s *TeamService) Roster(ctx context.Context, teamID int64, limit int) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Roster")
	defer span.End()

	if _, err := s.getTeam(ctx, teamID); err != nil {
		return nil, err
	}

	items, err := s.playerRepo.ListByTeam(ctx, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("list team players: %w", err)
	}
	return items, nil
}

func (s *TeamService) Create(ctx context.Context, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	now := s.now().UTC()
	item := team.Team{
		Name:      strings.TrimSpace(input.Name),
		Country:   strings.TrimSpace(input.Country),
		LogoURL:   strings.TrimSpace(input.LogoURL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.teamRepo.Create(ctx, item)
	if err != nil {
		return team.Team{}, wrapStoreError("create team", err)
	}
	return created, nil
}

func (s *TeamService) Update(ctx context.Context, teamID int64, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update")
	defer span.End()

	item, err := s.getTeam(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Country = strings.TrimSpace(input.Country)
	item.LogoURL = strings.TrimSpace(input.LogoURL)
	item.UpdatedAt = s.now().UTC()
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.teamRepo.Update(ctx, item)
	if err != nil {
		return team.Team{}, wrapStoreError("update team", err)
	}
	return updated, nil
}

// Delete removes the team. The store rejects the delete while matches reference it.
func (s *TeamService) Delete(ctx context.Context, teamID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	if teamID <= 0 {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return wrapStoreError("delete team", err)
	}
	return nil
}

func (s *TeamService) getTeam(ctx context.Context, teamID int64) (team.Team, error) {
	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}
	return item, nil
}
