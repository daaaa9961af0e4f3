package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/domain/team"
	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
)

type MatchInput struct {
	TournamentID int64
	Team1ID      int64
	Team2ID      int64
	ScheduledAt  *time.Time
	MapName      string
	GameMode     string
	Round        string
	Status       string
	SeriesFormat string
	// ExpectedVersion makes an update conditional when non-zero.
	ExpectedVersion int64
}

type MatchService struct {
	matchRepo      match.Repository
	mapRepo        match.MapRepository
	teamRepo       team.Repository
	tournamentRepo tournament.Repository
	now            func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	mapRepo match.MapRepository,
	teamRepo team.Repository,
	tournamentRepo tournament.Repository,
) *MatchService {
	return &MatchService{
		matchRepo:      matchRepo,
		mapRepo:        mapRepo,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		now:            time.Now,
	}
}

func (s *MatchService) List(ctx context.Context, filter match.Filter) ([]match.Listing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	if filter.TournamentID < 0 || filter.TeamID < 0 {
		return nil, fmt.Errorf("%w: filter ids must be positive", ErrInvalidInput)
	}

	items, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

// ListByTournament is the public fixture list of one tournament.
func (s *MatchService) ListByTournament(ctx context.Context, tournamentID int64) ([]match.Listing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListByTournament")
	defer span.End()

	if err := s.requireTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	items, err := s.matchRepo.List(ctx, match.Filter{TournamentID: tournamentID})
	if err != nil {
		return nil, fmt.Errorf("list tournament matches: %w", err)
	}
	return items, nil
}

func (s *MatchService) Get(ctx context.Context, matchID int64) (match.Listing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	return getMatch(ctx, s.matchRepo, matchID)
}

// Maps returns the stored maps of a match without materialising missing ones.
func (s *MatchService) Maps(ctx context.Context, matchID int64) ([]match.Map, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Maps")
	defer span.End()

	if _, err := getMatch(ctx, s.matchRepo, matchID); err != nil {
		return nil, err
	}

	items, err := s.mapRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list match maps: %w", err)
	}
	return items, nil
}

func (s *MatchService) Create(ctx context.Context, input MatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	now := s.now().UTC()
	item := match.Match{CreatedAt: now}
	if err := s.apply(ctx, &item, input, now); err != nil {
		return match.Match{}, err
	}

	created, err := s.matchRepo.Create(ctx, item)
	if err != nil {
		return match.Match{}, wrapStoreError("create match", err)
	}
	return created, nil
}

// Update edits a match. Teams and series format are frozen once its maps exist.
func (s *MatchService) Update(ctx context.Context, matchID int64, input MatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Update")
	defer span.End()

	current, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if input.ExpectedVersion != 0 && input.ExpectedVersion != current.Version {
		return match.Match{}, fmt.Errorf("%w: match %d is at version %d, not %d", ErrConflict, matchID, current.Version, input.ExpectedVersion)
	}

	item := current.Match
	if err := s.apply(ctx, &item, input, s.now().UTC()); err != nil {
		return match.Match{}, err
	}

	if item.SeriesFormat != current.SeriesFormat || item.Team1ID != current.Team1ID || item.Team2ID != current.Team2ID {
		maps, err := s.mapRepo.ListByMatch(ctx, matchID)
		if err != nil {
			return match.Match{}, fmt.Errorf("list match maps: %w", err)
		}
		if len(maps) > 0 {
			return match.Match{}, fmt.Errorf("%w: teams and series format cannot change after statistics were opened", ErrConflict)
		}
	}

	updated, err := s.matchRepo.Update(ctx, item, input.ExpectedVersion)
	if err != nil {
		return match.Match{}, wrapStoreError("update match", err)
	}
	return updated, nil
}

func (s *MatchService) Delete(ctx context.Context, matchID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Delete")
	defer span.End()

	if matchID <= 0 {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		return wrapStoreError("delete match", err)
	}
	return nil
}

func (s *MatchService) apply(ctx context.Context, item *match.Match, input MatchInput, now time.Time) error {
	format, ok := match.ParseSeriesFormat(input.SeriesFormat)
	if !ok {
		return fmt.Errorf("%w: invalid series format %q", ErrInvalidInput, input.SeriesFormat)
	}

	item.TournamentID = input.TournamentID
	item.Team1ID = input.Team1ID
	item.Team2ID = input.Team2ID
	item.ScheduledAt = input.ScheduledAt
	item.MapName = strings.TrimSpace(input.MapName)
	item.GameMode = strings.TrimSpace(input.GameMode)
	item.Round = strings.TrimSpace(input.Round)
	item.Status = match.NormalizeStatus(input.Status)
	item.SeriesFormat = format
	item.UpdatedAt = now

	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	_, exists, err := s.tournamentRepo.GetByID(ctx, item.TournamentID)
	if err != nil {
		return fmt.Errorf("get tournament by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: tournament %d does not exist", ErrInvalidInput, item.TournamentID)
	}

	teams, err := s.teamRepo.GetByIDs(ctx, []int64{item.Team1ID, item.Team2ID})
	if err != nil {
		return fmt.Errorf("get match teams: %w", err)
	}
	found := make(map[int64]struct{}, len(teams))
	for _, t := range teams {
		found[t.ID] = struct{}{}
	}
	for _, teamID := range []int64{item.Team1ID, item.Team2ID} {
		if _, ok := found[teamID]; !ok {
			return fmt.Errorf("%w: team %d does not exist", ErrInvalidInput, teamID)
		}
	}

	return nil
}

func (s *MatchService) requireTournament(ctx context.Context, tournamentID int64) error {
	if tournamentID <= 0 {
		return fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	_, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("get tournament by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: tournament=%d", ErrNotFound, tournamentID)
	}
	return nil
}

func getMatch(ctx context.Context, repo match.Repository, matchID int64) (match.Listing, error) {
	if matchID <= 0 {
		return match.Listing{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, matchID)
	if err != nil {
		return match.Listing{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Listing{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}
	return item, nil
}
