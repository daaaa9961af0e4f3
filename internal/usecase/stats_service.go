package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/domain/matchstats"
	"github.com/riskibarqy/esports-hub/internal/domain/player"
	"github.com/riskibarqy/esports-hub/internal/platform/logging"
)

type MapUpdate struct {
	MapID int64
	Patch matchstats.MapPatch
}

type StatUpdate struct {
	MapID    int64
	PlayerID int64
	Patch    matchstats.Patch
}

type SaveStatsInput struct {
	MatchID         int64
	ExpectedVersion int64
	Maps            []MapUpdate
	Stats           []StatUpdate
}

// StatsExporter renders a statistics sheet into a downloadable document.
type StatsExporter interface {
	WriteSheet(w io.Writer, sheet *matchstats.Sheet) error
}

type StatsService struct {
	matchRepo  match.Repository
	mapRepo    match.MapRepository
	statsRepo  matchstats.Repository
	playerRepo player.Repository
	exporter   StatsExporter
	logger     *logging.Logger
}

func NewStatsService(
	matchRepo match.Repository,
	mapRepo match.MapRepository,
	statsRepo matchstats.Repository,
	playerRepo player.Repository,
	exporter StatsExporter,
	logger *logging.Logger,
) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StatsService{
		matchRepo:  matchRepo,
		mapRepo:    mapRepo,
		statsRepo:  statsRepo,
		playerRepo: playerRepo,
		exporter:   exporter,
		logger:     logger,
	}
}

// Open loads the editing sheet of a match, creating its maps the first time.
func (s *StatsService) Open(ctx context.Context, matchID int64) (*matchstats.Sheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Open")
	defer span.End()

	item, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return nil, err
	}

	maps, err := s.ensureMaps(ctx, item.Match)
	if err != nil {
		return nil, err
	}

	var (
		team1 []player.Player
		team2 []player.Player
		rows  []matchstats.PlayerMapStat
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.ListByTeam(ctx, item.Team1ID, 0)
		if err != nil {
			return fmt.Errorf("list team1 roster: %w", err)
		}
		team1 = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.ListByTeam(ctx, item.Team2ID, 0)
		if err != nil {
			return fmt.Errorf("list team2 roster: %w", err)
		}
		team2 = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.statsRepo.ListByMatch(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("list match stats: %w", err)
		}
		rows = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return matchstats.NewSheet(item, maps, team1, team2, rows), nil
}

// Save applies map and stat patches on a fresh sheet and persists the result in one transaction.
func (s *StatsService) Save(ctx context.Context, input SaveStatsInput) (*matchstats.Sheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Save")
	defer span.End()

	sheet, err := s.Open(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}
	if input.ExpectedVersion != 0 && input.ExpectedVersion != sheet.Match.Version {
		return nil, fmt.Errorf("%w: match %d is at version %d, not %d", ErrConflict, input.MatchID, sheet.Match.Version, input.ExpectedVersion)
	}

	for _, update := range input.Maps {
		if _, err := sheet.UpdateMap(update.MapID, update.Patch); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	for _, update := range input.Stats {
		if _, err := sheet.Apply(update.MapID, update.PlayerID, update.Patch); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	set := sheet.SaveSet(input.ExpectedVersion)
	updated, err := s.statsRepo.SaveSheet(ctx, set)
	if err != nil {
		return nil, wrapStoreError("save match stats", err)
	}
	sheet.Match.Match = updated

	s.logger.InfoContext(ctx, "match stats saved",
		"match_id", input.MatchID,
		"version", updated.Version,
		"upserts", len(set.Upserts),
		"deletes", len(set.Deletes),
		"status", string(updated.Status),
	)
	return sheet, nil
}

// Export writes the statistics sheet of a match to w.
func (s *StatsService) Export(ctx context.Context, matchID int64, w io.Writer) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Export")
	defer span.End()

	if s.exporter == nil {
		return fmt.Errorf("%w: stats export is not configured", ErrDependencyUnavailable)
	}

	sheet, err := s.Open(ctx, matchID)
	if err != nil {
		return err
	}
	if err := s.exporter.WriteSheet(w, sheet); err != nil {
		return fmt.Errorf("export match stats: %w", err)
	}
	return nil
}

func (s *StatsService) ensureMaps(ctx context.Context, item match.Match) ([]match.Map, error) {
	maps, err := s.mapRepo.ListByMatch(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list match maps: %w", err)
	}
	if len(maps) > 0 {
		return maps, nil
	}

	if err := s.mapRepo.CreateMany(ctx, match.PlanMaps(item)); err != nil {
		return nil, fmt.Errorf("create match maps: %w", err)
	}

	maps, err = s.mapRepo.ListByMatch(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list match maps: %w", err)
	}
	return maps, nil
}
