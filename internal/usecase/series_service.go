package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/domain/store"
	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
	"github.com/riskibarqy/esports-hub/internal/platform/logging"
)

const defaultRebuildWorkers = 4

type RebuildResult struct {
	TournamentID int64
	MatchCount   int
	Updated      int
	Unchanged    int
	Failed       int
	WorkerCount  int
}

// SeriesService recomputes stored series projections from map results.
type SeriesService struct {
	matchRepo      match.Repository
	mapRepo        match.MapRepository
	tournamentRepo tournament.Repository
	workers        int
	logger         *logging.Logger
}

func NewSeriesService(
	matchRepo match.Repository,
	mapRepo match.MapRepository,
	tournamentRepo tournament.Repository,
	workers int,
	logger *logging.Logger,
) *SeriesService {
	if workers <= 0 {
		workers = defaultRebuildWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &SeriesService{
		matchRepo:      matchRepo,
		mapRepo:        mapRepo,
		tournamentRepo: tournamentRepo,
		workers:        workers,
		logger:         logger,
	}
}

type taskSubmitter interface {
	Submit(task func()) error
}

// submitAll runs tasks on pool and returns once every accepted task has finished,
// including when a later submit fails.
func submitAll(pool taskSubmitter, tasks []func()) error {
	var workers sync.WaitGroup
	for _, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			task()
		}); err != nil {
			workers.Done()
			workers.Wait()
			return fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()
	return nil
}

// RebuildTournament recomputes every match of a tournament and writes the ones that drifted.
func (s *SeriesService) RebuildTournament(ctx context.Context, tournamentID int64) (RebuildResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeriesService.RebuildTournament")
	defer span.End()

	if tournamentID <= 0 {
		return RebuildResult{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	_, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("get tournament by id: %w", err)
	}
	if !exists {
		return RebuildResult{}, fmt.Errorf("%w: tournament=%d", ErrNotFound, tournamentID)
	}

	matches, err := s.matchRepo.List(ctx, match.Filter{TournamentID: tournamentID})
	if err != nil {
		return RebuildResult{}, fmt.Errorf("list tournament matches: %w", err)
	}

	result := RebuildResult{
		TournamentID: tournamentID,
		MatchCount:   len(matches),
		WorkerCount:  min(s.workers, max(len(matches), 1)),
	}
	if len(matches) == 0 {
		return result, nil
	}

	ids := make([]int64, 0, len(matches))
	for _, item := range matches {
		ids = append(ids, item.ID)
	}
	mapsByMatch, err := s.mapRepo.ListByMatches(ctx, ids)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("list tournament maps: %w", err)
	}

	pool, err := ants.NewPool(result.WorkerCount)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var updated atomic.Int32
	var unchanged atomic.Int32
	var failed atomic.Int32

	tasks := make([]func(), 0, len(matches))
	for _, item := range matches {
		item := item.Match
		tasks = append(tasks, func() {
			changed, err := s.rebuildMatch(ctx, item, mapsByMatch[item.ID])
			switch {
			case err != nil:
				failed.Add(1)
				s.logger.WarnContext(ctx, "rebuild series projection failed",
					"tournament_id", tournamentID,
					"match_id", item.ID,
					"stale", errors.Is(err, store.ErrStale),
					"error", err,
				)
			case changed:
				updated.Add(1)
			default:
				unchanged.Add(1)
			}
		})
	}
	if err := submitAll(pool, tasks); err != nil {
		return RebuildResult{}, err
	}

	result.Updated = int(updated.Load())
	result.Unchanged = int(unchanged.Load())
	result.Failed = int(failed.Load())

	s.logger.InfoContext(ctx, "series projections rebuilt",
		"tournament_id", tournamentID,
		"matches", result.MatchCount,
		"updated", result.Updated,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *SeriesService) rebuildMatch(ctx context.Context, item match.Match, maps []match.Map) (bool, error) {
	next := match.ComputeSeriesProgress(item, maps)
	if next.Equal(item.Result()) {
		return false, nil
	}
	if _, err := s.matchRepo.UpdateSeriesResult(ctx, item.ID, next, item.Version); err != nil {
		return false, fmt.Errorf("update series result: %w", err)
	}
	return true, nil
}
