package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/memory"
)

func TestSeriesService_RebuildTournamentFixesDrift(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := memory.NewSeededDB(time.Now())
	matchRepo := memory.NewMatchRepository(db)
	mapRepo := memory.NewMapRepository(db)
	service := NewSeriesService(matchRepo, mapRepo, memory.NewTournamentRepository(db), 2, nil)

	second, err := matchRepo.Create(ctx, match.Match{
		TournamentID: memory.TournamentIDWinterCup,
		Team1ID:      memory.TeamIDVanguard,
		Team2ID:      memory.TeamIDRedline,
		Status:       match.StatusScheduled,
		SeriesFormat: match.FormatBo1,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	first, _, _ := matchRepo.GetByID(ctx, 1)
	if err := mapRepo.CreateMany(ctx, match.PlanMaps(first.Match)); err != nil {
		t.Fatalf("create maps: %v", err)
	}

	// Drift the stored projection away from the (empty) map results.
	if _, err := matchRepo.UpdateSeriesResult(ctx, 1, match.SeriesResult{Team1Wins: 2, Status: match.StatusLive}, 0); err != nil {
		t.Fatalf("drift projection: %v", err)
	}

	result, err := service.RebuildTournament(ctx, memory.TournamentIDWinterCup)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if result.MatchCount != 2 || result.Updated != 1 || result.Unchanged != 1 || result.Failed != 0 {
		t.Fatalf("unexpected rebuild result: %+v", result)
	}

	fixed, _, _ := matchRepo.GetByID(ctx, 1)
	if fixed.Team1Wins != 0 || fixed.WinnerTeamID != nil || fixed.Status != match.StatusLive {
		t.Fatalf("expected wins to be recomputed from maps, got %+v", fixed.Match)
	}
	untouched, _, _ := matchRepo.GetByID(ctx, second.ID)
	if untouched.Version != second.Version {
		t.Fatalf("unchanged match must not be rewritten")
	}
}

func TestSeriesService_RebuildUnknownTournament(t *testing.T) {
	t.Parallel()

	db := memory.NewDB()
	service := NewSeriesService(memory.NewMatchRepository(db), memory.NewMapRepository(db), memory.NewTournamentRepository(db), 0, nil)

	if _, err := service.RebuildTournament(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.RebuildTournament(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// limitedPool accepts the first accept tasks on goroutines and rejects the rest.
type limitedPool struct {
	accept    int
	submitted int
}

func (p *limitedPool) Submit(task func()) error {
	if p.submitted >= p.accept {
		return errors.New("pool overload")
	}
	p.submitted++
	go task()
	return nil
}

func TestSubmitAll_WaitsForAcceptedTasksOnSubmitFailure(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	var finished atomic.Int32
	slow := func() {
		<-release
		time.Sleep(10 * time.Millisecond)
		finished.Add(1)
	}

	done := make(chan error, 1)
	go func() {
		done <- submitAll(&limitedPool{accept: 2}, []func(){slow, slow, slow})
	}()

	select {
	case err := <-done:
		t.Fatalf("submitAll returned before accepted tasks finished: %v", err)
	case <-time.After(20 * time.Millisecond):
	}
	close(release)

	err := <-done
	if err == nil {
		t.Fatalf("expected submit error")
	}
	if got := finished.Load(); got != 2 {
		t.Fatalf("expected both accepted tasks to finish before return, got %d", got)
	}
}
