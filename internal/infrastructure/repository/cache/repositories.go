package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/esports-hub/internal/domain/team"
	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
	basecache "github.com/riskibarqy/esports-hub/internal/platform/cache"
)

const (
	teamKeyPrefix       = "team:"
	tournamentKeyPrefix = "tournament:"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, teamKeyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	key := teamKeyPrefix + "id:" + strconv.FormatInt(teamID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) GetByIDs(ctx context.Context, teamIDs []int64) ([]team.Team, error) {
	return r.next.GetByIDs(ctx, teamIDs)
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (team.Team, error) {
	created, err := r.next.Create(ctx, item)
	r.cache.DeletePrefix(ctx, teamKeyPrefix)
	return created, err
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) (team.Team, error) {
	updated, err := r.next.Update(ctx, item)
	r.cache.DeletePrefix(ctx, teamKeyPrefix)
	return updated, err
}

func (r *TeamRepository) Delete(ctx context.Context, teamID int64) error {
	err := r.next.Delete(ctx, teamID)
	r.cache.DeletePrefix(ctx, teamKeyPrefix)
	return err
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	v, err := r.cache.GetOrLoad(ctx, tournamentKeyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]tournament.Tournament(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]tournament.Tournament)
	return append([]tournament.Tournament(nil), items...), nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	key := tournamentKeyPrefix + "id:" + strconv.FormatInt(tournamentID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return cachedTournamentByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}

	cached, _ := v.(cachedTournamentByID)
	return cached.value, cached.exists, nil
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	created, err := r.next.Create(ctx, item)
	r.cache.DeletePrefix(ctx, tournamentKeyPrefix)
	return created, err
}

func (r *TournamentRepository) Update(ctx context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	updated, err := r.next.Update(ctx, item)
	r.cache.DeletePrefix(ctx, tournamentKeyPrefix)
	return updated, err
}

func (r *TournamentRepository) Delete(ctx context.Context, tournamentID int64) error {
	err := r.next.Delete(ctx, tournamentID)
	r.cache.DeletePrefix(ctx, tournamentKeyPrefix)
	return err
}

type cachedTournamentByID struct {
	value  tournament.Tournament
	exists bool
}
