package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/domain/store"
	qb "github.com/riskibarqy/esports-hub/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func selectMatchListings() qb.SelectBuilder {
	columns := prefixed("m", qb.Columns(matchTableModel{}))
	columns = append(columns,
		"t1.name AS team1_name",
		"t1.logo_url AS team1_logo_url",
		"t2.name AS team2_name",
		"t2.logo_url AS team2_logo_url",
		"tr.name AS tournament_name",
	)
	return qb.Select(columns...).
		From("matches m").
		Join("teams t1 ON t1.id = m.team1_id").
		Join("teams t2 ON t2.id = m.team2_id").
		Join("tournaments tr ON tr.id = m.tournament_id")
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Listing, error) {
	builder := selectMatchListings()
	if filter.TournamentID > 0 {
		builder = builder.Where(qb.Eq{"m.tournament_id": filter.TournamentID})
	}
	if filter.TeamID > 0 {
		builder = builder.Where(qb.Or{
			qb.Eq{"m.team1_id": filter.TeamID},
			qb.Eq{"m.team2_id": filter.TeamID},
		})
	}
	query, args, err := builder.OrderBy("m.scheduled_at DESC NULLS LAST", "m.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchListingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Listing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Listing, bool, error) {
	query, args, err := selectMatchListings().
		Where(qb.Eq{"m.id": matchID}).
		Limit(1).
		ToSql()
	if err != nil {
		return match.Listing{}, false, fmt.Errorf("build select match by id query: %w", err)
	}

	var row matchListingRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Listing{}, false, nil
		}
		return match.Listing{}, false, fmt.Errorf("select match by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	model := newMatchTableModel(item)
	model.Version = 1
	insert, err := qb.InsertModel("matches", model)
	if err != nil {
		return match.Match{}, fmt.Errorf("build insert match query: %w", err)
	}
	query, args, err := insert.Suffix(returning(model)).ToSql()
	if err != nil {
		return match.Match{}, fmt.Errorf("build insert match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return match.Match{}, fmt.Errorf("insert match: %w", classifyError(err))
	}
	return row.toDomain(), nil
}

// Update writes the editable columns and bumps version. A positive
// expectedVersion makes the write conditional on the stored version.
func (r *MatchRepository) Update(ctx context.Context, item match.Match, expectedVersion int64) (match.Match, error) {
	model := newMatchTableModel(item)
	query, args, err := qb.Update("matches").
		SetMap(map[string]any{
			"tournament_id": model.TournamentID,
			"team1_id":      model.Team1ID,
			"team2_id":      model.Team2ID,
			"scheduled_at":  model.ScheduledAt,
			"map_name":      model.MapName,
			"game_mode":     model.GameMode,
			"round":         model.Round,
			"status":        model.Status,
			"series_format": model.SeriesFormat,
			"updated_at":    model.UpdatedAt,
		}).
		Set("version", qb.Expr("version + 1")).
		Where(versionedMatch(item.ID, expectedVersion)).
		Suffix(returning(model)).
		ToSql()
	if err != nil {
		return match.Match{}, fmt.Errorf("build update match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, missingOrStale(ctx, r.db, item.ID)
		}
		return match.Match{}, fmt.Errorf("update match: %w", classifyError(err))
	}
	return row.toDomain(), nil
}

func (r *MatchRepository) Delete(ctx context.Context, matchID int64) error {
	query, args, err := qb.DeleteFrom("matches").Where(qb.Eq{"id": matchID}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete match query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete match: %w", classifyError(err))
	}
	return requireAffected(res)
}

func (r *MatchRepository) UpdateSeriesResult(ctx context.Context, matchID int64, result match.SeriesResult, expectedVersion int64) (match.Match, error) {
	return updateSeriesResult(ctx, r.db, matchID, result, expectedVersion)
}

func versionedMatch(matchID, expectedVersion int64) qb.Sqlizer {
	if expectedVersion <= 0 {
		return qb.Eq{"id": matchID}
	}
	return qb.And{qb.Eq{"id": matchID}, qb.Eq{"version": expectedVersion}}
}

// updateSeriesResult runs on the pool or inside a save transaction.
func updateSeriesResult(ctx context.Context, q sqlx.QueryerContext, matchID int64, result match.SeriesResult, expectedVersion int64) (match.Match, error) {
	query, args, err := qb.Update("matches").
		SetMap(map[string]any{
			"team1_wins":     result.Team1Wins,
			"team2_wins":     result.Team2Wins,
			"winner_team_id": nullInt64(result.WinnerTeamID),
			"status":         string(result.Status),
			"updated_at":     qb.Expr("NOW()"),
		}).
		Set("version", qb.Expr("version + 1")).
		Where(versionedMatch(matchID, expectedVersion)).
		Suffix(returning(matchTableModel{})).
		ToSql()
	if err != nil {
		return match.Match{}, fmt.Errorf("build update match result query: %w", err)
	}

	var row matchTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, missingOrStale(ctx, q, matchID)
		}
		return match.Match{}, fmt.Errorf("update match result: %w", classifyError(err))
	}
	return row.toDomain(), nil
}

// missingOrStale explains why a conditional match update touched no row.
func missingOrStale(ctx context.Context, q sqlx.QueryerContext, matchID int64) error {
	query, args, err := qb.Select("1").From("matches").Where(qb.Eq{"id": matchID}).ToSql()
	if err != nil {
		return fmt.Errorf("build match exists query: %w", err)
	}
	var one int
	if err := sqlx.GetContext(ctx, q, &one, query, args...); err != nil {
		if isNotFound(err) {
			return store.ErrNoRows
		}
		return fmt.Errorf("select match exists: %w", err)
	}
	return store.ErrStale
}

type MapRepository struct {
	db *sqlx.DB
}

func NewMapRepository(db *sqlx.DB) *MapRepository {
	return &MapRepository{db: db}
}

func (r *MapRepository) ListByMatch(ctx context.Context, matchID int64) ([]match.Map, error) {
	grouped, err := r.ListByMatches(ctx, []int64{matchID})
	if err != nil {
		return nil, err
	}
	return grouped[matchID], nil
}

func (r *MapRepository) ListByMatches(ctx context.Context, matchIDs []int64) (map[int64][]match.Map, error) {
	out := make(map[int64][]match.Map, len(matchIDs))
	if len(matchIDs) == 0 {
		return out, nil
	}

	query, args, err := qb.Select(qb.Columns(matchMapTableModel{})...).
		From("match_maps").
		Where(qb.Eq{"match_id": matchIDs}).
		OrderBy("match_id", "map_number").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select match maps query: %w", err)
	}

	var rows []matchMapTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match maps: %w", err)
	}
	for _, row := range rows {
		out[row.MatchID] = append(out[row.MatchID], row.toDomain())
	}
	return out, nil
}

// CreateMany inserts planned maps, leaving already materialized numbers untouched.
func (r *MapRepository) CreateMany(ctx context.Context, items []match.Map) error {
	if len(items) == 0 {
		return nil
	}

	insert := qb.InsertInto("match_maps").Columns(
		"match_id", "map_number", "map_name", "game_mode",
		"team1_score", "team2_score", "winner_team_id", "status", "duration_seconds",
	)
	for _, item := range items {
		model := newMatchMapTableModel(item)
		insert = insert.Values(
			model.MatchID, model.MapNumber, model.MapName, model.GameMode,
			model.Team1Score, model.Team2Score, model.WinnerTeamID, model.Status, model.DurationSeconds,
		)
	}
	query, args, err := insert.Suffix("ON CONFLICT (match_id, map_number) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("build insert match maps query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match maps: %w", classifyError(err))
	}
	return nil
}
