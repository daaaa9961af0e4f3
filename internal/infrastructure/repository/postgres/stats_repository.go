package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/domain/matchstats"
	"github.com/riskibarqy/esports-hub/internal/domain/store"
	qb "github.com/riskibarqy/esports-hub/internal/platform/querybuilder"
)

const upsertPlayerMatchStatSuffix = `ON CONFLICT (match_map_id, player_id) DO UPDATE SET
    team_id = EXCLUDED.team_id,
    kills = EXCLUDED.kills,
    deaths = EXCLUDED.deaths,
    assists = EXCLUDED.assists,
    damage_dealt = EXCLUDED.damage_dealt,
    damage_taken = EXCLUDED.damage_taken,
    shots_fired = EXCLUDED.shots_fired,
    shots_hit = EXCLUDED.shots_hit,
    headshots = EXCLUDED.headshots,
    score = EXCLUDED.score,
    time_on_objective = EXCLUDED.time_on_objective,
    captures = EXCLUDED.captures,
    defends = EXCLUDED.defends,
    plants = EXCLUDED.plants,
    defuses = EXCLUDED.defuses,
    clutches = EXCLUDED.clutches,
    first_bloods = EXCLUDED.first_bloods,
    best_streak = EXCLUDED.best_streak,
    mvp = EXCLUDED.mvp,
    updated_at = NOW()`

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) ListByMatch(ctx context.Context, matchID int64) ([]matchstats.PlayerMapStat, error) {
	query, args, err := qb.Select(qb.Columns(playerMatchStatTableModel{})...).
		From("player_match_stats").
		Where(qb.Eq{"match_id": matchID}).
		OrderBy("match_map_id", "player_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select player match stats query: %w", err)
	}

	var rows []playerMatchStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player match stats: %w", err)
	}

	out := make([]matchstats.PlayerMapStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// SaveSheet persists a whole stats sheet in one transaction. The match row is
// locked first so the version check and the final bump cannot interleave with
// another save.
func (r *StatsRepository) SaveSheet(ctx context.Context, set matchstats.SaveSet) (match.Match, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return match.Match{}, fmt.Errorf("begin tx for stats save: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := lockMatchVersion(ctx, tx, set.MatchID, set.ExpectedVersion); err != nil {
		return match.Match{}, err
	}

	for _, item := range set.Maps {
		if err := updateMatchMap(ctx, tx, set.MatchID, item); err != nil {
			return match.Match{}, err
		}
	}

	for _, item := range set.Upserts {
		item.MatchID = set.MatchID
		insert, err := qb.InsertModel("player_match_stats", newPlayerMatchStatTableModel(item))
		if err != nil {
			return match.Match{}, fmt.Errorf("build upsert player match stat query: %w", err)
		}
		query, args, err := insert.Suffix(upsertPlayerMatchStatSuffix).ToSql()
		if err != nil {
			return match.Match{}, fmt.Errorf("build upsert player match stat query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return match.Match{}, fmt.Errorf("upsert player match stat map=%d player=%d: %w", item.MapID, item.PlayerID, classifyError(err))
		}
	}

	if len(set.Deletes) > 0 {
		keys := make(qb.Or, 0, len(set.Deletes))
		for _, key := range set.Deletes {
			keys = append(keys, qb.Eq{"match_map_id": key.MapID, "player_id": key.PlayerID})
		}
		query, args, err := qb.DeleteFrom("player_match_stats").
			Where(qb.Eq{"match_id": set.MatchID}).
			Where(keys).
			ToSql()
		if err != nil {
			return match.Match{}, fmt.Errorf("build delete player match stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return match.Match{}, fmt.Errorf("delete player match stats: %w", classifyError(err))
		}
	}

	saved, err := updateSeriesResult(ctx, tx, set.MatchID, set.Result, 0)
	if err != nil {
		return match.Match{}, err
	}

	if err := tx.Commit(); err != nil {
		return match.Match{}, fmt.Errorf("commit stats save tx: %w", err)
	}
	return saved, nil
}

func lockMatchVersion(ctx context.Context, tx *sqlx.Tx, matchID, expectedVersion int64) error {
	query, args, err := qb.Select("version").
		From("matches").
		Where(qb.Eq{"id": matchID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("build lock match query: %w", err)
	}

	var version int64
	if err := tx.GetContext(ctx, &version, query, args...); err != nil {
		if isNotFound(err) {
			return store.ErrNoRows
		}
		return fmt.Errorf("lock match: %w", err)
	}
	if expectedVersion > 0 && version != expectedVersion {
		return store.ErrStale
	}
	return nil
}

func updateMatchMap(ctx context.Context, tx *sqlx.Tx, matchID int64, item match.Map) error {
	model := newMatchMapTableModel(item)
	query, args, err := qb.Update("match_maps").
		SetMap(map[string]any{
			"map_name":         model.MapName,
			"game_mode":        model.GameMode,
			"team1_score":      model.Team1Score,
			"team2_score":      model.Team2Score,
			"winner_team_id":   model.WinnerTeamID,
			"status":           model.Status,
			"duration_seconds": model.DurationSeconds,
			"updated_at":       qb.Expr("NOW()"),
		}).
		Where(qb.Eq{"id": item.ID, "match_id": matchID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update match map query: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match map %d: %w", item.ID, classifyError(err))
	}
	if err := requireAffected(res); err != nil {
		return fmt.Errorf("update match map %d: %w", item.ID, err)
	}
	return nil
}
