package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/esports-hub/internal/domain/player"
	"github.com/riskibarqy/esports-hub/internal/domain/store"
	qb "github.com/riskibarqy/esports-hub/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(qb.Columns(playerTableModel{})...).
		From("players").
		OrderBy("lower(name)", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}
	return r.selectPlayers(ctx, "select players", query, args)
}

// ListByTeam returns at most limit players of a team ordered by name; limit <= 0 means no limit.
func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int64, limit int) ([]player.Player, error) {
	builder := qb.Select(qb.Columns(playerTableModel{})...).
		From("players").
		Where(qb.Eq{"team_id": teamID}).
		OrderBy("lower(name)", "id")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select players by team query: %w", err)
	}
	return r.selectPlayers(ctx, "select players by team", query, args)
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	query, args, err := qb.Select(qb.Columns(playerTableModel{})...).
		From("players").
		Where(qb.Eq{"id": playerID}).
		Limit(1).
		ToSql()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []int64) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}
	query, args, err := qb.Select(qb.Columns(playerTableModel{})...).
		From("players").
		Where(qb.Eq{"id": playerIDs}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}
	return r.selectPlayers(ctx, "select players by ids", query, args)
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) (player.Player, error) {
	model := newPlayerTableModel(item)
	insert, err := qb.InsertModel("players", model)
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}
	query, args, err := insert.Suffix(returning(model)).ToSql()
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return player.Player{}, fmt.Errorf("insert player: %w", classifyError(err))
	}
	return row.toDomain(), nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) (player.Player, error) {
	model := newPlayerTableModel(item)
	query, args, err := qb.Update("players").
		SetMap(map[string]any{
			"name":       model.Name,
			"team_id":    model.TeamID,
			"country":    model.Country,
			"avatar_url": model.AvatarURL,
			"updated_at": model.UpdatedAt,
		}).
		Where(qb.Eq{"id": item.ID}).
		Suffix(returning(model)).
		ToSql()
	if err != nil {
		return player.Player{}, fmt.Errorf("build update player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, store.ErrNoRows
		}
		return player.Player{}, fmt.Errorf("update player: %w", classifyError(err))
	}
	return row.toDomain(), nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID int64) error {
	query, args, err := qb.DeleteFrom("players").Where(qb.Eq{"id": playerID}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete player query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete player: %w", classifyError(err))
	}
	return requireAffected(res)
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, action, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
