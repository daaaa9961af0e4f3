package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/esports-hub/internal/domain/store"
	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
	qb "github.com/riskibarqy/esports-hub/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	query, args, err := qb.Select(qb.Columns(tournamentTableModel{})...).
		From("tournaments").
		OrderBy("start_date DESC NULLS LAST", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select(qb.Columns(tournamentTableModel{})...).
		From("tournaments").
		Where(qb.Eq{"id": tournamentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build select tournament by id query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("select tournament by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	model := newTournamentTableModel(item)
	insert, err := qb.InsertModel("tournaments", model)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("build insert tournament query: %w", err)
	}
	query, args, err := insert.Suffix(returning(model)).ToSql()
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("build insert tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return tournament.Tournament{}, fmt.Errorf("insert tournament: %w", classifyError(err))
	}
	return row.toDomain(), nil
}

func (r *TournamentRepository) Update(ctx context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	model := newTournamentTableModel(item)
	query, args, err := qb.Update("tournaments").
		SetMap(map[string]any{
			"name":             model.Name,
			"game":             model.Game,
			"start_date":       model.StartDate,
			"end_date":         model.EndDate,
			"prize_pool_cents": model.PrizePoolCents,
			"status":           model.Status,
			"updated_at":       model.UpdatedAt,
		}).
		Where(qb.Eq{"id": item.ID}).
		Suffix(returning(model)).
		ToSql()
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("build update tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, store.ErrNoRows
		}
		return tournament.Tournament{}, fmt.Errorf("update tournament: %w", classifyError(err))
	}
	return row.toDomain(), nil
}

// Delete cascades to the tournament's matches, their maps and stats.
func (r *TournamentRepository) Delete(ctx context.Context, tournamentID int64) error {
	query, args, err := qb.DeleteFrom("tournaments").Where(qb.Eq{"id": tournamentID}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete tournament query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete tournament: %w", classifyError(err))
	}
	return requireAffected(res)
}
