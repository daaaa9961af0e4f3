package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/esports-hub/internal/domain/store"
	"github.com/riskibarqy/esports-hub/internal/domain/team"
	qb "github.com/riskibarqy/esports-hub/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(qb.Columns(teamTableModel{})...).
		From("teams").
		OrderBy("lower(name)", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	query, args, err := qb.Select(qb.Columns(teamTableModel{})...).
		From("teams").
		Where(qb.Eq{"id": teamID}).
		Limit(1).
		ToSql()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) GetByIDs(ctx context.Context, teamIDs []int64) ([]team.Team, error) {
	if len(teamIDs) == 0 {
		return []team.Team{}, nil
	}

	query, args, err := qb.Select(qb.Columns(teamTableModel{})...).
		From("teams").
		Where(qb.Eq{"id": teamIDs}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select teams by ids query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by ids: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (team.Team, error) {
	model := newTeamTableModel(item)
	insert, err := qb.InsertModel("teams", model)
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}
	query, args, err := insert.Suffix(returning(model)).ToSql()
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return team.Team{}, fmt.Errorf("insert team: %w", classifyError(err))
	}
	return row.toDomain(), nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) (team.Team, error) {
	query, args, err := qb.Update("teams").
		SetMap(map[string]any{
			"name":       item.Name,
			"country":    item.Country,
			"logo_url":   item.LogoURL,
			"updated_at": item.UpdatedAt,
		}).
		Where(qb.Eq{"id": item.ID}).
		Suffix(returning(teamTableModel{})).
		ToSql()
	if err != nil {
		return team.Team{}, fmt.Errorf("build update team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, store.ErrNoRows
		}
		return team.Team{}, fmt.Errorf("update team: %w", classifyError(err))
	}
	return row.toDomain(), nil
}

// Delete relies on the schema: matches restrict the delete, players are detached.
func (r *TeamRepository) Delete(ctx context.Context, teamID int64) error {
	query, args, err := qb.DeleteFrom("teams").Where(qb.Eq{"id": teamID}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete team query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete team: %w", classifyError(err))
	}
	return requireAffected(res)
}
