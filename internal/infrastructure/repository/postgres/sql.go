package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/riskibarqy/esports-hub/internal/domain/store"
	qb "github.com/riskibarqy/esports-hub/internal/platform/querybuilder"
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// classifyError tags constraint violations with a store kind and keeps the
// server's message so callers can surface it verbatim.
func classifyError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch string(pqErr.Code) {
	case pqForeignKeyViolation:
		return &store.BackendError{Kind: store.ErrReferenced, Code: string(pqErr.Code), Message: pqErr.Message}
	case pqUniqueViolation:
		return &store.BackendError{Kind: store.ErrDuplicate, Code: string(pqErr.Code), Message: pqErr.Message}
	default:
		return err
	}
}

func returning(model any) string {
	return "RETURNING " + strings.Join(qb.Columns(model), ", ")
}

func prefixed(alias string, columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, col := range columns {
		out = append(out, alias+"."+col)
	}
	return out
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrNoRows
	}
	return nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	out := v.Int64
	return &out
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}
