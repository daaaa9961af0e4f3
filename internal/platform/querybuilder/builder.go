package querybuilder

import (
	sq "github.com/Masterminds/squirrel"
)

// Conditions are squirrel's so repositories can compose them freely.
type (
	Eq      = sq.Eq
	NotEq   = sq.NotEq
	Gt      = sq.Gt
	Lt      = sq.Lt
	And     = sq.And
	Or      = sq.Or
	Sqlizer = sq.Sqlizer

	SelectBuilder = sq.SelectBuilder
	InsertBuilder = sq.InsertBuilder
	UpdateBuilder = sq.UpdateBuilder
	DeleteBuilder = sq.DeleteBuilder
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func Select(columns ...string) SelectBuilder {
	return psql.Select(columns...)
}

func InsertInto(table string) InsertBuilder {
	return psql.Insert(table)
}

func Update(table string) UpdateBuilder {
	return psql.Update(table)
}

func DeleteFrom(table string) DeleteBuilder {
	return psql.Delete(table)
}

func Expr(sql string, args ...any) Sqlizer {
	return sq.Expr(sql, args...)
}

// IsNull renders "column IS NULL".
func IsNull(column string) Sqlizer {
	return sq.Eq{column: nil}
}
