package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("teams").
		Where(Eq{"country": "ID"}, IsNull("logo_url")).
		OrderBy("name").
		Limit(10).
		ToSql()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM teams WHERE country = $1 AND logo_url IS NULL ORDER BY name LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "ID" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilderWithExpr(t *testing.T) {
	query, args, err := Update("matches").
		Set("status", "live").
		Set("version", Expr("version + 1")).
		Where(Eq{"id": int64(7), "version": int64(3)}).
		ToSql()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE matches SET status = $1, version = version + 1 WHERE id = $2 AND version = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "live" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type sampleTableModel struct {
	ID        int64     `db:"id,readonly"`
	Name      string    `db:"name"`
	Country   *string   `db:"country"`
	CreatedAt time.Time `db:"created_at,readonly"`
	ignored   string
}

func TestInsertModelSkipsReadonlyColumns(t *testing.T) {
	builder, err := InsertModel("teams", sampleTableModel{Name: "OpTic"})
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}
	query, args, err := builder.Suffix("RETURNING id").ToSql()
	if err != nil {
		t.Fatalf("render insert model: %v", err)
	}

	wantQuery := "INSERT INTO teams (name,country) VALUES ($1,$2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "OpTic" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestColumnsIncludesReadonly(t *testing.T) {
	got := Columns(sampleTableModel{})
	want := []string{"id", "name", "country", "created_at"}
	if len(got) != len(want) {
		t.Fatalf("unexpected columns: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected column at %d: got=%s want=%s", i, got[i], want[i])
		}
	}
}

func TestInsertModelRejectsNonStruct(t *testing.T) {
	if _, err := InsertModel("teams", 42); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	var nilModel *sampleTableModel
	if _, err := InsertModel("teams", nilModel); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
