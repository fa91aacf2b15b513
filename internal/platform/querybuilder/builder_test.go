package querybuilder

import "testing"

func assertSQL(t *testing.T, gotQuery, wantQuery string, gotArgs []any, wantArgs ...any) {
	t.Helper()

	if gotQuery != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, gotQuery)
	}
	if len(gotArgs) != len(wantArgs) {
		t.Fatalf("unexpected args: %+v", gotArgs)
	}
	for i := range wantArgs {
		if gotArgs[i] != wantArgs[i] {
			t.Fatalf("unexpected arg %d: got=%v want=%v", i, gotArgs[i], wantArgs[i])
		}
	}
}

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "name").
		From("seasons").
		Where(Eq("is_active", true), Live()).
		OrderBy("starts_on DESC NULLS LAST", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	assertSQL(t, query,
		"SELECT public_id, name FROM seasons WHERE is_active = $1 AND deleted_at IS NULL ORDER BY starts_on DESC NULLS LAST, id DESC LIMIT 1",
		args, true)

	if _, _, err := Select().From("seasons").ToSQL(); err == nil {
		t.Fatalf("expected error for missing columns")
	}
	if _, _, err := Select("*").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestSelectBuilder_AnyCondition(t *testing.T) {
	ids := []string{"g1", "g2"}
	query, args, err := Select("*").
		From("matches").
		Where(Eq("season_public_id", "s1"), Any("group_public_id", ids), Live()).
		OrderBy("scheduled_at", "public_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	want := "SELECT * FROM matches WHERE season_public_id = $1 AND group_public_id = ANY($2) AND deleted_at IS NULL ORDER BY scheduled_at, public_id"
	if query != want || len(args) != 2 || args[0] != "s1" {
		t.Fatalf("unexpected select: %s %+v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("public_id", "name").
		Values("t1", "Harbour").
		Values("t2", "Valley").
		Suffix(OnConflictDoNothing("public_id")).
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}
	assertSQL(t, query,
		"INSERT INTO teams (public_id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT (public_id) WHERE deleted_at IS NULL DO NOTHING",
		args, "t1", "Harbour", "t2", "Valley")

	if _, _, err := InsertInto("teams").Columns("public_id", "name").Values("t1").ToSQL(); err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("seasons").
		Set("is_active", false).
		SetExpr("closed_at", "COALESCE(closed_at, ?)", "2026-06-01").
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "s1"), Live()).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}
	assertSQL(t, query,
		"UPDATE seasons SET is_active = $1, closed_at = COALESCE(closed_at, $2), updated_at = NOW() WHERE public_id = $3 AND deleted_at IS NULL",
		args, false, "2026-06-01", "s1")
}

func TestSoftDelete(t *testing.T) {
	query, args, err := SoftDelete("group_standings", Eq("season_public_id", "s1"), Eq("group_public_id", "g1")).ToSQL()
	if err != nil {
		t.Fatalf("build soft delete query: %v", err)
	}
	assertSQL(t, query,
		"UPDATE group_standings SET deleted_at = NOW(), updated_at = NOW() WHERE season_public_id = $1 AND group_public_id = $2 AND deleted_at IS NULL",
		args, "s1", "g1")
}

type rowModel struct {
	ID      string `db:"public_id"`
	Name    string `db:"name"`
	Skipped string `db:"-"`
	hidden  string
}

func TestInsertModels(t *testing.T) {
	query, args, err := InsertModels("teams", []rowModel{
		{ID: "t1", Name: "a", hidden: "x"},
		{ID: "t2", Name: "b"},
	}, OnConflictDoNothing("public_id"))
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}
	assertSQL(t, query,
		"INSERT INTO teams (public_id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT (public_id) WHERE deleted_at IS NULL DO NOTHING",
		args, "t1", "a", "t2", "b")

	if _, _, err := InsertModels[rowModel]("teams", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
	if _, _, err := InsertModel("teams", (*rowModel)(nil), ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
