package querybuilder

import "strings"

// DeletedAtColumn marks soft-deleted rows. Every table keeps it and every
// unique index is partial on it being NULL.
const DeletedAtColumn = "deleted_at"

// Live restricts a statement to rows that are not soft-deleted.
func Live() Condition {
	return IsNull(DeletedAtColumn)
}

// SoftDelete stamps deleted_at on the live rows matching conditions.
func SoftDelete(table string, conditions ...Condition) *UpdateBuilder {
	return Update(table).
		SetExpr(DeletedAtColumn, "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(conditions...).
		Where(Live())
}

// OnConflictDoNothing targets a partial unique index over live rows.
func OnConflictDoNothing(columns ...string) string {
	return "ON CONFLICT (" + strings.Join(columns, ", ") + ") WHERE " + DeletedAtColumn + " IS NULL DO NOTHING"
}
