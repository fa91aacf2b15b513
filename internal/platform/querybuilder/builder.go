// Package querybuilder renders the small set of Postgres statements the
// repositories need, numbering placeholders in argument order.
package querybuilder

import (
	"strconv"
	"strings"
)

// argWriter accumulates SQL text and binds arguments to $n placeholders.
type argWriter struct {
	buf  strings.Builder
	args []any
}

func (w *argWriter) sql(parts ...string) {
	for _, part := range parts {
		w.buf.WriteString(part)
	}
}

func (w *argWriter) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

// expr writes a fragment whose '?' markers take the given args in order.
// Markers without a matching arg are written as-is.
func (w *argWriter) expr(fragment string, args []any) {
	next := 0
	for i := 0; i < len(fragment); i++ {
		if fragment[i] == '?' && next < len(args) {
			w.bind(args[next])
			next++
			continue
		}
		w.buf.WriteByte(fragment[i])
	}
}

func (w *argWriter) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.sql(" WHERE ")
		} else {
			w.sql(" AND ")
		}
		c.write(w)
	}
}

func (w *argWriter) result() (string, []any) {
	return w.buf.String(), w.args
}

type Condition interface {
	write(w *argWriter)
}

type conditionFunc func(w *argWriter)

func (f conditionFunc) write(w *argWriter) { f(w) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(w *argWriter) {
		w.sql(column, " = ")
		w.bind(value)
	})
}

// Any matches column against a Postgres array parameter, e.g. pq.Array(ids).
func Any(column string, array any) Condition {
	return conditionFunc(func(w *argWriter) {
		w.sql(column, " = ANY(")
		w.bind(array)
		w.sql(")")
	})
}

func IsNull(column string) Condition {
	return conditionFunc(func(w *argWriter) {
		w.sql(column, " IS NULL")
	})
}
