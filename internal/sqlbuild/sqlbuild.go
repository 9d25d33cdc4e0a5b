// Package sqlbuild renders parameterized UPDATE and INSERT statements from an
// ordered list of column/value pairs. Values are always bound as $n placeholders;
// column names come from code, never from request data.
package sqlbuild

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmpty is returned when a statement would have no columns. Callers skip the
// write instead of issuing a no-op.
var ErrEmpty = errors.New("sqlbuild: no fields present")

// Fields is an ordered set of present column values.
type Fields struct {
	columns []string
	values  []any
}

// Set appends column unconditionally.
func (f *Fields) Set(column string, value any) {
	f.columns = append(f.columns, column)
	f.values = append(f.values, value)
}

// Optional appends column only when value is non-nil.
func Optional[T any](f *Fields, column string, value *T) {
	if value == nil {
		return
	}
	f.Set(column, *value)
}

// OptionalText appends column only when value is non-nil and not blank. Use it for
// columns that must never be cleared through a patch.
func OptionalText[T ~string](f *Fields, column string, value *T) {
	if value == nil || strings.TrimSpace(string(*value)) == "" {
		return
	}
	f.Set(column, string(*value))
}

func (f *Fields) Len() int {
	return len(f.columns)
}

func (f *Fields) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Assignments renders "col = $n" fragments numbered from offset+1, with their values.
func (f *Fields) Assignments(offset int) ([]string, []any) {
	frags := make([]string, len(f.columns))
	for i, c := range f.columns {
		frags[i] = fmt.Sprintf("%s = $%d", c, offset+i+1)
	}
	return frags, append([]any(nil), f.values...)
}

type Statement struct {
	SQL  string
	Args []any
}

// Update renders UPDATE table SET ... WHERE where. whereArgs are bound first, so
// where refers to them as $1..$n and the SET list continues at $n+1.
func Update(table string, f *Fields, where string, whereArgs ...any) (Statement, error) {
	if f == nil || f.Len() == 0 {
		return Statement{}, ErrEmpty
	}
	frags, values := f.Assignments(len(whereArgs))

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, strings.Join(frags, ", "), where)
	args := make([]any, 0, len(whereArgs)+len(values))
	args = append(args, whereArgs...)
	args = append(args, values...)
	return Statement{SQL: sql, Args: args}, nil
}

// Insert renders INSERT INTO table (...) VALUES (...) with an optional RETURNING list.
func Insert(table string, f *Fields, returning ...string) (Statement, error) {
	if f == nil || f.Len() == 0 {
		return Statement{}, ErrEmpty
	}
	placeholders := make([]string, f.Len())
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(f.columns, ", "), strings.Join(placeholders, ", "))
	if len(returning) > 0 {
		sql += " RETURNING " + strings.Join(returning, ", ")
	}
	return Statement{SQL: sql, Args: append([]any(nil), f.values...)}, nil
}
