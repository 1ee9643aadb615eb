// Package schema derives column metadata and parameterized CRUD statement
// text for a record type. A Schema is computed once per (record type,
// dialect) pair and reused for the life of the process; the statement
// strings contain bind markers only, never values.
package schema

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/shrek82/gocrud/dialect"
	"github.com/shrek82/gocrud/model"
)

// ErrNoFields is returned when a schema is built from a field list with
// no columns.
var ErrNoFields = errors.New("gocrud: record type has no fields")

// Schema holds the derived column metadata and precomputed statement
// text for one record type under one dialect. Immutable after Build;
// safe to share across concurrent operations without locking.
type Schema struct {
	Table    string
	IDColumn string
	Columns  []string // column names in field declaration order

	selectSQL     string
	selectByIDSQL string
	insertSQL     string
	updateSQL     string
	deleteSQL     string
}

// Build derives a Schema from an ordered field list. Exactly one field
// should be marked as the identifier; model.GetModel and model.Describe
// both guarantee that, defaulting to the first field when none is
// tagged. Build is deterministic: identical inputs produce identical
// statement text.
func Build(table string, fields []*model.Field, d dialect.Dialect) (*Schema, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	s := &Schema{
		Table:   table,
		Columns: make([]string, len(fields)),
	}
	for i, f := range fields {
		s.Columns[i] = f.Column
		if f.IsID {
			s.IDColumn = f.Column
		}
	}
	if s.IDColumn == "" {
		s.IDColumn = s.Columns[0]
	}

	s.selectSQL = buildSelect(table, s.Columns)
	s.selectByIDSQL = s.selectSQL + " WHERE " + table + "." + s.IDColumn + " = " + d.Placeholder(1)
	s.insertSQL = buildInsert(table, s.Columns, d)
	s.updateSQL = buildUpdate(table, s.Columns, s.IDColumn, d)
	s.deleteSQL = "DELETE FROM " + table + " WHERE " + s.IDColumn + " = " + d.Placeholder(1)
	return s, nil
}

// ForModel derives an uncached Schema from prebuilt model metadata.
func ForModel(m *model.Model, d dialect.Dialect) (*Schema, error) {
	return Build(m.TableName, m.Fields, d)
}

type cacheKey struct {
	typ     reflect.Type
	dialect string
}

var schemaCache sync.Map

// For returns the schema for value's record type under dialect d,
// building and caching it on first use.
func For(value any, d dialect.Dialect) (*Schema, error) {
	typ := reflect.TypeOf(value)
	if typ == nil {
		return nil, errors.New("gocrud: value is nil")
	}
	return ForType(typ, d)
}

// ForType is For keyed directly by a struct type. The cache is keyed by
// (type, dialect name) and entries are never evicted or mutated.
func ForType(typ reflect.Type, d dialect.Dialect) (*Schema, error) {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	key := cacheKey{typ: typ, dialect: d.Name()}
	if cached, ok := schemaCache.Load(key); ok {
		return cached.(*Schema), nil
	}

	m, err := model.GetModelType(typ)
	if err != nil {
		return nil, err
	}
	s, err := ForModel(m, d)
	if err != nil {
		return nil, err
	}

	schemaCache.Store(key, s)
	return s, nil
}

// SelectSQL returns "SELECT t.c1, t.c2, ... FROM t" with columns in
// declaration order, each qualified by the table name. The text carries
// no WHERE clause, so callers can append their own WHERE/ORDER BY/LIMIT
// when composing queries beyond the generated CRUD set.
func (s *Schema) SelectSQL() string {
	return s.selectSQL
}

// SelectByIDSQL returns SelectSQL extended with a WHERE clause binding
// the identifier as the single parameter.
func (s *Schema) SelectByIDSQL() string {
	return s.selectByIDSQL
}

// InsertSQL returns "INSERT INTO t (c1, ...) VALUES (p1, ...)" with one
// placeholder per column, identifier included: IDs are assigned by the
// caller, not the database.
func (s *Schema) InsertSQL() string {
	return s.insertSQL
}

// UpdateSQL returns "UPDATE t SET c = p, ... WHERE id = pN". The SET
// clause lists every non-identifier column in declaration order; the
// final placeholder binds the identifier.
func (s *Schema) UpdateSQL() string {
	return s.updateSQL
}

// DeleteSQL returns "DELETE FROM t WHERE id = p1".
func (s *Schema) DeleteSQL() string {
	return s.deleteSQL
}

func buildSelect(table string, columns []string) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	for i, col := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(table)
		b.WriteByte('.')
		b.WriteString(col)
	}
	b.WriteString(" FROM ")
	b.WriteString(table)
	return b.String()
}

func buildInsert(table string, columns []string, d dialect.Dialect) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES (")
	for i := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.Placeholder(i + 1))
	}
	b.WriteString(")")
	return b.String()
}

func buildUpdate(table string, columns []string, idColumn string, d dialect.Dialect) string {
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")
	n := 0
	for _, col := range columns {
		if col == idColumn {
			continue
		}
		if n > 0 {
			b.WriteString(", ")
		}
		n++
		b.WriteString(col)
		b.WriteString(" = ")
		b.WriteString(d.Placeholder(n))
	}
	b.WriteString(" WHERE ")
	b.WriteString(idColumn)
	b.WriteString(" = ")
	b.WriteString(d.Placeholder(n + 1))
	return b.String()
}
