package dialect

import (
	"reflect"

	"github.com/shrek82/gocrud/model"
)

// Dialect represents the interface for database-specific SQL syntax and
// type mapping. Each database (MySQL, PostgreSQL, SQLite, ...) must
// implement this interface to be supported.
//
// The one axis that affects generated CRUD statements is Placeholder:
// PostgreSQL numbers its bind markers ($1, $2, ...) while MySQL and
// SQLite repeat an anonymous marker (?). Everything else on the
// interface serves schema migration.
type Dialect interface {
	// Name returns the driver name the dialect is registered under
	Name() string
	// Placeholder returns the bind marker for the 1-based parameter index
	Placeholder(index int) string
	// Quote wraps a name (table or column) in database-specific quotes
	Quote(name string) string
	// DataTypeOf returns the database-specific column type for a Go reflect.Type
	DataTypeOf(typ reflect.Type) string
	// CreateTableSQL generates the CREATE TABLE statement for the given model
	CreateTableSQL(m *model.Model) string
	// HasTableSQL generates the SQL to check if a table exists
	HasTableSQL(tableName string) (string, []any)
}

var dialects = make(map[string]Dialect)

// Register registers a new dialect for a given driver name
func Register(name string, d Dialect) {
	dialects[name] = d
}

// Get retrieves a registered dialect by driver name
func Get(name string) (Dialect, bool) {
	d, ok := dialects[name]
	return d, ok
}
