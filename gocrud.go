// Package gocrud derives create, read-by-id, update and delete
// operations for a struct mapped one-to-one to a database table,
// without hand-written SQL for the single-table case. The generated
// statement text and column metadata stay accessible through Schema so
// callers can compose anything more complex themselves.
package gocrud

import (
	"github.com/shrek82/gocrud/core"
	"github.com/shrek82/gocrud/model"
	"github.com/shrek82/gocrud/schema"
)

// Re-export core types and functions
type DB = core.DB
type Tx = core.Tx
type Options = core.Options
type ExecError = core.ExecError

var Open = core.Open

// Re-export schema and model metadata access
type Schema = schema.Schema
type Model = model.Model
type Field = model.Field

var (
	BuildSchema = schema.Build
	SchemaFor   = schema.For
	Describe    = model.Describe

	ErrNoFields = schema.ErrNoFields
)
