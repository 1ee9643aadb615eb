package model

import (
	"reflect"
)

// Field describes one struct field mapped to a database column.
type Field struct {
	Name   string       // Struct field name
	Column string       // DB column name
	Type   reflect.Type // Field type
	Index  int          // Struct field index for fast access
	IsID   bool         // Is the identifier column
}
