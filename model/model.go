package model

import (
	"fmt"
	"reflect"
	"sync"
	"unicode"
)

// Model represents table metadata for one record type.
type Model struct {
	TableName string
	Fields    []*Field
	FieldMap  map[string]*Field
	IDField   *Field
}

// Tabler lets a record type override the table name derived from its
// type name.
type Tabler interface {
	TableName() string
}

var modelCache sync.Map

// GetModel returns the model metadata for a given value
func GetModel(value any) (*Model, error) {
	if value == nil {
		return nil, fmt.Errorf("value is nil")
	}

	return GetModelType(reflect.TypeOf(value))
}

// GetModelType returns the model metadata for a struct type. Results are
// cached process-wide; the returned *Model must not be mutated.
func GetModelType(typ reflect.Type) (*Model, error) {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("value must be a struct or pointer to struct, got %s", typ.Kind())
	}

	key := typ.PkgPath() + "." + typ.Name()
	if cached, ok := modelCache.Load(key); ok {
		return cached.(*Model), nil
	}

	m, err := parseType(typ)
	if err != nil {
		return nil, err
	}

	modelCache.Store(key, m)
	return m, nil
}

func parseType(typ reflect.Type) (*Model, error) {
	tableName := camelToSnake(typ.Name())
	if t, ok := reflect.New(typ).Interface().(Tabler); ok {
		tableName = t.TableName()
	}

	m := &Model{
		TableName: tableName,
		FieldMap:  make(map[string]*Field),
	}

	for i := 0; i < typ.NumField(); i++ {
		structField := typ.Field(i)
		if !structField.IsExported() {
			continue
		}

		tag := ParseTag(structField.Tag.Get("crud"))
		if tag.Skip {
			continue
		}

		columnName := tag.Column
		if columnName == "" {
			columnName = camelToSnake(structField.Name)
		}

		field := &Field{
			Name:   structField.Name,
			Column: columnName,
			Type:   structField.Type,
			Index:  i,
			IsID:   tag.ID,
		}

		m.Fields = append(m.Fields, field)
		m.FieldMap[columnName] = field

		if field.IsID {
			if m.IDField != nil {
				return nil, fmt.Errorf("type %s has more than one id field", typ.Name())
			}
			m.IDField = field
		}
	}

	// No field tagged as id: the first column is the identifier by
	// convention.
	if m.IDField == nil && len(m.Fields) > 0 {
		m.Fields[0].IsID = true
		m.IDField = m.Fields[0]
	}

	return m, nil
}

// Describe builds a model from an explicit, caller-populated field list,
// bypassing reflection entirely. Field Index values are assigned in list
// order when left zero.
func Describe(table string, fields []*Field) (*Model, error) {
	if table == "" {
		return nil, fmt.Errorf("table name is empty")
	}

	m := &Model{
		TableName: table,
		FieldMap:  make(map[string]*Field, len(fields)),
	}

	for i, f := range fields {
		if f.Column == "" {
			return nil, fmt.Errorf("field %d of table %s has no column name", i, table)
		}
		if _, dup := m.FieldMap[f.Column]; dup {
			return nil, fmt.Errorf("table %s has duplicate column %s", table, f.Column)
		}
		if f.Index == 0 && i > 0 {
			f.Index = i
		}
		m.Fields = append(m.Fields, f)
		m.FieldMap[f.Column] = f
		if f.IsID {
			if m.IDField != nil {
				return nil, fmt.Errorf("table %s has more than one id column", table)
			}
			m.IDField = f
		}
	}

	if m.IDField == nil && len(m.Fields) > 0 {
		m.Fields[0].IsID = true
		m.IDField = m.Fields[0]
	}

	return m, nil
}

// Columns returns the column names in field declaration order.
func (m *Model) Columns() []string {
	cols := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		cols[i] = f.Column
	}
	return cols
}

func camelToSnake(s string) string {
	if s == "ID" {
		return "id"
	}
	var res []rune
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(rune(s[i-1])) || (i+1 < len(s) && unicode.IsLower(rune(s[i+1])))) {
				res = append(res, '_')
			}
			res = append(res, unicode.ToLower(r))
		} else {
			res = append(res, r)
		}
	}
	return string(res)
}
