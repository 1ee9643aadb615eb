package core

import (
	"context"
	"database/sql"
	"reflect"
	"time"

	"github.com/shrek82/gocrud/model"
	"github.com/shrek82/gocrud/schema"
)

// Hook interfaces for record lifecycle events
type BeforeCreator interface{ BeforeCreate() error }
type AfterCreator interface{ AfterCreate() error }
type BeforeUpdater interface{ BeforeUpdate() error }
type AfterUpdater interface{ AfterUpdate() error }
type BeforeDeleter interface{ BeforeDelete() error }
type AfterDeleter interface{ AfterDelete() error }
type AfterFinder interface{ AfterFind() error }

// Executor defines the interface for executing SQL queries and commands.
// It is implemented by the connection pool and by *Tx, so every CRUD
// operation runs equally inside or outside a transaction.
type Executor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Create inserts value as a new row, binding every column in field
// declaration order. The identifier must already be set by the caller.
func (db *DB) Create(value any) error {
	return db.CreateContext(context.Background(), value)
}

// CreateContext is Create with an explicit context.
func (db *DB) CreateContext(ctx context.Context, value any) error {
	return create(ctx, db, db.pool, value)
}

// ByID fetches the row whose identifier equals id into dest, a pointer
// to a record struct. The second return is false when no row matches;
// absence is not an error.
func (db *DB) ByID(dest any, id any) (bool, error) {
	return db.ByIDContext(context.Background(), dest, id)
}

// ByIDContext is ByID with an explicit context.
func (db *DB) ByIDContext(ctx context.Context, dest any, id any) (bool, error) {
	return byID(ctx, db, db.pool, dest, id)
}

// All fetches every row of the record type's table into dest, a pointer
// to a slice of records, in whatever order the database returns rows.
func (db *DB) All(dest any) error {
	return db.AllContext(context.Background(), dest)
}

// AllContext is All with an explicit context.
func (db *DB) AllContext(ctx context.Context, dest any) error {
	return all(ctx, db, db.pool, dest)
}

// Update rewrites every non-identifier column of the row whose
// identifier matches value's. It returns the number of rows affected;
// zero means the identifier was not present, which is not an error.
func (db *DB) Update(value any) (int64, error) {
	return db.UpdateContext(context.Background(), value)
}

// UpdateContext is Update with an explicit context.
func (db *DB) UpdateContext(ctx context.Context, value any) (int64, error) {
	return update(ctx, db, db.pool, value)
}

// Delete removes the row whose identifier matches value's and returns
// the number of rows affected.
func (db *DB) Delete(value any) (int64, error) {
	return db.DeleteContext(context.Background(), value)
}

// DeleteContext is Delete with an explicit context.
func (db *DB) DeleteContext(ctx context.Context, value any) (int64, error) {
	return deleteOp(ctx, db, db.pool, value)
}

func create(ctx context.Context, db *DB, exec Executor, value any) error {
	m, s, err := db.meta(value)
	if err != nil {
		return err
	}

	if h, ok := value.(BeforeCreator); ok {
		if err := h.BeforeCreate(); err != nil {
			return err
		}
	}

	args := bindAll(m, value)
	sqlStr := s.InsertSQL()
	start := time.Now()
	_, err = exec.ExecContext(ctx, sqlStr, args...)
	db.logSQL(sqlStr, time.Since(start), args...)
	if err != nil {
		return execErr(sqlStr, err)
	}

	if h, ok := value.(AfterCreator); ok {
		return h.AfterCreate()
	}
	return nil
}

func byID(ctx context.Context, db *DB, exec Executor, dest any, id any) (bool, error) {
	m, s, err := db.meta(dest)
	if err != nil {
		return false, err
	}

	sqlStr := s.SelectByIDSQL()
	start := time.Now()
	rows, err := exec.QueryContext(ctx, sqlStr, id)
	db.logSQL(sqlStr, time.Since(start), id)
	if err != nil {
		return false, execErr(sqlStr, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return false, rows.Err()
	}
	if err := scanRow(rows, m, dest); err != nil {
		return false, err
	}

	if h, ok := dest.(AfterFinder); ok {
		if err := h.AfterFind(); err != nil {
			return true, err
		}
	}
	return true, nil
}

func all(ctx context.Context, db *DB, exec Executor, dest any) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Slice {
		return ErrInvalidDest
	}

	sliceValue := destValue.Elem()
	itemType := sliceValue.Type().Elem()
	structType := itemType
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}

	m, err := model.GetModelType(structType)
	if err != nil {
		return err
	}
	s, err := schema.ForType(structType, db.dialect)
	if err != nil {
		return err
	}

	sqlStr := s.SelectSQL()
	start := time.Now()
	rows, err := exec.QueryContext(ctx, sqlStr)
	db.logSQL(sqlStr, time.Since(start))
	if err != nil {
		return execErr(sqlStr, err)
	}
	defer rows.Close()

	return scanRows(rows, m, sliceValue, itemType)
}

func update(ctx context.Context, db *DB, exec Executor, value any) (int64, error) {
	m, s, err := db.meta(value)
	if err != nil {
		return 0, err
	}

	if h, ok := value.(BeforeUpdater); ok {
		if err := h.BeforeUpdate(); err != nil {
			return 0, err
		}
	}

	// Non-identifier columns in declaration order, identifier last for
	// the WHERE clause.
	val := structValue(value)
	args := make([]any, 0, len(m.Fields))
	for _, field := range m.Fields {
		if field != m.IDField {
			args = append(args, val.Field(field.Index).Interface())
		}
	}
	args = append(args, val.Field(m.IDField.Index).Interface())

	sqlStr := s.UpdateSQL()
	start := time.Now()
	res, err := exec.ExecContext(ctx, sqlStr, args...)
	db.logSQL(sqlStr, time.Since(start), args...)
	if err != nil {
		return 0, execErr(sqlStr, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, execErr(sqlStr, err)
	}

	if h, ok := value.(AfterUpdater); ok {
		if err := h.AfterUpdate(); err != nil {
			return affected, err
		}
	}
	return affected, nil
}

func deleteOp(ctx context.Context, db *DB, exec Executor, value any) (int64, error) {
	m, s, err := db.meta(value)
	if err != nil {
		return 0, err
	}

	if h, ok := value.(BeforeDeleter); ok {
		if err := h.BeforeDelete(); err != nil {
			return 0, err
		}
	}

	id := structValue(value).Field(m.IDField.Index).Interface()
	sqlStr := s.DeleteSQL()
	start := time.Now()
	res, err := exec.ExecContext(ctx, sqlStr, id)
	db.logSQL(sqlStr, time.Since(start), id)
	if err != nil {
		return 0, execErr(sqlStr, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, execErr(sqlStr, err)
	}

	if h, ok := value.(AfterDeleter); ok {
		if err := h.AfterDelete(); err != nil {
			return affected, err
		}
	}
	return affected, nil
}

// meta resolves the cached model and schema for a record value.
func (db *DB) meta(value any) (*model.Model, *schema.Schema, error) {
	m, err := model.GetModel(value)
	if err != nil {
		return nil, nil, err
	}
	s, err := schema.For(value, db.dialect)
	if err != nil {
		return nil, nil, err
	}
	return m, s, nil
}

func structValue(value any) reflect.Value {
	val := reflect.ValueOf(value)
	for val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	return val
}

// bindAll collects every column value in field declaration order,
// mirroring the placeholder order of the insert statement.
func bindAll(m *model.Model, value any) []any {
	val := structValue(value)
	args := make([]any, len(m.Fields))
	for i, field := range m.Fields {
		args[i] = val.Field(field.Index).Interface()
	}
	return args
}

func scanRow(rows *sql.Rows, m *model.Model, dest any) error {
	columns, err := rows.Columns()
	if err != nil {
		return err
	}

	values := make([]any, len(columns))
	for i, col := range columns {
		if field, ok := m.FieldMap[col]; ok {
			values[i] = reflect.New(field.Type).Interface()
		} else {
			var ignore any
			values[i] = &ignore
		}
	}

	if err := rows.Scan(values...); err != nil {
		return err
	}

	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Struct {
		return ErrInvalidDest
	}
	destValue = destValue.Elem()
	for i, col := range columns {
		if field, ok := m.FieldMap[col]; ok {
			destValue.Field(field.Index).Set(reflect.ValueOf(values[i]).Elem())
		}
	}
	return nil
}

func scanRows(rows *sql.Rows, m *model.Model, sliceValue reflect.Value, itemType reflect.Type) error {
	structType := itemType
	isPtr := itemType.Kind() == reflect.Ptr
	if isPtr {
		structType = itemType.Elem()
	}

	for rows.Next() {
		item := reflect.New(structType)
		if err := scanRow(rows, m, item.Interface()); err != nil {
			return err
		}

		if h, ok := item.Interface().(AfterFinder); ok {
			if err := h.AfterFind(); err != nil {
				return err
			}
		}

		if isPtr {
			sliceValue.Set(reflect.Append(sliceValue, item))
		} else {
			sliceValue.Set(reflect.Append(sliceValue, item.Elem()))
		}
	}
	return rows.Err()
}
