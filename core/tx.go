package core

import (
	"context"
	"database/sql"
	"fmt"
)

// Tx represents a database transaction. It implements Executor, so
// every CRUD operation is available inside the transaction with the
// same semantics as on DB.
type Tx struct {
	db    *DB
	sqlTx *sql.Tx
}

// Create inserts value as a new row within the transaction.
func (tx *Tx) Create(value any) error {
	return tx.CreateContext(context.Background(), value)
}

// CreateContext is Create with an explicit context.
func (tx *Tx) CreateContext(ctx context.Context, value any) error {
	return create(ctx, tx.db, tx, value)
}

// ByID fetches one row by identifier within the transaction.
func (tx *Tx) ByID(dest any, id any) (bool, error) {
	return tx.ByIDContext(context.Background(), dest, id)
}

// ByIDContext is ByID with an explicit context.
func (tx *Tx) ByIDContext(ctx context.Context, dest any, id any) (bool, error) {
	return byID(ctx, tx.db, tx, dest, id)
}

// All fetches every row of the record type's table within the
// transaction.
func (tx *Tx) All(dest any) error {
	return tx.AllContext(context.Background(), dest)
}

// AllContext is All with an explicit context.
func (tx *Tx) AllContext(ctx context.Context, dest any) error {
	return all(ctx, tx.db, tx, dest)
}

// Update rewrites the row matching value's identifier within the
// transaction and returns the affected row count.
func (tx *Tx) Update(value any) (int64, error) {
	return tx.UpdateContext(context.Background(), value)
}

// UpdateContext is Update with an explicit context.
func (tx *Tx) UpdateContext(ctx context.Context, value any) (int64, error) {
	return update(ctx, tx.db, tx, value)
}

// Delete removes the row matching value's identifier within the
// transaction and returns the affected row count.
func (tx *Tx) Delete(value any) (int64, error) {
	return tx.DeleteContext(context.Background(), value)
}

// DeleteContext is Delete with an explicit context.
func (tx *Tx) DeleteContext(ctx context.Context, value any) (int64, error) {
	return deleteOp(ctx, tx.db, tx, value)
}

// Select executes a raw query within the transaction and scans the rows
// into dest.
func (tx *Tx) Select(dest any, query string, args ...any) error {
	return selectRows(context.Background(), tx.db, tx, dest, query, args...)
}

// Commit commits the transaction.
func (tx *Tx) Commit() error {
	if err := tx.sqlTx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// Rollback rolls back the transaction.
func (tx *Tx) Rollback() error {
	if err := tx.sqlTx.Rollback(); err != nil {
		return fmt.Errorf("transaction rollback failed: %w", err)
	}
	return nil
}

// QueryContext executes a query that returns rows, typically a SELECT.
func (tx *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return tx.sqlTx.QueryContext(ctx, query, args...)
}

// QueryRowContext executes a query that is expected to return at most one row.
func (tx *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return tx.sqlTx.QueryRowContext(ctx, query, args...)
}

// ExecContext executes a query that doesn't return rows, such as an INSERT or UPDATE.
func (tx *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return tx.sqlTx.ExecContext(ctx, query, args...)
}
