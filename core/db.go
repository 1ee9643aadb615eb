package core

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"time"

	"github.com/shrek82/gocrud/dialect"
	"github.com/shrek82/gocrud/logger"
	"github.com/shrek82/gocrud/model"
	"github.com/shrek82/gocrud/pool"
	"github.com/shrek82/gocrud/schema"
)

// Options defines the configuration for the DB connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DB is the main entry point. It holds the connection pool, the dialect
// for the driver it was opened with, and the SQL logger. All state is
// set at Open time; a DB is safe for concurrent use.
type DB struct {
	pool    pool.Pool
	dialect dialect.Dialect
	logger  logger.Logger
}

// Open initializes a new DB instance with the given driver and DSN.
// The driver name selects both the database/sql driver and the
// registered dialect.
func Open(driver, dsn string, opts *Options) (*DB, error) {
	d, ok := dialect.Get(driver)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, driver)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	p := pool.NewStdPool(sqlDB)

	if opts != nil {
		if opts.MaxOpenConns > 0 {
			p.SetMaxOpenConns(opts.MaxOpenConns)
		}
		if opts.MaxIdleConns > 0 {
			p.SetMaxIdleConns(opts.MaxIdleConns)
		}
		if opts.ConnMaxLifetime > 0 {
			p.SetConnMaxLifetime(opts.ConnMaxLifetime)
		}
	}

	if err := p.PingContext(context.Background()); err != nil {
		return nil, err
	}

	return &DB{
		pool:    p,
		dialect: d,
		logger:  logger.NewStdLogger(),
	}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.pool.Close()
}

// SetLogger sets a custom logger for the DB.
func (db *DB) SetLogger(l logger.Logger) {
	db.logger = l
}

// Dialect returns the dialect the DB was opened with.
func (db *DB) Dialect() dialect.Dialect {
	return db.dialect
}

// Schema returns the cached column metadata and generated statement text
// for value's record type, for callers composing queries beyond the
// generated CRUD set.
func (db *DB) Schema(value any) (*schema.Schema, error) {
	return schema.For(value, db.dialect)
}

// logSQL logs the SQL execution if a logger is set.
func (db *DB) logSQL(sql string, duration time.Duration, args ...any) {
	if db.logger != nil {
		db.logger.SQL(sql, duration, args...)
	}
}

// Exec executes a raw SQL statement without returning any rows.
func (db *DB) Exec(query string, args ...any) (sql.Result, error) {
	return db.ExecContext(context.Background(), query, args...)
}

// ExecContext is Exec with an explicit context.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := db.pool.ExecContext(ctx, query, args...)
	db.logSQL(query, time.Since(start), args...)
	return res, execErr(query, err)
}

// Select executes a raw query and scans the rows into dest, a pointer
// to a slice of records. Combined with Schema.SelectSQL this is the
// extension path for caller-composed WHERE/ORDER BY/LIMIT clauses.
func (db *DB) Select(dest any, query string, args ...any) error {
	return db.SelectContext(context.Background(), dest, query, args...)
}

// SelectContext is Select with an explicit context.
func (db *DB) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return selectRows(ctx, db, db.pool, dest, query, args...)
}

func selectRows(ctx context.Context, db *DB, exec Executor, dest any, query string, args ...any) error {
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

	start := time.Now()
	rows, err := exec.QueryContext(ctx, query, args...)
	db.logSQL(query, time.Since(start), args...)
	if err != nil {
		return execErr(query, err)
	}
	defer rows.Close()

	return scanRows(rows, m, sliceValue, itemType)
}

// Transaction executes a function within a database transaction. The
// transaction is rolled back when fn returns an error or panics, and
// committed otherwise.
func (db *DB) Transaction(fn func(tx *Tx) error) error {
	return db.TransactionContext(context.Background(), fn)
}

// TransactionContext is Transaction with an explicit context.
func (db *DB) TransactionContext(ctx context.Context, fn func(tx *Tx) error) (err error) {
	start := time.Now()
	sqlTx, err := db.pool.BeginTx(ctx, nil)
	db.logSQL("BEGIN", time.Since(start))
	if err != nil {
		return err
	}

	tx := &Tx{
		db:    db,
		sqlTx: sqlTx,
	}

	defer func() {
		if p := recover(); p != nil {
			start := time.Now()
			_ = sqlTx.Rollback()
			db.logSQL("ROLLBACK", time.Since(start))
			panic(p)
		} else if err != nil {
			start := time.Now()
			_ = sqlTx.Rollback()
			db.logSQL("ROLLBACK", time.Since(start))
		} else {
			start := time.Now()
			err = sqlTx.Commit()
			db.logSQL("COMMIT", time.Since(start))
		}
	}()

	err = fn(tx)
	return err
}

// AutoMigrate creates the table for each given record type if it does
// not exist yet. Existing tables are left untouched.
func (db *DB) AutoMigrate(values ...any) error {
	for _, value := range values {
		m, err := model.GetModel(value)
		if err != nil {
			return err
		}

		sqlStr, args := db.dialect.HasTableSQL(m.TableName)
		var count int
		err = db.pool.QueryRowContext(context.Background(), sqlStr, args...).Scan(&count)
		if err != nil {
			return execErr(sqlStr, err)
		}
		if count > 0 {
			continue
		}

		createSQL := db.dialect.CreateTableSQL(m)
		start := time.Now()
		_, err = db.pool.ExecContext(context.Background(), createSQL)
		db.logSQL(createSQL, time.Since(start))
		if err != nil {
			return execErr(createSQL, err)
		}
	}
	return nil
}
