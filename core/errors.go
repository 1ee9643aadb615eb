package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownDialect is returned by Open when no dialect is registered
	// for the requested driver name.
	ErrUnknownDialect = errors.New("unknown dialect")
	// ErrInvalidDest is returned when a scan destination is not the shape
	// the operation requires (pointer to struct, pointer to slice).
	ErrInvalidDest = errors.New("invalid destination")
)

// ExecError wraps a failure reported by the executor: connectivity loss,
// constraint violation, bind-type mismatch. The driver error is kept
// unchanged for errors.Is / errors.As; nothing is retried.
type ExecError struct {
	SQL string
	Err error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("gocrud: exec %q: %v", e.SQL, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

func execErr(sql string, err error) error {
	if err == nil {
		return nil
	}
	return &ExecError{SQL: sql, Err: err}
}
