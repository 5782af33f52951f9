package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for upstream API operations.
var (
	ErrNotFound    = errors.New("catalog: not found")
	ErrRateLimited = errors.New("catalog: rate limited by upstream")
	ErrBadRequest  = errors.New("catalog: bad request")
	ErrServer      = errors.New("catalog: upstream server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op  string // Operation: "bookItems", "categories", "departments", "orders"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op string, err error) error {
	return &Error{Op: op, Err: err}
}
