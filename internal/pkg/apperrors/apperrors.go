// Package apperrors tags errors with a coarse kind so callers can make
// retry and HTTP-mapping decisions without string matching.
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindTransient
	KindValidation
	KindNotFound
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

type Error struct {
	kind Kind
	err  error
}

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, err: errors.New(msg)}
}

func Wrap(kind Kind, err error) *Error {
	return &Error{kind: kind, err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.kind, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Kind() Kind {
	return e.kind
}

// KindOf returns the kind of the nearest tagged error in err's chain,
// or KindUnknown when nothing in the chain is tagged.
func KindOf(err error) Kind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.kind
	}

	return KindUnknown
}

// IsTransient reports whether err looks like a transient infrastructure
// failure worth retrying. Explicit tags win; otherwise connection-class
// postgres errors and network timeouts qualify. Context cancellation
// never does.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.kind == KindTransient
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgerrcode.IsConnectionException(pgErr.Code) ||
			pgerrcode.IsOperatorIntervention(pgErr.Code)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}
