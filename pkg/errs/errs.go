/*
This pkg defines the small closed error taxonomy used across the engine.
Every failure a pipeline can raise is one of three kinds: a bad
configuration, data too degenerate to compute on, or a metadata join with
zero overlap. Callers branch on the kind (e.g. the api maps kinds to http
status codes), the message carries the detail.

*/
package errs

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindConfig covers unknown measurement kinds, unsupported strategy
	// combinations and out-of-range candidate group counts.
	KindConfig Kind = "config"
	// KindDegenerateData covers inputs on which the requested computation is
	// undefined (too few channels, too few non-empty histogram bins).
	KindDegenerateData Kind = "degenerate_data"
	// KindJoinMismatch covers a metadata join that found zero overlapping
	// channel ids, usually a type mismatch between id representations.
	KindJoinMismatch Kind = "join_mismatch"
)

// Error pairs a Kind with a message. It is the only error type this module's
// packages return for their own failures.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return string(e.Kind) + ": " + e.Msg }

// New builds an Error of the given kind.
func New(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is (or wraps) an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// KindOf returns the kind of err, or "" if err carries no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
