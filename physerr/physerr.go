// Package physerr classifies the engine's error conditions by kind rather
// than by Go type, so callers can branch on what went wrong (a malformed
// definition vs. a re-entrant mutation vs. solver divergence) without type
// switching on concrete error values.
package physerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies the category of a simulation error.
type Kind int

const (
	// InvalidArgument means a definition passed to a factory function was
	// nonsensical (e.g. a joint referencing the same body twice). The call
	// fails synchronously and mutates no state.
	InvalidArgument Kind = iota

	// InvalidState means a mutation (CreateBody, DestroyJoint, ...) was
	// attempted while the world is locked inside Step. The call is a no-op.
	InvalidState

	// NumericDegeneracy means the solver hit a locally-recoverable
	// degenerate configuration (zero-length distance joint, singular
	// pulley, divergent iteration). The engine skips the offending term
	// and continues.
	NumericDegeneracy

	// ResourceExhaustion means a hard pool or island-size limit was hit.
	// The step aborts cleanly at the last consistent sub-step boundary.
	ResourceExhaustion
)

func (k Kind) String() string {

	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case InvalidState:
		return "InvalidState"
	case NumericDegeneracy:
		return "NumericDegeneracy"
	case ResourceExhaustion:
		return "ResourceExhaustion"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type produced by this package. It carries a
// Kind so callers can use Is/As and a wrapped cause for diagnostics.
type Error struct {
	Kind Kind
	Op   string // the operation that failed, e.g. "CreateJoint"
	err  error
}

func (e *Error) Error() string {

	if e.err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {

	return e.err
}

// New creates a new Error of the given kind for operation op, wrapping msg
// with a stack trace via github.com/pkg/errors.
func New(kind Kind, op string, msg string) *Error {

	return &Error{Kind: kind, Op: op, err: errors.New(msg)}
}

// Newf is like New but with fmt.Sprintf-style formatting.
func Newf(kind Kind, op string, format string, args ...interface{}) *Error {

	return &Error{Kind: kind, Op: op, err: errors.Errorf(format, args...)}
}

// Wrap annotates err with a kind and operation, preserving its cause chain.
func Wrap(kind Kind, op string, err error) *Error {

	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, err: errors.WithStack(err)}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {

	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}
