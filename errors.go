package emitkit

import (
	"errors"
	"strconv"
)

// Sentinel errors for the emitter.
var (
	// ErrNotBound is returned when an operation runs on an emitter that
	// has no registry. A zero-value Emitter is not bound; obtain bound
	// instances from New or Adopt.
	ErrNotBound = errors.New("emitter is not bound to a registry")

	// ErrNilCallback is returned when a nil callback is provided where
	// one is required.
	ErrNilCallback = errors.New("callback cannot be nil")

	// ErrReducedMode is returned by Configure on an emitter built with
	// WithReducedMode, where fire-once containers are disabled.
	ErrReducedMode = errors.New("fire-once is disabled in reduced mode")

	// ErrInvalidArgument is matched by errors.Is for any
	// InvalidArgumentError.
	ErrInvalidArgument = errors.New("invalid argument")
)

// InvalidArgumentError reports a malformed dispatch name or argument.
type InvalidArgumentError struct {
	// Op is the operation that rejected the argument.
	Op string

	// Name is the offending dispatch name, if any.
	Name string

	// Reason describes the violation.
	Reason string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	msg := e.Op + ": " + e.Reason
	if e.Name != "" {
		msg += " (name " + strconv.Quote(e.Name) + ")"
	}
	return msg
}

// Is allows errors.Is to match InvalidArgumentError with ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// errEmptyName builds the InvalidArgumentError for an empty or
// expression-only dispatch name.
func errEmptyName(op, name string) error {
	if name == "" {
		return &InvalidArgumentError{Op: op, Reason: "dispatch name must be a non-empty string"}
	}
	return &InvalidArgumentError{Op: op, Name: name, Reason: "dispatch name resolves to an empty container"}
}
