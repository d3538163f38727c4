package core

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by this package wraps exactly one of
// the category sentinels below, so callers can branch with errors.Is.
var (
	// ErrDefinition reports a Kind or payload type that can never be used:
	// an invalid method list, an over-aligned payload, or a copy of a
	// move-only payload.
	ErrDefinition = errors.New("invalid definition")

	// ErrEmpty reports a dispatch through a container that holds nothing.
	ErrEmpty = errors.New("empty container")

	// ErrStructuralMismatch reports a value or container that does not expose
	// every required method with a compatible signature.
	ErrStructuralMismatch = errors.New("structural mismatch")

	// ErrNotFound is the negative result of Target: the container holds a
	// different type than the one asked for.
	ErrNotFound = errors.New("target not found")

	// ErrUnknownMethod reports a call by a name the Kind does not require.
	ErrUnknownMethod = errors.New("unknown method")

	// ErrBadArguments reports arguments that do not fit the required signature.
	ErrBadArguments = errors.New("bad arguments")
)

// Definition errors.
var (
	ErrNoMethods        = fmt.Errorf("%w: kind requires no methods", ErrDefinition)
	ErrDuplicateMethod  = fmt.Errorf("%w: duplicate method name", ErrDefinition)
	ErrTooManyMethods   = fmt.Errorf("%w: too many methods", ErrDefinition)
	ErrNotFunc          = fmt.Errorf("%w: signature is not a func type", ErrDefinition)
	ErrUnexportedMethod = fmt.Errorf("%w: method name is not exported", ErrDefinition)
	ErrOveraligned      = fmt.Errorf("%w: payload alignment exceeds allocator guarantee", ErrDefinition)
	ErrNotCopyable      = fmt.Errorf("%w: payload is move-only", ErrDefinition)
)

// ErrNilPayload reports a nil interface or nil pointer handed to Wrap.
var ErrNilPayload = fmt.Errorf("%w: nil payload", ErrStructuralMismatch)

// ErrNilContainer reports a payload moved into a nil *Container, such as the
// one inside a zero generated box. A nil container is empty and stays empty.
var ErrNilContainer = fmt.Errorf("%w: nil container cannot receive a payload", ErrEmpty)
