package types

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
// A nil error is the success status; every non-nil error returned by the
// engine carries exactly one kind.
type ErrKind int

const (
	ErrKindFailure         ErrKind = iota + 1 // generic failure
	ErrKindUnimplemented                      // operation exists but has no implementation
	ErrKindAllocation                         // backing storage could not be obtained
	ErrKindInvalidArgument                    // bad configuration, wrong store kind, empty key
	ErrKindOutOfBounds                        // index outside the addressable range
	ErrKindDamagedList                        // internal consistency violated
	ErrKindEmptyList                          // operation needs at least one entry
	ErrKindNotFound                           // lookup or seek miss
	ErrKindUnsupported                        // operation not meaningful for the store kind
)

var kindNames = [...]string{
	ErrKindFailure:         "failure",
	ErrKindUnimplemented:   "unimplemented",
	ErrKindAllocation:      "allocation failure",
	ErrKindInvalidArgument: "invalid argument",
	ErrKindOutOfBounds:     "out of bounds",
	ErrKindDamagedList:     "damaged list",
	ErrKindEmptyList:       "empty list",
	ErrKindNotFound:        "entry not found",
	ErrKindUnsupported:     "unsupported",
}

func (k ErrKind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrKind(%d)", int(k))
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels returned (wrapped with operation context) by the engine.
var (
	// ErrFailure is the generic failure status.
	ErrFailure = &Error{Kind: ErrKindFailure, Msg: "failure"}
	// ErrUnimplemented indicates an operation without an implementation.
	ErrUnimplemented = &Error{Kind: ErrKindUnimplemented, Msg: "unimplemented"}
	// ErrAllocation indicates the store could not grow.
	ErrAllocation = &Error{Kind: ErrKindAllocation, Msg: "allocation failure"}
	// ErrInvalidArgument indicates a bad argument or configuration.
	ErrInvalidArgument = &Error{Kind: ErrKindInvalidArgument, Msg: "invalid argument"}
	// ErrWrongKind indicates an operation reserved to another store kind.
	ErrWrongKind = &Error{Kind: ErrKindInvalidArgument, Msg: "operation requires a different store kind"}
	// ErrEmptyKey indicates a zero-length associative key.
	ErrEmptyKey = &Error{Kind: ErrKindInvalidArgument, Msg: "key must not be empty"}
	// ErrDuplicateKey indicates an associative insert with a key already present.
	ErrDuplicateKey = &Error{Kind: ErrKindInvalidArgument, Msg: "duplicate key"}
	// ErrForeignCursor indicates a cursor used with a handle that did not start it.
	ErrForeignCursor = &Error{Kind: ErrKindInvalidArgument, Msg: "cursor belongs to another list"}
	// ErrAlreadyInitialized indicates Init on an engine that is already initialized.
	ErrAlreadyInitialized = &Error{Kind: ErrKindInvalidArgument, Msg: "engine already initialized"}
	// ErrFreed indicates use of a handle after Free.
	ErrFreed = &Error{Kind: ErrKindInvalidArgument, Msg: "list already freed"}
	// ErrOutOfBounds indicates an index outside the addressable range.
	ErrOutOfBounds = &Error{Kind: ErrKindOutOfBounds, Msg: "index out of bounds"}
	// ErrDamagedList indicates internal state no longer satisfies its invariants.
	ErrDamagedList = &Error{Kind: ErrKindDamagedList, Msg: "damaged list"}
	// ErrEmptyList indicates an operation on a list with no entries.
	ErrEmptyList = &Error{Kind: ErrKindEmptyList, Msg: "list is empty"}
	// ErrEntryNotFound indicates a lookup, hole or exhausted cursor.
	ErrEntryNotFound = &Error{Kind: ErrKindNotFound, Msg: "entry not found"}
	// ErrUnsupported indicates an operation that makes no sense for the store kind.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported for this store kind"}
)

// KindOf returns the kind carried by err, or 0 for nil.
// Errors that did not originate from the engine classify as ErrKindFailure.
func KindOf(err error) ErrKind {
	if err == nil {
		return 0
	}
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return ErrKindFailure
}

// IsKind reports whether err carries kind k.
func IsKind(err error, k ErrKind) bool {
	return err != nil && KindOf(err) == k
}

// StatusString renders the status of an operation result: "success" for nil,
// otherwise the name of the error kind.
func StatusString(err error) string {
	if err == nil {
		return "success"
	}
	return KindOf(err).String()
}

// -----------------------------------------------------------------------------
// Lookup outcome
// -----------------------------------------------------------------------------

// Lookup is the outcome reported by find predicates and existence checks.
type Lookup uint8

const (
	NotFound Lookup = iota
	Found
)

func (l Lookup) String() string {
	if l == Found {
		return "found"
	}
	return "not found"
}
