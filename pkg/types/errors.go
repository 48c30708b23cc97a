package types

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindSchema       ErrKind = iota // invalid schema declaration (duplicate field, bad align target)
	ErrKindTypeMismatch                // raw value shape disagrees with the declared type
	ErrKindRange                       // integer outside the range of its declared width
	ErrKindMissingField                // no raw entry and no producer for a field
	ErrKindCircular                    // a field's resolution re-entered itself
	ErrKindProducer                    // a producer returned its own failure
	ErrKindIO                          // file read or other external collaborator failure
	ErrKindNotFound                    // accessor named a field the schema does not declare
)

var kindNames = map[ErrKind]string{
	ErrKindSchema:       "schema",
	ErrKindTypeMismatch: "type_mismatch",
	ErrKindRange:        "range",
	ErrKindMissingField: "missing_field",
	ErrKindCircular:     "circular_dependency",
	ErrKindProducer:     "producer",
	ErrKindIO:           "io",
	ErrKindNotFound:     "not_found",
}

func (k ErrKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrKind(%d)", int(k))
}

// Error is the single failure type produced while resolving or building.
//
// Msg (or the message of Err when Msg is empty) is never modified once the
// error exists; only trace frames are added as the failure unwinds through
// container and array boundaries.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause

	// Cycle lists the field names on the active resolution stack that form
	// a circular dependency. Only set for ErrKindCircular.
	Cycle []string

	// frames are stored innermost-first, in the order they were added.
	frames []string
	// owner is the container that added the most recent frame, if any.
	owner any
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Msg == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	default:
		return e.Msg
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels by kind, so errors.Is(err, types.ErrCircular) holds for
// any circular-dependency failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// AddFrame records one boundary crossed while the failure unwinds.
func (e *Error) AddFrame(frame string) {
	e.frames = append(e.frames, frame)
	e.owner = nil
}

// AddFrameFor records frame on behalf of owner unless owner added the most
// recent frame. A failure unwinding through several fields of the same
// container keeps only the frame of the field where it started.
func (e *Error) AddFrameFor(owner any, frame string) {
	if owner != nil && e.owner == owner {
		return
	}
	e.frames = append(e.frames, frame)
	e.owner = owner
}

// Trace returns the recorded frames outermost (root) first.
func (e *Error) Trace() []string {
	out := slices.Clone(e.frames)
	slices.Reverse(out)
	return out
}

// Report renders the message followed by one indented line per trace frame.
func (e *Error) Report() string {
	var b strings.Builder
	b.WriteString(e.Error())
	for _, f := range e.Trace() {
		b.WriteString("\n  ")
		b.WriteString(f)
	}
	return b.String()
}

// Sentinels for errors.Is. They carry no frames and must not be returned
// directly; use New or Errorf.
var (
	// ErrSchema matches invalid schema declarations.
	ErrSchema = &Error{Kind: ErrKindSchema, Msg: "invalid schema"}
	// ErrTypeMismatch matches raw values of the wrong shape.
	ErrTypeMismatch = &Error{Kind: ErrKindTypeMismatch, Msg: "type mismatch"}
	// ErrRange matches integers outside their declared width.
	ErrRange = &Error{Kind: ErrKindRange, Msg: "value out of range"}
	// ErrMissingField matches fields with neither input nor producer.
	ErrMissingField = &Error{Kind: ErrKindMissingField, Msg: "missing field"}
	// ErrCircular matches circular dependencies.
	ErrCircular = &Error{Kind: ErrKindCircular, Msg: "circular dependency"}
	// ErrProducer matches failures raised by producers.
	ErrProducer = &Error{Kind: ErrKindProducer, Msg: "producer failed"}
	// ErrIO matches failures of external collaborators such as file reads.
	ErrIO = &Error{Kind: ErrKindIO, Msg: "i/o failure"}
	// ErrNotFound matches accessors naming an undeclared field.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "field not found"}
)

// New returns an Error of the given kind with a fixed message.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Errorf returns an Error of the given kind with a formatted message.
func Errorf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error of the given kind around cause. An empty msg keeps the
// cause's message as the error text.
func Wrap(kind ErrKind, cause error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// From converts any error into an *Error so a trace frame can be attached.
//
// An *Error is returned unchanged. An error that wraps an *Error (for
// example fmt.Errorf("...: %w", inner)) keeps the inner kind, cycle and frames
// but uses the outer message. Anything else becomes ErrKindProducer with its
// message preserved.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	var inner *Error
	if errors.As(err, &inner) {
		return &Error{
			Kind:   inner.Kind,
			Err:    err,
			Cycle:  slices.Clone(inner.Cycle),
			frames: slices.Clone(inner.frames),
			owner:  inner.owner,
		}
	}
	return &Error{Kind: ErrKindProducer, Err: err}
}

// KindOf returns the kind of err, and false when err carries no *Error.
func KindOf(err error) (ErrKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
