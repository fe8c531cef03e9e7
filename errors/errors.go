package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates which component produced the error
type Phase string

const (
	PhaseShape  Phase = "shape"  // shape casting
	PhaseBits   Phase = "bits"   // bit-vector operations
	PhaseField  Phase = "field"  // field construction
	PhaseLayout Phase = "layout" // layout construction and lookup
	PhaseView   Phase = "view"   // view construction and access
	PhaseSchema Phase = "schema" // aggregate schema definition
	PhaseWIT    Phase = "wit"    // WIT type conversion
	PhaseMemory Phase = "memory" // linear memory load/store
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument"
	KindOutOfRange      Kind = "out_of_range"
	KindNotFound        Kind = "not_found"
	KindSizeMismatch    Kind = "size_mismatch"
	KindUnsupported     Kind = "unsupported"
)

// Sentinels for errors.Is checks that only care about the kind.
var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrOutOfRange      = &Error{Kind: KindOutOfRange}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrSizeMismatch    = &Error{Kind: KindSizeMismatch}
	ErrUnsupported     = &Error{Kind: KindUnsupported}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target without a phase
// matches on kind alone. A size mismatch is also an invalid argument.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && e.Phase != t.Phase {
		return false
	}
	return e.Kind == t.Kind || (e.Kind == KindSizeMismatch && t.Kind == KindInvalidArgument)
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidArgument creates an invalid argument error
func InvalidArgument(phase Phase, value any, format string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Detail: fmt.Sprintf(format, args...),
		Value:  value,
	}
}

// OutOfRange creates an out of range error
func OutOfRange(phase Phase, value any, format string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		Detail: fmt.Sprintf(format, args...),
		Value:  value,
	}
}

// NotFound creates a not-found error for a key
func NotFound(phase Phase, what string, key any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %s not found", what, FormatKey(key)),
		Value:  key,
	}
}

// SizeMismatch creates a width mismatch error
func SizeMismatch(phase Phase, got, want int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSizeMismatch,
		Detail: fmt.Sprintf("width mismatch: target is %d bit(s) wide, layout is %d bit(s) wide", got, want),
		Value:  got,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// FormatKey renders a layout key the way diagnostics print it: strings
// quoted, integers bare.
func FormatKey(key any) string {
	switch k := key.(type) {
	case string:
		return fmt.Sprintf("%q", k)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%v", k)
	}
}
