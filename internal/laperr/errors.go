// Package laperr defines the failure taxonomy shared by the golaps pipeline stages.
package laperr

import (
	"errors"
	"fmt"
	"strings"
)

// Failure kinds. Every error produced by a pipeline stage wraps exactly one of these.
var (
	// ErrFileNotFound is returned when the input path does not exist or cannot be opened.
	ErrFileNotFound = errors.New("file not found")
	// ErrSchema is returned when the input columns are missing, extra, or malformed.
	ErrSchema = errors.New("schema error")
	// ErrValidation is returned for bad values and for dataset-wide constraint violations.
	ErrValidation = errors.New("validation error")
	// ErrEmptyInput is returned when the input has no data rows.
	ErrEmptyInput = errors.New("empty input")
	// ErrWrite is returned when an output artifact cannot be written or verified.
	ErrWrite = errors.New("write error")
)

// Exit codes reported by the CLI for each failure kind.
const (
	ExitOK           = 0
	ExitGeneric      = 1
	ExitFileNotFound = 2
	ExitSchema       = 3
	ExitValidation   = 4
	ExitEmptyInput   = 5
	ExitWrite        = 6
)

// Error is a pipeline failure with the context needed to locate the offending input.
type Error struct {
	Kind   error
	Path   string
	Line   int // 1-based line in the input file, 0 when not row-specific
	Value  string
	Driver string
	Msg    string
	Cause  error
}

// Newf creates an Error of the given kind with a formatted message.
func Newf(kind error, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Path != "" {
		fmt.Fprintf(&b, ": %s", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d", e.Line)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " (value %q)", e.Value)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// AtLine records the input line the error refers to.
func (e *Error) AtLine(line int) *Error {
	e.Line = line
	return e
}

// WithPath records the file the error refers to.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// WithValue records the offending raw value.
func (e *Error) WithValue(value string) *Error {
	e.Value = value
	return e
}

// WithDriver records the driver the error refers to.
func (e *Error) WithDriver(driver string) *Error {
	e.Driver = driver
	return e
}

// WithCause attaches the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// KindOf returns the failure kind sentinel carried by err, or nil if err is not a
// pipeline failure.
func KindOf(err error) error {
	for _, kind := range []error{ErrFileNotFound, ErrSchema, ErrValidation, ErrEmptyInput, ErrWrite} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch KindOf(err) {
	case ErrFileNotFound:
		return ExitFileNotFound
	case ErrSchema:
		return ExitSchema
	case ErrValidation:
		return ExitValidation
	case ErrEmptyInput:
		return ExitEmptyInput
	case ErrWrite:
		return ExitWrite
	default:
		return ExitGeneric
	}
}
