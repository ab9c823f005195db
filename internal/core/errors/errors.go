// Package errors classifies jerseykit failures.
//
// Overview:
//   - Responsibility: Attach a failure class, the failed operation and structured details to errors
//   - Key Types: Code (failure class), E (classified error), Builder
//   - Concurrency Model: Values are immutable once built
//   - Error Semantics: E unwraps to its cause, so errors.Is and errors.As see through it
//   - Performance Notes: One allocation per error
//
// Usage:
//
//	err := errors.New(errors.CodePermissionDenied, "root privileges required")
//	err = errors.Wrap(errors.CodeInternal, "write pom.xml", cause)
//	if errors.IsCode(err, errors.CodeInternal) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a failure class.
type Code string

const (
	// CodeInvalidArgument marks project or package names that cannot be used.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeNotFound marks a tool that is missing and must be installed by hand.
	CodeNotFound Code = "NOT_FOUND"
	// CodePermissionDenied marks a process without elevated privileges.
	CodePermissionDenied Code = "PERMISSION_DENIED"
	// CodeExternalCommand marks an external program that exited non-zero.
	CodeExternalCommand Code = "EXTERNAL_COMMAND"
	// CodeInternal covers file system, network and configuration failures.
	CodeInternal Code = "INTERNAL"
)

// E is a classified error.
type E struct {
	Code    Code
	Op      string // failed operation, e.g. a command line or "write pom.xml"
	Err     error  // cause, may be nil
	Msg     string // human-readable text; Op is shown when empty
	Details []any  // alternating keys and values, e.g. "exit_code", 1
}

// Error renders "CODE: text[: cause]".
func (e *E) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	if e.Msg != "" {
		b.WriteString(e.Msg)
	} else {
		b.WriteString(e.Op)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the cause.
func (e *E) Unwrap() error { return e.Err }

// New returns an error of class code.
func New(code Code, msg string) error {
	return Build(code).WithMsg(msg).Err()
}

// Newf is New with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return Build(code).WithMsgf(format, args...).Err()
}

// Wrap classifies err as a failure of op.
func Wrap(code Code, op string, err error) error {
	return Build(code).WithOp(op).WithErr(err).Err()
}

// Wrapf is Wrap with a message replacing op in the rendered text.
func Wrapf(code Code, op string, err error, format string, args ...any) error {
	return Build(code).WithOp(op).WithErr(err).WithMsgf(format, args...).Err()
}

// CodeOf returns the class of the outermost E in err's chain, or "" if there is none.
func CodeOf(err error) Code {
	if e, ok := asE(err); ok {
		return e.Code
	}
	return ""
}

// IsCode reports whether err is classified as code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// DetailsOf returns the details of the outermost E in err's chain.
func DetailsOf(err error) []any {
	if e, ok := asE(err); ok {
		return e.Details
	}
	return nil
}

func asE(err error) (*E, bool) {
	var e *E
	if err == nil || !errors.As(err, &e) {
		return nil, false
	}
	return e, true
}

// Builder assembles an E step by step.
type Builder struct {
	e E
}

// Build starts an error of class code.
func Build(code Code) *Builder {
	return &Builder{e: E{Code: code}}
}

// WithOp sets the failed operation.
func (b *Builder) WithOp(op string) *Builder {
	b.e.Op = op
	return b
}

// WithErr sets the cause.
func (b *Builder) WithErr(err error) *Builder {
	b.e.Err = err
	return b
}

// WithMsg sets the message.
func (b *Builder) WithMsg(msg string) *Builder {
	b.e.Msg = msg
	return b
}

// WithMsgf sets a formatted message.
func (b *Builder) WithMsgf(format string, args ...any) *Builder {
	return b.WithMsg(fmt.Sprintf(format, args...))
}

// WithDetails appends key-value details.
func (b *Builder) WithDetails(kv ...any) *Builder {
	b.e.Details = append(b.e.Details, kv...)
	return b
}

// Err returns the built error. The Builder may be reused afterwards.
func (b *Builder) Err() error {
	e := b.e
	e.Details = append([]any(nil), b.e.Details...)
	return &e
}
