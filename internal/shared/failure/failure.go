// Package failure defines the typed errors surfaced by the request pipeline.
//
// Every error carries a Kind and the operation that produced it. The
// underlying cause is kept in the chain so callers can still reach it with
// errors.Is and errors.As.
//
// Kinds:
//   - Format: URL or parameter text cannot be encoded or is malformed
//   - Request: connection setup, send or receive failed
//   - OCR: the OCR token exchange or recognition call failed
//   - Script: script loading or function invocation failed
//
// Example Usage:
//
//	resp, err := sess.Get(ctx, target)
//	if failure.Is(err, failure.Request) {
//	    log.Printf("request failed: %v", errors.Unwrap(err))
//	}
package failure

import (
	"errors"
	"fmt"
)

// Kind classifies an error
type Kind int

const (
	Unknown Kind = iota
	Format
	Request
	OCR
	Script
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case Format:
		return "format"
	case Request:
		return "request"
	case OCR:
		return "ocr"
	case Script:
		return "script"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching by kind
var (
	ErrFormat  = &Error{Kind: Format}
	ErrRequest = &Error{Kind: Request}
	ErrOCR     = &Error{Kind: OCR}
	ErrScript  = &Error{Kind: Script}
)

// Error is a classified error with an optional chained cause
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Kind.String() + " error"
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// New wraps err with a kind and operation
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf creates an error without a cause
func Newf(kind Kind, op, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrapf wraps err with a kind, operation and message
func Wrapf(kind Kind, op string, err error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Is reports whether any error in err's chain has the given kind
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first classified error in the chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
