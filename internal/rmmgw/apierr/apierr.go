// Package apierr is the closed error-kind enum shared by every pipeline
// stage (spec.md §7, §9: "replace exceptions for flow control with a
// single error kind enum surfaced as values"). Each component raises
// only the kind it originates; only the HTTP adapter
// (internal/rmmgw/httpapi) translates a kind to a status code.
package apierr

import (
	"errors"
	"fmt"
)

// Kind is the closed taxonomy of failure reasons.
type Kind int

const (
	// InvalidArgument: Validator rejection, projection mixing, bad
	// logicalOp, bad integer, unsafe character. Maps to HTTP 400.
	InvalidArgument Kind = iota
	// ResourceNotFound: single-document lookup miss. Maps to HTTP 404.
	ResourceNotFound
	// ResourceEmpty: collection-level "nothing at all" on a list
	// endpoint. Sub-kind of NotFound. Maps to HTTP 404.
	ResourceEmpty
	// StoreFailure: driver/transport errors not triggered by input.
	// Maps to HTTP 500.
	StoreFailure
	// MalformedStoreQuery: driver errors whose signature matches a
	// known input-triggered failure (null byte, regex compile, bad
	// operator). Maps to HTTP 400.
	MalformedStoreQuery
	// InternalError: catch-all for unanticipated failures. Maps to
	// HTTP 500.
	InternalError
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case ResourceNotFound:
		return "ResourceNotFound"
	case ResourceEmpty:
		return "ResourceEmpty"
	case StoreFailure:
		return "StoreFailure"
	case MalformedStoreQuery:
		return "MalformedStoreQuery"
	case InternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// Error is a kind-tagged error value. It carries the offending
// parameter name, if any, so the HTTP adapter can build a precise
// ErrorInfo.message without re-deriving it.
type Error struct {
	Kind    Kind
	Param   string
	Message string
	Err     error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param %q)", e.Kind, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an *Error for kind with message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an *Error for kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Param attaches the offending parameter name to an InvalidArgument
// (or any) error and returns it for chaining.
func (e *Error) WithParam(name string) *Error {
	e.Param = name
	return e
}

// Wrap builds an *Error for kind, wrapping cause.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// As reports whether err is (or wraps) an *Error and returns it.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
