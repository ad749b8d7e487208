package errors

import (
	"fmt"
	"strings"
)

// Kind classifies an Error for handling and status-code projection.
type Kind int

const (
	// KindValidation marks client data that violates a structural or
	// business rule. Recoverable; carries a Path.
	KindValidation Kind = iota
	// KindNotImplemented marks a well-formed request the consumer declines
	// to support.
	KindNotImplemented
	// KindCustom marks an opaque internal failure.
	KindCustom
	// KindCodec marks a failure converting to or from a wire value format.
	KindCodec
	// KindMultiple aggregates two or more errors from one Accumulator.
	KindMultiple
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotImplemented:
		return "not_implemented"
	case KindCustom:
		return "custom"
	case KindCodec:
		return "codec"
	case KindMultiple:
		return "multiple"
	default:
		return "unknown"
	}
}

// Error is the structured error type for OpenC2 validation and dispatch.
// Validation and NotImplemented errors carry a Path locating the offending
// field; Multiple errors wrap the individual errors gathered by an
// Accumulator.
type Error struct {
	kind    Kind
	message string
	path    Path
	errs    []*Error
}

// Validation returns a new validation error with an empty path.
func Validation(message string) *Error {
	return &Error{kind: KindValidation, message: message}
}

// Validationf returns a new validation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// MissingRequiredField returns a validation error for an absent required
// field, with the field name already on the path.
func MissingRequiredField(field string) *Error {
	return &Error{
		kind:    KindValidation,
		message: fmt.Sprintf("missing required field '%s'", field),
		path:    NewPath(Key(field)),
	}
}

// NotImplemented returns a new not-implemented error.
func NotImplemented(message string) *Error {
	return &Error{kind: KindNotImplemented, message: message}
}

// NotImplementedf returns a new not-implemented error with a formatted message.
func NotImplementedf(format string, args ...any) *Error {
	return NotImplemented(fmt.Sprintf(format, args...))
}

// Custom returns a new opaque internal error.
func Custom(message string) *Error {
	return &Error{kind: KindCustom, message: message}
}

// Codec returns a new codec error.
func Codec(message string) *Error {
	return &Error{kind: KindCodec, message: message}
}

// CodecErr wraps an underlying codec failure, preserving an existing *Error.
func CodecErr(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return Codec(err.Error())
}

// From converts any error into an *Error, preserving structured errors and
// wrapping everything else as Custom. Returns nil for nil.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return Custom(err.Error())
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Message returns the error's message without path or kind decoration.
func (e *Error) Message() string {
	return e.message
}

// Path returns the error's field path. Empty for Custom, Codec, and Multiple.
func (e *Error) Path() Path {
	return e.path
}

// At prepends a path segment, qualifying the error's location with a field
// the caller owns. On a Multiple error the segment is prepended to every
// contained error. Custom and Codec errors are returned unchanged. At
// mutates the receiver and returns it for chaining.
func (e *Error) At(segment Segment) *Error {
	switch e.kind {
	case KindValidation, KindNotImplemented:
		e.path.PushFront(segment)
	case KindMultiple:
		for _, inner := range e.errs {
			inner.At(segment)
		}
	}
	return e
}

// Errors flattens the error into its members: a Multiple error yields its
// contained errors, anything else yields itself.
func (e *Error) Errors() []*Error {
	if e.kind == KindMultiple {
		out := make([]*Error, len(e.errs))
		copy(out, e.errs)
		return out
	}
	return []*Error{e}
}

// StatusCode projects the error onto an OpenC2 response status code:
// Validation maps to 400, NotImplemented to 501, everything else to 500.
// A Multiple error projects using only its first member; callers that need
// the full set must inspect Errors instead.
func (e *Error) StatusCode() int {
	switch e.kind {
	case KindValidation:
		return 400
	case KindNotImplemented:
		return 501
	case KindMultiple:
		if len(e.errs) > 0 {
			return e.errs[0].StatusCode()
		}
		return 500
	default:
		return 500
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.kind {
	case KindValidation:
		return "validation error: " + e.located()
	case KindNotImplemented:
		return "not implemented: " + e.located()
	case KindCodec:
		return "codec error: " + e.message
	case KindMultiple:
		parts := make([]string, len(e.errs))
		for i, inner := range e.errs {
			parts[i] = inner.Error()
		}
		return fmt.Sprintf("multiple errors: [%s]", strings.Join(parts, "; "))
	default:
		return e.message
	}
}

func (e *Error) located() string {
	if e.path.IsEmpty() {
		return e.message
	}
	return e.path.String() + ": " + e.message
}
