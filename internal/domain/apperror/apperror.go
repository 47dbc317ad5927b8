// Package apperror defines the closed set of failures the application can
// surface. Store adapters translate driver errors into these values once, at
// their boundary; the HTTP layer maps each Kind to a status code in one place.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthenticated
	KindForbidden
	KindDuplicate
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindDuplicate:
		return "duplicate"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error is the single error type crossing layer boundaries.
// Messages holds every validation message when more than one was collected.
type Error struct {
	Kind     Kind
	Message  string
	Messages []string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && len(e.Messages) > 0 {
		msg = strings.Join(e.Messages, ", ")
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so callers can write errors.Is(err, apperror.ErrNotFound).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == ""
}

// Sentinels usable with errors.Is.
var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
	ErrForbidden       = &Error{Kind: KindForbidden}
	ErrDuplicate       = &Error{Kind: KindDuplicate}
	ErrUpstream        = &Error{Kind: KindUpstream}
)

// Validation builds a validation error carrying all messages.
func Validation(msgs ...string) *Error {
	e := &Error{Kind: KindValidation, Messages: msgs}
	if len(msgs) == 1 {
		e.Message = msgs[0]
		e.Messages = nil
	}
	return e
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Duplicate(format string, args ...any) *Error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// InvalidID is the failure for a malformed entity identifier.
func InvalidID(id string) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf("%s is not a valid id", id)}
}

// KindOf returns the kind of err; anything not built by this package is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
