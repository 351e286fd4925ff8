package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failed Execute.
type ErrorKind int

const (
	// KindUnknown is reported by KindOf for errors not produced by this package.
	KindUnknown ErrorKind = iota

	// KindNotFound means the resource does not exist upstream.
	KindNotFound

	// KindInvalidArguments means the caller misused the request builder.
	KindInvalidArguments

	// KindTransport means the request could not be completed or the response
	// did not match the shape expected for its mode.
	KindTransport
)

// String returns the metric and log label of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidArguments:
		return "invalid_arguments"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Common errors returned by the client. Match them with errors.Is.
var (
	// ErrNotFound is returned when Spotify reports the resource as absent.
	ErrNotFound = &Error{Kind: KindNotFound}

	// ErrInvalidArguments is returned when Execute is called without a valid request.
	ErrInvalidArguments = &Error{Kind: KindInvalidArguments}

	// ErrTransport is returned for network failures, rate limit blocks, upstream
	// error statuses and undecodable responses.
	ErrTransport = &Error{Kind: KindTransport}
)

// Error is the error type returned by Execute.
// Decoder diagnostics are logged and never carried in an Error.
type Error struct {
	Kind       ErrorKind
	Mode       Mode
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("spotify")
	if e.Mode != ModeNone {
		b.WriteString(" ")
		b.WriteString(e.Mode.String())
	}
	b.WriteString(": ")
	b.WriteString(strings.ReplaceAll(e.Kind.String(), "_", " "))
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
