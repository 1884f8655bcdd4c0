package uris

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies the errors raised by this package.
type Kind int

const (
	// KindInvalidArgument means a required value was absent.
	KindInvalidArgument Kind = iota + 1
	// KindInvalidComponent means an append request would build an
	// inconsistent URI, e.g. a second fragment.
	KindInvalidComponent
	// KindInvalidURI means a string could not be parsed as a URI.
	KindInvalidURI
	// KindInvalidCharacter means the input was not valid UTF-8.
	KindInvalidCharacter
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindInvalidComponent:
		return "invalid component"
	case KindInvalidURI:
		return "invalid URI"
	case KindInvalidCharacter:
		return "invalid character"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by this package.
type Error struct {
	Kind    Kind
	Input   string
	Message string
	Cause   error
}

// Sentinels for errors.Is. Any *Error of the same Kind matches.
var (
	ErrInvalidArgument  = &Error{Kind: KindInvalidArgument}
	ErrInvalidComponent = &Error{Kind: KindInvalidComponent}
	ErrInvalidURI       = &Error{Kind: KindInvalidURI}
	ErrInvalidCharacter = &Error{Kind: KindInvalidCharacter}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Input != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Input)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// HTTPStatus maps an error to the status a service should answer with.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func newError(kind Kind, input, format string, args ...any) *Error {
	return &Error{Kind: kind, Input: input, Message: fmt.Sprintf(format, args...)}
}
