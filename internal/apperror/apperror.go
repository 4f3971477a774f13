// Package apperror carries the error kinds the HTTP layer maps to status
// codes: invalid input, semantically unprocessable input, and missing
// references. Anything else is treated as a server-side failure.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Invalid Kind = iota
	Unprocessable
	NotFound
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func Invalidf(format string, args ...any) *Error {
	return &Error{Kind: Invalid, Msg: fmt.Sprintf(format, args...)}
}

func Unprocessablef(format string, args ...any) *Error {
	return &Error{Kind: Unprocessable, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: NotFound, Msg: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind carried by err, unwrapping as needed.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}

	return 0, false
}
