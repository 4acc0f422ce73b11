package errorx

import (
	"errors"
	"fmt"
)

type Error struct {
	Code    Code
	Message string
}

func (e Error) Error() string {
	return e.Message
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var xerr Error
	if !errors.As(err, &xerr) {
		return false
	}

	return xerr.Code == code
}
