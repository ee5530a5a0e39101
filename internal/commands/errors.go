package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes set on errors the handler categorises itself. Errors that already
// carry a go-errors category, such as MDT_FILE_READ_FAILED from the notes
// aggregator, keep their own.
const (
	CodeInvalidMessage = "MDT_COMMAND_INVALID_MESSAGE"
	CodeCanceled       = "MDT_COMMAND_CANCELED"
	CodeTimeout        = "MDT_COMMAND_TIMEOUT"
	CodeFailed         = "MDT_COMMAND_FAILED"
)

// categorize tags err for the go-errors consumers of a command. invalid marks
// a failure of message validation.
func categorize(err error, invalid bool) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}

	category, code, msg := goerrors.CategoryCommand, CodeFailed, "command failed"
	switch {
	case invalid:
		category, code, msg = goerrors.CategoryValidation, CodeInvalidMessage, "invalid command message"
	case errors.Is(err, context.Canceled):
		code, msg = CodeCanceled, "command cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		code, msg = CodeTimeout, "command timed out"
	}
	return goerrors.Wrap(err, category, msg).WithTextCode(code)
}

// ErrorCode returns the go-errors text code carried by err, or "" when it has
// none.
func ErrorCode(err error) string {
	var tagged *goerrors.Error
	if errors.As(err, &tagged) {
		return tagged.TextCode
	}
	return ""
}
