package notes

import (
	"errors"
	"fmt"
	"io/fs"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeFileRead        = "MDT_FILE_READ_FAILED"
	textCodeInvalidEncoding = "MDT_FILE_INVALID_ENCODING"
)

// ErrInvalidEncoding reports a note whose bytes are not valid UTF-8.
var ErrInvalidEncoding = errors.New("notes: file is not valid UTF-8")

func wrapReadError(path string, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	category := goerrors.CategoryInternal
	if errors.Is(err, fs.ErrNotExist) {
		category = goerrors.CategoryNotFound
	}
	return goerrors.Wrap(err, category, fmt.Sprintf("read note %s", path)).
		WithTextCode(textCodeFileRead)
}

func encodingError(path string) error {
	return goerrors.Wrap(ErrInvalidEncoding, goerrors.CategoryValidation, fmt.Sprintf("decode note %s", path)).
		WithTextCode(textCodeInvalidEncoding)
}
