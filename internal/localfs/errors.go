package localfs

import (
	"errors"
	"fmt"
	"io/fs"
)

// Filesystem error taxonomy. Every error returned by a Provider satisfies
// errors.Is against exactly one of these when the cause is recognised.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrAlreadyExists    = errors.New("already exists")
	ErrSameSource       = errors.New("source and destination are the same")
	ErrInvalidPath      = errors.New("invalid path")
)

// Classify maps an error from the os package onto the taxonomy while keeping
// the original error in the chain. Errors already classified are returned as is.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{ErrNotFound, ErrPermissionDenied, ErrAlreadyExists, ErrSameSource, ErrInvalidPath} {
		if errors.Is(err, known) {
			return err
		}
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	case errors.Is(err, fs.ErrInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	return err
}
