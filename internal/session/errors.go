package session

import (
	"errors"
	"fmt"

	"github.com/filedeck/filedeck/internal/localfs"
)

// Session-level errors. Filesystem failures use the localfs taxonomy.
var (
	ErrEditInProgress  = errors.New("an edit is already in progress")
	ErrNoPendingEdit   = errors.New("no pending edit")
	ErrNoDropTarget    = errors.New("drop target is not an entry")
	ErrNothingSelected = errors.New("no files were selected")
	ErrIllegalPrefix   = errors.New("illegal characters in prefix")
	ErrNoSuitableFiles = errors.New("no suitable files in directory")
	ErrSourceMissing   = errors.New("source no longer exists")
	ErrCancelled       = errors.New("cancelled by user")
	ErrUnknownShortcut = errors.New("unknown shortcut")
	ErrSelfMove        = errors.New("cannot move a folder into itself")
)

// Status bar texts.
const (
	MsgAccessDenied     = "Access denied!"
	MsgInvalidPath      = "Invalid path!"
	MsgInvalidName      = "Invalid name!"
	MsgAlreadyExists    = "File/folder with that name already exists!"
	MsgAborted          = "Operation aborted!"
	MsgFileNotFound     = "File not found!"
	MsgPathCopied       = "Path copied to clipboard!"
	MsgFileCopied       = "File copied to clipboard!"
	MsgPasted           = "File pasted!"
	MsgSameSource       = "You cannot overwrite the same file!"
	MsgNoCopyPermission = "No permission to copy the file!"
	MsgSourceMissing    = "Cannot find the source file!"
	MsgFailed           = "Something went wrong!"
	MsgNothingSelected  = "No files were selected!"
	MsgIllegalPrefix    = "Illegal characters in prefix!"
	MsgNoSuitableFiles  = "No suitable files in given directory!"
)

// CollisionError reports the file whose rename hit an existing name and
// stopped a bulk rename.
type CollisionError struct {
	Name string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("File %s already exists!", e.Name)
}

func (e *CollisionError) Unwrap() error {
	return localfs.ErrAlreadyExists
}

// Message returns the text a frontend shows for err, for example in a
// message box. Unknown errors map to a generic failure text.
func Message(err error) string {
	var collision *CollisionError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &collision):
		return collision.Error()
	case errors.Is(err, ErrNothingSelected):
		return MsgNothingSelected
	case errors.Is(err, ErrIllegalPrefix):
		return MsgIllegalPrefix
	case errors.Is(err, ErrNoSuitableFiles):
		return MsgNoSuitableFiles
	case errors.Is(err, ErrSourceMissing):
		return MsgSourceMissing
	case errors.Is(err, ErrCancelled):
		return MsgAborted
	case errors.Is(err, localfs.ErrSameSource):
		return MsgSameSource
	case errors.Is(err, localfs.ErrAlreadyExists):
		return MsgAlreadyExists
	case errors.Is(err, localfs.ErrPermissionDenied):
		return MsgAccessDenied
	case errors.Is(err, localfs.ErrNotFound):
		return MsgFileNotFound
	case errors.Is(err, localfs.ErrInvalidPath):
		return MsgInvalidPath
	}
	return MsgFailed
}
