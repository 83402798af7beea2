package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/filedeck/filedeck/internal/constants"
	"github.com/filedeck/filedeck/internal/events"
	"github.com/filedeck/filedeck/internal/localfs"
)

// EditKind is the kind of inline edit awaiting commit.
type EditKind int

const (
	EditCreateFolder EditKind = iota + 1
	EditCreateFile
	EditRename
)

func (k EditKind) String() string {
	switch k {
	case EditCreateFolder:
		return "create-folder"
	case EditCreateFile:
		return "create-file"
	case EditRename:
		return "rename"
	default:
		return "none"
	}
}

// PendingEdit is the single outstanding inline edit. Original is the
// placeholder row name for creates and the entry name for renames.
type PendingEdit struct {
	Kind     EditKind
	Original string
}

// BeginCreateFolder starts a create-folder edit and returns the placeholder row name.
func (s *Session) BeginCreateFolder() (string, error) {
	return s.begin(EditCreateFolder, constants.NewFolderPlaceholder)
}

// BeginCreateFile starts a create-file edit and returns the placeholder row name.
func (s *Session) BeginCreateFile() (string, error) {
	return s.begin(EditCreateFile, constants.NewFilePlaceholder)
}

// BeginRename starts renaming the entry called name in the current directory.
func (s *Session) BeginRename(name string) error {
	if name == "" {
		return ErrNothingSelected
	}
	_, err := s.begin(EditRename, filepath.Base(name))
	return err
}

func (s *Session) begin(kind EditKind, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit != nil {
		return "", ErrEditInProgress
	}
	s.edit = &PendingEdit{Kind: kind, Original: name}
	s.publishEdit(kind, name, true)
	return name, nil
}

// Pending returns the outstanding edit, if any.
func (s *Session) Pending() (PendingEdit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit == nil {
		return PendingEdit{}, false
	}
	return *s.edit, true
}

// CancelEdit drops the outstanding edit without touching the filesystem.
func (s *Session) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit == nil {
		return
	}
	edit := s.edit
	s.edit = nil
	s.publishEdit(edit.Kind, edit.Original, false)
	s.relist("")
}

// CommitEdit resolves the outstanding edit with the text the user typed and
// returns the final entry name. Every outcome re-lists the directory; on
// success the listing asks frontends to select the new name.
func (s *Session) CommitEdit(text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit == nil {
		return "", ErrNoPendingEdit
	}
	edit := *s.edit
	s.edit = nil
	s.publishEdit(edit.Kind, edit.Original, false)

	if !validName(text) {
		err := fmt.Errorf("%q: %w", text, localfs.ErrInvalidPath)
		return "", s.fail(err, MsgInvalidName, edit.Kind.String(), s.current)
	}
	path := filepath.Join(s.current, text)

	var err error
	switch edit.Kind {
	case EditCreateFolder:
		err = s.fs.CreateDir(path)
	case EditCreateFile:
		if _, statErr := s.fs.Stat(path); statErr == nil {
			err = fmt.Errorf("create %s: %w", text, localfs.ErrAlreadyExists)
		} else {
			err = s.fs.CreateEmptyFile(path)
		}
	case EditRename:
		if text == edit.Original {
			s.relist(text)
			return text, nil
		}
		err = s.fs.Rename(filepath.Join(s.current, edit.Original), path)
	}
	if err != nil {
		return "", s.fail(err, editMessage(err), edit.Kind.String(), path)
	}

	s.log.Info().Str("op", edit.Kind.String()).Str("path", path).Msg("Edit committed")
	s.relist(text)
	return text, nil
}

func (s *Session) publishEdit(kind EditKind, name string, started bool) {
	s.publish(&events.EditEvent{
		BaseEvent: base(events.EventEdit),
		Kind:      kind.String(),
		Name:      name,
		Started:   started,
	})
}

func editMessage(err error) string {
	switch {
	case errors.Is(err, localfs.ErrAlreadyExists):
		return MsgAlreadyExists
	case errors.Is(err, localfs.ErrPermissionDenied):
		return MsgAccessDenied
	case errors.Is(err, localfs.ErrNotFound):
		return MsgFileNotFound
	}
	return MsgFailed
}

// validName rejects empty names, the dot entries and names with a path separator.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
