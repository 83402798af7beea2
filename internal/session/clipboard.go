package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/filedeck/filedeck/internal/events"
	"github.com/filedeck/filedeck/internal/localfs"
)

// Copy replaces the file clipboard with paths (names are taken relative to
// the current directory). With cut set, listed entries carry the cut mark
// until the next paste. An empty selection is a no-op.
func (s *Session) Copy(paths []string, cut bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(paths) == 0 {
		return
	}
	abs := make([]string, len(paths))
	for i, p := range paths {
		abs[i] = s.child(p)
	}
	s.clipboard = clipboard{paths: abs, cut: cut}
	s.publishClipboard()
	s.status(events.InfoLevel, MsgFileCopied)
	if cut {
		s.relist("")
	}
}

// Clipboard returns the paths waiting to be pasted and whether they were cut.
func (s *Session) Clipboard() ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.clipboard.paths...), s.clipboard.cut
}

// CanPaste reports whether the clipboard holds anything.
func (s *Session) CanPaste() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clipboard.paths) > 0
}

// Paste copies or moves the clipboard contents into the current directory.
// Destination name collisions are confirmed once for the whole batch. The
// clipboard is emptied after every attempt, whatever the outcome. The batch
// is not transactional: items handled before a failure stay in place.
func (s *Session) Paste(confirm Confirmer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.clipboard.paths) == 0 {
		return nil
	}
	// Emptied before any re-list so no row keeps its cut mark.
	clip := s.clipboard
	s.clipboard = clipboard{}
	s.publishClipboard()

	dests := make([]string, len(clip.paths))
	for i, src := range clip.paths {
		dests[i] = filepath.Join(s.current, filepath.Base(src))
		if localfs.SamePath(src, dests[i]) {
			err := fmt.Errorf("paste %s: %w", filepath.Base(src), localfs.ErrSameSource)
			return s.fail(err, MsgSameSource, "paste", src)
		}
	}

	collisions := s.collisions(dests)
	if len(collisions) > 0 && !askOverwrite(confirm, collisions) {
		s.log.Info().Int("collisions", len(collisions)).Msg("Paste cancelled")
		s.relist("")
		return ErrCancelled
	}

	op := "Copying"
	if clip.cut {
		op = "Moving"
	}
	s.progress.Start(int64(len(clip.paths)), op)
	for i, src := range clip.paths {
		s.progress.SetDescription(filepath.Base(src))
		if err := s.pasteOne(src, dests[i], clip.cut); err != nil {
			s.progress.Error(err)
			return s.fail(err, pasteMessage(err), "paste", src)
		}
		s.progress.Update(int64(i + 1))
	}
	s.progress.Finish()

	s.log.Info().Int("count", len(clip.paths)).Bool("cut", clip.cut).Str("dest", s.current).Msg("Pasted")
	s.status(events.SuccessLevel, MsgPasted)
	s.relist("")
	return nil
}

func (s *Session) pasteOne(src, dest string, cut bool) error {
	info, err := s.fs.Stat(src)
	if err != nil {
		if errors.Is(err, localfs.ErrNotFound) {
			return fmt.Errorf("%w: %w", ErrSourceMissing, err)
		}
		return err
	}
	switch {
	case info.IsDir():
		if err := s.fs.CopyTree(src, dest); err != nil {
			return err
		}
		if cut {
			return s.fs.RemoveTree(src)
		}
		return nil
	case cut:
		return s.fs.Move(src, dest)
	default:
		return s.fs.CopyFile(src, dest)
	}
}

func pasteMessage(err error) string {
	switch {
	case errors.Is(err, ErrSourceMissing):
		return MsgSourceMissing
	case errors.Is(err, localfs.ErrSameSource):
		return MsgSameSource
	case errors.Is(err, localfs.ErrPermissionDenied):
		return MsgNoCopyPermission
	case errors.Is(err, localfs.ErrNotFound):
		return MsgSourceMissing
	}
	return MsgFailed
}

// CopyPaths writes the absolute paths joined by ", " to the system clipboard.
func (s *Session) CopyPaths(paths []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(paths) == 0 {
		return nil
	}
	abs := make([]string, len(paths))
	for i, p := range paths {
		abs[i] = s.child(p)
	}
	text := strings.Join(abs, ", ")
	if s.clip == nil {
		return s.fail(errors.New("no system clipboard"), MsgFailed, "copy-path", s.current)
	}
	if err := s.clip.WriteAll(text); err != nil {
		return s.fail(err, MsgFailed, "copy-path", s.current)
	}
	s.status(events.InfoLevel, MsgPathCopied)
	return nil
}

func (s *Session) publishClipboard() {
	s.publish(&events.ClipboardEvent{
		BaseEvent: base(events.EventClipboard),
		Paths:     append([]string(nil), s.clipboard.paths...),
		Cut:       s.clipboard.cut,
	})
}

// collisions returns the destinations that already exist, hidden entries included.
func (s *Session) collisions(dests []string) []string {
	var found []string
	for _, d := range dests {
		if _, err := s.fs.Stat(d); err == nil {
			found = append(found, d)
		}
	}
	return found
}

// askOverwrite asks once for the whole batch. A nil confirmer declines.
func askOverwrite(confirm Confirmer, collisions []string) bool {
	if confirm == nil {
		return false
	}
	return confirm("Confirm overwrite", OverwriteMessage(collisions))
}

// OverwriteMessage is the confirmation text for a batch with collisions.
func OverwriteMessage(collisions []string) string {
	if len(collisions) == 1 {
		return fmt.Sprintf("Do you want to overwrite '%s'?", filepath.Base(collisions[0]))
	}
	return fmt.Sprintf("Do you want to overwrite %d files?", len(collisions))
}
