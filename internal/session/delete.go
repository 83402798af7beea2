package session

import (
	"fmt"
	"path/filepath"

	"github.com/filedeck/filedeck/internal/events"
)

// DeleteMessage is the confirmation text for deleting names.
func DeleteMessage(names []string) string {
	if len(names) == 1 {
		return fmt.Sprintf("Are you sure to delete '%s'?", filepath.Base(names[0]))
	}
	return fmt.Sprintf("Are you sure to delete %d items?", len(names))
}

// Delete removes the named entries after a single confirmation. Directories
// are removed recursively. An entry that cannot be removed is reported and
// the rest are still attempted. It returns the number of entries removed.
func (s *Session) Delete(names []string, confirm Confirmer) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(names) == 0 {
		return 0, nil
	}
	if confirm == nil || !confirm("Confirm delete", DeleteMessage(names)) {
		return 0, ErrCancelled
	}

	var firstErr error
	removed := 0
	s.progress.Start(int64(len(names)), "Deleting")
	for i, name := range names {
		path := s.child(name)
		s.progress.SetDescription(filepath.Base(path))
		if err := s.remove(path); err != nil {
			s.progress.Error(err)
			s.log.Warn().Err(err).Str("path", path).Msg("Delete failed")
			s.status(events.WarnLevel, MsgFailed)
			if firstErr == nil {
				firstErr = err
			}
		} else {
			removed++
		}
		s.progress.Update(int64(i + 1))
	}
	s.progress.Finish()
	s.log.Info().Int("count", removed).Str("dir", s.current).Msg("Deleted")
	s.relist("")
	return removed, firstErr
}

func (s *Session) remove(path string) error {
	info, err := s.fs.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return s.fs.RemoveTree(path)
	}
	return s.fs.RemoveFile(path)
}
