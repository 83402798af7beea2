package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/filedeck/filedeck/internal/events"
	"github.com/filedeck/filedeck/internal/localfs"
)

// Navigate opens target. Directories become the current path (recorded in
// history when record is set and the path changes); files are handed to the
// opener. Relative targets resolve against the current path and "~" expands
// to the home directory.
func (s *Session) Navigate(target string, record bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navigate(s.resolve(target), record)
}

func (s *Session) navigate(path string, record bool) error {
	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, localfs.ErrPermissionDenied) {
			return s.fail(err, MsgAccessDenied, "navigate", path)
		}
		return s.fail(err, MsgInvalidPath, "navigate", path)
	}

	if !info.IsDir() {
		if s.opener == nil {
			return nil
		}
		if err := s.opener.Open(path); err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("Failed to open file")
		}
		return nil
	}

	if err := s.fs.Probe(path); err != nil {
		if errors.Is(err, localfs.ErrPermissionDenied) {
			s.log.Warn().Err(err).Str("path", path).Msg(MsgAccessDenied)
			s.status(events.WarnLevel, MsgAccessDenied)
			return err
		}
		return s.fail(err, MsgInvalidPath, "navigate", path)
	}

	from := s.current
	if record && !localfs.SamePath(path, s.current) {
		s.history.Push(path)
	}
	s.current = path
	s.log.Debug().Str("from", from).Str("to", path).Msg("Navigated")
	s.relist("")
	s.publish(&events.NavigatedEvent{
		BaseEvent:  base(events.EventNavigated),
		From:       from,
		To:         path,
		CanBack:    s.history.CanGoBack(),
		CanForward: s.history.CanGoForward(),
	})
	return nil
}

// GoBack moves one entry back in history. It is a no-op at the oldest entry.
// When the directory has disappeared the cursor still moves and the failure
// is reported.
func (s *Session) GoBack() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	path, ok := s.history.Back()
	if !ok {
		return nil
	}
	return s.navigate(path, false)
}

// GoForward moves one entry forward in history. It is a no-op at the newest entry.
func (s *Session) GoForward() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	path, ok := s.history.Forward()
	if !ok {
		return nil
	}
	return s.navigate(path, false)
}

// GoUp navigates to the parent directory. It is a no-op at the filesystem root.
func (s *Session) GoUp() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	parent := filepath.Dir(s.current)
	if parent == s.current {
		return nil
	}
	return s.navigate(parent, true)
}

// GoHome navigates to the home directory.
func (s *Session) GoHome() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navigate(s.home, true)
}

// GoShortcut navigates to the shortcut called name (case-insensitive).
func (s *Session) GoShortcut(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sc := range s.shortcuts {
		if strings.EqualFold(sc.Name, name) {
			return s.navigate(s.resolve(sc.Path), true)
		}
	}
	return fmt.Errorf("%q: %w", name, ErrUnknownShortcut)
}

// Refresh re-lists the current directory.
func (s *Session) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relist("")
}
