package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/filedeck/filedeck/internal/events"
	"github.com/filedeck/filedeck/internal/localfs"
)

// DropMove moves the dragged sources into the directory entry called target.
// An empty target (a drop on empty space) is rejected with ErrNoDropTarget
// before any filesystem access. Drops onto a file are ignored. A drop whose
// destination path contains a source path is refused with ErrSelfMove and
// no status. The directory is always re-listed once the filesystem has been
// touched.
func (s *Session) DropMove(target string, sources []string, confirm Confirmer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if target == "" {
		return ErrNoDropTarget
	}
	return s.moveInto(s.child(target), sources, confirm, func(src, dest string) bool {
		return strings.Contains(dest, src)
	})
}

// MoveInto moves sources into dir, which may be any directory. Only a real
// self-move (dir is a source or lies below one) is refused with ErrSelfMove;
// sibling names sharing a prefix are fine.
func (s *Session) MoveInto(dir string, sources []string, confirm Confirmer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	destDir := s.resolve(dir)
	return s.moveInto(destDir, sources, confirm, func(src, _ string) bool {
		return localfs.SamePath(src, destDir) || localfs.IsWithin(destDir, src)
	})
}

// moveInto runs a batch move. selfMove reports whether moving src to dest
// would put it inside itself. Called with s.mu held.
func (s *Session) moveInto(destDir string, sources []string, confirm Confirmer, selfMove func(src, dest string) bool) error {
	if len(sources) == 0 {
		return nil
	}
	defer s.relist("")

	info, err := s.fs.Stat(destDir)
	if err != nil {
		return s.dropFailed(err, destDir)
	}
	if !info.IsDir() {
		return nil
	}

	srcs := make([]string, len(sources))
	dests := make([]string, len(sources))
	for i, src := range sources {
		srcs[i] = s.child(src)
		dests[i] = filepath.Join(destDir, filepath.Base(srcs[i]))
		if selfMove(srcs[i], dests[i]) {
			s.log.Debug().Str("src", srcs[i]).Str("dest", dests[i]).Msg("Move into itself refused")
			return fmt.Errorf("move %s: %w", filepath.Base(srcs[i]), ErrSelfMove)
		}
	}

	collisions := s.collisions(dests)
	if len(collisions) > 0 && !askOverwrite(confirm, collisions) {
		return ErrCancelled
	}

	s.progress.Start(int64(len(srcs)), "Moving")
	for i, src := range srcs {
		s.progress.SetDescription(filepath.Base(src))
		if err := s.moveOne(src, dests[i]); err != nil {
			s.progress.Error(err)
			return s.dropFailed(err, src)
		}
		s.progress.Update(int64(i + 1))
	}
	s.progress.Finish()
	s.log.Info().Int("count", len(srcs)).Str("dest", destDir).Msg("Moved")
	return nil
}

func (s *Session) moveOne(src, dest string) error {
	info, err := s.fs.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		if err := s.fs.CopyTree(src, dest); err != nil {
			return err
		}
		return s.fs.RemoveTree(src)
	}
	return s.fs.Move(src, dest)
}

// dropFailed reports err without re-listing; DropMove re-lists on return.
func (s *Session) dropFailed(err error, path string) error {
	message := MsgFailed
	switch {
	case errors.Is(err, localfs.ErrNotFound):
		message = MsgFileNotFound
	case errors.Is(err, localfs.ErrPermissionDenied):
		message = MsgAccessDenied
	case errors.Is(err, localfs.ErrSameSource):
		message = MsgSameSource
	}
	s.log.Warn().Err(err).Str("op", "drop").Str("path", path).Msg(message)
	s.status(events.WarnLevel, message)
	return fmt.Errorf("drop %s: %w", filepath.Base(path), err)
}
