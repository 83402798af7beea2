package session

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/filedeck/filedeck/internal/constants"
	"github.com/filedeck/filedeck/internal/events"
	"github.com/filedeck/filedeck/internal/localfs"
)

// BulkRenameOptions are the inputs of the bulk rename form.
type BulkRenameOptions struct {
	OnlySelected bool
	Extension    string // bare suffix without the dot; empty matches every file
	Prefix       string
	Start        int
}

// PreviewName returns the name the first renamed file would get, without its suffix.
func PreviewName(opts BulkRenameOptions) string {
	return opts.Prefix + strconv.Itoa(opts.Start)
}

// BulkRename renames the files of the current directory to
// {prefix}{counter}{suffix}, in directory enumeration order, and returns how
// many were renamed. selected holds the pre-selected entry names and only
// matters with OnlySelected. The first collision stops the batch; files
// already renamed keep their new names.
func (s *Session) BulkRename(opts BulkRenameOptions, selected []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	picked := make(map[string]bool, len(selected))
	for _, name := range selected {
		name = filepath.Base(name)
		for _, e := range s.entries {
			if e.Name == name && !e.IsDir() {
				picked[name] = true
			}
		}
	}
	if opts.OnlySelected && len(picked) == 0 {
		return 0, ErrNothingSelected
	}
	if strings.ContainsAny(opts.Prefix, constants.ReservedNameChars) {
		return 0, ErrIllegalPrefix
	}

	entries, err := s.fs.List(s.current, localfs.ListOptions{IncludeHidden: true})
	if err != nil {
		return 0, s.fail(err, MsgFailed, "bulk-rename", s.current)
	}
	defer s.relist("")

	counter := opts.Start
	renamed := 0
	s.progress.Start(int64(len(entries)), "Renaming")
	defer s.progress.Finish()
	for i, e := range entries {
		s.progress.Update(int64(i + 1))
		ext := localfs.Suffix(e.Name)
		if opts.Extension != "" && opts.Extension != strings.TrimPrefix(ext, ".") {
			continue
		}
		if e.IsDir() || (opts.OnlySelected && !picked[e.Name]) {
			continue
		}

		newName := opts.Prefix + strconv.Itoa(counter) + ext
		s.progress.SetDescription(e.Name)
		if err := s.fs.Rename(e.Path, filepath.Join(s.current, newName)); err != nil {
			s.progress.Error(err)
			if errors.Is(err, localfs.ErrAlreadyExists) {
				s.log.Warn().Str("file", e.Name).Str("target", newName).Msg("Bulk rename collision")
				s.status(events.WarnLevel, MsgAborted)
				return renamed, &CollisionError{Name: e.Name}
			}
			s.log.Warn().Err(err).Str("file", e.Name).Msg("Bulk rename failed")
			s.status(events.WarnLevel, editMessage(err))
			return renamed, err
		}
		counter++
		renamed++
	}

	if renamed == 0 {
		return 0, ErrNoSuitableFiles
	}
	s.log.Info().Int("count", renamed).Str("dir", s.current).Msg("Bulk rename finished")
	return renamed, nil
}
