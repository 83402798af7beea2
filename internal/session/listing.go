package session

import (
	"strings"

	"github.com/filedeck/filedeck/internal/events"
	"github.com/filedeck/filedeck/internal/localfs"
)

// relist rebuilds the listing of the current directory and publishes it.
// selectName, when set, asks frontends to select and scroll to that entry.
func (s *Session) relist(selectName string) {
	entries, err := s.fs.List(s.current, localfs.ListOptions{
		IncludeHidden: s.showHidden,
		Filter:        s.filter,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.current).Msg("Failed to list directory")
		entries = nil
	}

	if s.clipboard.cut && len(s.clipboard.paths) > 0 {
		cut := make(map[string]bool, len(s.clipboard.paths))
		for _, p := range s.clipboard.paths {
			cut[p] = true
		}
		for i := range entries {
			entries[i].Cut = cut[entries[i].Path]
		}
	}

	localfs.SortEntries(entries, s.sortBy, s.ascending)
	s.entries = entries

	s.publish(&events.ListingEvent{
		BaseEvent: base(events.EventListing),
		Path:      s.current,
		Entries:   append([]localfs.Entry(nil), entries...),
		Select:    selectName,
	})
}

// Entries returns the current listing after the hidden predicate, the text
// filter and the sort have been applied.
func (s *Session) Entries() []localfs.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]localfs.Entry(nil), s.entries...)
}

// Lookup returns the listed entry called name.
func (s *Session) Lookup(name string) (localfs.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.Name == name {
			return e, true
		}
	}
	return localfs.Entry{}, false
}

// SetFilter keeps only entries whose name contains filter (case-insensitive).
func (s *Session) SetFilter(filter string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filter = strings.TrimSpace(filter)
	if filter == s.filter {
		return
	}
	s.filter = filter
	s.relist("")
}

// Filter returns the active text filter.
func (s *Session) Filter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetShowHidden changes whether hidden entries are listed.
func (s *Session) SetShowHidden(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if show == s.showHidden {
		return
	}
	s.showHidden = show
	s.relist("")
}

// ShowHidden reports whether hidden entries are listed.
func (s *Session) ShowHidden() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showHidden
}

// SetSort changes the sort column and direction.
func (s *Session) SetSort(column localfs.SortColumn, ascending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortBy = column
	s.ascending = ascending
	localfs.SortEntries(s.entries, column, ascending)
	s.publish(&events.ListingEvent{
		BaseEvent: base(events.EventListing),
		Path:      s.current,
		Entries:   append([]localfs.Entry(nil), s.entries...),
	})
}

// Sort returns the active sort column and direction.
func (s *Session) Sort() (localfs.SortColumn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortBy, s.ascending
}

// FolderTree lists the visible sub-directories of path, sorted by name, for
// the folder tree pane.
func (s *Session) FolderTree(path string) ([]localfs.Entry, error) {
	entries, err := s.fs.List(path, localfs.ListOptions{})
	if err != nil {
		return nil, err
	}
	dirs := entries[:0]
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e)
		}
	}
	localfs.SortEntries(dirs, localfs.SortByName, true)
	return dirs, nil
}
