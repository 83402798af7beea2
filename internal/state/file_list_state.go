// Package state provides observable view state shared by the frontends.
package state

import (
	"sync"
	"time"

	"github.com/filedeck/filedeck/internal/events"
	"github.com/filedeck/filedeck/internal/localfs"
)

// FileListState mirrors the session's listing for a view: the entries in
// display order, the selected names and a cursor row. It publishes a
// selection event whenever the selection changes.
// Thread-safe for concurrent access.
type FileListState struct {
	eventBus *events.EventBus

	path     string
	items    []localfs.Entry
	selected map[string]bool
	cursor   int

	mu sync.RWMutex
}

// NewFileListState creates a new FileListState. eventBus may be nil.
func NewFileListState(eventBus *events.EventBus) *FileListState {
	return &FileListState{
		eventBus: eventBus,
		items:    make([]localfs.Entry, 0),
		selected: make(map[string]bool),
	}
}

// Apply replaces the items with a fresh listing. Selected names that are
// still listed stay selected when the directory is unchanged; ev.Select, when
// set, becomes the only selection and the cursor moves to it.
func (s *FileListState) Apply(ev *events.ListingEvent) {
	s.mu.Lock()
	samePath := ev.Path == s.path
	s.path = ev.Path
	s.items = append([]localfs.Entry(nil), ev.Entries...)

	kept := make(map[string]bool)
	if samePath && ev.Select == "" {
		for _, e := range s.items {
			if s.selected[e.Name] {
				kept[e.Name] = true
			}
		}
	}
	if ev.Select != "" {
		kept[ev.Select] = true
		for i, e := range s.items {
			if e.Name == ev.Select {
				s.cursor = i
			}
		}
	} else if !samePath {
		s.cursor = 0
	}
	s.selected = kept
	s.clampLocked()
	names := s.selectedLocked()
	s.mu.Unlock()

	s.publish(names)
}

// Items returns a copy of the current items.
func (s *FileListState) Items() []localfs.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]localfs.Entry(nil), s.items...)
}

// Path returns the directory the items belong to.
func (s *FileListState) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Count returns the number of items.
func (s *FileListState) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Select adds an item to the selection.
func (s *FileListState) Select(name string) {
	s.update(func() { s.selected[name] = true })
}

// Deselect removes an item from the selection.
func (s *FileListState) Deselect(name string) {
	s.update(func() { delete(s.selected, name) })
}

// ToggleSelect toggles an item's selection state.
func (s *FileListState) ToggleSelect(name string) {
	s.update(func() {
		if s.selected[name] {
			delete(s.selected, name)
		} else {
			s.selected[name] = true
		}
	})
}

// SetSelection sets the selection to the given names.
func (s *FileListState) SetSelection(names []string) {
	s.update(func() {
		s.selected = make(map[string]bool, len(names))
		for _, n := range names {
			s.selected[n] = true
		}
	})
}

// SelectAll selects every item.
func (s *FileListState) SelectAll() {
	s.update(func() {
		for _, e := range s.items {
			s.selected[e.Name] = true
		}
	})
}

// ClearSelection clears all selections.
func (s *FileListState) ClearSelection() {
	s.update(func() { s.selected = make(map[string]bool) })
}

// IsSelected returns whether an item is selected.
func (s *FileListState) IsSelected(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected[name]
}

// Selected returns the selected names in display order.
func (s *FileListState) Selected() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedLocked()
}

// SelectedCount returns the number of selected items.
func (s *FileListState) SelectedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selectedLocked())
}

// Target returns the selection, or the entry under the cursor when nothing
// is selected. Keyboard frontends act on it.
func (s *FileListState) Target() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if names := s.selectedLocked(); len(names) > 0 {
		return names
	}
	if s.cursor < len(s.items) {
		return []string{s.items[s.cursor].Name}
	}
	return nil
}

// Cursor returns the cursor row.
func (s *FileListState) Cursor() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

// MoveCursor moves the cursor by delta rows, clamped to the list.
func (s *FileListState) MoveCursor(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor += delta
	s.clampLocked()
}

// SetCursor puts the cursor on row i, clamped to the list.
func (s *FileListState) SetCursor(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = i
	s.clampLocked()
}

// Current returns the entry under the cursor.
func (s *FileListState) Current() (localfs.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cursor < len(s.items) {
		return s.items[s.cursor], true
	}
	return localfs.Entry{}, false
}

// FindByName finds an item by name.
func (s *FileListState) FindByName(name string) (localfs.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.items {
		if e.Name == name {
			return e, true
		}
	}
	return localfs.Entry{}, false
}

func (s *FileListState) update(fn func()) {
	s.mu.Lock()
	fn()
	names := s.selectedLocked()
	s.mu.Unlock()
	s.publish(names)
}

func (s *FileListState) publish(names []string) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(&events.SelectionEvent{
		BaseEvent: events.BaseEvent{EventType: events.EventSelection, Time: time.Now()},
		Names:     names,
	})
}

// selectedLocked returns listed selected names in display order (must hold lock).
func (s *FileListState) selectedLocked() []string {
	names := make([]string, 0, len(s.selected))
	for _, e := range s.items {
		if s.selected[e.Name] {
			names = append(names, e.Name)
		}
	}
	return names
}

// clampLocked keeps the cursor within the list (must hold lock).
func (s *FileListState) clampLocked() {
	if s.cursor >= len(s.items) {
		s.cursor = len(s.items) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}
