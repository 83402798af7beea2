// Package actions is the closed set of user commands and the dispatch table
// that maps each of them onto a session method. Frontends only translate
// input into an ID plus a Request.
package actions

import (
	"errors"
	"fmt"

	"github.com/filedeck/filedeck/internal/localfs"
	"github.com/filedeck/filedeck/internal/session"
)

// ID identifies a user command.
type ID string

const (
	Back         ID = "back"
	Forward      ID = "forward"
	Up           ID = "up"
	Home         ID = "home"
	Refresh      ID = "refresh"
	Open         ID = "open"
	Shortcut     ID = "shortcut"
	NewFolder    ID = "new-folder"
	NewFile      ID = "new-file"
	Rename       ID = "rename"
	CommitEdit   ID = "commit-edit"
	CancelEdit   ID = "cancel-edit"
	Copy         ID = "copy"
	Cut          ID = "cut"
	Paste        ID = "paste"
	CopyPath     ID = "copy-path"
	Delete       ID = "delete"
	BulkRename   ID = "bulk-rename"
	Drop         ID = "drop"
	ToggleHidden ID = "toggle-hidden"
	Sort         ID = "sort"
	Filter       ID = "filter"
)

// ErrUnknownAction is returned by Dispatch and Parse for IDs outside the set.
var ErrUnknownAction = errors.New("unknown action")

// Request carries the inputs an action needs. Fields irrelevant to an
// action are ignored.
type Request struct {
	Selection []string // selected entry names, in view order
	Text      string   // address, shortcut name, edit text or filter
	Target    string   // drop target entry name
	Bulk      session.BulkRenameOptions
	SortBy    localfs.SortColumn
	Ascending bool
	Confirm   session.Confirmer
}

// Handler runs one action against a session.
type Handler func(s *session.Session, r Request) error

// Descriptor describes an action for menus, toolbars and key help.
type Descriptor struct {
	ID     ID
	Label  string
	Key    string // bubbletea key name; empty when the action has no key
	Mutate bool   // touches the filesystem
	run    Handler
}

var table = []Descriptor{
	{ID: Back, Label: "Back", Key: "backspace", run: func(s *session.Session, _ Request) error { return s.GoBack() }},
	{ID: Forward, Label: "Forward", Key: "L", run: func(s *session.Session, _ Request) error { return s.GoForward() }},
	{ID: Up, Label: "Up", Key: "u", run: func(s *session.Session, _ Request) error { return s.GoUp() }},
	{ID: Home, Label: "Home", Key: "~", run: func(s *session.Session, _ Request) error { return s.GoHome() }},
	{ID: Refresh, Label: "Refresh", Key: "ctrl+r", run: func(s *session.Session, _ Request) error { s.Refresh(); return nil }},
	{ID: Open, Label: "Open", Key: "enter", run: open},
	{ID: Shortcut, Label: "Go to shortcut", run: func(s *session.Session, r Request) error { return s.GoShortcut(r.Text) }},
	{ID: NewFolder, Label: "New Folder", Key: "N", run: func(s *session.Session, _ Request) error {
		_, err := s.BeginCreateFolder()
		return err
	}},
	{ID: NewFile, Label: "New File", Key: "n", run: func(s *session.Session, _ Request) error {
		_, err := s.BeginCreateFile()
		return err
	}},
	{ID: Rename, Label: "Rename", Key: "r", run: func(s *session.Session, r Request) error { return s.BeginRename(first(r.Selection)) }},
	{ID: CommitEdit, Label: "Commit edit", Mutate: true, run: func(s *session.Session, r Request) error {
		_, err := s.CommitEdit(r.Text)
		return err
	}},
	{ID: CancelEdit, Label: "Cancel edit", run: func(s *session.Session, _ Request) error { s.CancelEdit(); return nil }},
	{ID: Copy, Label: "Copy", Key: "c", run: func(s *session.Session, r Request) error { s.Copy(r.Selection, false); return nil }},
	{ID: Cut, Label: "Cut", Key: "x", run: func(s *session.Session, r Request) error { s.Copy(r.Selection, true); return nil }},
	{ID: Paste, Label: "Paste", Key: "v", Mutate: true, run: func(s *session.Session, r Request) error { return s.Paste(r.Confirm) }},
	{ID: CopyPath, Label: "Copy Path", Key: "y", run: func(s *session.Session, r Request) error { return s.CopyPaths(r.Selection) }},
	{ID: Delete, Label: "Delete", Key: "d", Mutate: true, run: func(s *session.Session, r Request) error {
		_, err := s.Delete(r.Selection, r.Confirm)
		return err
	}},
	{ID: BulkRename, Label: "Bulk Rename", Key: "R", Mutate: true, run: func(s *session.Session, r Request) error {
		_, err := s.BulkRename(r.Bulk, r.Selection)
		return err
	}},
	{ID: Drop, Label: "Move to folder", Key: "m", Mutate: true, run: func(s *session.Session, r Request) error {
		return s.DropMove(r.Target, r.Selection, r.Confirm)
	}},
	{ID: ToggleHidden, Label: "Show Hidden", Key: ".", run: func(s *session.Session, _ Request) error {
		s.SetShowHidden(!s.ShowHidden())
		return nil
	}},
	{ID: Sort, Label: "Sort", Key: "s", run: func(s *session.Session, r Request) error { s.SetSort(r.SortBy, r.Ascending); return nil }},
	{ID: Filter, Label: "Filter", Key: "/", run: func(s *session.Session, r Request) error { s.SetFilter(r.Text); return nil }},
}

var byID = func() map[ID]Descriptor {
	m := make(map[ID]Descriptor, len(table))
	for _, d := range table {
		m[d.ID] = d
	}
	return m
}()

// Dispatch runs action id against s.
func Dispatch(s *session.Session, id ID, r Request) error {
	d, ok := byID[id]
	if !ok {
		return fmt.Errorf("%q: %w", id, ErrUnknownAction)
	}
	return d.run(s, r)
}

// All returns every action in menu order.
func All() []Descriptor {
	return append([]Descriptor(nil), table...)
}

// Lookup returns the descriptor of id.
func Lookup(id ID) (Descriptor, bool) {
	d, ok := byID[id]
	return d, ok
}

// ForKey returns the action bound to a bubbletea key name.
func ForKey(key string) (ID, bool) {
	for _, d := range table {
		if d.Key != "" && d.Key == key {
			return d.ID, true
		}
	}
	return "", false
}

// Parse converts a command name into an ID.
func Parse(name string) (ID, error) {
	if _, ok := byID[ID(name)]; ok {
		return ID(name), nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownAction)
}

// open navigates to Text when set (address bar), otherwise to the first
// selected entry.
func open(s *session.Session, r Request) error {
	target := r.Text
	if target == "" {
		target = first(r.Selection)
	}
	if target == "" {
		return nil
	}
	return s.Navigate(target, true)
}

func first(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
