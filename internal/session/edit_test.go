package session

import (
	"errors"
	"testing"
	"time"

	"github.com/filedeck/filedeck/internal/constants"
	"github.com/filedeck/filedeck/internal/events"
	"github.com/filedeck/filedeck/internal/localfs"
)

func TestCreateFolderAndFile(t *testing.T) {
	f := newFixture(t)

	placeholder, err := f.s.BeginCreateFolder()
	if err != nil || placeholder != constants.NewFolderPlaceholder {
		t.Fatalf("BeginCreateFolder() = %q, %v", placeholder, err)
	}
	if name, err := f.s.CommitEdit("projects"); err != nil || name != "projects" {
		t.Fatalf("CommitEdit() = %q, %v", name, err)
	}

	placeholder, err = f.s.BeginCreateFile()
	if err != nil || placeholder != constants.NewFilePlaceholder {
		t.Fatalf("BeginCreateFile() = %q, %v", placeholder, err)
	}
	if _, err := f.s.CommitEdit("todo.md"); err != nil {
		t.Fatal(err)
	}

	if !f.exists("projects") || !f.exists("todo.md") {
		t.Error("created entries missing on disk")
	}
	if _, ok := f.s.Lookup("todo.md"); !ok {
		t.Error("created file missing from listing")
	}
}

func TestSingleOutstandingEdit(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.txt", "")

	if _, err := f.s.BeginCreateFolder(); err != nil {
		t.Fatal(err)
	}
	if _, err := f.s.BeginCreateFile(); !errors.Is(err, ErrEditInProgress) {
		t.Errorf("second begin error = %v", err)
	}
	if err := f.s.BeginRename("a.txt"); !errors.Is(err, ErrEditInProgress) {
		t.Errorf("rename during edit error = %v", err)
	}
	edit, ok := f.s.Pending()
	if !ok || edit.Kind != EditCreateFolder {
		t.Errorf("Pending() = %+v, %v", edit, ok)
	}

	f.s.CancelEdit()
	if _, ok := f.s.Pending(); ok {
		t.Error("edit still pending after cancel")
	}
	if f.exists(constants.NewFolderPlaceholder) {
		t.Error("cancel touched the filesystem")
	}
}

func TestCommitExactlyOnce(t *testing.T) {
	f := newFixture(t)
	if _, err := f.s.CommitEdit("x"); !errors.Is(err, ErrNoPendingEdit) {
		t.Errorf("commit without edit error = %v", err)
	}

	_, _ = f.s.BeginCreateFolder()
	_, _ = f.s.CommitEdit("one")
	if _, err := f.s.CommitEdit("two"); !errors.Is(err, ErrNoPendingEdit) {
		t.Errorf("second commit error = %v", err)
	}
	if f.exists("two") {
		t.Error("second commit created a folder")
	}
}

func TestCreateFileCollision(t *testing.T) {
	f := newFixture(t)
	f.write(t, "dup.txt", "keep me")

	_, _ = f.s.BeginCreateFile()
	_, err := f.s.CommitEdit("dup.txt")
	if !errors.Is(err, localfs.ErrAlreadyExists) {
		t.Errorf("error = %v, want ErrAlreadyExists", err)
	}
	if f.status.last() != MsgAlreadyExists {
		t.Errorf("status = %q", f.status.last())
	}
	if got := f.read(t, "dup.txt"); got != "keep me" {
		t.Errorf("existing file modified: %q", got)
	}
}

func TestCreateFolderCollision(t *testing.T) {
	f := newFixture(t)
	f.mkdir(t, "taken")

	_, _ = f.s.BeginCreateFolder()
	if _, err := f.s.CommitEdit("taken"); !errors.Is(err, localfs.ErrAlreadyExists) {
		t.Errorf("error = %v", err)
	}
	if f.status.last() != MsgAlreadyExists {
		t.Errorf("status = %q", f.status.last())
	}
}

func TestRenameCollisionKeepsOriginal(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.txt", "A")
	f.write(t, "b.txt", "B")
	f.s.Refresh()

	if err := f.s.BeginRename("a.txt"); err != nil {
		t.Fatal(err)
	}
	_, err := f.s.CommitEdit("b.txt")
	if !errors.Is(err, localfs.ErrAlreadyExists) {
		t.Fatalf("error = %v, want ErrAlreadyExists", err)
	}
	if f.status.last() != MsgAlreadyExists {
		t.Errorf("status = %q", f.status.last())
	}
	if got := names(f.s.Entries()); !equal(got, []string{"a.txt", "b.txt"}) {
		t.Errorf("listing = %v", got)
	}
	if f.read(t, "b.txt") != "B" {
		t.Error("rename overwrote the destination")
	}
}

func TestRenameSelectsNewName(t *testing.T) {
	f := newFixture(t)
	f.write(t, "old.txt", "")
	f.s.Refresh()

	bus := events.NewEventBus(16)
	defer bus.Close()
	f.s.bus = bus
	listings := bus.Subscribe(events.EventListing)

	_ = f.s.BeginRename("old.txt")
	name, err := f.s.CommitEdit("new.txt")
	if err != nil || name != "new.txt" {
		t.Fatalf("CommitEdit() = %q, %v", name, err)
	}
	if f.exists("old.txt") || !f.exists("new.txt") {
		t.Error("rename not applied")
	}

	select {
	case ev := <-listings:
		if sel := ev.(*events.ListingEvent).Select; sel != "new.txt" {
			t.Errorf("listing select = %q", sel)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no listing event")
	}
}

func TestRenameToSameNameIsNoOp(t *testing.T) {
	f := newFixture(t)
	f.write(t, "same.txt", "x")
	_ = f.s.BeginRename("same.txt")
	if name, err := f.s.CommitEdit("same.txt"); err != nil || name != "same.txt" {
		t.Errorf("CommitEdit() = %q, %v", name, err)
	}
	if len(f.status.messages) != 0 {
		t.Errorf("unexpected status %v", f.status.messages)
	}
}

func TestInvalidNames(t *testing.T) {
	for _, name := range []string{"", ".", "..", "a/b", `a\b`} {
		f := newFixture(t)
		_, _ = f.s.BeginCreateFolder()
		_, err := f.s.CommitEdit(name)
		if !errors.Is(err, localfs.ErrInvalidPath) {
			t.Errorf("CommitEdit(%q) error = %v", name, err)
		}
		if f.status.last() != MsgInvalidName {
			t.Errorf("CommitEdit(%q) status = %q", name, f.status.last())
		}
	}
}
