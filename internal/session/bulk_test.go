package session

import (
	"errors"
	"testing"
)

func TestPreviewName(t *testing.T) {
	if got := PreviewName(BulkRenameOptions{Prefix: "img_", Start: 7}); got != "img_7" {
		t.Errorf("PreviewName() = %q", got)
	}
}

func TestBulkRenameAll(t *testing.T) {
	f := newFixture(t)
	f.write(t, "b.jpg", "")
	f.write(t, "a.png", "")
	f.write(t, "c", "")
	f.mkdir(t, "dir")
	f.s.Refresh()

	n, err := f.s.BulkRename(BulkRenameOptions{Prefix: "img", Start: 1}, nil)
	if err != nil || n != 3 {
		t.Fatalf("BulkRename() = %d, %v", n, err)
	}
	for _, name := range []string{"img1.png", "img2.jpg", "img3", "dir"} {
		if !f.exists(name) {
			t.Errorf("%s missing after bulk rename", name)
		}
	}
}

func TestBulkRenameExtensionFilter(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.txt", "")
	f.write(t, "b.TXT", "")
	f.write(t, "c", "")
	f.write(t, "d.txt", "")

	n, err := f.s.BulkRename(BulkRenameOptions{Extension: "txt", Prefix: "n", Start: 10}, nil)
	if err != nil || n != 2 {
		t.Fatalf("BulkRename() = %d, %v", n, err)
	}
	for _, name := range []string{"n10.txt", "n11.txt", "b.TXT", "c"} {
		if !f.exists(name) {
			t.Errorf("%s missing", name)
		}
	}
}

func TestBulkRenameOnlySelected(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.txt", "")
	f.write(t, "b.txt", "")
	f.write(t, "c.txt", "")
	f.s.Refresh()

	n, err := f.s.BulkRename(BulkRenameOptions{OnlySelected: true, Prefix: "s", Start: 1}, []string{"a.txt", "c.txt"})
	if err != nil || n != 2 {
		t.Fatalf("BulkRename() = %d, %v", n, err)
	}
	for _, name := range []string{"s1.txt", "b.txt", "s2.txt"} {
		if !f.exists(name) {
			t.Errorf("%s missing", name)
		}
	}
}

func TestBulkRenameEmptySelectionRejectedBeforeFilesystem(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.txt", "")
	f.mkdir(t, "dir")
	f.s.Refresh()
	f.fs.calls = 0

	for _, selected := range [][]string{nil, {"dir"}} {
		_, err := f.s.BulkRename(BulkRenameOptions{OnlySelected: true, Prefix: "x", Start: 1}, selected)
		if !errors.Is(err, ErrNothingSelected) {
			t.Errorf("selected %v: error = %v", selected, err)
		}
	}
	if f.fs.calls != 0 {
		t.Errorf("rejected bulk rename made %d filesystem calls", f.fs.calls)
	}
	if !f.exists("a.txt") {
		t.Error("file renamed")
	}
}

func TestBulkRenameIllegalPrefix(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.txt", "")
	f.fs.calls = 0

	for _, prefix := range []string{"a<b", "x:", `q"`, "sl/ash", `back\`, "p|", "w?", "star*", ">"} {
		if _, err := f.s.BulkRename(BulkRenameOptions{Prefix: prefix}, nil); !errors.Is(err, ErrIllegalPrefix) {
			t.Errorf("prefix %q: error = %v", prefix, err)
		}
	}
	if f.fs.calls != 0 {
		t.Errorf("rejected bulk rename made %d filesystem calls", f.fs.calls)
	}
}

func TestBulkRenameSelectionCheckedBeforePrefix(t *testing.T) {
	f := newFixture(t)
	_, err := f.s.BulkRename(BulkRenameOptions{OnlySelected: true, Prefix: "*"}, nil)
	if !errors.Is(err, ErrNothingSelected) {
		t.Errorf("error = %v, want ErrNothingSelected", err)
	}
}

func TestBulkRenameCollisionAborts(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.txt", "A")
	f.write(t, "b.txt", "B")
	f.write(t, "c.txt", "C")
	f.write(t, "p2.txt", "P")

	n, err := f.s.BulkRename(BulkRenameOptions{Prefix: "p", Start: 1}, nil)
	var collision *CollisionError
	if !errors.As(err, &collision) || collision.Name != "b.txt" {
		t.Fatalf("error = %v, want collision on b.txt", err)
	}
	if n != 1 {
		t.Errorf("renamed = %d, want 1", n)
	}
	if f.status.last() != MsgAborted {
		t.Errorf("status = %q", f.status.last())
	}
	if f.read(t, "p1.txt") != "A" || f.read(t, "b.txt") != "B" || f.read(t, "c.txt") != "C" || f.read(t, "p2.txt") != "P" {
		t.Error("unexpected filesystem state after abort")
	}
}

func TestBulkRenameNoSuitableFiles(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.txt", "")
	f.mkdir(t, "dir")

	_, err := f.s.BulkRename(BulkRenameOptions{Extension: "jpg", Prefix: "x"}, nil)
	if !errors.Is(err, ErrNoSuitableFiles) {
		t.Errorf("error = %v, want ErrNoSuitableFiles", err)
	}
}

func TestBulkRenameIncludesHiddenFiles(t *testing.T) {
	f := newFixture(t)
	f.write(t, ".env", "")
	f.write(t, ".notes.txt", "")

	n, err := f.s.BulkRename(BulkRenameOptions{Prefix: "h", Start: 0}, nil)
	if err != nil || n != 2 {
		t.Fatalf("BulkRename() = %d, %v", n, err)
	}
	if !f.exists("h0") || !f.exists("h1.txt") {
		t.Error("hidden files not renamed as expected")
	}
}
