package localfs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestOSRename(t *testing.T) {
	p := NewOS()
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	writeFile(t, a, "A")
	writeFile(t, b, "B")

	if err := p.Rename(a, b); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("Rename onto existing = %v, want ErrAlreadyExists", err)
	}
	if readFile(t, b) != "B" {
		t.Error("destination was overwritten")
	}

	c := filepath.Join(dir, "c.txt")
	if err := p.Rename(a, c); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if readFile(t, c) != "A" {
		t.Error("renamed file has wrong content")
	}
	if err := p.Rename(c, c); err != nil {
		t.Errorf("Rename to itself = %v, want nil", err)
	}
	if err := p.Rename(filepath.Join(dir, "missing"), filepath.Join(dir, "x")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Rename missing = %v, want ErrNotFound", err)
	}
}

func TestOSCreate(t *testing.T) {
	p := NewOS()
	dir := t.TempDir()

	file := filepath.Join(dir, "new.txt")
	if err := p.CreateEmptyFile(file); err != nil {
		t.Fatalf("CreateEmptyFile: %v", err)
	}
	writeFile(t, file, "keep")
	if err := p.CreateEmptyFile(file); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("second CreateEmptyFile = %v, want ErrAlreadyExists", err)
	}
	if readFile(t, file) != "keep" {
		t.Error("existing file was truncated")
	}

	sub := filepath.Join(dir, "sub")
	if err := p.CreateDir(sub); err != nil {
		t.Fatalf("CreateDir: %v", err)
	}
	if err := p.CreateDir(sub); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("second CreateDir = %v, want ErrAlreadyExists", err)
	}
}

func TestOSCopyTreeMerges(t *testing.T) {
	p := NewOS()
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	writeFile(t, filepath.Join(src, "one.txt"), "new one")
	writeFile(t, filepath.Join(src, "nested", "two.txt"), "two")
	writeFile(t, filepath.Join(dst, "one.txt"), "old one")
	writeFile(t, filepath.Join(dst, "keep.txt"), "keep")

	if err := p.CopyTree(src, dst); err != nil {
		t.Fatalf("CopyTree: %v", err)
	}
	if got := readFile(t, filepath.Join(dst, "one.txt")); got != "new one" {
		t.Errorf("one.txt = %q, want replaced content", got)
	}
	if got := readFile(t, filepath.Join(dst, "nested", "two.txt")); got != "two" {
		t.Errorf("nested/two.txt = %q", got)
	}
	if got := readFile(t, filepath.Join(dst, "keep.txt")); got != "keep" {
		t.Errorf("keep.txt = %q, merge must keep existing files", got)
	}
	if readFile(t, filepath.Join(src, "one.txt")) != "new one" {
		t.Error("source modified by copy")
	}
}

func TestOSCopyTreeIntoItself(t *testing.T) {
	p := NewOS()
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeFile(t, filepath.Join(src, "f.txt"), "x")

	if err := p.CopyTree(src, filepath.Join(src, "src")); !errors.Is(err, ErrSameSource) {
		t.Errorf("CopyTree into itself = %v, want ErrSameSource", err)
	}
	if err := p.CopyFile(filepath.Join(src, "f.txt"), filepath.Join(src, "f.txt")); !errors.Is(err, ErrSameSource) {
		t.Errorf("CopyFile onto itself = %v, want ErrSameSource", err)
	}
}

func TestOSMoveAndRemove(t *testing.T) {
	p := NewOS()
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	writeFile(t, src, "A")
	writeFile(t, dst, "B")

	if err := p.Move(src, dst); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if readFile(t, dst) != "A" {
		t.Error("Move did not replace destination")
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source still exists after move")
	}

	tree := filepath.Join(dir, "tree")
	writeFile(t, filepath.Join(tree, "x", "y.txt"), "y")
	if err := p.RemoveTree(tree); err != nil {
		t.Fatalf("RemoveTree: %v", err)
	}
	if err := p.RemoveTree(tree); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveTree missing = %v, want ErrNotFound", err)
	}
	if err := p.RemoveFile(src); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveFile missing = %v, want ErrNotFound", err)
	}
}

func TestIsWithin(t *testing.T) {
	tests := []struct {
		path, dir string
		want      bool
	}{
		{"/a/b/c", "/a/b", true},
		{"/a/b", "/a/b", false},
		{"/a/bc", "/a/b", false},
		{"/a", "/a/b", false},
	}
	for _, tt := range tests {
		if got := IsWithin(filepath.FromSlash(tt.path), filepath.FromSlash(tt.dir)); got != tt.want {
			t.Errorf("IsWithin(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
		}
	}
}
