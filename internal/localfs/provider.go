package localfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// Provider is the set of filesystem primitives the session relies on.
// All returned errors are classified (see Classify).
type Provider interface {
	List(dir string, opts ListOptions) ([]Entry, error)
	Stat(path string) (Entry, error)
	Probe(dir string) error
	CreateDir(path string) error
	CreateEmptyFile(path string) error
	// Rename never replaces an existing destination.
	Rename(src, dst string) error
	// Move replaces an existing destination file.
	Move(src, dst string) error
	RemoveFile(path string) error
	RemoveTree(path string) error
	CopyFile(src, dst string) error
	// CopyTree merges src into dst, replacing files that already exist.
	CopyTree(src, dst string) error
}

// OS implements Provider on top of the os package.
type OS struct{}

// NewOS returns the operating system provider.
func NewOS() *OS {
	return &OS{}
}

// List implements Provider.
func (OS) List(dir string, opts ListOptions) ([]Entry, error) {
	return ListDirectory(dir, opts)
}

// Stat implements Provider. Symlinks are followed.
func (OS) Stat(path string) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, Classify(err)
	}
	e := Entry{
		Path:    path,
		Name:    filepath.Base(path),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Mode:    info.Mode(),
		Hidden:  IsHidden(path),
	}
	if info.IsDir() {
		e.Kind = KindDirectory
		e.Size = 0
	}
	return e, nil
}

// Probe implements Provider.
func (OS) Probe(dir string) error {
	return Probe(dir)
}

// CreateDir implements Provider.
func (OS) CreateDir(path string) error {
	return Classify(os.Mkdir(path, 0o755))
}

// CreateEmptyFile implements Provider. Creation is exclusive, so an existing
// entry of the same name yields ErrAlreadyExists instead of being truncated.
func (OS) CreateEmptyFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Classify(err)
	}
	return Classify(f.Close())
}

// Rename implements Provider.
func (OS) Rename(src, dst string) error {
	if src == dst {
		return nil
	}
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return Classify(err)
	}
	// A case-only rename on a case-insensitive filesystem resolves dst to src itself.
	if dstInfo, err := os.Lstat(dst); err == nil && !os.SameFile(srcInfo, dstInfo) {
		return fmt.Errorf("rename %s: %w", filepath.Base(dst), ErrAlreadyExists)
	}
	return Classify(os.Rename(src, dst))
}

// Move implements Provider. Moves across devices fall back to copy and remove.
func (p OS) Move(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return Classify(err)
	}
	err = os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return Classify(err)
	}
	if info.IsDir() {
		if err := p.CopyTree(src, dst); err != nil {
			return err
		}
		return p.RemoveTree(src)
	}
	if err := p.CopyFile(src, dst); err != nil {
		return err
	}
	return p.RemoveFile(src)
}

// RemoveFile implements Provider.
func (OS) RemoveFile(path string) error {
	return Classify(os.Remove(path))
}

// RemoveTree implements Provider. A missing path is reported as ErrNotFound.
func (OS) RemoveTree(path string) error {
	if _, err := os.Lstat(path); err != nil {
		return Classify(err)
	}
	return Classify(os.RemoveAll(path))
}

// CopyFile implements Provider.
func (OS) CopyFile(src, dst string) error {
	if SamePath(src, dst) {
		return fmt.Errorf("copy %s: %w", filepath.Base(src), ErrSameSource)
	}
	return Classify(copyFile(src, dst))
}

// CopyTree implements Provider. Copying a directory into itself or one of its
// descendants is rejected with ErrSameSource.
func (OS) CopyTree(src, dst string) error {
	if SamePath(src, dst) || IsWithin(dst, src) {
		return fmt.Errorf("copy %s: %w", filepath.Base(src), ErrSameSource)
	}
	return Classify(copyTree(src, dst))
}

// SamePath reports whether two paths are equal after cleaning.
func SamePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// IsWithin reports whether path lies strictly inside dir.
func IsWithin(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
