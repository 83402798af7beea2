package localfs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ListDirectory returns the contents of a directory, filtered by options, in
// the filesystem's enumeration order (os.ReadDir sorts by name).
// Entries that cannot be stat'ed are skipped.
func ListDirectory(path string, opts ListOptions) ([]Entry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, Classify(err)
	}

	filter := strings.ToLower(opts.Filter)
	result := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		fullPath := filepath.Join(path, name)

		hidden := IsHidden(fullPath)
		if hidden && !opts.IncludeHidden {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}

		info, err := de.Info()
		if err != nil {
			continue
		}
		// Follow symlinks so a link to a directory lists as a directory.
		if info.Mode()&os.ModeSymlink != 0 {
			if target, statErr := os.Stat(fullPath); statErr == nil {
				info = target
			}
		}

		entry := Entry{
			Path:    fullPath,
			Name:    name,
			Kind:    KindFile,
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Mode:    info.Mode(),
			Hidden:  hidden,
		}
		if info.IsDir() {
			entry.Kind = KindDirectory
			entry.Size = 0
		}
		result = append(result, entry)
	}

	return result, nil
}

// Probe verifies that path is a directory whose contents can be enumerated.
// It reads a single entry, which is enough to surface permission errors.
func Probe(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return Classify(err)
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return Classify(err)
	}
	return nil
}
