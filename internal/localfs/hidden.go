// Package localfs provides local filesystem operations for filedeck: directory
// listing, the hidden-entry predicate, display formatting, sorting and the
// Provider used by the session for every mutating call.
package localfs

import (
	"path/filepath"
	"strings"
)

// IsHidden reports whether the entry at path is hidden.
// On Windows the HIDDEN and SYSTEM attribute bits decide; everywhere else a
// leading dot in the base name does.
func IsHidden(path string) bool {
	name := filepath.Base(path)
	if name == "." || name == ".." {
		return false
	}
	return hiddenAttr(path, name)
}

// IsHiddenName returns true if the given filename (not path) uses the
// name-encoded hidden convention. "." and ".." are not considered hidden.
func IsHiddenName(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}
