package localfs

import (
	"io/fs"
	"strings"
	"time"

	"github.com/filedeck/filedeck/internal/constants"
)

// Kind distinguishes directories from everything else.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	if k == KindDirectory {
		return "Directory"
	}
	return "File"
}

// Entry represents a file or directory in a listing. Entries are rebuilt on
// every listing and never cached.
type Entry struct {
	Path    string      // Full path to the entry
	Name    string      // Base name
	Kind    Kind        // Directory or File
	Size    int64       // Size in bytes (0 for directories)
	ModTime time.Time   // Last modification time
	Mode    fs.FileMode // File mode/permissions
	Hidden  bool        // Hidden per platform convention
	Cut     bool        // Marked by a pending cut on the clipboard
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

// Suffix returns the final ".ext" of name. Names whose only dot leads
// (".bashrc") or ends them ("notes.") have no suffix.
func Suffix(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// TypeLabel returns the "Type" column text: "Folder", "TXT File" or "File".
func (e Entry) TypeLabel() string {
	if e.IsDir() {
		return "Folder"
	}
	ext := strings.TrimPrefix(Suffix(e.Name), ".")
	if ext == "" {
		return "File"
	}
	return strings.ToUpper(ext) + " File"
}

// SizeLabel returns the formatted size for files and an empty string for directories.
func (e Entry) SizeLabel() string {
	if e.IsDir() {
		return ""
	}
	return FormatSize(e.Size)
}

// ModifiedLabel returns the "Modified On" column text.
func (e Entry) ModifiedLabel() string {
	if e.ModTime.IsZero() {
		return ""
	}
	return e.ModTime.Format(constants.ModTimeLayout)
}
