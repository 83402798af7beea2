//go:build windows

package localfs

import (
	"golang.org/x/sys/windows"
)

// hiddenAttr reads the file attributes; entries whose attributes cannot be
// read are treated as visible.
func hiddenAttr(path string, _ string) bool {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&(windows.FILE_ATTRIBUTE_HIDDEN|windows.FILE_ATTRIBUTE_SYSTEM) != 0
}
