//go:build !windows

package localfs

func hiddenAttr(_ string, name string) bool {
	return IsHiddenName(name)
}
