package localfs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/filedeck/filedeck/internal/constants"
)

var sizeSuffixes = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count with a binary unit suffix. The number keeps
// at most two decimals, drops trailing zeros, and is right-justified so that
// a column of sizes lines up: 1536 -> "   1.5 KB".
// Sizes beyond the largest unit stay in TB. Negative sizes (unknown) render empty.
func FormatSize(size int64) string {
	if size < 0 {
		return ""
	}
	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(sizeSuffixes)-1 {
		value /= 1024
		unit++
	}
	num := strconv.FormatFloat(value, 'f', 2, 64)
	num = strings.TrimSuffix(strings.TrimRight(num, "0"), ".")
	return fmt.Sprintf("%*s %s", constants.SizeNumberWidth, num, sizeSuffixes[unit])
}
