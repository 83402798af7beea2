package localfs

import (
	"fmt"
	"sort"
	"strings"
)

// SortColumn identifies a listing column.
type SortColumn int

const (
	SortByName SortColumn = iota
	SortByType
	SortByModified
	SortBySize
)

var sortColumnNames = []string{"name", "type", "modified", "size"}

func (c SortColumn) String() string {
	if int(c) < len(sortColumnNames) {
		return sortColumnNames[c]
	}
	return "unknown"
}

// ParseSortColumn maps a column name ("name", "type", "modified", "size") to a SortColumn.
func ParseSortColumn(s string) (SortColumn, error) {
	for i, name := range sortColumnNames {
		if strings.EqualFold(s, name) {
			return SortColumn(i), nil
		}
	}
	return SortByName, fmt.Errorf("unknown sort column %q", s)
}

// SortEntries sorts entries in place by column and direction. Ties are broken
// by name so the order is deterministic.
func SortEntries(entries []Entry, column SortColumn, ascending bool) {
	less := func(a, b Entry) bool {
		switch column {
		case SortByType:
			if ta, tb := a.TypeLabel(), b.TypeLabel(); ta != tb {
				return ta < tb
			}
		case SortByModified:
			if !a.ModTime.Equal(b.ModTime) {
				return a.ModTime.Before(b.ModTime)
			}
		case SortBySize:
			if a.Size != b.Size {
				return a.Size < b.Size
			}
		}
		return naturalLess(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if ascending {
			return less(entries[i], entries[j])
		}
		return less(entries[j], entries[i])
	})
}

// naturalLess performs natural/numeric string comparison for sorting.
// "file2" < "file10" (unlike lexicographic "file10" < "file2").
// Equal numeric values with different leading zeros: shorter run wins.
func naturalLess(a, b string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			numStartA := i
			for i < len(a) && a[i] == '0' {
				i++
			}
			valStartA := i
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			numLenA := i - numStartA
			valA := a[valStartA:i]

			numStartB := j
			for j < len(b) && b[j] == '0' {
				j++
			}
			valStartB := j
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			numLenB := j - numStartB
			valB := b[valStartB:j]

			if len(valA) != len(valB) {
				return len(valA) < len(valB)
			}
			if valA != valB {
				return valA < valB
			}
			if numLenA != numLenB {
				return numLenA < numLenB
			}
			continue
		}

		if a[i] != b[j] {
			return a[i] < b[j]
		}
		i++
		j++
	}
	return len(a)-i < len(b)-j
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
