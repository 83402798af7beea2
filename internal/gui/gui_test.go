package gui

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"fyne.io/fyne/v2/theme"

	"github.com/filedeck/filedeck/internal/localfs"
	"github.com/filedeck/filedeck/internal/session"
)

func TestCellText(t *testing.T) {
	mod := time.Date(2024, 3, 9, 14, 5, 0, 0, time.Local)
	file := localfs.Entry{Name: "report.txt", Kind: localfs.KindFile, Size: 1536, ModTime: mod}
	dir := localfs.Entry{Name: "src", Kind: localfs.KindDirectory, ModTime: mod}

	tests := []struct {
		name  string
		entry localfs.Entry
		col   int
		want  string
	}{
		{"file name", file, colName, "report.txt"},
		{"file type", file, colType, "TXT File"},
		{"file size", file, colSize, "1.5 KB"},
		{"modified", file, colModified, "09.03.2024 14:05"},
		{"folder type", dir, colType, "Folder"},
		{"folder size", dir, colSize, ""},
		{"check column", file, colCheck, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cellText(tt.entry, tt.col); got != tt.want {
				t.Errorf("cellText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHeaderLabel(t *testing.T) {
	if got := headerLabel(colName, localfs.SortByName, true); got != "Name ▲" {
		t.Errorf("headerLabel(name, asc) = %q", got)
	}
	if got := headerLabel(colSize, localfs.SortBySize, false); got != "Size ▼" {
		t.Errorf("headerLabel(size, desc) = %q", got)
	}
	if got := headerLabel(colType, localfs.SortByName, true); got != "Type" {
		t.Errorf("headerLabel(unsorted) = %q", got)
	}
	if got := headerLabel(colCheck, localfs.SortByName, true); got != "" {
		t.Errorf("headerLabel(check) = %q", got)
	}
}

func TestColumnSort(t *testing.T) {
	want := map[int]localfs.SortColumn{
		colName:     localfs.SortByName,
		colModified: localfs.SortByModified,
		colType:     localfs.SortByType,
		colSize:     localfs.SortBySize,
	}
	for col, sortBy := range want {
		if got := columnSort(col); got != sortBy {
			t.Errorf("columnSort(%d) = %v, want %v", col, got, sortBy)
		}
	}
}

func TestNextSortDirection(t *testing.T) {
	if nextSortDirection(localfs.SortByName, localfs.SortByName, true) {
		t.Error("tapping the sorted column should flip to descending")
	}
	if !nextSortDirection(localfs.SortByName, localfs.SortByName, false) {
		t.Error("tapping the sorted column should flip to ascending")
	}
	if !nextSortDirection(localfs.SortBySize, localfs.SortByName, false) {
		t.Error("a new column should start ascending")
	}
}

func TestIsDoubleTap(t *testing.T) {
	now := time.Now()
	if !isDoubleTap(3, now.Add(-100*time.Millisecond), 3, now) {
		t.Error("quick second tap on the same row should be a double tap")
	}
	if isDoubleTap(3, now.Add(-time.Second), 3, now) {
		t.Error("slow second tap should not be a double tap")
	}
	if isDoubleTap(2, now, 3, now) {
		t.Error("tap on another row should not be a double tap")
	}
}

func TestTreeLabel(t *testing.T) {
	root := treeRoots(t.TempDir())[0]
	if got := treeLabel(root); got != root {
		t.Errorf("treeLabel(root) = %q, want %q", got, root)
	}
	if got := treeLabel(filepath.Join(root, "usr", "share")); got != "share" {
		t.Errorf("treeLabel(nested) = %q, want share", got)
	}
	if runtime.GOOS != "windows" && root != "/" {
		t.Errorf("treeRoots() = %q, want /", root)
	}
}

func TestMoveTargets(t *testing.T) {
	items := []localfs.Entry{
		{Name: "a", Kind: localfs.KindDirectory},
		{Name: "b", Kind: localfs.KindDirectory},
		{Name: "c.txt", Kind: localfs.KindFile},
	}
	got := moveTargets(items, []string{"a", "c.txt"})
	if len(got) != 1 || got[0] != "b" {
		t.Errorf("moveTargets() = %v, want [b]", got)
	}
}

func TestSortColumnLabels(t *testing.T) {
	got := sortColumnLabels()
	want := []string{"Name", "Type", "Modified", "Size"}
	if len(got) != len(want) {
		t.Fatalf("sortColumnLabels() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEditPrompt(t *testing.T) {
	if got := editPrompt(session.EditCreateFolder.String()); got != "New folder name:" {
		t.Errorf("editPrompt(create-folder) = %q", got)
	}
	if got := editPrompt(session.EditRename.String()); got != "Rename to:" {
		t.Errorf("editPrompt(rename) = %q", got)
	}
	if got := editPrompt("bogus"); got != "Name:" {
		t.Errorf("editPrompt(bogus) = %q", got)
	}
}

func TestDeckTheme(t *testing.T) {
	th := newDeckTheme(15)
	if got := th.Size(theme.SizeNameText); got != 15 {
		t.Errorf("text size = %v, want 15", got)
	}
	if got := th.Size(theme.SizeNameHeadingText); got != 20 {
		t.Errorf("heading size = %v, want 20", got)
	}
	if got := newDeckTheme(99).Size(theme.SizeNameText); got != 13 {
		t.Errorf("out of range text size = %v, want default 13", got)
	}
	if th.Color(theme.ColorNameSelection, theme.VariantLight) == th.Color(theme.ColorNameSelection, theme.VariantDark) {
		t.Error("selection tint should differ between variants")
	}
	if got, want := th.Color(theme.ColorNameForeground, theme.VariantDark), theme.DefaultTheme().Color(theme.ColorNameForeground, theme.VariantDark); got != want {
		t.Errorf("foreground = %v, want default %v", got, want)
	}
}
