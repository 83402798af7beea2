package gui

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/filedeck/filedeck/internal/localfs"
	"github.com/filedeck/filedeck/internal/state"
)

const (
	colCheck = iota
	colName
	colModified
	colType
	colSize
	columnCount
)

// doubleTapInterval is the longest gap between two taps on the same row
// that still counts as a double tap.
const doubleTapInterval = 400 * time.Millisecond

var columnTitles = [columnCount]string{"", "Name", "Modified On", "Type", "Size"}

var columnWidths = [columnCount]float32{36, 380, 150, 110, 100}

// FileTable is the sortable file list: a checkbox column for multi-select
// and the Name, Modified On, Type and Size columns. Rows come from a
// FileListState, which is fed by the session's listing events.
type FileTable struct {
	widget.BaseWidget

	state *state.FileListState
	table *widget.Table

	sortBy    localfs.SortColumn
	ascending bool

	lastTapRow  int
	lastTapTime time.Time

	// Callbacks
	OnOpen             func(entry localfs.Entry)                 // double tap on a row
	OnSort             func(column localfs.SortColumn, asc bool) // header tapped
	OnSelectionChanged func(selected []string)
}

// NewFileTable creates a table over s.
func NewFileTable(s *state.FileListState) *FileTable {
	t := &FileTable{state: s, lastTapRow: -1}
	t.ExtendBaseWidget(t)
	t.build()
	return t
}

func (t *FileTable) build() {
	t.table = widget.NewTableWithHeaders(
		func() (int, int) {
			return t.state.Count(), columnCount
		},
		func() fyne.CanvasObject {
			check := widget.NewCheck("", nil)
			icon := widget.NewIcon(theme.FileIcon())
			label := widget.NewLabel("placeholder")
			label.Truncation = fyne.TextTruncateEllipsis
			return container.NewBorder(nil, nil, container.NewHBox(check, icon), nil, label)
		},
		t.updateCell,
	)
	t.table.ShowHeaderColumn = false
	t.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("", nil)
	}
	t.table.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		btn := obj.(*widget.Button)
		btn.Importance = widget.LowImportance
		if id.Col == colCheck || id.Col < 0 {
			btn.SetText("")
			btn.OnTapped = nil
			return
		}
		column := columnSort(id.Col)
		btn.SetText(headerLabel(id.Col, t.sortBy, t.ascending))
		btn.OnTapped = func() {
			asc := nextSortDirection(column, t.sortBy, t.ascending)
			t.SetSort(column, asc)
			if t.OnSort != nil {
				t.OnSort(column, asc)
			}
		}
	}
	for col, w := range columnWidths {
		t.table.SetColumnWidth(col, w)
	}
	t.table.OnSelected = t.onSelected
}

// updateCell fills one cell. Called by fyne on the main thread.
func (t *FileTable) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	items := t.state.Items()
	if id.Row < 0 || id.Row >= len(items) {
		return
	}
	entry := items[id.Row]

	// Border layout: Objects[0] = center label, Objects[1] = left HBox
	row := obj.(*fyne.Container)
	label := row.Objects[0].(*widget.Label)
	left := row.Objects[1].(*fyne.Container)
	check := left.Objects[0].(*widget.Check)
	icon := left.Objects[1].(*widget.Icon)

	if id.Col == colCheck {
		label.Hide()
		icon.Hide()
		check.Show()
		// Capture the name, not the row: rows are recycled while scrolling.
		name := entry.Name
		check.OnChanged = nil
		check.SetChecked(t.state.IsSelected(name))
		check.OnChanged = func(checked bool) {
			if checked {
				t.state.Select(name)
			} else {
				t.state.Deselect(name)
			}
			t.notifySelection()
		}
		return
	}

	check.Hide()
	label.Show()
	label.SetText(cellText(entry, id.Col))
	label.Alignment = fyne.TextAlignLeading
	if id.Col == colSize {
		label.Alignment = fyne.TextAlignTrailing
	}
	label.Importance = widget.MediumImportance
	if entry.Cut {
		label.Importance = widget.LowImportance
	}

	if id.Col == colName {
		icon.Show()
		if entry.IsDir() {
			icon.SetResource(theme.FolderIcon())
		} else {
			icon.SetResource(theme.FileIcon())
		}
	} else {
		icon.Hide()
	}
}

// onSelected makes the tapped row the only selection; a second tap on the
// same row within doubleTapInterval opens it.
func (t *FileTable) onSelected(id widget.TableCellID) {
	t.table.Unselect(id)
	entry, ok := t.entryAt(id.Row)
	if !ok {
		return
	}

	now := time.Now()
	double := isDoubleTap(t.lastTapRow, t.lastTapTime, id.Row, now)
	t.lastTapRow, t.lastTapTime = id.Row, now

	t.state.SetCursor(id.Row)
	if double {
		t.lastTapRow = -1
		if t.OnOpen != nil {
			t.OnOpen(entry)
		}
		return
	}
	if id.Col != colCheck {
		t.state.SetSelection([]string{entry.Name})
		t.table.Refresh()
		t.notifySelection()
	}
}

func (t *FileTable) entryAt(row int) (localfs.Entry, bool) {
	items := t.state.Items()
	if row < 0 || row >= len(items) {
		return localfs.Entry{}, false
	}
	return items[row], true
}

func (t *FileTable) notifySelection() {
	if t.OnSelectionChanged != nil {
		t.OnSelectionChanged(t.state.Selected())
	}
}

// SetSort updates the header arrows. It does not reorder rows; the session
// publishes a sorted listing.
func (t *FileTable) SetSort(column localfs.SortColumn, ascending bool) {
	t.sortBy = column
	t.ascending = ascending
	t.table.Refresh()
}

// Refresh redraws the rows. Must be called on the main thread.
func (t *FileTable) Refresh() {
	t.table.Refresh()
}

// ScrollToCursor scrolls the cursor row into view.
func (t *FileTable) ScrollToCursor() {
	if t.state.Count() > 0 {
		t.table.ScrollTo(widget.TableCellID{Row: t.state.Cursor(), Col: colName})
	}
}

// ScrollToTop scrolls to the first row.
func (t *FileTable) ScrollToTop() {
	t.table.ScrollToTop()
}

// CreateRenderer implements fyne.Widget
func (t *FileTable) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.table)
}

// columnSort maps a table column to the listing sort column.
func columnSort(col int) localfs.SortColumn {
	switch col {
	case colModified:
		return localfs.SortByModified
	case colType:
		return localfs.SortByType
	case colSize:
		return localfs.SortBySize
	default:
		return localfs.SortByName
	}
}

// headerLabel returns the column title with an arrow on the sorted column.
func headerLabel(col int, sortBy localfs.SortColumn, ascending bool) string {
	title := columnTitles[col]
	if col == colCheck || columnSort(col) != sortBy {
		return title
	}
	if ascending {
		return title + " ▲"
	}
	return title + " ▼"
}

// nextSortDirection flips the direction when the sorted column is tapped
// again and starts ascending on a new column.
func nextSortDirection(column, sortBy localfs.SortColumn, ascending bool) bool {
	if column == sortBy {
		return !ascending
	}
	return true
}

// cellText returns the text of entry in a data column.
func cellText(entry localfs.Entry, col int) string {
	switch col {
	case colName:
		return entry.Name
	case colModified:
		return entry.ModifiedLabel()
	case colType:
		return entry.TypeLabel()
	case colSize:
		return strings.TrimSpace(entry.SizeLabel())
	}
	return ""
}

func isDoubleTap(lastRow int, lastTime time.Time, row int, now time.Time) bool {
	return lastRow == row && now.Sub(lastTime) < doubleTapInterval
}
