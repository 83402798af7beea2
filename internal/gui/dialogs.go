package gui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/filedeck/filedeck/internal/actions"
	"github.com/filedeck/filedeck/internal/events"
	"github.com/filedeck/filedeck/internal/localfs"
	"github.com/filedeck/filedeck/internal/session"
)

// confirm shows a yes/no dialog and blocks until it is answered. It is the
// session's Confirmer and runs on the worker goroutine, never on the main
// thread.
func (ui *UI) confirm(title, message string) bool {
	answer := make(chan bool, 1)
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, func(ok bool) { answer <- ok }, ui.window)
	})
	select {
	case ok := <-answer:
		return ok
	case <-ui.ctx.Done():
		return false
	}
}

// showMessage shows an information box from any goroutine.
func (ui *UI) showMessage(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, ui.window)
	})
}

// showBulkRename asks for the bulk rename options and shows a preview of
// the first new name.
func (ui *UI) showBulkRename() {
	selected := ui.list.Selected()

	onlySelected := widget.NewCheck("", nil)
	onlySelected.Checked = len(selected) > 0
	extEntry := widget.NewEntry()
	extEntry.SetPlaceHolder("any")
	prefixEntry := widget.NewEntry()
	startEntry := widget.NewEntry()
	startEntry.SetText("1")
	preview := widget.NewLabel("")

	options := func() (session.BulkRenameOptions, bool) {
		start, err := strconv.Atoi(strings.TrimSpace(startEntry.Text))
		return session.BulkRenameOptions{
			OnlySelected: onlySelected.Checked,
			Extension:    strings.TrimPrefix(strings.TrimSpace(extEntry.Text), "."),
			Prefix:       prefixEntry.Text,
			Start:        start,
		}, err == nil
	}
	updatePreview := func(string) {
		opts, ok := options()
		if !ok {
			preview.SetText("Start must be a whole number")
			return
		}
		preview.SetText(session.PreviewName(opts))
	}
	prefixEntry.OnChanged = updatePreview
	startEntry.OnChanged = updatePreview
	updatePreview("")

	items := []*widget.FormItem{
		widget.NewFormItem("Only selected", onlySelected),
		widget.NewFormItem("Extension", extEntry),
		widget.NewFormItem("Prefix", prefixEntry),
		widget.NewFormItem("Start", startEntry),
		widget.NewFormItem("Preview", preview),
	}
	d := dialog.NewForm("Bulk Rename", "Rename", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		opts, valid := options()
		if !valid {
			dialog.ShowInformation("Bulk Rename", "Start must be a whole number", ui.window)
			return
		}
		ui.dispatch(actions.BulkRename, actions.Request{Selection: selected, Bulk: opts})
	}, ui.window)
	d.Resize(fyne.NewSize(420, 0))
	d.Show()
}

// showSort asks for a sort column and direction.
func (ui *UI) showSort() {
	names := sortColumnLabels()
	column := widget.NewSelect(names, nil)
	column.SetSelectedIndex(int(ui.table.sortBy))
	direction := widget.NewRadioGroup([]string{"Ascending", "Descending"}, nil)
	direction.Horizontal = true
	if ui.table.ascending {
		direction.SetSelected("Ascending")
	} else {
		direction.SetSelected("Descending")
	}

	items := []*widget.FormItem{
		widget.NewFormItem("Sort by", column),
		widget.NewFormItem("Order", direction),
	}
	dialog.ShowForm("Sort", "Apply", "Cancel", items, func(ok bool) {
		if !ok || column.SelectedIndex() < 0 {
			return
		}
		sortBy := localfs.SortColumn(column.SelectedIndex())
		asc := direction.Selected != "Descending"
		ui.table.SetSort(sortBy, asc)
		ui.dispatch(actions.Sort, actions.Request{SortBy: sortBy, Ascending: asc})
	}, ui.window)
}

// showMoveTo moves the selection into a folder of the current directory,
// the keyboard and menu counterpart of dragging onto a folder row.
func (ui *UI) showMoveTo() {
	selected := ui.list.Selected()
	if len(selected) == 0 {
		ui.bus.Status(events.InfoLevel, session.MsgNothingSelected)
		return
	}
	folders := moveTargets(ui.list.Items(), selected)
	if len(folders) == 0 {
		dialog.ShowInformation("Move to folder", "There is no folder to move into.", ui.window)
		return
	}

	target := widget.NewSelect(folders, nil)
	target.SetSelectedIndex(0)
	items := []*widget.FormItem{widget.NewFormItem("Folder", target)}
	dialog.ShowForm("Move to folder", "Move", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		ui.dispatch(actions.Drop, actions.Request{Target: target.Selected, Selection: selected})
	}, ui.window)
}

// moveTargets lists the folder names in items that are not being moved.
func moveTargets(items []localfs.Entry, moving []string) []string {
	skip := make(map[string]bool, len(moving))
	for _, name := range moving {
		skip[name] = true
	}
	var folders []string
	for _, e := range items {
		if e.IsDir() && !skip[e.Name] {
			folders = append(folders, e.Name)
		}
	}
	return folders
}

func sortColumnLabels() []string {
	labels := make([]string, 0, 4)
	for c := localfs.SortByName; c <= localfs.SortBySize; c++ {
		name := c.String()
		labels = append(labels, strings.ToUpper(name[:1])+name[1:])
	}
	return labels
}
