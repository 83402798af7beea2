package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/filedeck/filedeck/internal/actions"
)

// setupKeys binds keyboard input. Plain keys only act while no entry has
// focus, so typing in the address, filter or edit fields is unaffected.
func (ui *UI) setupKeys() {
	c := ui.window.Canvas()
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if c.Focused() != nil {
			return
		}
		ui.onKey(ev.Name)
	})

	c.AddShortcut(&fyne.ShortcutCopy{}, func(fyne.Shortcut) { ui.do(actions.Copy) })
	c.AddShortcut(&fyne.ShortcutCut{}, func(fyne.Shortcut) { ui.do(actions.Cut) })
	c.AddShortcut(&fyne.ShortcutPaste{}, func(fyne.Shortcut) { ui.do(actions.Paste) })
	c.AddShortcut(&fyne.ShortcutSelectAll{}, func(fyne.Shortcut) {
		ui.list.SelectAll()
		ui.table.Refresh()
	})

	custom := []struct {
		key      fyne.KeyName
		modifier fyne.KeyModifier
		run      func()
	}{
		{fyne.KeyN, fyne.KeyModifierShortcutDefault, func() { ui.do(actions.NewFile) }},
		{fyne.KeyN, fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift, func() { ui.do(actions.NewFolder) }},
		{fyne.KeyC, fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift, func() { ui.do(actions.CopyPath) }},
		{fyne.KeyH, fyne.KeyModifierShortcutDefault, func() { ui.hiddenCheck.SetChecked(!ui.hiddenCheck.Checked) }},
		{fyne.KeyL, fyne.KeyModifierShortcutDefault, func() { c.Focus(ui.addressEntry) }},
		{fyne.KeyF, fyne.KeyModifierShortcutDefault, func() { c.Focus(ui.filterEntry) }},
		{fyne.KeyR, fyne.KeyModifierShortcutDefault, ui.refresh},
		{fyne.KeyLeft, fyne.KeyModifierAlt, func() { ui.do(actions.Back) }},
		{fyne.KeyRight, fyne.KeyModifierAlt, func() { ui.do(actions.Forward) }},
		{fyne.KeyUp, fyne.KeyModifierAlt, func() { ui.do(actions.Up) }},
	}
	for _, k := range custom {
		run := k.run
		c.AddShortcut(&desktop.CustomShortcut{KeyName: k.key, Modifier: k.modifier}, func(fyne.Shortcut) { run() })
	}
}

// onKey handles an unmodified key press on the file table.
func (ui *UI) onKey(name fyne.KeyName) {
	switch name {
	case fyne.KeyBackspace:
		ui.do(actions.Back)
	case fyne.KeyF2:
		ui.do(actions.Rename)
	case fyne.KeyF5:
		ui.refresh()
	case fyne.KeyDelete:
		ui.do(actions.Delete)
	case fyne.KeyReturn, fyne.KeyEnter:
		if entry, ok := ui.list.Current(); ok {
			ui.dispatch(actions.Open, actions.Request{Selection: []string{entry.Name}})
		}
	case fyne.KeyUp:
		ui.moveCursor(-1)
	case fyne.KeyDown:
		ui.moveCursor(1)
	case fyne.KeyEscape:
		ui.list.ClearSelection()
		ui.table.Refresh()
	}
}

// moveCursor moves the cursor row and selects the entry under it.
func (ui *UI) moveCursor(delta int) {
	ui.list.MoveCursor(delta)
	if entry, ok := ui.list.Current(); ok {
		ui.list.SetSelection([]string{entry.Name})
	}
	ui.table.Refresh()
	ui.table.ScrollToCursor()
}

// buildMenu builds the main menu from the action descriptors.
func (ui *UI) buildMenu() *fyne.MainMenu {
	item := func(id actions.ID, run func()) *fyne.MenuItem {
		d, _ := actions.Lookup(id)
		return fyne.NewMenuItem(d.Label, run)
	}
	doItem := func(id actions.ID) *fyne.MenuItem {
		return item(id, func() { ui.do(id) })
	}

	hidden := item(actions.ToggleHidden, nil)
	hidden.Checked = ui.hiddenCheck.Checked
	hidden.Action = func() {
		ui.hiddenCheck.SetChecked(!ui.hiddenCheck.Checked)
		hidden.Checked = ui.hiddenCheck.Checked
		ui.window.MainMenu().Refresh()
	}

	goItems := []*fyne.MenuItem{
		doItem(actions.Back), doItem(actions.Forward), doItem(actions.Up), doItem(actions.Home),
		fyne.NewMenuItemSeparator(),
	}
	for _, sc := range ui.shortcuts {
		name := sc.Name
		goItems = append(goItems, fyne.NewMenuItem(name, func() {
			ui.dispatch(actions.Shortcut, actions.Request{Text: name})
		}))
	}

	return fyne.NewMainMenu(
		fyne.NewMenu("File", doItem(actions.NewFolder), doItem(actions.NewFile)),
		fyne.NewMenu("Edit",
			doItem(actions.Copy), doItem(actions.Cut), doItem(actions.Paste), doItem(actions.CopyPath),
			fyne.NewMenuItemSeparator(),
			doItem(actions.Rename), item(actions.BulkRename, ui.showBulkRename),
			item(actions.Drop, ui.showMoveTo), doItem(actions.Delete),
		),
		fyne.NewMenu("View", hidden, item(actions.Sort, ui.showSort), item(actions.Refresh, ui.refresh)),
		fyne.NewMenu("Go", goItems...),
	)
}
