package gui

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/filedeck/filedeck/internal/actions"
	"github.com/filedeck/filedeck/internal/config"
	"github.com/filedeck/filedeck/internal/constants"
	"github.com/filedeck/filedeck/internal/events"
	"github.com/filedeck/filedeck/internal/localfs"
	"github.com/filedeck/filedeck/internal/logging"
	"github.com/filedeck/filedeck/internal/opener"
	"github.com/filedeck/filedeck/internal/progress"
	"github.com/filedeck/filedeck/internal/session"
	"github.com/filedeck/filedeck/internal/state"
	"github.com/filedeck/filedeck/internal/sysclip"
	"github.com/filedeck/filedeck/internal/watch"
)

const (
	// filterDebounce is the pause in typing before the filter is applied.
	filterDebounce = 200 * time.Millisecond

	// actionQueueSize bounds actions waiting for the worker.
	actionQueueSize = 32
)

// UI is the main window: navigation bar, action bar, inline edit bar,
// shortcuts and folder tree pane, file table and status bar.
//
// Session methods run on a single worker goroutine so that confirmation
// dialogs can block the operation that asked for them. Widgets are updated
// from bus events through fyne.Do.
type UI struct {
	app    fyne.App
	window fyne.Window
	cfg    *config.Config
	log    *logging.Logger

	bus     *events.EventBus
	eventCh <-chan events.Event
	sess    *session.Session
	list    *state.FileListState
	watcher *watch.Watcher

	ops  chan func()
	busy atomic.Bool

	// Widgets
	table        *FileTable
	status       *StatusBar
	addressEntry *widget.Entry
	filterEntry  *widget.Entry
	hiddenCheck  *widget.Check
	backBtn      *widget.Button
	forwardBtn   *widget.Button
	upBtn        *widget.Button
	pasteBtn     *widget.Button
	editBar      *fyne.Container
	editLabel    *widget.Label
	editEntry    *widget.Entry
	shortcutList *widget.List
	tree         *widget.Tree

	// Main-thread only
	shortcuts   []session.Shortcut
	treeCache   map[string][]string
	filterTimer *time.Timer

	listedPath string // monitor goroutine only

	ctx    context.Context
	cancel context.CancelFunc
}

// NewUI creates the session for cfg and the window state around it.
func NewUI(a fyne.App, w fyne.Window, cfg *config.Config, log *logging.Logger) (*UI, error) {
	ctx, cancel := context.WithCancel(context.Background())
	ui := &UI{
		app:       a,
		window:    w,
		cfg:       cfg,
		log:       log,
		bus:       events.NewEventBus(0),
		ops:       make(chan func(), actionQueueSize),
		treeCache: make(map[string][]string),
		ctx:       ctx,
		cancel:    cancel,
	}
	// Subscribe before the session publishes its first listing.
	ui.eventCh = ui.bus.SubscribeAll()

	opts := session.OptionsFromConfig(cfg)
	opts.Provider = localfs.NewOS()
	opts.Opener = &appOpener{app: a, fallback: opener.New()}
	opts.Clipboard = sysclip.Best()
	opts.Reporter = ui.bus
	opts.Bus = ui.bus
	opts.Logger = log
	opts.Progress = progress.NewGUIProgress(ui.bus)

	sess, err := session.New(opts)
	if err != nil {
		cancel()
		ui.bus.Close()
		return nil, err
	}
	ui.sess = sess
	ui.shortcuts = sess.Shortcuts()
	ui.list = state.NewFileListState(ui.bus)
	return ui, nil
}

// Build creates the window content.
func (ui *UI) Build() fyne.CanvasObject {
	ui.status = NewStatusBar()

	ui.table = NewFileTable(ui.list)
	sortBy, asc := ui.sess.Sort()
	ui.table.SetSort(sortBy, asc)
	ui.table.OnOpen = func(entry localfs.Entry) {
		ui.dispatch(actions.Open, actions.Request{Selection: []string{entry.Name}})
	}
	ui.table.OnSort = func(column localfs.SortColumn, ascending bool) {
		ui.dispatch(actions.Sort, actions.Request{SortBy: column, Ascending: ascending})
	}

	content := container.NewBorder(
		container.NewVBox(ui.buildNavBar(), ui.buildActionBar(), ui.buildEditBar()),
		ui.status,
		nil, nil,
		ui.buildPanes(),
	)

	ui.setupKeys()
	ui.window.SetOnDropped(ui.onDropped)
	return content
}

func (ui *UI) buildNavBar() fyne.CanvasObject {
	ui.backBtn = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { ui.do(actions.Back) })
	ui.forwardBtn = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { ui.do(actions.Forward) })
	ui.upBtn = widget.NewButtonWithIcon("", theme.MoveUpIcon(), func() { ui.do(actions.Up) })
	homeBtn := widget.NewButtonWithIcon("", theme.HomeIcon(), func() { ui.do(actions.Home) })
	refreshBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), ui.refresh)
	ui.backBtn.Disable()
	ui.forwardBtn.Disable()

	ui.addressEntry = widget.NewEntry()
	ui.addressEntry.SetPlaceHolder("Enter path...")
	ui.addressEntry.SetText(ui.sess.CurrentPath())
	ui.addressEntry.OnSubmitted = func(path string) {
		ui.dispatch(actions.Open, actions.Request{Text: path})
	}

	ui.hiddenCheck = widget.NewCheck("Hidden", func(checked bool) {
		ui.enqueue(func() { ui.sess.SetShowHidden(checked) })
	})
	ui.hiddenCheck.Checked = ui.sess.ShowHidden()

	ui.filterEntry = widget.NewEntry()
	ui.filterEntry.SetPlaceHolder("Filter...")
	ui.filterEntry.OnChanged = func(query string) {
		if ui.filterTimer != nil {
			ui.filterTimer.Stop()
		}
		ui.filterTimer = time.AfterFunc(filterDebounce, func() {
			ui.dispatch(actions.Filter, actions.Request{Text: query})
		})
	}
	filterWrapper := container.New(&fixedWidthLayout{width: 160}, ui.filterEntry)

	left := container.NewHBox(HorizontalSpacer(4), ui.backBtn, ui.forwardBtn, ui.upBtn, homeBtn, HorizontalSpacer(8))
	right := container.NewHBox(HorizontalSpacer(8), ui.hiddenCheck, filterWrapper, refreshBtn, HorizontalSpacer(4))
	return container.NewBorder(nil, nil, left, right, ui.addressEntry)
}

func (ui *UI) buildActionBar() fyne.CanvasObject {
	button := func(id actions.ID, icon fyne.Resource, tapped func()) *widget.Button {
		d, _ := actions.Lookup(id)
		return widget.NewButtonWithIcon(d.Label, icon, tapped)
	}
	ui.pasteBtn = button(actions.Paste, theme.ContentPasteIcon(), func() { ui.do(actions.Paste) })
	ui.pasteBtn.Disable()

	return container.NewHBox(
		HorizontalSpacer(4),
		button(actions.NewFolder, theme.FolderNewIcon(), func() { ui.do(actions.NewFolder) }),
		button(actions.NewFile, theme.ContentAddIcon(), func() { ui.do(actions.NewFile) }),
		button(actions.Rename, theme.DocumentCreateIcon(), func() { ui.do(actions.Rename) }),
		widget.NewSeparator(),
		button(actions.Copy, theme.ContentCopyIcon(), func() { ui.do(actions.Copy) }),
		button(actions.Cut, theme.ContentCutIcon(), func() { ui.do(actions.Cut) }),
		ui.pasteBtn,
		button(actions.Delete, theme.DeleteIcon(), func() { ui.do(actions.Delete) }),
		widget.NewSeparator(),
		button(actions.BulkRename, theme.ListIcon(), ui.showBulkRename),
		button(actions.Drop, theme.MailForwardIcon(), ui.showMoveTo),
		button(actions.Sort, theme.MenuDropDownIcon(), ui.showSort),
	)
}

func (ui *UI) buildEditBar() fyne.CanvasObject {
	ui.editLabel = widget.NewLabel("")
	ui.editEntry = widget.NewEntry()
	ui.editEntry.OnSubmitted = ui.commitEdit
	ok := widget.NewButtonWithIcon("", theme.ConfirmIcon(), func() { ui.commitEdit(ui.editEntry.Text) })
	cancel := widget.NewButtonWithIcon("", theme.CancelIcon(), func() { ui.do(actions.CancelEdit) })

	ui.editBar = container.NewBorder(nil, nil,
		container.NewHBox(HorizontalSpacer(4), ui.editLabel),
		container.NewHBox(ok, cancel, HorizontalSpacer(4)),
		ui.editEntry,
	)
	ui.editBar.Hide()
	return ui.editBar
}

func (ui *UI) buildPanes() fyne.CanvasObject {
	ui.shortcutList = widget.NewList(
		func() int { return len(ui.shortcuts) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.FolderIcon()), widget.NewLabel("shortcut"))
		},
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*fyne.Container).Objects[1].(*widget.Label).SetText(ui.shortcuts[i].Name)
		},
	)
	ui.shortcutList.OnSelected = func(i widget.ListItemID) {
		ui.shortcutList.UnselectAll()
		ui.dispatch(actions.Shortcut, actions.Request{Text: ui.shortcuts[i].Name})
	}

	ui.tree = widget.NewTree(
		ui.treeChildren,
		func(widget.TreeNodeID) bool { return true },
		func(bool) fyne.CanvasObject { return widget.NewLabel("folder") },
		func(uid widget.TreeNodeID, _ bool, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(treeLabel(uid))
		},
	)
	ui.tree.OnSelected = func(uid widget.TreeNodeID) {
		ui.dispatch(actions.Open, actions.Request{Text: uid})
	}

	shortcutsTitle := widget.NewLabelWithStyle("Shortcuts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	treeTitle := widget.NewLabelWithStyle("Folders", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	left := container.NewVSplit(
		container.NewBorder(shortcutsTitle, nil, nil, nil, ui.shortcutList),
		container.NewBorder(treeTitle, nil, nil, nil, ui.tree),
	)
	left.Offset = 0.25

	split := container.NewHSplit(left, ui.table)
	split.Offset = float64(constants.ShortcutPaneWidth) / float64(ui.cfg.GUI.Width)
	return split
}

// treeChildren lists sub-directories lazily and caches them until the
// next refresh. Called on the main thread.
func (ui *UI) treeChildren(uid widget.TreeNodeID) []widget.TreeNodeID {
	if uid == "" {
		return treeRoots(ui.sess.Home())
	}
	if cached, ok := ui.treeCache[uid]; ok {
		return cached
	}
	dirs, err := ui.sess.FolderTree(uid)
	if err != nil {
		ui.log.Debug().Err(err).Str("path", uid).Msg("Cannot expand folder")
	}
	children := make([]string, 0, len(dirs))
	for _, d := range dirs {
		children = append(children, d.Path)
	}
	ui.treeCache[uid] = children
	return children
}

// Start begins event monitoring and the action worker.
func (ui *UI) Start() {
	go ui.worker()
	go ui.monitorEvents()

	if !ui.cfg.GUI.Watch {
		return
	}
	w, err := watch.New(ui.onExternalChange, ui.log)
	if err != nil {
		ui.log.Warn().Err(err).Msg("Directory watching disabled")
		return
	}
	ui.watcher = w
	if err := w.Watch(ui.sess.CurrentPath()); err != nil {
		ui.log.Debug().Err(err).Msg("Cannot watch start directory")
	}
}

// Stop stops event monitoring and releases the watcher.
func (ui *UI) Stop() {
	ui.cancel()
	if ui.watcher != nil {
		ui.watcher.Close()
	}
	ui.bus.Close()
}

func (ui *UI) worker() {
	for {
		select {
		case op := <-ui.ops:
			op()
		case <-ui.ctx.Done():
			return
		}
	}
}

// enqueue runs fn on the worker goroutine.
func (ui *UI) enqueue(fn func()) bool {
	select {
	case ui.ops <- fn:
		return true
	default:
		ui.log.Warn().Msg("Action queue full, dropping action")
		return false
	}
}

// do dispatches id with the current selection.
func (ui *UI) do(id actions.ID) {
	ui.dispatch(id, actions.Request{Selection: ui.list.Selected()})
}

// dispatch runs an action on the worker. Filesystem-mutating actions are
// refused while another one is still running.
func (ui *UI) dispatch(id actions.ID, req actions.Request) {
	d, ok := actions.Lookup(id)
	if !ok {
		return
	}
	if d.Mutate && !ui.busy.CompareAndSwap(false, true) {
		ui.bus.Status(events.InfoLevel, "Another operation is still running")
		return
	}
	req.Confirm = ui.confirm

	queued := ui.enqueue(func() {
		if d.Mutate {
			defer ui.busy.Store(false)
		}
		ui.log.Debug().Str("action", string(id)).Msg("Dispatching action")
		ui.report(d, actions.Dispatch(ui.sess, id, req))
	})
	if !queued && d.Mutate {
		ui.busy.Store(false)
	}
}

// report surfaces errors the session does not turn into a status message.
// Runs on the worker.
func (ui *UI) report(d actions.Descriptor, err error) {
	switch {
	case err == nil, errors.Is(err, session.ErrCancelled), errors.Is(err, session.ErrNoDropTarget),
		errors.Is(err, session.ErrSelfMove):
		return
	case d.ID == actions.BulkRename:
		ui.showMessage(d.Label, session.Message(err))
	case errors.Is(err, session.ErrEditInProgress):
		ui.bus.Status(events.WarnLevel, "Finish the current edit first")
	case errors.Is(err, session.ErrNothingSelected):
		ui.bus.Status(events.InfoLevel, session.MsgNothingSelected)
	default:
		ui.log.Debug().Err(err).Str("action", string(d.ID)).Msg("Action failed")
	}
}

func (ui *UI) commitEdit(text string) {
	ui.dispatch(actions.CommitEdit, actions.Request{Text: text})
}

func (ui *UI) refresh() {
	ui.treeCache = make(map[string][]string)
	ui.tree.Refresh()
	ui.do(actions.Refresh)
}

// onExternalChange is called by the watcher after files changed on disk.
func (ui *UI) onExternalChange(dir string) {
	ui.enqueue(func() {
		if localfs.SamePath(ui.sess.CurrentPath(), dir) {
			ui.sess.Refresh()
		}
	})
}

// onDropped moves files dropped from outside the window into the folder
// under the table cursor.
func (ui *UI) onDropped(_ fyne.Position, uris []fyne.URI) {
	sources := make([]string, 0, len(uris))
	for _, u := range uris {
		if u.Scheme() == "file" {
			sources = append(sources, u.Path())
		}
	}
	target := ""
	if entry, ok := ui.list.Current(); ok && entry.IsDir() {
		target = entry.Name
	}
	ui.dispatch(actions.Drop, actions.Request{Target: target, Selection: sources})
}

func (ui *UI) monitorEvents() {
	for {
		select {
		case ev, ok := <-ui.eventCh:
			if !ok {
				return
			}
			ui.handleEvent(ev)
		case <-ui.ctx.Done():
			return
		}
	}
}

func (ui *UI) handleEvent(ev events.Event) {
	switch e := ev.(type) {
	case *events.ListingEvent:
		newDir := e.Path != ui.listedPath
		ui.listedPath = e.Path
		ui.list.Apply(e)
		fyne.Do(func() {
			ui.table.Refresh()
			switch {
			case e.Select != "":
				ui.table.ScrollToCursor()
			case newDir:
				ui.table.ScrollToTop()
			}
		})
		ui.status.SetCount(ui.list.Count(), ui.list.SelectedCount())

	case *events.SelectionEvent:
		ui.status.SetCount(ui.list.Count(), len(e.Names))

	case *events.NavigatedEvent:
		if ui.watcher != nil {
			if err := ui.watcher.Watch(e.To); err != nil {
				ui.log.Debug().Err(err).Str("path", e.To).Msg("Cannot watch directory")
			}
		}
		fyne.Do(func() {
			ui.addressEntry.SetText(e.To)
			setEnabled(ui.backBtn, e.CanBack)
			setEnabled(ui.forwardBtn, e.CanForward)
			setEnabled(ui.upBtn, filepath.Dir(e.To) != e.To)
		})

	case *events.StatusEvent:
		ui.status.ShowMessage(e.Message, e.Level, e.Duration)

	case *events.ClipboardEvent:
		fyne.Do(func() { setEnabled(ui.pasteBtn, len(e.Paths) > 0) })

	case *events.EditEvent:
		fyne.Do(func() {
			if !e.Started {
				ui.editBar.Hide()
				return
			}
			ui.editLabel.SetText(editPrompt(e.Kind))
			ui.editEntry.SetText(e.Name)
			ui.editBar.Show()
			ui.window.Canvas().Focus(ui.editEntry)
		})

	case *events.ProgressEvent:
		ui.status.SetProgress(e.Current, e.Total, e.Done)
	}
}

func setEnabled(w fyne.Disableable, enabled bool) {
	if enabled {
		w.Enable()
	} else {
		w.Disable()
	}
}

// treeRoots returns the root of the volume holding home.
func treeRoots(home string) []string {
	return []string{filepath.VolumeName(home) + string(filepath.Separator)}
}

// treeLabel returns the display name of a folder tree node.
func treeLabel(uid string) string {
	base := filepath.Base(uid)
	if base == uid || base == string(filepath.Separator) || base == "." {
		return uid
	}
	return base
}

// editPrompt labels the inline edit bar for an edit kind.
func editPrompt(kind string) string {
	switch kind {
	case session.EditCreateFolder.String():
		return "New folder name:"
	case session.EditCreateFile.String():
		return "New file name:"
	case session.EditRename.String():
		return "Rename to:"
	}
	return "Name:"
}
