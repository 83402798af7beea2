package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/filedeck/filedeck/internal/actions"
	"github.com/filedeck/filedeck/internal/events"
	"github.com/filedeck/filedeck/internal/localfs"
	"github.com/filedeck/filedeck/internal/logging"
	"github.com/filedeck/filedeck/internal/session"
	"github.com/filedeck/filedeck/internal/state"
	"github.com/filedeck/filedeck/internal/watch"
)

type mode int

const (
	modeList mode = iota
	modeAddress
	modeFilter
	modeEdit
	modeConfirm
	modeBulk
	modeMove
	modeSort
	modeHelp
)

const (
	bulkExtension = iota
	bulkPrefix
	bulkStart
	bulkFieldCount
)

// msgBusy is shown when a filesystem action is requested while another one
// is still running.
const msgBusy = "Another operation is still running"

const statusTimeout = 3 * time.Second

type eventMsg struct{ event events.Event }

type changeMsg struct{ dir string }

type actionDoneMsg struct {
	id  actions.ID
	err error
}

type clearStatusMsg struct{ gen int }

// confirmRequest carries a session confirmation into Update; the action
// goroutine waits on reply.
type confirmRequest struct {
	title   string
	message string
	reply   chan bool
}

// Model is the bubbletea model. Session methods only ever run inside
// commands, so Update never blocks on an operation waiting for a
// confirmation. View state is rebuilt from bus events.
type Model struct {
	sess    *session.Session
	list    *state.FileListState
	log     *logging.Logger
	watcher *watch.Watcher

	eventCh  <-chan events.Event
	changes  <-chan string
	confirms chan confirmRequest

	// Mirrors of session state, updated from events and finished actions.
	path       string
	canBack    bool
	canForward bool
	clipCount  int
	clipCut    bool
	showHidden bool
	filter     string
	sortBy     localfs.SortColumn
	ascending  bool
	shortcuts  []session.Shortcut

	width  int
	height int
	offset int
	mode   mode

	input      textinput.Model
	bulkInputs [bulkFieldCount]textinput.Model
	bulkFocus  int
	bulkOnly   bool
	selection  []string // captured for bulk rename and move
	pending    *confirmRequest

	busy        bool
	status      string
	statusLevel events.StatusLevel
	statusGen   int
	progress    string
	quitting    bool
}

// NewModel creates a model over sess. eventCh must be subscribed to the
// session's bus before the session was created so the first listing is
// not missed. watcher may be nil.
func NewModel(sess *session.Session, eventCh <-chan events.Event, changes <-chan string, watcher *watch.Watcher, log *logging.Logger) Model {
	input := textinput.New()
	input.CharLimit = 4096

	var bulk [bulkFieldCount]textinput.Model
	for i := range bulk {
		bulk[i] = textinput.New()
		bulk[i].CharLimit = 255
	}
	bulk[bulkExtension].Placeholder = "any"
	bulk[bulkStart].SetValue("1")

	sortBy, asc := sess.Sort()
	return Model{
		sess:       sess,
		list:       state.NewFileListState(nil),
		log:        log,
		watcher:    watcher,
		eventCh:    eventCh,
		changes:    changes,
		confirms:   make(chan confirmRequest),
		path:       sess.CurrentPath(),
		showHidden: sess.ShowHidden(),
		filter:     sess.Filter(),
		sortBy:     sortBy,
		ascending:  asc,
		shortcuts:  sess.Shortcuts(),
		width:      100,
		height:     30,
		input:      input,
		bulkInputs: bulk,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.eventCh), waitForConfirm(m.confirms), waitForChange(m.changes))
}

func waitForEvent(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg{event: ev}
	}
}

func waitForConfirm(ch <-chan confirmRequest) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

func waitForChange(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		dir, ok := <-ch
		if !ok {
			return nil
		}
		return changeMsg{dir: dir}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
		return m, nil

	case eventMsg:
		cmd := m.applyEvent(msg.event)
		return m, tea.Batch(cmd, waitForEvent(m.eventCh))

	case confirmRequest:
		m.pending = &msg
		m.mode = modeConfirm
		return m, waitForConfirm(m.confirms)

	case changeMsg:
		var cmd tea.Cmd
		if localfs.SamePath(msg.dir, m.path) {
			cmd = m.dispatch(actions.Refresh, actions.Request{})
		}
		return m, tea.Batch(cmd, waitForChange(m.changes))

	case actionDoneMsg:
		if d, ok := actions.Lookup(msg.id); ok && d.Mutate {
			m.busy = false
		}
		return m.finish(msg)

	case clearStatusMsg:
		if msg.gen == m.statusGen {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeList:
			return m.updateList(msg)
		case modeAddress, modeFilter, modeMove:
			return m.updatePrompt(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeBulk:
			return m.updateBulk(msg)
		case modeSort:
			return m.updateSort(msg)
		case modeHelp:
			m.mode = modeList
			return m, nil
		}
	}
	return m, nil
}

// applyEvent mirrors a bus event into the model.
func (m *Model) applyEvent(ev events.Event) tea.Cmd {
	switch e := ev.(type) {
	case *events.ListingEvent:
		m.list.Apply(e)
		m.path = e.Path
		m.clampOffset()

	case *events.NavigatedEvent:
		m.path = e.To
		m.canBack = e.CanBack
		m.canForward = e.CanForward
		m.offset = 0
		if m.watcher != nil {
			if err := m.watcher.Watch(e.To); err != nil {
				m.log.Debug().Err(err).Str("path", e.To).Msg("Cannot watch directory")
			}
		}

	case *events.StatusEvent:
		return m.setStatus(e.Message, e.Level, e.Duration)

	case *events.ClipboardEvent:
		m.clipCount = len(e.Paths)
		m.clipCut = e.Cut

	case *events.EditEvent:
		if e.Started {
			m.mode = modeEdit
			m.input.Placeholder = ""
			m.input.SetValue(e.Name)
			m.input.CursorEnd()
			return m.input.Focus()
		}
		if m.mode == modeEdit {
			m.input.Blur()
			m.mode = modeList
		}

	case *events.ProgressEvent:
		m.progress = ""
		if !e.Done && e.Total > 0 {
			m.progress = fmt.Sprintf("%s %d/%d %s", e.Operation, e.Current, e.Total, e.Item)
		}
	}
	return nil
}

// setStatus shows message in the status bar and clears it after d.
func (m *Model) setStatus(message string, level events.StatusLevel, d time.Duration) tea.Cmd {
	m.status = message
	m.statusLevel = level
	m.statusGen++
	if d <= 0 {
		return nil
	}
	gen := m.statusGen
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{gen: gen} })
}

// dispatch runs an action in a command. Filesystem-mutating actions are
// refused while another one is running.
func (m *Model) dispatch(id actions.ID, req actions.Request) tea.Cmd {
	d, ok := actions.Lookup(id)
	if !ok {
		return nil
	}
	if d.Mutate {
		if m.busy {
			return m.setStatus(msgBusy, events.InfoLevel, statusTimeout)
		}
		m.busy = true
	}

	confirms := m.confirms
	req.Confirm = func(title, message string) bool {
		reply := make(chan bool, 1)
		confirms <- confirmRequest{title: title, message: message, reply: reply}
		return <-reply
	}
	sess := m.sess
	log := m.log
	return func() tea.Msg {
		log.Debug().Str("action", string(id)).Msg("Dispatching action")
		return actionDoneMsg{id: id, err: actions.Dispatch(sess, id, req)}
	}
}

// finish updates the mirrored settings after a successful action and turns
// errors the session does not report itself into a status message.
func (m Model) finish(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	err := msg.err
	if err == nil {
		if msg.id == actions.ToggleHidden {
			m.showHidden = !m.showHidden
		}
		return m, nil
	}

	switch {
	case errors.Is(err, session.ErrCancelled), errors.Is(err, session.ErrNoDropTarget),
		errors.Is(err, session.ErrSelfMove):
		return m, nil
	case msg.id == actions.BulkRename:
		return m, m.setStatus(session.Message(err), events.WarnLevel, statusTimeout)
	case errors.Is(err, session.ErrEditInProgress):
		return m, m.setStatus("Finish the current edit first", events.WarnLevel, statusTimeout)
	case errors.Is(err, session.ErrNothingSelected):
		return m, m.setStatus(session.MsgNothingSelected, events.InfoLevel, statusTimeout)
	case errors.Is(err, session.ErrUnknownShortcut):
		return m, m.setStatus("Unknown shortcut", events.WarnLevel, statusTimeout)
	}
	m.log.Debug().Err(err).Str("action", string(msg.id)).Msg("Action failed")
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		m.list.MoveCursor(-1)
		m.clampOffset()
		return m, nil

	case "down", "j":
		m.list.MoveCursor(1)
		m.clampOffset()
		return m, nil

	case "pgup":
		m.list.MoveCursor(-m.visibleRows())
		m.clampOffset()
		return m, nil

	case "pgdown":
		m.list.MoveCursor(m.visibleRows())
		m.clampOffset()
		return m, nil

	case "home", "g":
		m.list.SetCursor(0)
		m.clampOffset()
		return m, nil

	case "end", "G":
		m.list.SetCursor(m.list.Count() - 1)
		m.clampOffset()
		return m, nil

	case " ":
		if cur, ok := m.list.Current(); ok {
			m.list.ToggleSelect(cur.Name)
			m.list.MoveCursor(1)
			m.clampOffset()
		}
		return m, nil

	case "ctrl+a":
		m.list.SelectAll()
		return m, nil

	case "esc":
		m.list.ClearSelection()
		return m, nil

	case "left", "h":
		return m, m.dispatch(actions.Up, actions.Request{})

	case "right", "l":
		return m.trigger(actions.Open)

	case "ctrl+l":
		m.mode = modeAddress
		m.input.Placeholder = "path"
		m.input.SetValue(m.path)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case "?":
		m.mode = modeHelp
		return m, nil
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.shortcuts) {
		return m, m.dispatch(actions.Shortcut, actions.Request{Text: m.shortcuts[n-1].Name})
	}
	if id, ok := actions.ForKey(key); ok {
		return m.trigger(id)
	}
	return m, nil
}

// trigger starts an action from list mode, opening a prompt first when the
// action needs more input.
func (m Model) trigger(id actions.ID) (tea.Model, tea.Cmd) {
	switch id {
	case actions.Open:
		cur, ok := m.list.Current()
		if !ok {
			return m, nil
		}
		return m, m.dispatch(actions.Open, actions.Request{Selection: []string{cur.Name}})

	case actions.Filter:
		m.mode = modeFilter
		m.input.Placeholder = "filter"
		m.input.SetValue(m.filter)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case actions.Sort:
		m.mode = modeSort
		return m, nil

	case actions.BulkRename:
		m.selection = m.list.Selected()
		m.bulkOnly = len(m.selection) > 0
		m.bulkFocus = bulkPrefix
		for i := range m.bulkInputs {
			m.bulkInputs[i].Blur()
		}
		m.mode = modeBulk
		return m, m.bulkInputs[m.bulkFocus].Focus()

	case actions.Drop:
		m.selection = m.list.Selected()
		if len(m.selection) == 0 {
			return m, m.setStatus(session.MsgNothingSelected, events.InfoLevel, statusTimeout)
		}
		m.mode = modeMove
		m.input.Placeholder = "folder"
		m.input.SetValue("")
		if cur, ok := m.list.Current(); ok && cur.IsDir() && !m.list.IsSelected(cur.Name) {
			m.input.SetValue(cur.Name)
		}
		m.input.CursorEnd()
		return m, m.input.Focus()
	}

	return m, m.dispatch(id, actions.Request{Selection: m.list.Target()})
}

// updatePrompt handles the single-line prompts: address, filter and move.
func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.mode = modeList
		return m, nil

	case "enter":
		value := m.input.Value()
		m.input.Blur()
		prompt := m.mode
		m.mode = modeList
		switch prompt {
		case modeAddress:
			return m, m.dispatch(actions.Open, actions.Request{Text: value})
		case modeFilter:
			m.filter = strings.TrimSpace(value)
			return m, m.dispatch(actions.Filter, actions.Request{Text: value})
		case modeMove:
			return m, m.dispatch(actions.Drop, actions.Request{Target: value, Selection: m.selection})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.dispatch(actions.CancelEdit, actions.Request{})
	case "enter":
		return m, m.dispatch(actions.CommitEdit, actions.Request{Text: m.input.Value()})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var answer bool
	switch msg.String() {
	case "y", "Y", "enter":
		answer = true
	case "n", "N", "esc", "q":
		answer = false
	default:
		return m, nil
	}
	if m.pending != nil {
		m.pending.reply <- answer
		m.pending = nil
	}
	m.mode = modeList
	return m, nil
}

func (m Model) updateBulk(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.bulkInputs[m.bulkFocus].Blur()
		m.mode = modeList
		return m, nil

	case "tab", "down":
		return m.focusBulk((m.bulkFocus + 1) % bulkFieldCount)

	case "shift+tab", "up":
		return m.focusBulk((m.bulkFocus + bulkFieldCount - 1) % bulkFieldCount)

	case "ctrl+o":
		m.bulkOnly = !m.bulkOnly
		return m, nil

	case "enter":
		opts, ok := m.bulkOptions()
		if !ok {
			return m, m.setStatus("Start must be a whole number", events.WarnLevel, statusTimeout)
		}
		m.bulkInputs[m.bulkFocus].Blur()
		m.mode = modeList
		return m, m.dispatch(actions.BulkRename, actions.Request{Selection: m.selection, Bulk: opts})
	}

	var cmd tea.Cmd
	m.bulkInputs[m.bulkFocus], cmd = m.bulkInputs[m.bulkFocus].Update(msg)
	return m, cmd
}

func (m Model) focusBulk(i int) (tea.Model, tea.Cmd) {
	m.bulkInputs[m.bulkFocus].Blur()
	m.bulkFocus = i
	return m, m.bulkInputs[i].Focus()
}

func (m Model) bulkOptions() (session.BulkRenameOptions, bool) {
	start, err := strconv.Atoi(strings.TrimSpace(m.bulkInputs[bulkStart].Value()))
	return session.BulkRenameOptions{
		OnlySelected: m.bulkOnly,
		Extension:    strings.TrimPrefix(strings.TrimSpace(m.bulkInputs[bulkExtension].Value()), "."),
		Prefix:       m.bulkInputs[bulkPrefix].Value(),
		Start:        start,
	}, err == nil
}

func (m Model) updateSort(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	column, ok := sortKeys[msg.String()]
	m.mode = modeList
	if !ok {
		return m, nil
	}
	if column == m.sortBy {
		m.ascending = !m.ascending
	} else {
		m.sortBy = column
		m.ascending = true
	}
	return m, m.dispatch(actions.Sort, actions.Request{SortBy: m.sortBy, Ascending: m.ascending})
}

var sortKeys = map[string]localfs.SortColumn{
	"n": localfs.SortByName,
	"t": localfs.SortByType,
	"m": localfs.SortByModified,
	"s": localfs.SortBySize,
}

func (m Model) visibleRows() int {
	// title, header, status bar and prompt/help line
	rows := m.height - 4
	if m.mode == modeBulk {
		rows -= bulkFieldCount
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) clampOffset() {
	visible := m.visibleRows()
	cursor := m.list.Cursor()
	if cursor < m.offset {
		m.offset = cursor
	}
	if cursor >= m.offset+visible {
		m.offset = cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
