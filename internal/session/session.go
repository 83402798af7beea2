// Package session is the UI-independent core of filedeck. A Session owns the
// current directory, the navigation history, the file clipboard and the
// single pending inline edit, and runs every file operation against a
// localfs.Provider. Failures are turned into transient status messages and
// followed by a re-list, so frontends never show stale state.
package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/filedeck/filedeck/internal/constants"
	"github.com/filedeck/filedeck/internal/events"
	"github.com/filedeck/filedeck/internal/history"
	"github.com/filedeck/filedeck/internal/localfs"
	"github.com/filedeck/filedeck/internal/logging"
	"github.com/filedeck/filedeck/internal/progress"
)

// Opener launches the platform's default handler for a file.
type Opener interface {
	Open(path string) error
}

// TextClipboard is the system text clipboard.
type TextClipboard interface {
	WriteAll(text string) error
}

// Reporter receives transient status messages.
type Reporter interface {
	Status(level events.StatusLevel, message string)
}

// Confirmer asks the user an OK/Cancel question and reports whether OK was chosen.
type Confirmer func(title, message string) bool

// Shortcut is a named location shown in the shortcuts pane.
type Shortcut struct {
	Name string
	Path string
}

// Options configures a Session. Only StartDir is commonly set; everything
// else has a working default.
type Options struct {
	Provider    localfs.Provider
	Opener      Opener
	Clipboard   TextClipboard
	Reporter    Reporter
	Bus         *events.EventBus // listing, navigation, clipboard and edit events
	Logger      *logging.Logger
	Progress    progress.Reporter
	StartDir    string
	Home        string
	HistorySize int
	Shortcuts   []Shortcut
	ShowHidden  bool
	SortBy      localfs.SortColumn
	Ascending   bool
}

// Session is the navigation controller plus the file operations that run
// against its current directory. It is meant to be driven from one goroutine
// at a time; the mutex only keeps accidental concurrent use from
// interleaving two mutating operations.
type Session struct {
	mu sync.Mutex

	fs       localfs.Provider
	opener   Opener
	clip     TextClipboard
	reporter Reporter
	bus      *events.EventBus
	log      *logging.Logger
	progress progress.Reporter

	home      string
	shortcuts []Shortcut
	current   string
	history   *history.History

	showHidden bool
	filter     string
	sortBy     localfs.SortColumn
	ascending  bool
	entries    []localfs.Entry

	clipboard clipboard
	edit      *PendingEdit
}

type clipboard struct {
	paths []string
	cut   bool
}

// New creates a session positioned at opts.StartDir (the home directory when
// empty). The start directory becomes the single history entry.
func New(opts Options) (*Session, error) {
	s := &Session{
		fs:         opts.Provider,
		opener:     opts.Opener,
		clip:       opts.Clipboard,
		reporter:   opts.Reporter,
		bus:        opts.Bus,
		log:        opts.Logger,
		progress:   opts.Progress,
		home:       opts.Home,
		shortcuts:  opts.Shortcuts,
		showHidden: opts.ShowHidden,
		sortBy:     opts.SortBy,
		ascending:  opts.Ascending,
	}
	if s.fs == nil {
		s.fs = localfs.NewOS()
	}
	if s.log == nil {
		s.log = logging.Nop()
	}
	if s.progress == nil {
		s.progress = progress.NewNoOpProgress()
	}
	if s.home == "" {
		if home, err := os.UserHomeDir(); err == nil {
			s.home = home
		} else {
			s.home = string(filepath.Separator)
		}
	}
	size := opts.HistorySize
	if size <= 0 {
		size = constants.HistoryCapacity
	}
	if size > constants.MaxHistoryCapacity {
		size = constants.MaxHistoryCapacity
	}
	s.history = history.New(size)

	start := opts.StartDir
	if start == "" {
		start = s.home
	}
	start = s.resolve(start)
	if err := s.fs.Probe(start); err != nil {
		return nil, err
	}
	s.current = start
	s.history.Push(start)
	s.relist("")
	return s, nil
}

// SetProgress replaces the batch progress reporter. nil disables reporting.
func (s *Session) SetProgress(r progress.Reporter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r == nil {
		r = progress.NewNoOpProgress()
	}
	s.progress = r
}

// CurrentPath returns the directory being displayed.
func (s *Session) CurrentPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Home returns the home directory used by GoHome and "~" expansion.
func (s *Session) Home() string {
	return s.home
}

// Shortcuts returns the configured shortcuts in display order.
func (s *Session) Shortcuts() []Shortcut {
	return append([]Shortcut(nil), s.shortcuts...)
}

// History returns the recorded paths (oldest first) and the cursor as a
// non-positive offset from the newest entry.
func (s *Session) History() ([]string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Entries(), s.history.Cursor()
}

// CanGoBack reports whether GoBack would move.
func (s *Session) CanGoBack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanGoBack()
}

// CanGoForward reports whether GoForward would move.
func (s *Session) CanGoForward() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanGoForward()
}

// resolve expands "~" and makes target absolute relative to the current path.
func (s *Session) resolve(target string) string {
	target = strings.TrimSpace(target)
	switch {
	case target == "~":
		target = s.home
	case strings.HasPrefix(target, "~/") || strings.HasPrefix(target, `~\`):
		target = filepath.Join(s.home, target[2:])
	}
	if !filepath.IsAbs(target) && s.current != "" {
		target = filepath.Join(s.current, target)
	}
	return filepath.Clean(target)
}

// child returns the path of name inside the current directory. Absolute
// paths are kept as they are.
func (s *Session) child(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(s.current, name)
}

func (s *Session) status(level events.StatusLevel, message string) {
	if s.reporter != nil {
		s.reporter.Status(level, message)
	}
}

func (s *Session) publish(ev events.Event) {
	if s.bus != nil {
		s.bus.Publish(ev)
	}
}

func base(t events.EventType) events.BaseEvent {
	return events.BaseEvent{EventType: t, Time: time.Now()}
}

// fail logs err, reports message and re-lists the current directory.
// It returns err so callers can end with "return s.fail(...)".
func (s *Session) fail(err error, message, op, path string) error {
	s.log.Warn().Err(err).Str("op", op).Str("path", path).Msg(message)
	s.status(events.WarnLevel, message)
	s.relist("")
	return err
}
