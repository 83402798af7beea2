// Package tui is the terminal frontend of filedeck, built on bubbletea.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/filedeck/filedeck/internal/config"
	"github.com/filedeck/filedeck/internal/events"
	"github.com/filedeck/filedeck/internal/localfs"
	"github.com/filedeck/filedeck/internal/logging"
	"github.com/filedeck/filedeck/internal/opener"
	"github.com/filedeck/filedeck/internal/progress"
	"github.com/filedeck/filedeck/internal/session"
	"github.com/filedeck/filedeck/internal/sysclip"
	"github.com/filedeck/filedeck/internal/watch"
)

// Options configures the terminal frontend.
type Options struct {
	Config   *config.Config
	StartDir string // overrides Config.Browser.StartDir when set
	Logger   *logging.Logger
}

// Run takes over the terminal until the user quits.
func Run(opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewLogger(logging.ModeTUI)
	}

	bus := events.NewEventBus(0)
	defer bus.Close()
	eventCh := bus.SubscribeAll()

	so := session.OptionsFromConfig(cfg)
	if opts.StartDir != "" {
		so.StartDir = opts.StartDir
	}
	so.Provider = localfs.NewOS()
	so.Opener = opener.New()
	so.Clipboard = sysclip.Best()
	so.Reporter = bus
	so.Bus = bus
	so.Logger = log
	so.Progress = progress.NewGUIProgress(bus)

	sess, err := session.New(so)
	if err != nil {
		return fmt.Errorf("failed to open start directory: %w", err)
	}

	changes := make(chan string, 1)
	var watcher *watch.Watcher
	if cfg.GUI.Watch {
		watcher, err = watch.New(func(dir string) {
			select {
			case changes <- dir:
			default:
			}
		}, log)
		if err != nil {
			log.Warn().Err(err).Msg("Directory watching disabled")
		} else {
			defer watcher.Close()
			if err := watcher.Watch(sess.CurrentPath()); err != nil {
				log.Debug().Err(err).Msg("Cannot watch start directory")
			}
		}
	}

	m := NewModel(sess, eventCh, changes, watcher, log)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
