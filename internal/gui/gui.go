// Package gui provides the desktop window of filedeck.
package gui

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/storage"
	"github.com/rs/zerolog"

	"github.com/filedeck/filedeck/internal/config"
	"github.com/filedeck/filedeck/internal/logging"
	"github.com/filedeck/filedeck/internal/session"
)

// AppID identifies the application to fyne.
const AppID = "io.github.filedeck"

// ErrNoDisplay is returned by Run on Linux when no display server is available.
var ErrNoDisplay = errors.New("GUI mode requires a display: DISPLAY and WAYLAND_DISPLAY are not set")

// Options configures the desktop window.
type Options struct {
	Config   *config.Config
	StartDir string // overrides Config.Browser.StartDir when set
	Logger   *logging.Logger
}

// Run opens the main window and blocks until it is closed.
func Run(opts Options) error {
	if runtime.GOOS == "linux" {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			return ErrNoDisplay
		}
	}

	log := opts.Logger
	if log == nil {
		log = logging.NewLogger(logging.ModeGUI)
	}
	if os.Getenv("FILEDECK_DEBUG") != "" {
		logging.SetGlobalLevel(zerolog.DebugLevel)
		log.Info().Msg("Debug logging enabled via FILEDECK_DEBUG")
		go monitorGoroutines(log)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if opts.StartDir != "" {
		cfg.Browser.StartDir = opts.StartDir
	}

	a := app.NewWithID(AppID)
	a.Settings().SetTheme(newDeckTheme(cfg.GUI.TextSize))

	w := a.NewWindow("filedeck")
	w.SetMaster()

	ui, err := NewUI(a, w, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open start directory: %w", err)
	}

	w.SetContent(ui.Build())
	w.SetMainMenu(ui.buildMenu())
	w.Resize(fyne.NewSize(float32(cfg.GUI.Width), float32(cfg.GUI.Height)))
	w.CenterOnScreen()

	ui.Start()
	w.SetOnClosed(ui.Stop)
	w.ShowAndRun()
	return nil
}

// appOpener opens files with the platform handler through fyne, falling
// back to the command based opener when the path cannot form a URL.
type appOpener struct {
	app      fyne.App
	fallback session.Opener
}

// Open must not be called on the main thread.
func (o *appOpener) Open(path string) error {
	u, err := url.Parse(storage.NewFileURI(path).String())
	if err != nil {
		return o.fallback.Open(path)
	}
	var openErr error
	fyne.DoAndWait(func() {
		openErr = o.app.OpenURL(u)
	})
	return openErr
}

var goroutineCount int64

// monitorGoroutines logs the goroutine count in debug mode.
func monitorGoroutines(log *logging.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		count := runtime.NumGoroutine()
		prev := atomic.SwapInt64(&goroutineCount, int64(count))
		log.Debug().
			Int("count", count).
			Int64("delta", int64(count)-prev).
			Msg("[MONITOR] Goroutines")
	}
}
