package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/filedeck/filedeck/internal/events"
	"github.com/filedeck/filedeck/internal/localfs"
	"github.com/filedeck/filedeck/internal/logging"
	"github.com/filedeck/filedeck/internal/opener"
	"github.com/filedeck/filedeck/internal/progress"
	"github.com/filedeck/filedeck/internal/session"
	"github.com/filedeck/filedeck/internal/sysclip"
)

// statusPrinter is the session status sink for one-shot commands. Warnings
// and successes go to the terminal; informational messages only to the log.
type statusPrinter struct {
	out io.Writer
	log *logging.Logger
}

func (p statusPrinter) Status(level events.StatusLevel, message string) {
	switch level {
	case events.WarnLevel, events.ErrorLevel:
		fmt.Fprintf(p.out, "✗ %s\n", message)
	case events.SuccessLevel:
		fmt.Fprintf(p.out, "✓ %s\n", message)
	default:
		p.log.Debug().Msg(message)
	}
}

// openSession creates a session positioned at dir, configured from the
// config file, that reports batch progress to rep (nil for none).
func openSession(dir string, rep progress.Reporter) (*session.Session, error) {
	if err := GetContext().Err(); err != nil {
		return nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := GetLogger()

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", dir, err)
	}

	opts := session.OptionsFromConfig(cfg)
	opts.StartDir = abs
	opts.Provider = localfs.NewOS()
	opts.Opener = opener.New()
	opts.Clipboard = sysclip.Best()
	opts.Reporter = statusPrinter{out: os.Stderr, log: log}
	opts.Logger = log
	opts.Progress = rep

	sess, err := session.New(opts)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", dir, err)
	}
	return sess, nil
}

// absPaths makes every argument absolute relative to the working directory.
func absPaths(args []string) ([]string, error) {
	out := make([]string, len(args))
	for i, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", arg, err)
		}
		out[i] = abs
	}
	return out, nil
}

// splitPath returns the absolute parent directory and base name of path.
func splitPath(path string) (dir, name string, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	return filepath.Dir(abs), filepath.Base(abs), nil
}

// newBatchReporter picks the mpb batch renderer for multi-item transfers
// and the single progress bar otherwise.
func newBatchReporter(items int) progress.Reporter {
	if items > 1 {
		return progress.NewBatchProgress()
	}
	return progress.NewCLIProgress()
}
