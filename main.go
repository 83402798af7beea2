// filedeck - file manager with a desktop window, a terminal browser and a CLI.
//
// - No args + display available → GUI mode
// - No args + no display → terminal browser when stdin is a terminal, CLI help otherwise
// - --gui → GUI mode
// - --cli → CLI mode (force)
// - CLI subcommands/flags → CLI mode
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"

	"golang.org/x/term"

	"github.com/filedeck/filedeck/internal/cli"
	"github.com/filedeck/filedeck/internal/config"
	"github.com/filedeck/filedeck/internal/gui"
	"github.com/filedeck/filedeck/internal/logging"
)

func main() {
	switch launchMode(os.Args[1:], hasDisplay(), term.IsTerminal(int(os.Stdin.Fd()))) {
	case modeGUI:
		if err := runGUI(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case modeTUI:
		os.Args = append(os.Args[:1], "tui")
		fallthrough
	default:
		os.Args = slices.DeleteFunc(os.Args, func(a string) bool { return a == "--cli" })
		if err := cli.Execute(); err != nil {
			os.Exit(1)
		}
	}
}

type mode int

const (
	modeCLI mode = iota
	modeGUI
	modeTUI
)

// launchMode decides how to start from the arguments and the environment.
func launchMode(args []string, display, interactive bool) mode {
	if slices.Contains(args, "--cli") {
		return modeCLI
	}
	if slices.Contains(args, "--gui") {
		return modeGUI
	}
	if len(args) > 0 {
		return modeCLI
	}
	if display {
		return modeGUI
	}
	if interactive {
		return modeTUI
	}
	return modeCLI
}

func hasDisplay() bool {
	if runtime.GOOS != "linux" {
		return true
	}
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func runGUI() error {
	log := logging.NewLogger(logging.ModeGUI)
	defer log.Close()

	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Warn().Err(err).Msg("Using default configuration")
		cfg = config.NewConfig()
	}
	if cfg.Logging.File != "" {
		log.AttachFile(cfg.Logging.File)
	}
	logging.SetGlobalLevel(logging.ParseLevel(cfg.Logging.Level))

	err = gui.Run(gui.Options{Config: cfg, Logger: log})
	if errors.Is(err, gui.ErrNoDisplay) {
		return fmt.Errorf("%w (try 'filedeck tui')", err)
	}
	return err
}
