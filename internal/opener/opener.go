// Package opener launches the platform's default handler for a file.
package opener

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Default opens files with xdg-open, open or the Windows URL handler.
type Default struct {
	// goos overrides runtime.GOOS in tests.
	goos string
	// start runs the command without waiting for it.
	start func(cmd *exec.Cmd) error
}

// New returns the opener for the running platform.
func New() *Default {
	return &Default{}
}

// Command returns the command that opens path on the current platform.
func (d *Default) Command(path string) *exec.Cmd {
	goos := d.goos
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	case "darwin":
		return exec.Command("open", path)
	default:
		return exec.Command("xdg-open", path)
	}
}

// Open launches the handler and returns once it has started.
func (d *Default) Open(path string) error {
	cmd := d.Command(path)
	start := d.start
	if start == nil {
		start = func(c *exec.Cmd) error { return c.Start() }
	}
	if err := start(cmd); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if cmd.Process != nil {
		// Reap the child in the background
		go func() { _ = cmd.Wait() }()
	}
	return nil
}
