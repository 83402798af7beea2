// Package sysclip wraps the operating system text clipboard.
package sysclip

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available
// (for example a headless Linux session without xclip, xsel or wl-copy).
var ErrUnsupported = errors.New("system clipboard unavailable")

// System writes to the OS clipboard.
type System struct{}

// New returns the system clipboard.
func New() System {
	return System{}
}

// WriteAll replaces the clipboard contents with text.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// ReadAll returns the clipboard contents.
func (System) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	return clipboard.ReadAll()
}

// Memory is an in-process clipboard used when the system one is unavailable.
type Memory struct {
	Text string
}

// WriteAll stores text.
func (m *Memory) WriteAll(text string) error {
	m.Text = text
	return nil
}

// Writer is the clipboard contract shared by System and Memory.
type Writer interface {
	WriteAll(text string) error
}

// Best returns the system clipboard when it is supported and an in-memory
// one otherwise.
func Best() Writer {
	if clipboard.Unsupported {
		return &Memory{}
	}
	return New()
}
