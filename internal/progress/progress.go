// Package progress provides a unified interface for batch progress reporting
// across CLI (progress bars) and GUI (event bus) modes.
package progress

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/filedeck/filedeck/internal/events"
)

// Reporter is the interface for reporting progress in both CLI and GUI modes.
// Totals and positions count items, not bytes.
type Reporter interface {
	Start(total int64, description string)
	Update(current int64)
	Finish()
	Error(err error)
	SetDescription(desc string)
}

// CLIProgress implements progress reporting for CLI mode using a single progress bar.
type CLIProgress struct {
	bar *progressbar.ProgressBar
}

// NewCLIProgress creates a new CLI progress reporter.
func NewCLIProgress() *CLIProgress {
	return &CLIProgress{}
}

// Start initializes the progress bar with total item count and description.
func (p *CLIProgress) Start(total int64, description string) {
	p.bar = progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Update updates the progress bar to the current position.
func (p *CLIProgress) Update(current int64) {
	if p.bar != nil {
		_ = p.bar.Set64(current)
	}
}

// Finish completes the progress bar.
func (p *CLIProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// Error displays an error message.
func (p *CLIProgress) Error(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
	}
}

// SetDescription updates the progress bar description.
func (p *CLIProgress) SetDescription(desc string) {
	if p.bar != nil {
		p.bar.Describe(desc)
	}
}

// GUIProgress implements progress reporting for GUI mode using the event bus.
type GUIProgress struct {
	eventBus  *events.EventBus
	operation string
	item      string
	total     int64
	current   int64
}

// NewGUIProgress creates a new GUI progress reporter.
func NewGUIProgress(eventBus *events.EventBus) *GUIProgress {
	return &GUIProgress{eventBus: eventBus}
}

// Start initializes progress tracking.
func (p *GUIProgress) Start(total int64, description string) {
	p.total = total
	p.current = 0
	p.operation = description
	p.item = ""
	p.eventBus.PublishProgress(p.operation, "", 0, total, false)
}

// Update publishes progress update to event bus.
func (p *GUIProgress) Update(current int64) {
	p.current = current
	p.eventBus.PublishProgress(p.operation, p.item, current, p.total, false)
}

// Finish publishes completion event.
func (p *GUIProgress) Finish() {
	p.eventBus.PublishProgress(p.operation, "", p.total, p.total, true)
}

// Error publishes the failure as a status message.
func (p *GUIProgress) Error(err error) {
	if err != nil {
		p.eventBus.Status(events.ErrorLevel, fmt.Sprintf("%s failed: %v", p.operation, err))
	}
}

// SetDescription records the item being processed.
func (p *GUIProgress) SetDescription(desc string) {
	p.item = desc
}

// NoOpProgress is a progress reporter that does nothing (for silent operations).
type NoOpProgress struct{}

// NewNoOpProgress creates a new no-op progress reporter.
func NewNoOpProgress() *NoOpProgress {
	return &NoOpProgress{}
}

// Start does nothing.
func (p *NoOpProgress) Start(total int64, description string) {}

// Update does nothing.
func (p *NoOpProgress) Update(current int64) {}

// Finish does nothing.
func (p *NoOpProgress) Finish() {}

// Error does nothing.
func (p *NoOpProgress) Error(err error) {}

// SetDescription does nothing.
func (p *NoOpProgress) SetDescription(desc string) {}
