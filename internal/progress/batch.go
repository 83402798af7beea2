package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"
)

// BatchProgress renders a multi-item copy or move with mpb: one bar counting
// items, labelled with the item currently being processed. On a non-terminal
// stderr nothing is drawn.
type BatchProgress struct {
	progress   *mpb.Progress
	bar        *mpb.Bar
	output     io.Writer
	isTerminal bool
	item       atomic.Value // string
	failed     atomic.Bool
}

// NewBatchProgress creates a batch progress renderer on stderr.
func NewBatchProgress() *BatchProgress {
	return newBatchProgress(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
}

func newBatchProgress(out io.Writer, isTerminal bool) *BatchProgress {
	b := &BatchProgress{output: out, isTerminal: isTerminal}
	b.item.Store("")
	if isTerminal {
		if f, ok := out.(*os.File); ok {
			enableANSI(f)
		}
		b.progress = mpb.New(
			mpb.WithOutput(out),
			mpb.WithRefreshRate(150*time.Millisecond),
			mpb.WithWidth(60),
		)
	}
	return b
}

// Start creates the bar for total items.
func (b *BatchProgress) Start(total int64, description string) {
	if !b.isTerminal {
		return
	}
	b.bar = b.progress.New(total,
		mpb.BarStyle().Lbound("[").Filler("█").Tip("█").Padding("░").Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(description, decor.WCSyncSpaceR),
			decor.CountersNoUnit("%d/%d", decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.Any(func(decor.Statistics) string {
				return truncatePath(b.item.Load().(string), 2)
			}, decor.WCSyncSpace),
		),
	)
}

// Update moves the bar to current.
func (b *BatchProgress) Update(current int64) {
	if b.bar != nil {
		b.bar.SetCurrent(current)
	}
}

// Finish completes the bar and waits for the final render.
func (b *BatchProgress) Finish() {
	if b.bar != nil {
		if !b.failed.Load() {
			b.bar.SetTotal(-1, true)
		}
		b.progress.Wait()
		b.bar = nil
	}
}

// Error aborts the bar and prints err.
func (b *BatchProgress) Error(err error) {
	if err == nil {
		return
	}
	b.failed.Store(true)
	if b.bar != nil {
		b.bar.Abort(false)
		b.progress.Wait()
		b.bar = nil
	}
	fmt.Fprintf(b.output, "Error: %v\n", err)
}

// SetDescription records the item being processed.
func (b *BatchProgress) SetDescription(desc string) {
	b.item.Store(desc)
}

// IsTerminal returns true if output is to a terminal (progress bars are active)
func (b *BatchProgress) IsTerminal() bool {
	return b.isTerminal
}

// truncatePath truncates a file path to show only the last N components
// Example: truncatePath("/a/b/c/d/file.txt", 3) → "…/c/d/file.txt"
func truncatePath(path string, maxComponents int) string {
	if path == "" {
		return ""
	}
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) <= maxComponents {
		return path
	}
	return "…/" + strings.Join(parts[len(parts)-maxComponents:], "/")
}
