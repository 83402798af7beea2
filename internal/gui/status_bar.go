package gui

import (
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/filedeck/filedeck/internal/events"
)

// StatusBar shows the transient status message with a level icon, a batch
// progress bar and the item count of the current listing. All methods may be
// called from any goroutine.
type StatusBar struct {
	widget.BaseWidget

	mu         sync.Mutex
	level      events.StatusLevel
	message    string
	generation uint64

	icon     *widget.Icon
	label    *widget.Label
	progress *widget.ProgressBar
	count    *widget.Label
}

// NewStatusBar creates an empty status bar.
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.label = widget.NewLabel("")
	sb.label.TextStyle = fyne.TextStyle{Italic: true}
	sb.icon = widget.NewIcon(theme.InfoIcon())
	sb.icon.Hide()
	sb.progress = widget.NewProgressBar()
	sb.progress.Hide()
	sb.count = widget.NewLabel("")
	sb.ExtendBaseWidget(sb)
	return sb
}

// ShowMessage displays message at level and clears it after d. A later message
// replaces an earlier one together with its timer.
func (sb *StatusBar) ShowMessage(message string, level events.StatusLevel, d time.Duration) {
	sb.mu.Lock()
	sb.level = level
	sb.message = message
	sb.generation++
	gen := sb.generation
	sb.mu.Unlock()

	fyne.Do(func() {
		sb.label.SetText(message)
		sb.icon.SetResource(statusIcon(level))
		sb.icon.Show()
	})

	if d > 0 {
		time.AfterFunc(d, func() { sb.clear(gen) })
	}
}

// clear removes the message if no newer one was shown since gen.
func (sb *StatusBar) clear(gen uint64) {
	sb.mu.Lock()
	if gen != sb.generation {
		sb.mu.Unlock()
		return
	}
	sb.message = ""
	sb.mu.Unlock()

	fyne.Do(func() {
		sb.label.SetText("")
		sb.icon.Hide()
	})
}

// SetProgress shows batch progress; done hides the bar.
func (sb *StatusBar) SetProgress(current, total int64, done bool) {
	fyne.Do(func() {
		if done || total <= 0 {
			sb.progress.Hide()
			return
		}
		sb.progress.Max = float64(total)
		sb.progress.SetValue(float64(current))
		sb.progress.Show()
	})
}

// SetCount shows the number of listed and selected entries.
func (sb *StatusBar) SetCount(items, selected int) {
	text := fmt.Sprintf("%d items", items)
	if selected > 0 {
		text = fmt.Sprintf("%d items, %d selected", items, selected)
	}
	fyne.Do(func() { sb.count.SetText(text) })
}

// Message returns the visible status message.
func (sb *StatusBar) Message() string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.message
}

// Level returns the level of the visible message.
func (sb *StatusBar) Level() events.StatusLevel {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.level
}

// CreateRenderer implements fyne.Widget
func (sb *StatusBar) CreateRenderer() fyne.WidgetRenderer {
	bar := container.New(&fixedWidthLayout{width: 160}, sb.progress)
	content := container.NewBorder(nil, nil,
		container.NewHBox(sb.icon, sb.label),
		container.NewHBox(bar, sb.count, HorizontalSpacer(4)),
	)
	return widget.NewSimpleRenderer(content)
}

func statusIcon(level events.StatusLevel) fyne.Resource {
	switch level {
	case events.SuccessLevel:
		return theme.ConfirmIcon()
	case events.WarnLevel:
		return theme.WarningIcon()
	case events.ErrorLevel:
		return theme.ErrorIcon()
	default:
		return theme.InfoIcon()
	}
}
