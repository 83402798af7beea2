package constants

import (
	"time"
)

// Browser limits
const (
	// HistoryCapacity - maximum number of directories kept for back/forward navigation
	HistoryCapacity = 20

	// MaxHistoryCapacity - upper bound accepted from configuration
	MaxHistoryCapacity = 1000

	// StatusDisplayDuration - how long a transient status message stays visible
	StatusDisplayDuration = 3 * time.Second

	// WatchDebounce - quiet period before a filesystem change triggers a re-list
	WatchDebounce = 250 * time.Millisecond
)

// Placeholder names shown on the row that hosts a new inline name editor.
const (
	NewFolderPlaceholder = "New Folder"
	NewFilePlaceholder   = "New File"
)

// ReservedNameChars are rejected in bulk rename prefixes.
const ReservedNameChars = `<>:"/\|?*`

// Listing display formats
const (
	// ModTimeLayout - layout of the "Modified On" column
	ModTimeLayout = "02.01.2006 15:04"

	// SizeNumberWidth - the numeric part of a formatted size is right-justified to this width
	SizeNumberWidth = 6
)

// Event bus buffer sizes
const (
	// EventBusDefaultBuffer - default buffer size for event channels
	EventBusDefaultBuffer = 256

	// EventBusMaxBuffer - maximum buffer size for event channels
	EventBusMaxBuffer = 4096
)

// Window defaults
const (
	DefaultWindowWidth  = 1050
	DefaultWindowHeight = 768
	ShortcutPaneWidth   = 250

	// DefaultTextSize - body text size of the window; small so more rows fit
	DefaultTextSize = 13
	MinTextSize     = 8
	MaxTextSize     = 32
)
