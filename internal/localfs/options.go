package localfs

// ListOptions configures the behavior of ListDirectory.
type ListOptions struct {
	// IncludeHidden includes hidden entries in results.
	// Default is false (hidden entries excluded).
	IncludeHidden bool

	// Filter keeps only entries whose name contains it, compared case-insensitively.
	// Empty means no filter.
	Filter string
}
