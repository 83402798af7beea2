// Package history provides the bounded back/forward stack used for directory navigation.
package history

// History is a capacity-bounded sequence of visited paths with a cursor.
// Pushing while the cursor is behind the newest entry discards the forward
// branch first; pushing at capacity evicts the oldest entry.
type History struct {
	entries  []string
	pos      int // index of the current entry, -1 when empty
	capacity int
}

// New creates an empty history holding at most capacity entries.
// A capacity below 1 is treated as 1.
func New(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		entries:  make([]string, 0, capacity),
		pos:      -1,
		capacity: capacity,
	}
}

// Push records path as the newest entry and moves the cursor to it.
func (h *History) Push(path string) {
	if h.pos < len(h.entries)-1 {
		h.entries = h.entries[:h.pos+1]
	}
	if len(h.entries) == h.capacity {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, path)
	h.pos = len(h.entries) - 1
}

// Back moves the cursor one entry towards the oldest and returns that entry.
func (h *History) Back() (string, bool) {
	if h.pos <= 0 {
		return "", false
	}
	h.pos--
	return h.entries[h.pos], true
}

// Forward moves the cursor one entry towards the newest and returns that entry.
func (h *History) Forward() (string, bool) {
	if h.pos >= len(h.entries)-1 {
		return "", false
	}
	h.pos++
	return h.entries[h.pos], true
}

// Current returns the entry under the cursor, or "" when empty.
func (h *History) Current() string {
	if h.pos < 0 {
		return ""
	}
	return h.entries[h.pos]
}

// Cursor returns the cursor as a non-positive offset from the newest entry:
// 0 at the newest, -1 one step back, and so on.
func (h *History) Cursor() int {
	if h.pos < 0 {
		return 0
	}
	return h.pos - (len(h.entries) - 1)
}

// CanGoBack reports whether there is an older entry.
func (h *History) CanGoBack() bool {
	return h.pos > 0
}

// CanGoForward reports whether there is a newer entry.
func (h *History) CanGoForward() bool {
	return h.pos < len(h.entries)-1
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Cap returns the capacity.
func (h *History) Cap() int {
	return h.capacity
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
