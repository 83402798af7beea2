package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/filedeck/filedeck/internal/events"
)

func TestGUIProgressPublishesEvents(t *testing.T) {
	bus := events.NewEventBus(16)
	defer bus.Close()
	ch := bus.Subscribe(events.EventProgress)

	p := NewGUIProgress(bus)
	p.Start(2, "Copying")
	p.SetDescription("a.txt")
	p.Update(1)
	p.Finish()

	var got []*events.ProgressEvent
	for len(got) < 3 {
		select {
		case ev := <-ch:
			got = append(got, ev.(*events.ProgressEvent))
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("received %d events, want 3", len(got))
		}
	}

	if got[0].Operation != "Copying" || got[0].Total != 2 {
		t.Errorf("start event = %+v", got[0])
	}
	if got[1].Item != "a.txt" || got[1].Current != 1 {
		t.Errorf("update event = %+v", got[1])
	}
	if !got[2].Done || got[2].Current != 2 {
		t.Errorf("finish event = %+v", got[2])
	}
}

func TestGUIProgressErrorBecomesStatus(t *testing.T) {
	bus := events.NewEventBus(4)
	defer bus.Close()
	ch := bus.Subscribe(events.EventStatus)

	p := NewGUIProgress(bus)
	p.Start(1, "Deleting")
	p.Error(errors.New("boom"))

	select {
	case ev := <-ch:
		st := ev.(*events.StatusEvent)
		if st.Level != events.ErrorLevel || !strings.Contains(st.Message, "boom") {
			t.Errorf("status = %+v", st)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no status event")
	}
}

func TestBatchProgressNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	b := newBatchProgress(&buf, false)
	if b.IsTerminal() {
		t.Fatal("expected non-terminal mode")
	}

	b.Start(3, "Moving")
	b.SetDescription("x")
	b.Update(1)
	b.Finish()
	if buf.Len() != 0 {
		t.Errorf("non-terminal batch progress wrote %q", buf.String())
	}

	b.Error(errors.New("disk full"))
	if !strings.Contains(buf.String(), "disk full") {
		t.Errorf("error not printed: %q", buf.String())
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		path string
		n    int
		want string
	}{
		{"", 2, ""},
		{"file.txt", 2, "file.txt"},
		{"/a/b/c/d/file.txt", 3, "…/c/d/file.txt"},
		{"dir/file.txt", 2, "dir/file.txt"},
	}
	for _, tt := range tests {
		if got := truncatePath(tt.path, tt.n); got != tt.want {
			t.Errorf("truncatePath(%q, %d) = %q, want %q", tt.path, tt.n, got, tt.want)
		}
	}
}
