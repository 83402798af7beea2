package sysclip

import (
	"errors"
	"testing"

	"github.com/atotto/clipboard"
)

func TestMemory(t *testing.T) {
	var w Writer = &Memory{}
	if err := w.WriteAll("/a, /b"); err != nil {
		t.Fatal(err)
	}
	if got := w.(*Memory).Text; got != "/a, /b" {
		t.Errorf("Text = %q", got)
	}
}

func TestBest(t *testing.T) {
	w := Best()
	if clipboard.Unsupported {
		if _, ok := w.(*Memory); !ok {
			t.Errorf("Best() = %T, want *Memory on unsupported platforms", w)
		}
		if err := New().WriteAll("x"); !errors.Is(err, ErrUnsupported) {
			t.Errorf("System.WriteAll() = %v, want ErrUnsupported", err)
		}
		return
	}
	if _, ok := w.(System); !ok {
		t.Errorf("Best() = %T, want System", w)
	}
}
