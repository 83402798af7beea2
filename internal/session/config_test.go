package session

import (
	"testing"

	"github.com/filedeck/filedeck/internal/config"
	"github.com/filedeck/filedeck/internal/localfs"
)

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Browser.StartDir = "/tmp"
	cfg.Browser.ShowHidden = true
	cfg.Browser.SortBy = "size"
	cfg.Browser.SortAscending = true
	cfg.Browser.HistorySize = 7
	cfg.Shortcuts.Documents = "/docs"

	opts := OptionsFromConfig(cfg)
	if opts.StartDir != "/tmp" || !opts.ShowHidden || !opts.Ascending || opts.HistorySize != 7 {
		t.Errorf("OptionsFromConfig() = %+v", opts)
	}
	if opts.SortBy != localfs.SortBySize {
		t.Errorf("SortBy = %v, want size", opts.SortBy)
	}
	if len(opts.Shortcuts) != 2 || opts.Shortcuts[0].Name != "Home" || opts.Shortcuts[1].Path != "/docs" {
		t.Errorf("Shortcuts = %+v", opts.Shortcuts)
	}
}
