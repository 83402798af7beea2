package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/filedeck/filedeck/internal/localfs"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Browser.ShowHidden {
		t.Errorf("Expected ShowHidden=false, got %v", cfg.Browser.ShowHidden)
	}
	if cfg.Browser.SortBy != "type" || cfg.Browser.SortAscending {
		t.Errorf("Expected type descending, got %s ascending=%v", cfg.Browser.SortBy, cfg.Browser.SortAscending)
	}
	if cfg.Browser.HistorySize != 20 {
		t.Errorf("Expected HistorySize=20, got %d", cfg.Browser.HistorySize)
	}
	if cfg.GUI.Width != 1050 || cfg.GUI.Height != 768 {
		t.Errorf("Expected 1050x768, got %dx%d", cfg.GUI.Width, cfg.GUI.Height)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfigLoadSave(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "filedeck-config-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "nested", "filedeck.conf")

	cfg := NewConfig()
	cfg.Browser.StartDir = "/srv/data"
	cfg.Browser.ShowHidden = true
	cfg.Browser.SortBy = "size"
	cfg.Browser.SortAscending = true
	cfg.Browser.HistorySize = 50
	cfg.Shortcuts.Documents = "/docs"
	cfg.Shortcuts.Desktop = ""
	cfg.GUI.Width = 800
	cfg.GUI.Height = 600
	cfg.GUI.Watch = false
	cfg.GUI.TextSize = 15
	cfg.Logging.File = "/var/log/filedeck.log"
	cfg.Logging.Level = "debug"

	if err := SaveConfig(cfg, configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
	if _, err := os.Stat(configPath + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", *loaded, *cfg)
	}
	if loaded.SortColumn() != localfs.SortBySize {
		t.Errorf("SortColumn() = %v", loaded.SortColumn())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.conf"))
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	if *cfg != *NewConfig() {
		t.Error("Expected defaults for missing file")
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filedeck.conf")
	content := "[browser]\nshow_hidden = true\n\n[gui]\nwidth = 640\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Browser.ShowHidden || cfg.GUI.Width != 640 {
		t.Errorf("explicit keys not loaded: %+v", cfg)
	}
	if cfg.GUI.Height != 768 || cfg.Browser.HistorySize != 20 || cfg.Browser.SortBy != "type" {
		t.Errorf("missing keys should keep defaults: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"bad sort", func(c *Config) { c.Browser.SortBy = "color" }, ErrInvalidSortBy},
		{"history zero", func(c *Config) { c.Browser.HistorySize = 0 }, ErrInvalidHistorySize},
		{"history huge", func(c *Config) { c.Browser.HistorySize = 5000 }, ErrInvalidHistorySize},
		{"window", func(c *Config) { c.GUI.Width = 0 }, ErrInvalidWindowSize},
		{"text small", func(c *Config) { c.GUI.TextSize = 4 }, ErrInvalidTextSize},
		{"text large", func(c *Config) { c.GUI.TextSize = 60 }, ErrInvalidTextSize},
		{"level", func(c *Config) { c.Logging.Level = "chatty" }, ErrInvalidLogLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestShortcutList(t *testing.T) {
	cfg := NewConfig()
	cfg.Shortcuts.Documents = "/d"
	cfg.Shortcuts.Desktop = ""

	list := cfg.ShortcutList()
	if len(list) != 2 || list[0].Name != "Home" || list[1].Path != "/d" {
		t.Errorf("ShortcutList() = %+v", list)
	}
}
