// Package config provides configuration management for filedeck.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/filedeck/filedeck/internal/constants"
	"github.com/filedeck/filedeck/internal/localfs"
)

// Config is the user configuration stored in filedeck.conf.
//
// Config file location:
//   - Windows: %APPDATA%\filedeck\filedeck.conf
//   - Unix: ~/.config/filedeck/filedeck.conf
//
// INI format:
//
//	[browser]
//	start_dir = /home/me
//	show_hidden = false
//	sort_by = type
//	sort_ascending = false
//	history_size = 20
//
//	[shortcuts]
//	documents = /home/me/Documents
//	desktop = /home/me/Desktop
//
//	[gui]
//	width = 1050
//	height = 768
//	watch = true
//	text_size = 13
//
//	[logging]
//	file =
//	level = info
type Config struct {
	Browser   BrowserConfig
	Shortcuts ShortcutConfig
	GUI       GUIConfig
	Logging   LoggingConfig
}

// BrowserConfig contains listing and navigation settings.
type BrowserConfig struct {
	// StartDir is the directory shown at startup. Empty means the home directory.
	StartDir string `ini:"start_dir"`

	// ShowHidden lists hidden entries. Default: false
	ShowHidden bool `ini:"show_hidden"`

	// SortBy is one of name, type, modified, size. Default: type
	SortBy string `ini:"sort_by"`

	// SortAscending sets the sort direction. Default: false
	SortAscending bool `ini:"sort_ascending"`

	// HistorySize bounds back/forward history.
	// Minimum: 1, Maximum: 1000, Default: 20
	HistorySize int `ini:"history_size"`
}

// ShortcutConfig contains the locations of the shortcuts pane.
type ShortcutConfig struct {
	Documents string `ini:"documents"`
	Desktop   string `ini:"desktop"`
}

// GUIConfig contains desktop window settings.
type GUIConfig struct {
	Width    int  `ini:"width"`
	Height   int  `ini:"height"`
	Watch    bool `ini:"watch"` // re-list on external changes
	TextSize int  `ini:"text_size"`
}

// LoggingConfig contains log settings.
type LoggingConfig struct {
	// File is a rotating log file. Empty disables file logging.
	File string `ini:"file"`

	// Level is debug, info, warn or error. Default: info
	Level string `ini:"level"`
}

// Config validation errors
var (
	ErrInvalidSortBy      = errors.New("sort_by must be one of name, type, modified, size")
	ErrInvalidHistorySize = errors.New("history_size must be between 1 and 1000")
	ErrInvalidWindowSize  = errors.New("width and height must be positive")
	ErrInvalidTextSize    = errors.New("text_size must be between 8 and 32")
	ErrInvalidLogLevel    = errors.New("level must be one of debug, info, warn, error")
)

// DefaultConfigPath returns the default path for the filedeck.conf file.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "filedeck.conf"), nil
}

// ConfigDirectory returns the per-user configuration directory.
//   - Windows: %APPDATA%\filedeck
//   - Unix: ~/.config/filedeck
func ConfigDirectory() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", errors.New("neither APPDATA nor USERPROFILE environment variable set")
			}
			appData = filepath.Join(userProfile, "AppData", "Roaming")
		}
		return filepath.Join(appData, "filedeck"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "filedeck"), nil
}

// homeSubdir returns home/name, or name alone when the home directory is unknown.
func homeSubdir(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, name)
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			StartDir:      "",
			ShowHidden:    false,
			SortBy:        localfs.SortByType.String(),
			SortAscending: false,
			HistorySize:   constants.HistoryCapacity,
		},
		Shortcuts: ShortcutConfig{
			Documents: homeSubdir("Documents"),
			Desktop:   homeSubdir("Desktop"),
		},
		GUI: GUIConfig{
			Width:  constants.DefaultWindowWidth,
			Height: constants.DefaultWindowHeight,
			Watch:    true,
			TextSize: constants.DefaultTextSize,
		},
		Logging: LoggingConfig{
			File:  "",
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the filedeck.conf file.
// If path is empty, uses the default path.
// If the file doesn't exist, returns a config with default values and no error.
// If the file exists but is invalid, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return cfg, nil // Return defaults if we can't determine path
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load filedeck.conf: %w", err)
	}

	browser := iniFile.Section("browser")
	cfg.Browser.StartDir = stringKey(browser, "start_dir", cfg.Browser.StartDir)
	cfg.Browser.ShowHidden = browser.Key("show_hidden").MustBool(cfg.Browser.ShowHidden)
	cfg.Browser.SortBy = stringKey(browser, "sort_by", cfg.Browser.SortBy)
	cfg.Browser.SortAscending = browser.Key("sort_ascending").MustBool(cfg.Browser.SortAscending)
	cfg.Browser.HistorySize = browser.Key("history_size").MustInt(cfg.Browser.HistorySize)

	shortcuts := iniFile.Section("shortcuts")
	cfg.Shortcuts.Documents = stringKey(shortcuts, "documents", cfg.Shortcuts.Documents)
	cfg.Shortcuts.Desktop = stringKey(shortcuts, "desktop", cfg.Shortcuts.Desktop)

	gui := iniFile.Section("gui")
	cfg.GUI.Width = gui.Key("width").MustInt(cfg.GUI.Width)
	cfg.GUI.Height = gui.Key("height").MustInt(cfg.GUI.Height)
	cfg.GUI.Watch = gui.Key("watch").MustBool(cfg.GUI.Watch)
	cfg.GUI.TextSize = gui.Key("text_size").MustInt(cfg.GUI.TextSize)

	logging := iniFile.Section("logging")
	cfg.Logging.File = logging.Key("file").String()
	cfg.Logging.Level = stringKey(logging, "level", cfg.Logging.Level)

	return cfg, nil
}

// stringKey returns the key's value when the key is present, even if empty,
// so a saved empty value survives a reload.
func stringKey(section *ini.Section, name, def string) string {
	if !section.HasKey(name) {
		return def
	}
	return section.Key(name).String()
}

// SaveConfig saves configuration to the filedeck.conf file.
// If path is empty, uses the default path.
// Creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	iniFile := ini.Empty()

	browser, err := iniFile.NewSection("browser")
	if err != nil {
		return fmt.Errorf("failed to create browser section: %w", err)
	}
	browser.Key("start_dir").SetValue(cfg.Browser.StartDir)
	browser.Key("show_hidden").SetValue(strconv.FormatBool(cfg.Browser.ShowHidden))
	browser.Key("sort_by").SetValue(cfg.Browser.SortBy)
	browser.Key("sort_ascending").SetValue(strconv.FormatBool(cfg.Browser.SortAscending))
	browser.Key("history_size").SetValue(strconv.Itoa(cfg.Browser.HistorySize))

	shortcuts, err := iniFile.NewSection("shortcuts")
	if err != nil {
		return fmt.Errorf("failed to create shortcuts section: %w", err)
	}
	shortcuts.Key("documents").SetValue(cfg.Shortcuts.Documents)
	shortcuts.Key("desktop").SetValue(cfg.Shortcuts.Desktop)

	gui, err := iniFile.NewSection("gui")
	if err != nil {
		return fmt.Errorf("failed to create gui section: %w", err)
	}
	gui.Key("width").SetValue(strconv.Itoa(cfg.GUI.Width))
	gui.Key("height").SetValue(strconv.Itoa(cfg.GUI.Height))
	gui.Key("watch").SetValue(strconv.FormatBool(cfg.GUI.Watch))
	gui.Key("text_size").SetValue(strconv.Itoa(cfg.GUI.TextSize))

	logging, err := iniFile.NewSection("logging")
	if err != nil {
		return fmt.Errorf("failed to create logging section: %w", err)
	}
	logging.Key("file").SetValue(cfg.Logging.File)
	logging.Key("level").SetValue(cfg.Logging.Level)

	// Use temporary file + rename for atomicity
	tmpPath := path + ".tmp"
	if err := iniFile.SaveTo(tmpPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(tmpPath, 0600); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("failed to set config permissions: %w", err)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns nil if valid, or an error describing what's wrong.
func (cfg *Config) Validate() error {
	if _, err := localfs.ParseSortColumn(cfg.Browser.SortBy); err != nil {
		return ErrInvalidSortBy
	}
	if cfg.Browser.HistorySize < 1 || cfg.Browser.HistorySize > constants.MaxHistoryCapacity {
		return ErrInvalidHistorySize
	}
	if cfg.GUI.Width <= 0 || cfg.GUI.Height <= 0 {
		return ErrInvalidWindowSize
	}
	if cfg.GUI.TextSize < constants.MinTextSize || cfg.GUI.TextSize > constants.MaxTextSize {
		return ErrInvalidTextSize
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}

// SortColumn returns the parsed sort column, falling back to type.
func (cfg *Config) SortColumn() localfs.SortColumn {
	col, err := localfs.ParseSortColumn(cfg.Browser.SortBy)
	if err != nil {
		return localfs.SortByType
	}
	return col
}

// Shortcut is a named shortcuts-pane location.
type Shortcut struct {
	Name string
	Path string
}

// ShortcutList returns the configured shortcuts in display order, skipping
// empty ones. Home always comes first.
func (cfg *Config) ShortcutList() []Shortcut {
	list := []Shortcut{{Name: "Home", Path: homeSubdir("")}}
	if cfg.Shortcuts.Documents != "" {
		list = append(list, Shortcut{Name: "Documents", Path: cfg.Shortcuts.Documents})
	}
	if cfg.Shortcuts.Desktop != "" {
		list = append(list, Shortcut{Name: "Desktop", Path: cfg.Shortcuts.Desktop})
	}
	return list
}
