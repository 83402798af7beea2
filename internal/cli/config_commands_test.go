package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/filedeck/filedeck/internal/config"
)

// TestConfigPath tests the config path command
func TestConfigPath(t *testing.T) {
	cmd := newConfigPathCmd()
	if cmd == nil {
		t.Fatal("newConfigPathCmd() returned nil")
	}

	if cmd.Use != "path" {
		t.Errorf("Expected Use='path', got '%s'", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Short description is empty")
	}
}

// TestConfigShow tests the config show command
func TestConfigShow(t *testing.T) {
	cmd := newConfigShowCmd()
	if cmd == nil {
		t.Fatal("newConfigShowCmd() returned nil")
	}

	if cmd.Use != "show" {
		t.Errorf("Expected Use='show', got '%s'", cmd.Use)
	}

	if cmd.RunE == nil {
		t.Error("RunE function is nil")
	}
}

// TestConfigInit tests the config init command structure
func TestConfigInit(t *testing.T) {
	cmd := newConfigInitCmd()
	if cmd == nil {
		t.Fatal("newConfigInitCmd() returned nil")
	}

	if cmd.Use != "init" {
		t.Errorf("Expected Use='init', got '%s'", cmd.Use)
	}

	if cmd.RunE == nil {
		t.Error("RunE function is nil")
	}

	forceFlag := cmd.Flags().Lookup("force")
	if forceFlag == nil {
		t.Error("--force flag not found")
	}
}

// TestConfigCmd tests the config command group
func TestConfigCmd(t *testing.T) {
	cmd := newConfigCmd()
	if cmd == nil {
		t.Fatal("newConfigCmd() returned nil")
	}

	if cmd.Use != "config" {
		t.Errorf("Expected Use='config', got '%s'", cmd.Use)
	}

	subcommands := cmd.Commands()
	expectedSubs := []string{"init", "show", "path"}

	if len(subcommands) != len(expectedSubs) {
		t.Errorf("Expected %d subcommands, got %d", len(expectedSubs), len(subcommands))
	}

	foundSubs := make(map[string]bool)
	for _, sub := range subcommands {
		foundSubs[sub.Name()] = true
	}

	for _, expected := range expectedSubs {
		if !foundSubs[expected] {
			t.Errorf("Subcommand '%s' not found", expected)
		}
	}
}

// TestPromptConfigKeepsDefaults tests that empty answers keep the defaults
func TestPromptConfigKeepsDefaults(t *testing.T) {
	in := strings.NewReader(strings.Repeat("\n", 20))
	var out bytes.Buffer

	defaults := config.NewConfig()
	cfg, err := promptConfig(in, &out, config.NewConfig())
	if err != nil {
		t.Fatalf("promptConfig failed: %v", err)
	}

	if *cfg != *defaults {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
	if !strings.Contains(out.String(), "Sort by") {
		t.Error("Prompt output is missing the sort question")
	}
}

// TestPromptConfigAnswers tests that answers are applied and invalid ones ignored
func TestPromptConfigAnswers(t *testing.T) {
	answers := []string{
		"/srv/data", // start folder
		"y",         // show hidden
		"bogus",     // sort by (invalid, kept)
		"y",         // ascending
		"abc",       // history size (invalid, kept)
		"", "",      // shortcuts
		"800", "600", "n", // window
		"", "DEBUG", // logging
	}
	in := strings.NewReader(strings.Join(answers, "\n") + "\n")
	var out bytes.Buffer

	cfg, err := promptConfig(in, &out, config.NewConfig())
	if err != nil {
		t.Fatalf("promptConfig failed: %v", err)
	}

	if cfg.Browser.StartDir != "/srv/data" {
		t.Errorf("StartDir = %q", cfg.Browser.StartDir)
	}
	if !cfg.Browser.ShowHidden || !cfg.Browser.SortAscending {
		t.Errorf("Expected hidden and ascending, got %+v", cfg.Browser)
	}
	if cfg.Browser.SortBy != "type" {
		t.Errorf("Invalid sort column should be ignored, got %q", cfg.Browser.SortBy)
	}
	if cfg.Browser.HistorySize != 20 {
		t.Errorf("Invalid history size should be ignored, got %d", cfg.Browser.HistorySize)
	}
	if cfg.GUI.Width != 800 || cfg.GUI.Height != 600 || cfg.GUI.Watch {
		t.Errorf("Unexpected window settings %+v", cfg.GUI)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Prompted config invalid: %v", err)
	}
}

// TestPrintConfig tests the config show rendering
func TestPrintConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Logging.File = filepath.Join(t.TempDir(), "filedeck.log")

	var out bytes.Buffer
	printConfig(&out, cfg)

	for _, want := range []string{"<home>", "Sort By:        type", "1050x768", cfg.Logging.File} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Output missing %q:\n%s", want, out.String())
		}
	}
}
