package session

import "github.com/filedeck/filedeck/internal/config"

// OptionsFromConfig returns the browser settings of cfg as session Options.
// Collaborators (provider, opener, clipboard, reporter) are left for the
// frontend to fill in.
func OptionsFromConfig(cfg *config.Config) Options {
	shortcuts := make([]Shortcut, 0, 3)
	for _, sc := range cfg.ShortcutList() {
		shortcuts = append(shortcuts, Shortcut{Name: sc.Name, Path: sc.Path})
	}
	return Options{
		StartDir:    cfg.Browser.StartDir,
		HistorySize: cfg.Browser.HistorySize,
		Shortcuts:   shortcuts,
		ShowHidden:  cfg.Browser.ShowHidden,
		SortBy:      cfg.SortColumn(),
		Ascending:   cfg.Browser.SortAscending,
	}
}
