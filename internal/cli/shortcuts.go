// Package cli provides the browser launchers and the listing command.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/filedeck/filedeck/internal/config"
	"github.com/filedeck/filedeck/internal/gui"
	"github.com/filedeck/filedeck/internal/localfs"
	"github.com/filedeck/filedeck/internal/logging"
	"github.com/filedeck/filedeck/internal/tui"
)

// AddShortcuts adds the browser launchers and 'ls' to the root command.
func AddShortcuts(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newGUICmd())
	rootCmd.AddCommand(newTUICmd())
	rootCmd.AddCommand(newLsShortcut())
}

// newGUICmd creates the 'gui' command.
func newGUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui [folder]",
		Short: "Open the desktop browser",
		Long: `Open the desktop window, starting in folder (default: the configured start
folder, or home).

Set FILEDECK_DEBUG=1 for debug logging.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return gui.Run(gui.Options{
				Config:   cfg,
				StartDir: firstArg(args),
				Logger:   GetLogger(),
			})
		},
	}
}

// newTUICmd creates the 'tui' command.
func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [folder]",
		Short: "Open the terminal browser",
		Long: `Open the keyboard-driven browser in the terminal. Press ? inside for keys.

Logs go to the configured log file (or the default one under the config
folder) because the terminal belongs to the browser.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logging.NewLogger(logging.ModeTUI)
			defer log.Close()
			logFile := cfg.Logging.File
			if logFile == "" {
				logFile = config.DefaultLogFile()
			}
			log.AttachFile(logFile)

			return tui.Run(tui.Options{
				Config:   cfg,
				StartDir: firstArg(args),
				Logger:   log,
			})
		},
	}
}

// newLsShortcut creates the 'ls' command.
func newLsShortcut() *cobra.Command {
	var (
		all    bool
		sortBy string
		desc   bool
		filter string
	)

	cmd := &cobra.Command{
		Use:   "ls [folder]",
		Short: "List a folder the way the browsers do",
		Long: `List a folder with the browsers' columns, sort order and hidden-file rules.

Examples:
  filedeck ls
  filedeck ls ~/Downloads --sort modified --desc
  filedeck ls . --all --filter .go`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := firstArg(args)
			if dir == "" {
				dir = "."
			}

			sess, err := openSession(dir, nil)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("all") {
				sess.SetShowHidden(all)
			}
			if cmd.Flags().Changed("sort") || cmd.Flags().Changed("desc") {
				column, _ := sess.Sort()
				if sortBy != "" {
					if column, err = localfs.ParseSortColumn(sortBy); err != nil {
						return err
					}
				}
				sess.SetSort(column, !desc)
			}
			if filter != "" {
				sess.SetFilter(filter)
			}

			printEntries(cmd.OutOrStdout(), sess.CurrentPath(), sess.Entries())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include hidden entries")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", "", "Sort column: name, type, modified or size")
	cmd.Flags().BoolVarP(&desc, "desc", "d", false, "Sort descending")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only list names containing this text")

	return cmd
}

func printEntries(out io.Writer, dir string, entries []localfs.Entry) {
	fmt.Fprintf(out, "%s\n\n", dir)
	if len(entries) == 0 {
		fmt.Fprintln(out, "(empty)")
		return
	}
	fmt.Fprintf(out, "%-16s  %-12s  %9s  %s\n", "MODIFIED ON", "TYPE", "SIZE", "NAME")
	for _, e := range entries {
		name := e.Name
		if e.IsDir() {
			name += "/"
		}
		fmt.Fprintf(out, "%-16s  %-12s  %9s  %s\n", e.ModifiedLabel(), e.TypeLabel(), e.SizeLabel(), name)
	}
	fmt.Fprintf(out, "\n%d item(s)\n", len(entries))
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
