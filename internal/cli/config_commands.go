// Package cli provides configuration management commands.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/filedeck/filedeck/internal/config"
	"github.com/filedeck/filedeck/internal/localfs"
)

// newConfigCmd creates the 'config' command group.
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage filedeck configuration",
		Long: `Configuration management commands for filedeck.

Commands:
  init  - Interactive configuration setup
  show  - Display current configuration
  path  - Show configuration file path`,
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigPathCmd())

	return configCmd
}

// configPath returns the --config path or the default one.
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.DefaultConfigPath()
}

// newConfigInitCmd creates the 'config init' command.
func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration interactively",
		Long: `Interactive configuration setup for filedeck.

The configuration will be saved to ~/.config/filedeck/filedeck.conf
(%APPDATA%\filedeck\filedeck.conf on Windows).

Use --force to overwrite existing configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := GetLogger()

			path, err := configPath()
			if err != nil {
				return fmt.Errorf("failed to determine config path: %w", err)
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					fmt.Printf("Configuration already exists at: %s\n", path)
					fmt.Println("Use --force to overwrite or run 'config show' to view current config.")
					return nil
				}
			}

			fmt.Println("filedeck Configuration Setup")
			fmt.Println("============================")
			fmt.Println("(press Enter to keep the value in brackets)")
			fmt.Println()

			cfg, err := promptConfig(os.Stdin, os.Stdout, config.NewConfig())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if err := config.SaveConfig(cfg, path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			logger.Info().Str("path", path).Msg("Configuration saved")
			fmt.Println()
			fmt.Printf("✓ Configuration saved to: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")

	return cmd
}

// promptConfig asks for every setting, starting from cfg's values.
func promptConfig(in io.Reader, out io.Writer, cfg *config.Config) (*config.Config, error) {
	reader := bufio.NewReader(in)
	ask := func(label, def string) (string, error) {
		fmt.Fprintf(out, "%s [%s]: ", label, def)
		input, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return def, nil
		}
		return input, nil
	}
	askBool := func(label string, def bool) (bool, error) {
		v, err := ask(label+" (y/n)", map[bool]string{true: "y", false: "n"}[def])
		if err != nil {
			return def, err
		}
		switch strings.ToLower(v) {
		case "y", "yes", "true":
			return true, nil
		case "n", "no", "false":
			return false, nil
		}
		return def, nil
	}
	askInt := func(label string, def int) (int, error) {
		v, err := ask(label, strconv.Itoa(def))
		if err != nil {
			return def, err
		}
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n <= 0 {
			fmt.Fprintf(out, "  Invalid number, keeping %d\n", def)
			return def, nil
		}
		return n, nil
	}

	var err error
	fmt.Fprintln(out, "Browser Settings")
	fmt.Fprintln(out, "----------------")
	if cfg.Browser.StartDir, err = ask("Start folder (empty = home)", cfg.Browser.StartDir); err != nil {
		return nil, err
	}
	if cfg.Browser.ShowHidden, err = askBool("Show hidden files", cfg.Browser.ShowHidden); err != nil {
		return nil, err
	}
	sortBy, err := ask("Sort by (name, type, modified, size)", cfg.Browser.SortBy)
	if err != nil {
		return nil, err
	}
	if _, parseErr := localfs.ParseSortColumn(sortBy); parseErr != nil {
		fmt.Fprintf(out, "  Unknown column, keeping %s\n", cfg.Browser.SortBy)
	} else {
		cfg.Browser.SortBy = sortBy
	}
	if cfg.Browser.SortAscending, err = askBool("Sort ascending", cfg.Browser.SortAscending); err != nil {
		return nil, err
	}
	if cfg.Browser.HistorySize, err = askInt("History size", cfg.Browser.HistorySize); err != nil {
		return nil, err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Shortcuts")
	fmt.Fprintln(out, "---------")
	if cfg.Shortcuts.Documents, err = ask("Documents", cfg.Shortcuts.Documents); err != nil {
		return nil, err
	}
	if cfg.Shortcuts.Desktop, err = ask("Desktop", cfg.Shortcuts.Desktop); err != nil {
		return nil, err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Window")
	fmt.Fprintln(out, "------")
	if cfg.GUI.Width, err = askInt("Width", cfg.GUI.Width); err != nil {
		return nil, err
	}
	if cfg.GUI.Height, err = askInt("Height", cfg.GUI.Height); err != nil {
		return nil, err
	}
	if cfg.GUI.Watch, err = askBool("Refresh on external changes", cfg.GUI.Watch); err != nil {
		return nil, err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Logging")
	fmt.Fprintln(out, "-------")
	if cfg.Logging.File, err = ask("Log file (empty = none)", cfg.Logging.File); err != nil {
		return nil, err
	}
	level, err := ask("Level (debug, info, warn, error)", cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	cfg.Logging.Level = strings.ToLower(level)

	return cfg, nil
}

// newConfigShowCmd creates the 'config show' command.
func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the current configuration settings: the configuration file merged
with the built-in defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return fmt.Errorf("failed to determine config path: %w", err)
			}
			cfg, err := config.LoadConfig(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			printConfig(cmd.OutOrStdout(), cfg)

			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file: %s\n", path)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "  (file does not exist - using defaults)")
			}
			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "  Warning: %v\n", err)
			}
			return nil
		},
	}

	return cmd
}

func printConfig(out io.Writer, cfg *config.Config) {
	startDir := cfg.Browser.StartDir
	if startDir == "" {
		startDir = "<home>"
	}

	fmt.Fprintln(out, "Current Configuration")
	fmt.Fprintln(out, "=====================")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Browser:")
	fmt.Fprintf(out, "  Start Folder:   %s\n", startDir)
	fmt.Fprintf(out, "  Show Hidden:    %v\n", cfg.Browser.ShowHidden)
	fmt.Fprintf(out, "  Sort By:        %s\n", cfg.Browser.SortBy)
	fmt.Fprintf(out, "  Sort Ascending: %v\n", cfg.Browser.SortAscending)
	fmt.Fprintf(out, "  History Size:   %d\n", cfg.Browser.HistorySize)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Shortcuts:")
	for _, s := range cfg.ShortcutList() {
		fmt.Fprintf(out, "  %-10s %s\n", s.Name+":", s.Path)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Window:")
	fmt.Fprintf(out, "  Size:  %dx%d\n", cfg.GUI.Width, cfg.GUI.Height)
	fmt.Fprintf(out, "  Watch: %v\n", cfg.GUI.Watch)
	fmt.Fprintf(out, "  Text:  %d\n", cfg.GUI.TextSize)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Logging:")
	if cfg.Logging.File != "" {
		fmt.Fprintf(out, "  File:  %s\n", cfg.Logging.File)
	} else {
		fmt.Fprintln(out, "  File:  <none>")
	}
	fmt.Fprintf(out, "  Level: %s\n", cfg.Logging.Level)
}

// newConfigPathCmd creates the 'config path' command.
func newConfigPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Long:  `Display the path to the configuration file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return fmt.Errorf("failed to determine config path: %w", err)
			}
			if cfgFile == "" {
				fmt.Println("Default configuration path:")
			} else {
				fmt.Println("Configuration path (from --config flag):")
			}

			fmt.Printf("  %s\n", path)
			fmt.Println()

			if fileInfo, err := os.Stat(path); err == nil {
				fmt.Println("Status: ✓ File exists")
				fmt.Printf("Size:   %d bytes\n", fileInfo.Size())
				fmt.Printf("Modified: %s\n", fileInfo.ModTime().Format("2006-01-02 15:04:05"))
			} else {
				fmt.Println("Status: File does not exist")
				fmt.Println()
				fmt.Println("Create a configuration file with: filedeck config init")
			}

			return nil
		},
	}

	return cmd
}
