// Package cli provides the command-line interface for filedeck.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/filedeck/filedeck/internal/config"
	"github.com/filedeck/filedeck/internal/logging"
	"github.com/filedeck/filedeck/internal/version"
)

var (
	// Global flags
	cfgFile   string
	verbose   bool
	debug     bool
	assumeYes bool

	// Global logger
	logger *logging.Logger

	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc
)

// NewRootCmd creates the root command for CLI mode.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "filedeck",
		Short: "filedeck - a two-pane file manager for the desktop and the terminal",
		Long: `filedeck ` + version.Version + ` - Built: ` + version.BuildTime + `
File manager with navigation history, inline create and rename, copy/cut/paste,
drag-and-drop moves and bulk rename.

GUI Mode (default with a display, or the 'gui' command):
  Desktop window with shortcuts, folder tree and file table.

TUI Mode ('tui' command):
  Keyboard-driven browser in the terminal.

CLI Mode (any other command):
  One-shot file operations with the same semantics as the browsers.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewDefaultCLILogger()
			if verbose || debug {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output (same as --verbose)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to every confirmation")

	rootCmd.Version = version.Version + " (" + version.BuildTime + ")"

	completionCmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Enable tab-completion for filedeck commands",
		Long: `Generate shell completion scripts to enable tab-completion for filedeck.

QUICK START:

  zsh:
    mkdir -p ~/.zsh/completions
    filedeck completion zsh > ~/.zsh/completions/_filedeck
    # Then add to ~/.zshrc: fpath=(~/.zsh/completions $fpath)

  Linux with bash:
    filedeck completion bash | sudo tee /etc/bash_completion.d/filedeck

For detailed instructions, use: filedeck completion [shell] --help`,
	}
	rootCmd.AddCommand(completionCmd)

	completionCmd.AddCommand(&cobra.Command{
		Use:   "bash",
		Short: "Generate bash completion script",
		Long: `Generate the autocompletion script for bash.

QUICK TEST (temporary, current session only):
  source <(filedeck completion bash)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	})

	completionCmd.AddCommand(&cobra.Command{
		Use:   "zsh",
		Short: "Generate zsh completion script",
		Long: `Generate the autocompletion script for zsh.

QUICK TEST (temporary, current session only):
  source <(filedeck completion zsh)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.Root().GenZshCompletion(cmd.OutOrStdout())
		},
	})

	completionCmd.AddCommand(&cobra.Command{
		Use:   "fish",
		Short: "Generate fish completion script",
		Long: `Generate the autocompletion script for fish.

  filedeck completion fish > ~/.config/fish/completions/filedeck.fish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	})

	completionCmd.AddCommand(&cobra.Command{
		Use:   "powershell",
		Short: "Generate PowerShell completion script",
		Long: `Generate the autocompletion script for PowerShell.

  filedeck completion powershell >> $PROFILE`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.Root().GenPowerShellCompletion(cmd.OutOrStdout())
		},
	})

	// Disable default completion command (we're adding our own above)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	rootContext, cancelFunc = context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// File operations are not interruptible; a second signal exits at once.
	go func() {
		received := 0
		for sig := range sigChan {
			if sig == nil {
				continue
			}
			received++
			if received > 1 {
				os.Exit(130)
			}
			fmt.Fprintf(os.Stderr, "\nReceived signal %v, finishing the current operation (press Ctrl+C again to force exit)\n", sig)
			cancelFunc()
		}
	}()

	rootCmd := NewRootCmd()
	AddCommands(rootCmd)
	err := rootCmd.ExecuteContext(rootContext)

	signal.Stop(sigChan)
	close(sigChan)
	if logger != nil {
		logger.Close()
	}

	return err
}

// AddCommands adds all subcommands to the root command.
func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newMkdirCmd())
	rootCmd.AddCommand(newTouchCmd())
	rootCmd.AddCommand(newRenameCmd())
	rootCmd.AddCommand(newCpCmd())
	rootCmd.AddCommand(newMvCmd())
	rootCmd.AddCommand(newRmCmd())
	rootCmd.AddCommand(newBulkRenameCmd())
	rootCmd.AddCommand(newCopyPathCmd())
	rootCmd.AddCommand(newConfigCmd())

	// Browsers and listing
	AddShortcuts(rootCmd)
}

// GetLogger returns the global CLI logger.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewDefaultCLILogger()
	}
	return logger
}

// GetContext returns the global CLI context with signal handling.
// This context will be cancelled when the user presses Ctrl+C.
func GetContext() context.Context {
	if rootContext == nil {
		return context.Background()
	}
	return rootContext
}

// loadConfig reads the --config file (or the default one) and applies its
// logging settings to the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log := GetLogger()
	if cfg.Logging.File != "" {
		log.AttachFile(cfg.Logging.File)
	}
	if !verbose && !debug {
		logging.SetGlobalLevel(logging.ParseLevel(cfg.Logging.Level))
	}
	return cfg, nil
}
