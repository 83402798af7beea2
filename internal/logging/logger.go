// Package logging provides structured logging for the CLI, GUI and TUI modes.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Modes accepted by NewLogger.
const (
	ModeCLI = "cli"
	ModeGUI = "gui"
	ModeTUI = "tui"
)

const timeFormat = "15:04:05"

// Logger wraps zerolog with mode-specific behavior.
type Logger struct {
	zlog   zerolog.Logger
	mode   string
	output io.Writer // current console writer, io.Discard in TUI mode
	file   *FileSink
}

// NewLogger creates a new logger for the specified mode.
func NewLogger(mode string) *Logger {
	var output io.Writer

	switch mode {
	case ModeCLI:
		// CLI mode: stdout for logs, stderr is reserved for progress bars
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: timeFormat}
	case ModeTUI:
		// The terminal belongs to bubbletea; only the file sink receives logs
		output = io.Discard
	default:
		output = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: timeFormat}
	}

	l := &Logger{mode: mode, output: output}
	l.rebuild()
	return l
}

// NewDefaultCLILogger creates a default CLI logger.
func NewDefaultCLILogger() *Logger {
	return NewLogger(ModeCLI)
}

// Nop returns a logger that discards everything. Used by tests and by
// callers that have no logger configured.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop(), mode: ModeCLI, output: io.Discard}
}

func (l *Logger) rebuild() {
	var w io.Writer = l.output
	if l.file != nil {
		if l.output == io.Discard {
			w = l.file
		} else {
			w = zerolog.MultiLevelWriter(l.output, l.file)
		}
	}
	l.zlog = zerolog.New(w).With().Timestamp().Str("mode", l.mode).Logger()
}

// AttachFile adds a rotating log file next to the console output.
func (l *Logger) AttachFile(path string) {
	if path == "" {
		return
	}
	if l.file != nil {
		_ = l.file.Close()
	}
	l.file = NewFileSink(path)
	l.rebuild()
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Mode returns the mode the logger was created for.
func (l *Logger) Mode() string {
	return l.mode
}

// Info returns an info level event.
func (l *Logger) Info() *zerolog.Event {
	return l.zlog.Info()
}

// Error returns an error level event.
func (l *Logger) Error() *zerolog.Event {
	return l.zlog.Error()
}

// Debug returns a debug level event.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// Warn returns a warn level event.
func (l *Logger) Warn() *zerolog.Event {
	return l.zlog.Warn()
}

// With creates a child logger with additional context.
func (l *Logger) With() zerolog.Context {
	return l.zlog.With()
}

// SetOutput changes the console writer for the logger.
// This is useful for redirecting logs through progress bars.
func (l *Logger) SetOutput(w io.Writer) {
	if w != io.Discard {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: timeFormat, NoColor: true}
	}
	l.output = w
	l.rebuild()
}

// Output returns the current console writer.
func (l *Logger) Output() io.Writer {
	return l.output
}

// Debugf logs a debug message with printf-style formatting.
// This is only shown when debug/verbose mode is enabled.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.zlog.Debug().Msgf(format, args...)
}

// Infof logs an info message with printf-style formatting.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.zlog.Info().Msgf(format, args...)
}

// Errorf logs an error message with printf-style formatting.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.zlog.Error().Msgf(format, args...)
}

// Warnf logs a warning message with printf-style formatting.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.zlog.Warn().Msgf(format, args...)
}

// SetGlobalLevel sets the global log level.
func SetGlobalLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// ParseLevel converts a config level name ("debug", "info", "warn", "error")
// into a zerolog level. Unknown names fall back to info.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func init() {
	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Configure global logger
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: timeFormat,
	})
}
