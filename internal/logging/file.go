package logging

import (
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileSink is a size-rotated log file.
type FileSink struct {
	*lumberjack.Logger
}

// NewFileSink opens (lazily) a rotating log file at path. The parent
// directory is created on demand.
func NewFileSink(path string) *FileSink {
	_ = os.MkdirAll(filepath.Dir(path), 0o700)
	return &FileSink{
		Logger: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		},
	}
}
