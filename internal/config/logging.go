package config

import (
	"os"
	"path/filepath"

	"github.com/rshade/roster/internal/logging"
)

// LoggingConfig is the logging section of the config file.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
	// File, when set, sends logs to this file instead of stderr.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// ToLoggingConfig converts config.LoggingConfig to logging.Config for use with
// the internal/logging package.
//
// The conversion applies these rules:
//   - Level, Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// EnsureLogDir creates the directory that will hold the configured log file.
func (lc *LoggingConfig) EnsureLogDir() error {
	dir := LogDir()
	if lc.File != "" {
		dir = filepath.Dir(lc.File)
	}
	return os.MkdirAll(dir, 0750)
}
