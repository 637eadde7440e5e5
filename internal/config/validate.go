package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.OutputFile != "" && c.Paths.OutputFile == c.Paths.DataDir {
		return errors.New("paths.output_file must name a file, not the data directory")
	}
	if c.Indexing.RowCountWorkers < 1 {
		return fmt.Errorf("indexing.row_count_workers must be positive, got %d", c.Indexing.RowCountWorkers)
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	if !ValidLogLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level: unsupported value %q (want debug, info, warn, or error)", c.Logging.Level)
	}
	return nil
}

// ValidLogLevel reports whether level is one of the accepted log levels.
// Matching is case-sensitive; callers normalize first.
func ValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
