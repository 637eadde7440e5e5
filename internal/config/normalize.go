package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFileIndexing()
	if c.Indexing.RowCountWorkers == 0 {
		c.Indexing.RowCountWorkers = defaultRowCountWorkers
	}
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	// The data root keeps its relative form: catalog paths are published
	// relative to it.
	if c.Paths.DataDir, err = expandHome(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.OutputFile, err = expandHome(strings.TrimSpace(c.Paths.OutputFile)); err != nil {
		return fmt.Errorf("paths.output_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeFileIndexing() {
	c.FileIndexing.RemoteURL = normalizeOptional(c.FileIndexing.RemoteURL, "FILE_INDEXING_REMOTE_URL")
	c.FileIndexing.TemplatesURL = normalizeOptional(c.FileIndexing.TemplatesURL, "FILE_INDEXING_TEMPLATES_URL")
}

// normalizeOptional trims a configured value and falls back to envKey when the
// file leaves the key unset. An explicitly configured empty string is kept.
func normalizeOptional(value *string, envKey string) *string {
	if value != nil {
		trimmed := strings.TrimSpace(*value)
		return &trimmed
	}
	if env, ok := os.LookupEnv(envKey); ok {
		trimmed := strings.TrimSpace(env)
		return &trimmed
	}
	return nil
}

func (c *Config) normalizeOutput() error {
	var err error
	if c.Output.SQLitePath, err = expandPath(strings.TrimSpace(c.Output.SQLitePath)); err != nil {
		return fmt.Errorf("output.sqlite_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}

	outputs := make([]string, 0, len(c.Logging.Outputs))
	for _, output := range c.Logging.Outputs {
		output = strings.TrimSpace(output)
		switch output {
		case "":
			continue
		case "stderr", "stdout":
		default:
			expanded, err := expandHome(output)
			if err != nil {
				return fmt.Errorf("logging.outputs: %w", err)
			}
			output = expanded
		}
		outputs = append(outputs, output)
	}
	if len(outputs) == 0 {
		outputs = []string{defaultLogOutput}
	}
	c.Logging.Outputs = outputs
	return nil
}
