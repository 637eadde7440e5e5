package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the export tree and catalog locations.
type Paths struct {
	DataDir    string `toml:"data_dir"`
	OutputFile string `toml:"output_file"`
}

// FileIndexing holds the remote base URLs published in the catalog's CONFIG
// section. A nil value is serialized as null.
type FileIndexing struct {
	RemoteURL    *string `toml:"remote_url"`
	TemplatesURL *string `toml:"templates_url"`
}

// Indexing tunes the catalog build.
type Indexing struct {
	RowCountWorkers int `toml:"row_count_workers"`
}

// Output contains optional secondary catalog sinks.
type Output struct {
	SQLitePath string `toml:"sqlite_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// Outputs lists log sinks: "stderr", "stdout" or file paths.
	Outputs []string `toml:"outputs"`
}

// Config encapsulates all configuration values for the reindexer.
//
// Configuration sections by subsystem:
//   - Paths: export tree root and catalog output file
//   - FileIndexing: remote base URLs for the CONFIG pseudo-game
//   - Indexing: row-count worker pool size
//   - Output: optional SQLite catalog mirror
//   - Logging: log format and level
type Config struct {
	Paths        Paths        `toml:"paths"`
	FileIndexing FileIndexing `toml:"file_indexing"`
	Indexing     Indexing     `toml:"indexing"`
	Output       Output       `toml:"output"`
	Logging      Logging      `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/reindexer/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("reindexer.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// OutputPath returns the catalog file location.
func (c *Config) OutputPath() string {
	if c.Paths.OutputFile != "" {
		return c.Paths.OutputFile
	}
	return filepath.Join(c.Paths.DataDir, defaultOutputFileName)
}

// LockPath returns the lock file guarding concurrent builds of the same catalog.
func (c *Config) LockPath() string {
	return c.OutputPath() + ".lock"
}

// FilesBase returns the configured remote base URL for artifact files.
func (c *Config) FilesBase() *string {
	return c.FileIndexing.RemoteURL
}

// TemplatesBase returns the configured remote base URL for templates.
func (c *Config) TemplatesBase() *string {
	return c.FileIndexing.TemplatesURL
}

// expandHome resolves a leading ~ and cleans the path without making it
// absolute.
func expandHome(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	return filepath.Clean(pathValue), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	cleaned, err := expandHome(pathValue)
	if err != nil {
		return "", err
	}
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
