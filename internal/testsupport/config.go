package testsupport

import (
	"path/filepath"
	"testing"

	"reindexer/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a unique temp directory per test. The
// data root is <base>/data and the catalog is written inside it.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Indexing.RowCountWorkers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithRemoteURLs sets the CONFIG base URLs on the test config.
func WithRemoteURLs(files, templates string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.FileIndexing.RemoteURL = &files
		b.cfg.FileIndexing.TemplatesURL = &templates
	}
}

// WithSQLiteMirror enables the SQLite catalog mirror inside the base directory.
func WithSQLiteMirror() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.SQLitePath = filepath.Join(b.baseDir, "catalog.db")
	}
}

// WithOutputFile moves the catalog out of the data root.
func WithOutputFile(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.OutputFile = filepath.Join(b.baseDir, name)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
