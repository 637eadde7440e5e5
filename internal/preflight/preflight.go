package preflight

import (
	"errors"
	"fmt"
	"path/filepath"

	"reindexer/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	data := CheckDirectoryAccess("Data directory", cfg.Paths.DataDir, Read)
	if !data.Passed {
		// The catalog usually lives under the data root; creating it here
		// would mask the missing tree.
		return []Result{data}
	}
	results := []Result{data, EnsureDirectory("Catalog directory", filepath.Dir(cfg.OutputPath()))}

	if cfg.Output.SQLitePath != "" {
		results = append(results, EnsureDirectory("SQLite mirror directory", filepath.Dir(cfg.Output.SQLitePath)))
	}

	return results
}

// Err folds failed results into a single error, or nil when all passed.
func Err(results []Result) error {
	var errs []error
	for _, r := range results {
		if !r.Passed {
			errs = append(errs, fmt.Errorf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("preflight failed: %w", errors.Join(errs...))
}
