// Package logging assembles structured slog loggers and formatting helpers used
// across the reindexer.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes the standard field keys so catalog code tags log lines
// with run IDs, games, datasets, and paths the same way everywhere. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the tool.
package logging
