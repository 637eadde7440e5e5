// Package preflight checks the filesystem before a catalog build starts.
//
// RunAll verifies that the export tree is a readable directory and that the
// directories receiving the catalog (and the optional SQLite mirror) exist and
// are writable. Failures are collected rather than returned one at a time so
// the operator sees every problem in a single run.
package preflight
