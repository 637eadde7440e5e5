// Package config loads, normalizes, and validates reindexer configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks for the two
// remote base URLs published in the catalog's CONFIG section. The Config type
// centralizes every knob the catalog build and the CLI need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log levels, and clear validation errors.
package config
