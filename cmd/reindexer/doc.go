// Package main hosts the reindexer CLI entrypoint and command graph.
//
// Running reindexer with no subcommand rebuilds the dataset catalog from the
// export tree. The show subcommand summarizes an existing catalog, and config
// scaffolds or validates the TOML configuration. Catalog logic lives in the
// internal packages; this package only resolves configuration, sets up
// logging and renders results.
package main
