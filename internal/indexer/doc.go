// Package indexer builds the dataset catalog from an export tree.
//
// A build runs as an explicit pipeline:
//
//	Walk                -> Plan of .meta and .zip paths (BACKUP subtrees skipped)
//	IndexMetadataFiles  -> sidecars merged first; newest date_modified wins
//	IndexArchiveFiles   -> filenames only backfill empty slots, then sessions
//	                       archives that created their entry get row counts
//
// Metadata always runs before archives so a sidecar's provenance is never
// displaced by filename inference, whatever order the filesystem returns.
// Run wraps Build with the preflight checks, the run lock and the writers.
package indexer
