// Package catalog models the dataset catalog: game -> dataset -> Entry plus the
// CONFIG pseudo-game carrying the remote base URLs.
//
// Catalog.Merge owns the reconciliation policy. Entries built from metadata
// sidecars replace an existing entry only when their date_modified is strictly
// newer; entries built from archive filenames only ever backfill artifact slots
// that are still empty. Write serializes the catalog as sorted, indented JSON
// so repeated builds over an unchanged tree are byte-identical.
package catalog
