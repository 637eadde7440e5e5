package testsupport

import (
	"testing"

	"reindexer/internal/catalog"
)

// MustLoadCatalog reads a catalog file written by a build.
func MustLoadCatalog(t testing.TB, path string) *catalog.Catalog {
	t.Helper()

	c, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	return c
}

// MustEntry fetches an entry or fails the test.
func MustEntry(t testing.TB, c *catalog.Catalog, gameID, datasetID string) *catalog.Entry {
	t.Helper()

	entry, ok := c.Entry(gameID, datasetID)
	if !ok {
		t.Fatalf("catalog has no entry %s/%s (games: %v)", gameID, datasetID, c.Games())
	}
	return entry
}
