package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"reindexer/internal/fileutil"
)

// indent matches the whitespace of catalogs written by earlier tooling.
const indent = "    "

// Marshal renders the catalog deterministically: keys sorted at every level,
// four-space indentation, no HTML escaping and a trailing newline.
func Marshal(c *Catalog) ([]byte, error) {
	doc := make(map[string]any, len(c.games)+1)
	for game, datasets := range c.games {
		doc[game] = datasets
	}
	if c.config != nil {
		doc[ConfigKey] = c.config
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// Write serializes the catalog and atomically replaces path.
func Write(path string, c *Catalog) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog %s: %w", path, err)
	}
	return nil
}
