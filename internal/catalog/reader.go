package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a catalog file written by Write.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return c, nil
}

// Unmarshal decodes a serialized catalog. A top-level CONFIG object whose keys
// are limited to files_base and templates_base is read as the config section;
// anything else under that key is treated as a game.
func Unmarshal(data []byte) (*Catalog, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	c := New()
	for game, raw := range doc {
		if game == ConfigKey {
			if section, ok := decodeConfigSection(raw); ok {
				c.config = section
				continue
			}
		}
		var datasets map[string]*Entry
		if err := json.Unmarshal(raw, &datasets); err != nil {
			return nil, fmt.Errorf("game %s: %w", game, err)
		}
		stored := c.datasets(game)
		for id, entry := range datasets {
			if entry == nil {
				return nil, fmt.Errorf("game %s dataset %s: %w", game, id, ErrNilEntry)
			}
			entry.GameID = game
			entry.DatasetID = id
			stored[id] = entry
		}
	}
	return c, nil
}

func decodeConfigSection(raw json.RawMessage) (*ConfigSection, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	for key := range fields {
		if key != "files_base" && key != "templates_base" {
			return nil, false
		}
	}
	var section ConfigSection
	if err := json.Unmarshal(raw, &section); err != nil {
		return nil, false
	}
	return &section, true
}
