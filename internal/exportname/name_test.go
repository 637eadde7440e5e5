package exportname_test

import (
	"errors"
	"testing"

	"reindexer/internal/catalog"
	"reindexer/internal/exportname"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		gameID    string
		datasetID string
		start     string
		end       string
		kind      string
		stem      string
	}{
		{
			name:      "generic",
			filename:  "GAMEA_2023-01-01_to_2023-01-07_x_session-features.zip",
			gameID:    "GAMEA",
			datasetID: "GAMEA_2023-01-01_to_2023-01-07",
			start:     "2023-01-01",
			end:       "2023-01-07",
			kind:      "session-features",
			stem:      "GAMEA_2023-01-01_to_2023-01-07_x_session-features",
		},
		{
			name:      "cycle family",
			filename:  "CYCLE_FOO_2022-01-01_to_2022-01-31_001_events.zip",
			gameID:    "CYCLE_FOO",
			datasetID: "CYCLE_FOO_2022-01-01_to_2022-01-31",
			start:     "2022-01-01",
			end:       "2022-01-31",
			kind:      "events",
			stem:      "CYCLE_FOO_2022-01-01_to_2022-01-31_001_events",
		},
		{
			name:      "stem stops at first dot",
			filename:  "GAMEB_20240101_to_20240131_abc123_raw.tsv.zip",
			gameID:    "GAMEB",
			datasetID: "GAMEB_20240101_to_20240131",
			start:     "20240101",
			end:       "20240131",
			kind:      "raw",
			stem:      "GAMEB_20240101_to_20240131_abc123_raw",
		},
		{
			name:      "dates are positional and unvalidated",
			filename:  "GAME_X_notadate_to_alsonot_s_events.zip",
			gameID:    "GAME",
			datasetID: "GAME_notadate_to_alsonot",
			start:     "notadate",
			end:       "alsonot",
			kind:      "events",
			stem:      "GAME_X_notadate_to_alsonot_s_events",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := exportname.Parse(tc.filename)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got.GameID != tc.gameID || got.DatasetID != tc.datasetID {
				t.Fatalf("ids = %q/%q, want %q/%q", got.GameID, got.DatasetID, tc.gameID, tc.datasetID)
			}
			if got.StartDate != tc.start || got.EndDate != tc.end {
				t.Fatalf("dates = %q..%q", got.StartDate, got.EndDate)
			}
			if got.KindToken != tc.kind || got.Stem != tc.stem {
				t.Fatalf("kind/stem = %q/%q", got.KindToken, got.Stem)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	for _, filename := range []string{
		"notes.zip",
		"GAMEA_2023-01-01_to_2023-01-07.zip",
		"CYCLE_2022-01-01_to_2022-01-31_001_events.zip",
	} {
		if _, err := exportname.Parse(filename); !errors.Is(err, exportname.ErrMalformedName) {
			t.Fatalf("Parse(%q) error = %v, want ErrMalformedName", filename, err)
		}
	}
}

func TestKindFor(t *testing.T) {
	tests := map[string]catalog.Kind{
		"population-features": catalog.KindPopulation,
		"player-features":     catalog.KindPlayers,
		"players-features":    catalog.KindPlayers,
		"session-features":    catalog.KindSessions,
		"sessions-features":   catalog.KindSessions,
		"events":              catalog.KindEvents,
		"raw":                 catalog.KindRaw,
	}
	for token, want := range tests {
		got, err := exportname.KindFor(token)
		if err != nil {
			t.Fatalf("KindFor(%q): %v", token, err)
		}
		if got != want {
			t.Fatalf("KindFor(%q) = %s, want %s", token, got, want)
		}
	}

	for _, token := range []string{"Events", "session", "features", ""} {
		if _, err := exportname.KindFor(token); !errors.Is(err, exportname.ErrUnknownKind) {
			t.Fatalf("KindFor(%q) error = %v, want ErrUnknownKind", token, err)
		}
	}
}

func TestTreeTemplate(t *testing.T) {
	tests := []struct {
		filename string
		want     string
		ok       bool
	}{
		{"G_2023-01-01_to_2023-01-07_x_population-features.zip", "/tree/G", true},
		{"G_2023-01-01_to_2023-01-07_x_players-features.zip", "/tree/G", true},
		{"G_2023-01-01_to_2023-01-07_x_sessions-features.zip", "/tree/G", true},
		{"CYCLE_FOO_2022-01-01_to_2022-01-31_001_events.zip", "/tree/CYCLE_FOO", true},
		{"G_2023-01-01_to_2023-01-07_x_player-features.zip", "", false},
		{"G_2023-01-01_to_2023-01-07_x_session-features.zip", "", false},
		{"G_2023-01-01_to_2023-01-07_x_raw.zip", "", false},
	}
	for _, tt := range tests {
		name, err := exportname.Parse(tt.filename)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.filename, err)
		}
		got, ok := name.TreeTemplate()
		if got != tt.want || ok != tt.ok {
			t.Fatalf("TreeTemplate(%q) = %q, %v; want %q, %v", tt.filename, got, ok, tt.want, tt.ok)
		}
	}
}
