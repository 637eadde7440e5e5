package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func metadataEntry(game, dataset, modified string) *Entry {
	entry := NewEntry(game, dataset, SourceMetadata)
	ts := ParseTimestamp(modified)
	entry.DateModified = &ts
	return entry
}

func archiveEntry(game, dataset string, kind Kind, path string) *Entry {
	entry := NewEntry(game, dataset, SourceArchive)
	entry.SetFile(kind, path)
	entry.StartDate = strPtr("20240101")
	entry.EndDate = strPtr("20240131")
	return entry
}

func TestMergeMetadataInsertsThenReplacesOnlyWhenNewer(t *testing.T) {
	c := New()

	first := metadataEntry("GAMEA", "GAMEA_20240101_to_20240131_abc", "2024-02-01T00:00:00")
	first.SetFile(KindPopulation, "data/GAMEA/pop_v1.zip")
	outcome, err := c.Merge(first)
	if err != nil {
		t.Fatalf("Merge first: %v", err)
	}
	if outcome != OutcomeInserted {
		t.Fatalf("outcome = %s, want inserted", outcome)
	}

	older := metadataEntry("GAMEA", "GAMEA_20240101_to_20240131_abc", "2024-01-15T00:00:00")
	older.SetFile(KindPopulation, "data/GAMEA/pop_old.zip")
	if outcome, _ := c.Merge(older); outcome != OutcomeKept {
		t.Fatalf("older outcome = %s, want kept", outcome)
	}

	equal := metadataEntry("GAMEA", "GAMEA_20240101_to_20240131_abc", "2024-02-01T00:00:00")
	equal.SetFile(KindPopulation, "data/GAMEA/pop_equal.zip")
	if outcome, _ := c.Merge(equal); outcome != OutcomeKept {
		t.Fatalf("equal outcome = %s, want kept", outcome)
	}

	newer := metadataEntry("GAMEA", "GAMEA_20240101_to_20240131_abc", "2024-03-01T00:00:00")
	newer.SetFile(KindPlayers, "data/GAMEA/players_v2.zip")
	if outcome, _ := c.Merge(newer); outcome != OutcomeReplaced {
		t.Fatalf("newer outcome = %s, want replaced", outcome)
	}

	got, ok := c.Entry("GAMEA", "GAMEA_20240101_to_20240131_abc")
	if !ok {
		t.Fatal("entry missing after merges")
	}
	if _, ok := got.File(KindPopulation); ok {
		t.Fatal("replacement should be wholesale; population_file survived")
	}
	if path, _ := got.File(KindPlayers); path != "data/GAMEA/players_v2.zip" {
		t.Fatalf("players_file = %q", path)
	}
}

func TestMergeMetadataWithoutTimestampIsInvalid(t *testing.T) {
	c := New()
	entry := NewEntry("GAMEA", "D1", SourceMetadata)
	if _, err := c.Merge(entry); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("invalid entry should not be stored")
	}
}

func TestMergeNilEntry(t *testing.T) {
	if _, err := New().Merge(nil); !errors.Is(err, ErrNilEntry) {
		t.Fatalf("expected ErrNilEntry, got %v", err)
	}
}

func TestMergeArchiveBackfillsOnlyEmptySlots(t *testing.T) {
	c := New()
	meta := metadataEntry("GAMEA", "D1", "2024-02-01")
	meta.SetFile(KindPopulation, "data/GAMEA/pop_meta.zip")
	meta.SetTemplate(KindPopulation, "tmpl/pop.ipynb")
	if _, err := c.Merge(meta); err != nil {
		t.Fatal(err)
	}

	if outcome, _ := c.Merge(archiveEntry("GAMEA", "D1", KindPopulation, "data/GAMEA/pop_zip.zip")); outcome != OutcomeUnchanged {
		t.Fatalf("populated slot outcome = %s, want unchanged", outcome)
	}
	if outcome, _ := c.Merge(archiveEntry("GAMEA", "D1", KindEvents, "data/GAMEA/events.zip")); outcome != OutcomeBackfilled {
		t.Fatalf("empty slot outcome = %s, want backfilled", outcome)
	}

	got, _ := c.Entry("GAMEA", "D1")
	if path, _ := got.File(KindPopulation); path != "data/GAMEA/pop_meta.zip" {
		t.Fatalf("population_file overwritten: %q", path)
	}
	if tmpl, _ := got.Template(KindPopulation); tmpl != "tmpl/pop.ipynb" {
		t.Fatalf("population_template overwritten: %q", tmpl)
	}
	if path, _ := got.File(KindEvents); path != "data/GAMEA/events.zip" {
		t.Fatalf("events_file = %q", path)
	}
	if tmpl, ok := got.Template(KindEvents); !ok || tmpl != "" {
		t.Fatalf("events_template = %q (set=%v), want empty string", tmpl, ok)
	}
	if got.DateModified == nil || got.DateModified.Raw != "2024-02-01" {
		t.Fatal("archive merge must not touch date_modified")
	}
}

func TestMergeArchiveRawBackfillHasNoTemplate(t *testing.T) {
	c := New()
	if _, err := c.Merge(metadataEntry("GAMEA", "D1", "2024-02-01")); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Merge(archiveEntry("GAMEA", "D1", KindRaw, "data/GAMEA/raw.zip")); err != nil {
		t.Fatal(err)
	}
	got, _ := c.Entry("GAMEA", "D1")
	if len(got.Templates) != 0 {
		t.Fatalf("raw backfill should not add templates: %v", got.Templates)
	}
}

func TestMetadataSupersedesArchiveOnlyEntry(t *testing.T) {
	c := New()
	if _, err := c.Merge(archiveEntry("GAMEA", "D1", KindSessions, "data/GAMEA/s.zip")); err != nil {
		t.Fatal(err)
	}
	if outcome, _ := c.Merge(metadataEntry("GAMEA", "D1", "2024-02-01")); outcome != OutcomeReplaced {
		t.Fatalf("outcome = %s, want replaced", outcome)
	}
}

func TestMergeStoresCopy(t *testing.T) {
	c := New()
	entry := archiveEntry("GAMEA", "D1", KindSessions, "data/GAMEA/s.zip")
	if _, err := c.Merge(entry); err != nil {
		t.Fatal(err)
	}
	entry.SetFile(KindEvents, "mutated")
	got, _ := c.Entry("GAMEA", "D1")
	if _, ok := got.File(KindEvents); ok {
		t.Fatal("catalog observed caller mutation")
	}
}

func TestSetSessionsOnlyFillsUnset(t *testing.T) {
	c := New()
	if c.SetSessions("GAMEA", "D1", 3) {
		t.Fatal("SetSessions on missing entry should report false")
	}
	if _, err := c.Merge(archiveEntry("GAMEA", "D1", KindSessions, "data/GAMEA/s.zip")); err != nil {
		t.Fatal(err)
	}
	if !c.SetSessions("GAMEA", "D1", 3) {
		t.Fatal("first SetSessions should apply")
	}
	if c.SetSessions("GAMEA", "D1", 9) {
		t.Fatal("second SetSessions should be ignored")
	}
	got, _ := c.Entry("GAMEA", "D1")
	if got.Sessions == nil || *got.Sessions != 3 {
		t.Fatalf("sessions = %v, want 3", got.Sessions)
	}
}

func TestInjectConfigRespectsConfigGame(t *testing.T) {
	c := New()
	if _, err := c.Merge(archiveEntry(ConfigKey, "D1", KindRaw, "data/CONFIG/raw.zip")); err != nil {
		t.Fatal(err)
	}
	if c.InjectConfig(strPtr("https://files"), nil) {
		t.Fatal("InjectConfig should refuse when a CONFIG game exists")
	}
	if _, ok := c.Config(); ok {
		t.Fatal("config section should be absent")
	}
}

func TestMarshalIsSortedAndIndented(t *testing.T) {
	c := New()
	if _, err := c.Merge(archiveEntry("GAMEA", "D1", KindSessions, "data/GAMEA/s.zip")); err != nil {
		t.Fatal(err)
	}
	c.InjectConfig(nil, nil)

	data, err := Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	want := `{
    "CONFIG": {
        "files_base": null,
        "templates_base": null
    },
    "GAMEA": {
        "D1": {
            "date_modified": null,
            "end_date": "20240131",
            "events_file": null,
            "events_template": null,
            "ogd_revision": null,
            "players_file": null,
            "players_template": null,
            "population_file": null,
            "population_template": null,
            "raw_file": null,
            "sessions": null,
            "sessions_file": "data/GAMEA/s.zip",
            "sessions_template": null,
            "start_date": "20240101"
        }
    }
}
`
	if string(data) != want {
		t.Fatalf("unexpected output:\n%s", data)
	}
}

func TestMarshalDoesNotEscapeHTML(t *testing.T) {
	c := New()
	entry := metadataEntry("GAMEA", "D1", "2024-02-01")
	entry.SetFile(KindEvents, "data/GAMEA/a&b<c>.zip")
	if _, err := c.Merge(entry); err != nil {
		t.Fatal(err)
	}
	data, err := Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"data/GAMEA/a&b<c>.zip"`) {
		t.Fatalf("path was escaped:\n%s", data)
	}
}

func TestWriteLoadRoundTripIsStable(t *testing.T) {
	c := New()
	meta := metadataEntry("GAMEB", "D2", "2024-02-01T10:00:00")
	meta.SetFile(KindPopulation, "data/GAMEB/pop.zip")
	meta.SetTemplate(KindPopulation, "")
	meta.OGDRevision = strPtr("r42")
	sessions := 7
	meta.Sessions = &sessions
	if _, err := c.Merge(meta); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Merge(archiveEntry("GAMEA", "D1", KindRaw, "data/GAMEA/raw.zip")); err != nil {
		t.Fatal(err)
	}
	c.InjectConfig(strPtr("https://files.example/"), nil)

	path := filepath.Join(t.TempDir(), "file_list.json")
	if err := Write(path, c); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("loaded %d datasets, want 2", loaded.Len())
	}
	cfg, ok := loaded.Config()
	if !ok || cfg.FilesBase == nil || *cfg.FilesBase != "https://files.example/" || cfg.TemplatesBase != nil {
		t.Fatalf("config section = %+v (present=%v)", cfg, ok)
	}
	got, _ := loaded.Entry("GAMEB", "D2")
	if got.Source != SourceMetadata || got.Sessions == nil || *got.Sessions != 7 {
		t.Fatalf("unexpected loaded entry: %+v", got)
	}

	if err := Write(path, loaded); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatalf("round trip changed output:\n%s\n---\n%s", first, second)
	}
}

func TestUnmarshalTreatsNonConfigShapeAsGame(t *testing.T) {
	c, err := Unmarshal([]byte(`{"CONFIG": {"D1": {"raw_file": "x.zip"}}}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Config(); ok {
		t.Fatal("dataset map should not be read as a config section")
	}
	if _, ok := c.Entry(ConfigKey, "D1"); !ok {
		t.Fatal("expected CONFIG game entry")
	}
}

func TestGamesAndDatasetsAreSorted(t *testing.T) {
	c := New()
	for _, game := range []string{"ZETA", "ALPHA", "MID"} {
		for _, id := range []string{"d3", "d1", "d2"} {
			if _, err := c.Merge(archiveEntry(game, id, KindRaw, "x.zip")); err != nil {
				t.Fatal(err)
			}
		}
	}
	if got := strings.Join(c.Games(), ","); got != "ALPHA,MID,ZETA" {
		t.Fatalf("games = %s", got)
	}
	if got := strings.Join(c.Datasets("MID"), ","); got != "d1,d2,d3" {
		t.Fatalf("datasets = %s", got)
	}
	entries := c.Entries()
	if len(entries) != 9 || entries[0].GameID != "ALPHA" || entries[0].DatasetID != "d1" {
		t.Fatalf("unexpected entry order")
	}
}
