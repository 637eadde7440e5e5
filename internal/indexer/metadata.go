package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"reindexer/internal/catalog"
	"reindexer/internal/logging"
)

// sidecar is the .meta schema written by the exporter.
type sidecar struct {
	GameID       *string     `json:"game_id"`
	DatasetID    *string     `json:"dataset_id"`
	DateModified flexString  `json:"date_modified"`
	OGDRevision  flexString  `json:"ogd_revision"`
	StartDate    flexString  `json:"start_date"`
	EndDate      flexString  `json:"end_date"`
	Sessions     json.Number `json:"sessions"`

	PopulationFile *string `json:"population_file"`
	PlayersFile    *string `json:"players_file"`
	SessionsFile   *string `json:"sessions_file"`
	EventsFile     *string `json:"events_file"`
	RawFile        *string `json:"raw_file"`

	PopulationTemplate *string `json:"population_template"`
	PlayersTemplate    *string `json:"players_template"`
	SessionsTemplate   *string `json:"sessions_template"`
	EventsTemplate     *string `json:"events_template"`
}

func (s *sidecar) file(kind catalog.Kind) *string {
	switch kind {
	case catalog.KindPopulation:
		return s.PopulationFile
	case catalog.KindPlayers:
		return s.PlayersFile
	case catalog.KindSessions:
		return s.SessionsFile
	case catalog.KindEvents:
		return s.EventsFile
	case catalog.KindRaw:
		return s.RawFile
	}
	return nil
}

func (s *sidecar) template(kind catalog.Kind) *string {
	switch kind {
	case catalog.KindPopulation:
		return s.PopulationTemplate
	case catalog.KindPlayers:
		return s.PlayersTemplate
	case catalog.KindSessions:
		return s.SessionsTemplate
	case catalog.KindEvents:
		return s.EventsTemplate
	}
	return nil
}

// flexString accepts a JSON string or number and keeps its text. Older
// exporters wrote revisions and dates as bare numbers.
type flexString struct {
	value string
	set   bool
}

func (f *flexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*f = flexString{}
		return nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		*f = flexString{value: s, set: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err == nil {
		*f = flexString{value: n.String(), set: true}
		return nil
	}
	return fmt.Errorf("expected string or number, got %s", trimmed)
}

func (f flexString) ptr() *string {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

// LoadMetadata parses a .meta sidecar into a catalog entry. Artifact paths are
// reduced to their basename and re-joined against the sidecar's directory.
func LoadMetadata(path string) (*catalog.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata %s: %w", path, err)
	}

	var meta sidecar
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, path, err)
	}
	required := []struct {
		key   string
		value *string
	}{
		{"game_id", meta.GameID},
		{"dataset_id", meta.DatasetID},
		{"date_modified", meta.DateModified.ptr()},
	}
	for _, field := range required {
		if field.value == nil || strings.TrimSpace(*field.value) == "" {
			return nil, fmt.Errorf("%w: %s: missing %s", ErrMalformedMetadata, path, field.key)
		}
	}

	entry := catalog.NewEntry(*meta.GameID, *meta.DatasetID, catalog.SourceMetadata)
	modified := catalog.ParseTimestamp(meta.DateModified.value)
	entry.DateModified = &modified
	entry.OGDRevision = meta.OGDRevision.ptr()
	entry.StartDate = meta.StartDate.ptr()
	entry.EndDate = meta.EndDate.ptr()
	if meta.Sessions != "" {
		sessions, err := meta.Sessions.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: sessions: %v", ErrMalformedMetadata, path, err)
		}
		count := int(sessions)
		entry.Sessions = &count
	}

	dir := filepath.Dir(path)
	for _, kind := range catalog.Kinds {
		artifact, ok := resolveArtifact(dir, meta.file(kind))
		if !ok {
			continue
		}
		entry.SetFile(kind, artifact)
		if tmpl := meta.template(kind); tmpl != nil {
			entry.SetTemplate(kind, *tmpl)
		} else {
			entry.SetTemplate(kind, "")
		}
	}
	return entry, nil
}

// resolveArtifact keeps the final '/'-separated segment of value and joins it
// to dir.
func resolveArtifact(dir string, value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	raw := strings.TrimSpace(*value)
	if idx := strings.LastIndexByte(raw, '/'); idx >= 0 {
		raw = raw[idx+1:]
	}
	if raw == "" {
		return "", false
	}
	return filepath.Join(dir, raw), true
}

// IndexMetadataFiles is the first pipeline stage. It stops at the first
// malformed sidecar.
func (ix *Indexer) IndexMetadataFiles(ctx context.Context, c *catalog.Catalog, paths []string) (Stats, error) {
	logger := logging.WithContext(ctx, ix.logger)
	var stats Stats

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		entry, err := LoadMetadata(path)
		if err != nil {
			return stats, err
		}
		outcome, err := c.Merge(entry)
		if err != nil {
			return stats, fmt.Errorf("merge metadata %s: %w", path, err)
		}

		attrs := []logging.Attr{
			logging.String(logging.FieldGameID, entry.GameID),
			logging.String(logging.FieldDatasetID, entry.DatasetID),
			logging.String(logging.FieldPath, path),
			logging.String("outcome", outcome.String()),
		}
		switch outcome {
		case catalog.OutcomeInserted:
			stats.MetadataInserted++
			logger.Info("indexed metadata", logging.Args(attrs...)...)
		case catalog.OutcomeReplaced:
			stats.MetadataReplaced++
			logger.Info("replaced with newer metadata", logging.Args(attrs...)...)
		default:
			stats.MetadataKept++
			logger.Debug("kept existing metadata", logging.Args(attrs...)...)
		}
	}
	return stats, nil
}
