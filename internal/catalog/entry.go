package catalog

import (
	"bytes"
	"encoding/json"
	"maps"
)

// Source records which kind of input created an entry.
type Source int

const (
	// SourceMetadata entries come from .meta sidecars and carry full provenance.
	SourceMetadata Source = iota
	// SourceArchive entries are inferred from a .zip filename alone.
	SourceArchive
)

func (s Source) String() string {
	if s == SourceArchive {
		return "archive"
	}
	return "metadata"
}

// Entry is one dataset: a game's exported artifacts for one date range.
type Entry struct {
	GameID    string
	DatasetID string
	Source    Source

	Files     map[Kind]string
	Templates map[Kind]string

	OGDRevision  *string
	StartDate    *string
	EndDate      *string
	DateModified *Timestamp
	Sessions     *int
}

// NewEntry returns an empty entry for the given identifiers.
func NewEntry(gameID, datasetID string, source Source) *Entry {
	return &Entry{
		GameID:    gameID,
		DatasetID: datasetID,
		Source:    source,
		Files:     make(map[Kind]string),
		Templates: make(map[Kind]string),
	}
}

// File returns the artifact path for kind, if set.
func (e *Entry) File(kind Kind) (string, bool) {
	path, ok := e.Files[kind]
	return path, ok
}

// SetFile records the artifact path for kind.
func (e *Entry) SetFile(kind Kind, path string) {
	if e.Files == nil {
		e.Files = make(map[Kind]string)
	}
	e.Files[kind] = path
}

// Template returns the template reference for kind, if set.
func (e *Entry) Template(kind Kind) (string, bool) {
	tmpl, ok := e.Templates[kind]
	return tmpl, ok
}

// SetTemplate records the template reference for kind. Kinds without
// templates are ignored.
func (e *Entry) SetTemplate(kind Kind, tmpl string) {
	if !kind.HasTemplate() {
		return
	}
	if e.Templates == nil {
		e.Templates = make(map[Kind]string)
	}
	e.Templates[kind] = tmpl
}

// Clone returns a deep copy of e.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	out := *e
	out.Files = maps.Clone(e.Files)
	out.Templates = maps.Clone(e.Templates)
	if out.Files == nil {
		out.Files = make(map[Kind]string)
	}
	if out.Templates == nil {
		out.Templates = make(map[Kind]string)
	}
	out.OGDRevision = clonePtr(e.OGDRevision)
	out.StartDate = clonePtr(e.StartDate)
	out.EndDate = clonePtr(e.EndDate)
	out.DateModified = clonePtr(e.DateModified)
	out.Sessions = clonePtr(e.Sessions)
	return &out
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

// wireEntry is the serialized form. Fields are declared in key order so the
// encoder emits sorted keys.
type wireEntry struct {
	DateModified       *string `json:"date_modified"`
	EndDate            *string `json:"end_date"`
	EventsFile         *string `json:"events_file"`
	EventsTemplate     *string `json:"events_template"`
	OGDRevision        *string `json:"ogd_revision"`
	PlayersFile        *string `json:"players_file"`
	PlayersTemplate    *string `json:"players_template"`
	PopulationFile     *string `json:"population_file"`
	PopulationTemplate *string `json:"population_template"`
	RawFile            *string `json:"raw_file"`
	Sessions           *int    `json:"sessions"`
	SessionsFile       *string `json:"sessions_file"`
	SessionsTemplate   *string `json:"sessions_template"`
	StartDate          *string `json:"start_date"`
}

func (w *wireEntry) fileSlot(kind Kind) **string {
	switch kind {
	case KindPopulation:
		return &w.PopulationFile
	case KindPlayers:
		return &w.PlayersFile
	case KindSessions:
		return &w.SessionsFile
	case KindEvents:
		return &w.EventsFile
	case KindRaw:
		return &w.RawFile
	}
	return nil
}

func (w *wireEntry) templateSlot(kind Kind) **string {
	switch kind {
	case KindPopulation:
		return &w.PopulationTemplate
	case KindPlayers:
		return &w.PlayersTemplate
	case KindSessions:
		return &w.SessionsTemplate
	case KindEvents:
		return &w.EventsTemplate
	}
	return nil
}

// MarshalJSON renders the entry with every key present; unset values are null.
func (e *Entry) MarshalJSON() ([]byte, error) {
	var w wireEntry
	for _, kind := range Kinds {
		if path, ok := e.File(kind); ok {
			*w.fileSlot(kind) = &path
		}
		if slot := w.templateSlot(kind); slot != nil {
			if tmpl, ok := e.Template(kind); ok {
				*slot = &tmpl
			}
		}
	}
	w.OGDRevision = e.OGDRevision
	w.StartDate = e.StartDate
	w.EndDate = e.EndDate
	w.Sessions = e.Sessions
	if e.DateModified != nil {
		raw := e.DateModified.Raw
		w.DateModified = &raw
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(w); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON reads the serialized form. GameID and DatasetID are not part
// of the payload and must be filled in by the caller.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w wireEntry
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = Entry{
		Files:       make(map[Kind]string),
		Templates:   make(map[Kind]string),
		OGDRevision: w.OGDRevision,
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
		Sessions:    w.Sessions,
		Source:      SourceArchive,
	}
	for _, kind := range Kinds {
		if path := *w.fileSlot(kind); path != nil {
			e.Files[kind] = *path
		}
		if slot := w.templateSlot(kind); slot != nil && *slot != nil {
			e.Templates[kind] = **slot
		}
	}
	if w.DateModified != nil {
		ts := ParseTimestamp(*w.DateModified)
		e.DateModified = &ts
		e.Source = SourceMetadata
	}
	return nil
}
