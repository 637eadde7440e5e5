package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// ConfigKey is the reserved top-level key holding the CONFIG section.
const ConfigKey = "CONFIG"

var (
	// ErrNilEntry is returned when Merge receives a nil entry.
	ErrNilEntry = errors.New("catalog: nil entry")
	// ErrInvalidEntry is returned when an entry lacks the fields its source requires.
	ErrInvalidEntry = errors.New("catalog: invalid entry")
)

// MergeOutcome describes what Merge did with an incoming entry.
type MergeOutcome int

const (
	// OutcomeInserted means no entry existed and the incoming one was stored.
	OutcomeInserted MergeOutcome = iota
	// OutcomeReplaced means a newer metadata entry replaced the existing one.
	OutcomeReplaced
	// OutcomeKept means an equal or older metadata entry was discarded.
	OutcomeKept
	// OutcomeBackfilled means an archive filled at least one empty artifact slot.
	OutcomeBackfilled
	// OutcomeUnchanged means an archive offered nothing the entry lacked.
	OutcomeUnchanged
)

func (o MergeOutcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeReplaced:
		return "replaced"
	case OutcomeKept:
		return "kept"
	case OutcomeBackfilled:
		return "backfilled"
	case OutcomeUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// ConfigSection is the CONFIG pseudo-game. Nil values serialize as null.
type ConfigSection struct {
	FilesBase     *string `json:"files_base"`
	TemplatesBase *string `json:"templates_base"`
}

// Catalog is the in-memory index built during one run. It is not safe for
// concurrent mutation; the indexer is its single writer.
type Catalog struct {
	games  map[string]map[string]*Entry
	config *ConfigSection
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{games: make(map[string]map[string]*Entry)}
}

// Merge folds entry into the catalog using the rule for its source. The
// catalog stores its own copy; later changes to entry are not observed.
func (c *Catalog) Merge(entry *Entry) (MergeOutcome, error) {
	if entry == nil {
		return 0, ErrNilEntry
	}
	if entry.GameID == "" || entry.DatasetID == "" {
		return 0, fmt.Errorf("%w: game_id and dataset_id are required", ErrInvalidEntry)
	}
	switch entry.Source {
	case SourceMetadata:
		return c.mergeMetadata(entry)
	case SourceArchive:
		return c.mergeArchive(entry), nil
	default:
		return 0, fmt.Errorf("%w: unknown source %d", ErrInvalidEntry, entry.Source)
	}
}

// mergeMetadata replaces wholesale, and only when strictly newer.
func (c *Catalog) mergeMetadata(entry *Entry) (MergeOutcome, error) {
	if entry.DateModified == nil {
		return 0, fmt.Errorf("%w: metadata entry %s has no date_modified", ErrInvalidEntry, entry.DatasetID)
	}
	datasets := c.datasets(entry.GameID)
	existing, ok := datasets[entry.DatasetID]
	if !ok {
		datasets[entry.DatasetID] = entry.Clone()
		return OutcomeInserted, nil
	}
	// An archive-only entry has no timestamp, so any metadata supersedes it.
	if existing.DateModified == nil || entry.DateModified.After(*existing.DateModified) {
		datasets[entry.DatasetID] = entry.Clone()
		return OutcomeReplaced, nil
	}
	return OutcomeKept, nil
}

// mergeArchive creates the entry or fills slots that are still empty. A
// populated slot is never overwritten.
func (c *Catalog) mergeArchive(entry *Entry) MergeOutcome {
	datasets := c.datasets(entry.GameID)
	existing, ok := datasets[entry.DatasetID]
	if !ok {
		datasets[entry.DatasetID] = entry.Clone()
		return OutcomeInserted
	}
	outcome := OutcomeUnchanged
	for _, kind := range Kinds {
		path, ok := entry.File(kind)
		if !ok {
			continue
		}
		if _, taken := existing.File(kind); taken {
			continue
		}
		existing.SetFile(kind, path)
		existing.SetTemplate(kind, "")
		outcome = OutcomeBackfilled
	}
	return outcome
}

func (c *Catalog) datasets(gameID string) map[string]*Entry {
	datasets, ok := c.games[gameID]
	if !ok {
		datasets = make(map[string]*Entry)
		c.games[gameID] = datasets
	}
	return datasets
}

// Entry returns the stored entry for a game and dataset. The returned pointer
// is owned by the catalog.
func (c *Catalog) Entry(gameID, datasetID string) (*Entry, bool) {
	entry, ok := c.games[gameID][datasetID]
	return entry, ok
}

// SetSessions records a computed session count. It is a no-op returning false
// when the entry is missing or already has a count.
func (c *Catalog) SetSessions(gameID, datasetID string, count int) bool {
	entry, ok := c.Entry(gameID, datasetID)
	if !ok || entry.Sessions != nil {
		return false
	}
	entry.Sessions = &count
	return true
}

// Games returns the game identifiers in sorted order.
func (c *Catalog) Games() []string {
	games := make([]string, 0, len(c.games))
	for game := range c.games {
		games = append(games, game)
	}
	slices.Sort(games)
	return games
}

// Datasets returns the dataset identifiers of a game in sorted order.
func (c *Catalog) Datasets(gameID string) []string {
	datasets := make([]string, 0, len(c.games[gameID]))
	for id := range c.games[gameID] {
		datasets = append(datasets, id)
	}
	slices.Sort(datasets)
	return datasets
}

// Entries returns every entry ordered by game then dataset.
func (c *Catalog) Entries() []*Entry {
	var out []*Entry
	for _, game := range c.Games() {
		for _, id := range c.Datasets(game) {
			out = append(out, c.games[game][id])
		}
	}
	return out
}

// Len returns the number of datasets across all games.
func (c *Catalog) Len() int {
	n := 0
	for _, datasets := range c.games {
		n += len(datasets)
	}
	return n
}

// InjectConfig sets the CONFIG section. It does nothing and returns false when
// a CONFIG section is already present or a game is literally named CONFIG.
func (c *Catalog) InjectConfig(filesBase, templatesBase *string) bool {
	if c.config != nil {
		return false
	}
	if _, ok := c.games[ConfigKey]; ok {
		return false
	}
	c.config = &ConfigSection{
		FilesBase:     clonePtr(filesBase),
		TemplatesBase: clonePtr(templatesBase),
	}
	return true
}

// Config returns the CONFIG section, if one was injected or loaded.
func (c *Catalog) Config() (ConfigSection, bool) {
	if c.config == nil {
		return ConfigSection{}, false
	}
	return *c.config, true
}
