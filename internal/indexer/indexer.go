package indexer

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"reindexer/internal/catalog"
	"reindexer/internal/config"
	"reindexer/internal/logging"
)

var (
	// ErrMalformedMetadata marks a sidecar that is not valid JSON or lacks a
	// required key. It aborts the build.
	ErrMalformedMetadata = errors.New("indexer: malformed metadata")
	// ErrBuildInProgress is returned when another build holds the catalog lock.
	ErrBuildInProgress = errors.New("indexer: catalog build already in progress")
)

// Indexer builds catalogs for one configuration.
type Indexer struct {
	cfg      *config.Config
	logger   *slog.Logger
	workers  int
	excluded map[string]struct{}
}

// Stats summarizes a build.
type Stats struct {
	FilesSeen    int
	MetaFiles    int
	ArchiveFiles int
	IgnoredFiles int
	SkippedDirs  int

	MetadataInserted int
	MetadataReplaced int
	MetadataKept     int

	ArchivesCreated    int
	ArchivesBackfilled int
	ArchivesUnchanged  int
	ArchivesSkipped    int

	RowCountsComputed int
	RowCountsFailed   int

	Duration time.Duration
}

func (s *Stats) add(other Stats) {
	s.FilesSeen += other.FilesSeen
	s.MetaFiles += other.MetaFiles
	s.ArchiveFiles += other.ArchiveFiles
	s.IgnoredFiles += other.IgnoredFiles
	s.SkippedDirs += other.SkippedDirs
	s.MetadataInserted += other.MetadataInserted
	s.MetadataReplaced += other.MetadataReplaced
	s.MetadataKept += other.MetadataKept
	s.ArchivesCreated += other.ArchivesCreated
	s.ArchivesBackfilled += other.ArchivesBackfilled
	s.ArchivesUnchanged += other.ArchivesUnchanged
	s.ArchivesSkipped += other.ArchivesSkipped
	s.RowCountsComputed += other.RowCountsComputed
	s.RowCountsFailed += other.RowCountsFailed
}

// New constructs an indexer. A nil logger discards output.
func New(cfg *config.Config, logger *slog.Logger) *Indexer {
	workers := cfg.Indexing.RowCountWorkers
	if workers < 1 {
		workers = 1
	}
	ix := &Indexer{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "indexer"),
		workers:  workers,
		excluded: make(map[string]struct{}),
	}
	// The catalog normally lives inside the tree it describes.
	for _, path := range []string{cfg.OutputPath(), cfg.LockPath()} {
		if abs, err := filepath.Abs(path); err == nil {
			ix.excluded[abs] = struct{}{}
		}
	}
	return ix
}

// Build walks the data root and returns the merged catalog with its CONFIG
// section injected. Nothing is written to disk.
func (ix *Indexer) Build(ctx context.Context) (*catalog.Catalog, Stats, error) {
	logger := logging.WithContext(ctx, ix.logger)
	start := time.Now()

	plan, err := ix.Walk(ctx, ix.cfg.Paths.DataDir)
	if err != nil {
		return nil, Stats{}, err
	}
	stats := plan.Stats()

	c := catalog.New()
	metaStats, err := ix.IndexMetadataFiles(ctx, c, plan.MetaFiles)
	if err != nil {
		return nil, stats, err
	}
	stats.add(metaStats)

	archiveStats, err := ix.IndexArchiveFiles(ctx, c, plan.Archives)
	if err != nil {
		return nil, stats, err
	}
	stats.add(archiveStats)

	if !c.InjectConfig(ix.cfg.FilesBase(), ix.cfg.TemplatesBase()) {
		logging.WarnWithContext(logger, "CONFIG section not injected", "config_injection_skipped",
			logging.String(logging.FieldGameID, catalog.ConfigKey),
			logging.String(logging.FieldErrorHint, "a game named CONFIG exists in the export tree"),
			logging.String(logging.FieldImpact, "catalog has no files_base or templates_base"),
		)
	}

	stats.Duration = time.Since(start)
	logger.Info("catalog built",
		logging.Int("games", len(c.Games())),
		logging.Int("datasets", c.Len()),
		logging.Int("files_seen", stats.FilesSeen),
		logging.Duration("duration", stats.Duration),
	)
	return c, stats, nil
}
