package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"reindexer/internal/catalog"
	"reindexer/internal/catalogdb"
	"reindexer/internal/logging"
	"reindexer/internal/preflight"
)

// Result describes a completed run.
type Result struct {
	RunID      string
	OutputPath string
	MirrorPath string
	Catalog    *catalog.Catalog
	Stats      Stats
}

// Run checks the filesystem, takes the catalog lock, builds the catalog and
// writes it (and the SQLite mirror when configured). The run id is taken from
// ctx when present.
func (ix *Indexer) Run(ctx context.Context) (Result, error) {
	runID, ok := logging.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
		ctx = logging.WithRunID(ctx, runID)
	}
	logger := logging.WithContext(ctx, ix.logger)

	if err := preflight.Err(preflight.RunAll(ix.cfg)); err != nil {
		return Result{}, err
	}

	lockPath := ix.cfg.LockPath()
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return Result{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return Result{}, fmt.Errorf("%w (lock %s)", ErrBuildInProgress, lockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release catalog lock", logging.String(logging.FieldPath, lockPath), logging.Error(err))
		}
	}()

	logger.Info("catalog build started",
		logging.String("data_dir", ix.cfg.Paths.DataDir),
		logging.String("output", ix.cfg.OutputPath()),
	)

	c, stats, err := ix.Build(ctx)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		RunID:      runID,
		OutputPath: ix.cfg.OutputPath(),
		Catalog:    c,
		Stats:      stats,
	}
	if err := catalog.Write(result.OutputPath, c); err != nil {
		return Result{}, err
	}
	logger.Info("catalog written", logging.String(logging.FieldPath, result.OutputPath))

	if path := ix.cfg.Output.SQLitePath; path != "" {
		if err := ix.mirror(ctx, path, runID, c); err != nil {
			return Result{}, err
		}
		result.MirrorPath = path
		logger.Info("catalog mirrored", logging.String(logging.FieldPath, path))
	}
	return result, nil
}

func (ix *Indexer) mirror(ctx context.Context, path, runID string, c *catalog.Catalog) error {
	store, err := catalogdb.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("open catalog mirror: %w", err)
	}
	defer store.Close()

	build := catalogdb.Build{
		RunID:        runID,
		BuiltAt:      time.Now(),
		DataRoot:     ix.cfg.Paths.DataDir,
		DatasetCount: c.Len(),
		FilesBase:    ix.cfg.FilesBase(),
		TemplateBase: ix.cfg.TemplatesBase(),
	}
	if err := store.Replace(ctx, c, build); err != nil {
		return fmt.Errorf("mirror catalog: %w", err)
	}
	return nil
}
