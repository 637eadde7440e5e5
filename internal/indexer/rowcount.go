package indexer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"reindexer/internal/catalog"
	"reindexer/internal/exportname"
	"reindexer/internal/logging"
)

type rowCountTask struct {
	gameID    string
	datasetID string
	path      string
	stem      string
}

type rowCountResult struct {
	count int
	err   error
}

// countRows reads the sessions tables on a bounded pool and applies the counts
// serially in task order. A failed count leaves sessions null.
func (ix *Indexer) countRows(ctx context.Context, c *catalog.Catalog, tasks []rowCountTask) (Stats, error) {
	var stats Stats
	if len(tasks) == 0 {
		return stats, nil
	}
	logger := logging.WithContext(ctx, ix.logger)

	results := make([]rowCountResult, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.workers)
	for i, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			count, err := exportname.CountRows(task.path, task.datasetID, task.stem)
			results[i] = rowCountResult{count: count, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	for i, task := range tasks {
		result := results[i]
		if result.err != nil {
			stats.RowCountsFailed++
			logging.WarnWithContext(logger, "could not count sessions", "row_count_failed",
				logging.String(logging.FieldGameID, task.gameID),
				logging.String(logging.FieldDatasetID, task.datasetID),
				logging.String(logging.FieldPath, task.path),
				logging.Error(result.err),
				logging.String(logging.FieldErrorHint, "check that the archive opens and embeds "+exportname.TablePaths(task.datasetID, task.stem)[0]),
				logging.String(logging.FieldImpact, "sessions left null for this dataset"),
			)
			continue
		}
		if c.SetSessions(task.gameID, task.datasetID, result.count) {
			stats.RowCountsComputed++
			logger.Debug("counted sessions",
				logging.String(logging.FieldDatasetID, task.datasetID),
				logging.Int("sessions", result.count),
			)
		}
	}
	return stats, nil
}
