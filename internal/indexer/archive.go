package indexer

import (
	"context"
	"path/filepath"

	"reindexer/internal/catalog"
	"reindexer/internal/exportname"
	"reindexer/internal/logging"
)

// IndexArchiveFiles is the second pipeline stage. Archives only create
// entries or fill empty slots; names that do not parse are skipped with a
// warning. Sessions archives that created their entry are row-counted once
// every archive has been merged.
func (ix *Indexer) IndexArchiveFiles(ctx context.Context, c *catalog.Catalog, paths []string) (Stats, error) {
	logger := logging.WithContext(ctx, ix.logger)
	var (
		stats Stats
		tasks []rowCountTask
	)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		name, err := exportname.Parse(filepath.Base(path))
		if err != nil {
			stats.ArchivesSkipped++
			logging.WarnWithContext(logger, "skipping archive with malformed name", "archive_name_malformed",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "expected {game}_{start}_to_{end}_{suffix}_{kind}.zip"),
				logging.String(logging.FieldImpact, "archive not cataloged"),
			)
			continue
		}
		kind, err := name.Kind()
		if err != nil {
			stats.ArchivesSkipped++
			logging.WarnWithContext(logger, "skipping archive with unknown kind", "archive_kind_unknown",
				logging.String(logging.FieldPath, path),
				logging.String(logging.FieldKind, name.KindToken),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "add the kind token to the exporter kind table"),
				logging.String(logging.FieldImpact, "archive not cataloged"),
			)
			continue
		}

		entry := catalog.NewEntry(name.GameID, name.DatasetID, catalog.SourceArchive)
		entry.SetFile(kind, path)
		if tmpl, ok := name.TreeTemplate(); ok {
			entry.SetTemplate(kind, tmpl)
		}
		entry.StartDate = &name.StartDate
		entry.EndDate = &name.EndDate

		outcome, err := c.Merge(entry)
		if err != nil {
			return stats, err
		}

		attrs := []logging.Attr{
			logging.String(logging.FieldGameID, name.GameID),
			logging.String(logging.FieldDatasetID, name.DatasetID),
			logging.String(logging.FieldKind, kind.String()),
			logging.String(logging.FieldPath, path),
		}
		switch outcome {
		case catalog.OutcomeInserted:
			stats.ArchivesCreated++
			logger.Info("indexing archive", logging.Args(attrs...)...)
			if kind == catalog.KindSessions {
				tasks = append(tasks, rowCountTask{
					gameID:    name.GameID,
					datasetID: name.DatasetID,
					path:      path,
					stem:      name.Stem,
				})
			}
		case catalog.OutcomeBackfilled:
			stats.ArchivesBackfilled++
			logger.Info("updating index with archive", logging.Args(attrs...)...)
		default:
			stats.ArchivesUnchanged++
			logger.Debug("archive slot already filled", logging.Args(attrs...)...)
		}
	}

	rowStats, err := ix.countRows(ctx, c, tasks)
	stats.add(rowStats)
	return stats, err
}
