package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"reindexer/internal/indexer"
	"reindexer/internal/logging"
)

func runBuild(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger()
	if err != nil {
		return err
	}

	runCtx := logging.WithRunID(cmd.Context(), uuid.NewString())
	result, err := indexer.New(cfg, logger).Run(runCtx)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	stats := result.Stats
	printer := newNumberPrinter()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s datasets across %s games to %s\n",
		printer.Sprintf("%d", result.Catalog.Len()),
		printer.Sprintf("%d", len(result.Catalog.Games())),
		result.OutputPath,
	)
	fmt.Fprintf(out, "Metadata: %d indexed, %d replaced, %d kept | Archives: %d created, %d backfilled, %d skipped | Row counts: %d ok, %d failed\n",
		stats.MetadataInserted, stats.MetadataReplaced, stats.MetadataKept,
		stats.ArchivesCreated, stats.ArchivesBackfilled, stats.ArchivesSkipped,
		stats.RowCountsComputed, stats.RowCountsFailed,
	)
	if result.MirrorPath != "" {
		fmt.Fprintf(out, "Mirrored to %s\n", result.MirrorPath)
	}
	return nil
}
