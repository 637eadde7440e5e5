package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reindexer/internal/catalog"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show [PATH]",
		Short: "Summarize an existing catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = strings.TrimSpace(args[0])
			}
			if path == "" {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				path = cfg.OutputPath()
			}

			c, err := catalog.Load(path)
			if err != nil {
				return err
			}
			summary := summarizeCatalog(path, c)
			if jsonOutput {
				return writeJSON(cmd, summary)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSummary(summary, shouldColorize(cmd.OutOrStdout())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func renderSummary(summary catalogSummary, colorize bool) string {
	p := newNumberPrinter()

	rows := make([][]string, 0, len(summary.Games))
	for _, game := range summary.Games {
		rows = append(rows, []string{
			game.GameID,
			p.Sprintf("%d", game.Datasets),
			dashIfEmpty(game.FirstStart),
			dashIfEmpty(game.LastEnd),
			p.Sprintf("%d", game.Sessions),
			p.Sprintf("%d", game.Uncounted),
			dashIfEmpty(game.LatestModified),
		})
	}

	var b strings.Builder
	b.WriteString(renderTable(tableSpec{
		title:   summary.Path,
		headers: []string{"Game", "Datasets", "First start", "Last end", "Sessions", "Uncounted", "Latest modified"},
		rows:    rows,
		footer: []string{
			"Total",
			p.Sprintf("%d", summary.Datasets),
			"", "",
			p.Sprintf("%d", summary.Sessions),
			"", "",
		},
		aligns:   []columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
		colorize: colorize,
	}))
	b.WriteString("\n")

	artifactRows := make([][]string, 0, len(catalog.Kinds))
	for _, kind := range catalog.Kinds {
		artifactRows = append(artifactRows, []string{kindLabel(kind), p.Sprintf("%d", summary.Artifacts[kind.String()])})
	}
	b.WriteString(renderTable(tableSpec{
		headers:  []string{"Artifact", "Datasets"},
		rows:     artifactRows,
		aligns:   []columnAlignment{alignLeft, alignRight},
		colorize: colorize,
	}))
	b.WriteString("\n")

	if summary.HasConfig {
		fmt.Fprintf(&b, "files_base: %s\ntemplates_base: %s\n", nullable(summary.FilesBase), nullable(summary.TemplatesBase))
	} else {
		b.WriteString("CONFIG section: absent\n")
	}
	return b.String()
}

func dashIfEmpty(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func nullable(value *string) string {
	if value == nil {
		return "null"
	}
	return *value
}
