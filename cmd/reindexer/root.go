package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// levelChoices are the verbosity values accepted by --level.
var levelChoices = []string{"DEBUG", "INFO", "WARN"}

func newRootCommand() *cobra.Command {
	var configFlag string
	var levelFlag string

	ctx := newCommandContext(&configFlag, &levelFlag)

	rootCmd := &cobra.Command{
		Use:           "reindexer",
		Short:         "Rebuild the dataset catalog from the export tree",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateLevel(levelFlag); err != nil {
				return err
			}
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&levelFlag, "level", "l", "", "Set the logging level to DEBUG, INFO, or WARN")

	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func validateLevel(level string) error {
	if level == "" {
		return nil
	}
	for _, choice := range levelChoices {
		if strings.EqualFold(level, choice) {
			return nil
		}
	}
	return fmt.Errorf("invalid --level %q (choose from %s)", level, strings.Join(levelChoices, ", "))
}
