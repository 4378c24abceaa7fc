package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/pri3o/internal/config"
	"github.com/quantmind-br/pri3o/internal/core"
	"github.com/quantmind-br/pri3o/internal/db"
	"github.com/quantmind-br/pri3o/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command
func NewStatsCmd(cfg *config.Config, log *zerolog.Logger, env *Env) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show recorded launches",
		Long:  `Show the contents of the usage database, most launched applications first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := prepareConfig(cfg, env); err != nil {
				return err
			}

			ctx := cmd.Context()
			database, err := db.Open(ctx, cfg.Paths.DBFile)
			if err != nil {
				return fmt.Errorf("%w: open %s: %w", core.ErrStorage, cfg.Paths.DBFile, err)
			}
			defer database.Close()

			entries, err := database.List(ctx)
			if err != nil {
				return fmt.Errorf("%w: list usage: %w", core.ErrStorage, err)
			}
			log.Debug().Int("entries", len(entries)).Str("db", database.Path()).Msg("loaded usage")

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			if len(entries) == 0 {
				ui.PrintInfo("No launches recorded yet")
				return nil
			}

			return printUsageTable(cmd, entries)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	return cmd
}

// printUsageTable prints usage entries with their launch totals
func printUsageTable(cmd *cobra.Command, entries []core.UsageEntry) error {
	table := tablewriter.NewTable(cmd.OutOrStdout(),
		tablewriter.WithHeader([]string{"#", "Application", "Launches", "Count"}),
		tablewriter.WithAlignment(tw.MakeAlign(4, tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
	)

	for i, entry := range entries {
		if err := table.Append(
			strconv.Itoa(i+1),
			entry.App,
			strconv.Itoa(-entry.Count),
			strconv.Itoa(entry.Count),
		); err != nil {
			return fmt.Errorf("append table row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}
