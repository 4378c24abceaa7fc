package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/pri3o/internal/config"
	"github.com/quantmind-br/pri3o/internal/core"
	"github.com/quantmind-br/pri3o/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd(cfg *config.Config, log *zerolog.Logger, env *Env) *cobra.Command {
	var (
		jsonOutput  bool
		plainOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications in picker order",
		Long:  `List the applications exactly as they would be offered to the picker, without running it.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := prepareConfig(cfg, env); err != nil {
				return err
			}

			ranked, err := newController(cfg, env, log).Ranked(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case jsonOutput:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(ranked)
			case plainOutput:
				for _, entry := range ranked {
					fmt.Fprintln(out, entry.Key)
				}
				return nil
			}

			if len(ranked) == 0 {
				ui.PrintInfo("No applications found")
				return nil
			}

			return printRankedTable(cmd, ranked)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().BoolVar(&plainOutput, "plain", false, "print the picker input, one entry per line")
	cmd.MarkFlagsMutuallyExclusive("json", "plain")

	return cmd
}

// printRankedTable prints ranked entries as a table
func printRankedTable(cmd *cobra.Command, ranked []core.RankedEntry) error {
	table := tablewriter.NewTable(cmd.OutOrStdout(),
		tablewriter.WithHeader([]string{"#", "Entry", "Count", "Terminal", "Command"}),
		tablewriter.WithAlignment(tw.MakeAlign(5, tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
	)

	for i, entry := range ranked {
		terminal := "-"
		if entry.Record.Terminal {
			terminal = "yes"
		}

		if err := table.Append(
			strconv.Itoa(i+1),
			entry.Key,
			strconv.Itoa(entry.Count),
			terminal,
			entry.Record.Command,
		); err != nil {
			return fmt.Errorf("append table row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}
