package main

import (
	"cerebro/internal"
	"cerebro/internal/structures"
	"cerebro/internal/view"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(flags *structures.CliFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show journal insights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(flags, func(j *internal.Journal) error {
				summary, err := j.Service.Insights(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), summary)
				}

				w := cmd.OutOrStdout()
				page := view.Build(nil, summary, j.Service.Location())
				for _, tile := range page.Tiles {
					fmt.Fprintf(w, "%-14s %s\n", tile.Label+":", tile.Value)
				}
				if page.NoData {
					fmt.Fprintln(w, "No data yet.")
					return nil
				}
				fmt.Fprintln(w, "\nBy type:")
				for _, row := range page.Types {
					fmt.Fprintf(w, "  %-20s %s\n", row.Label, row.Value)
				}
				fmt.Fprintln(w, "\nRecent:")
				for _, row := range page.Recent {
					fmt.Fprintf(w, "  %-36s %s\n", row.Label, row.Value)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
