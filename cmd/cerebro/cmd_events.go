package main

import (
	"cerebro/internal"
	"cerebro/internal/models"
	"cerebro/internal/query"
	"cerebro/internal/services"
	"cerebro/internal/structures"
	"cerebro/internal/view"
	"fmt"
	"io"
	"net/url"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newAddCmd(flags *structures.CliFlags) *cobra.Command {
	var in services.EventInput
	var intensity, sleep, stress string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a journal event",
		Example: `  cerebro add --type mood --intensity 6 --emotion calm
  cerebro add --type sleep --intensity 4 --sleep 6.5 --dt 2026-10-18T23:30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Intensity = services.FormValue(intensity)
			in.Sleep = services.FormValue(sleep)
			in.Stress = services.FormValue(stress)
			return withJournal(flags, func(j *internal.Journal) error {
				ev, err := j.Service.Create(cmd.Context(), in)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), ev)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Type, "type", "", "event type (required)")
	f.StringVar(&intensity, "intensity", "", "intensity (required)")
	f.StringVar(&in.Dt, "dt", "", "RFC3339 or YYYY-MM-DDTHH:MM in the configured time zone; defaults to now")
	f.StringVar(&in.Emotion, "emotion", "", "emotion label")
	f.StringVar(&sleep, "sleep", "", "sleep score")
	f.StringVar(&stress, "stress", "", "stress score")
	f.StringVar(&in.State, "state", "", "free-form state")
	f.StringVar(&in.Notes, "notes", "", "notes")
	f.BoolVar(&in.CaptureLocation, "capture-location", false, "attach the configured coarse location")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("intensity")
	return cmd
}

func newListCmd(flags *structures.CliFlags) *cobra.Command {
	var q, typ, minIntensity, from, to string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := url.Values{}
			values.Set("q", q)
			values.Set("type", typ)
			values.Set("minIntensity", minIntensity)
			values.Set("from", from)
			values.Set("to", to)

			return withJournal(flags, func(j *internal.Journal) error {
				c, err := query.ParseCriteria(values, j.Service.Location())
				if err != nil {
					return err
				}
				events, err := j.Service.List(cmd.Context(), c)
				if err != nil {
					return err
				}
				if asJSON {
					if events == nil {
						events = []models.Event{}
					}
					return printJSON(cmd.OutOrStdout(), events)
				}
				page := view.Build(events, models.Insights{}, j.Service.Location())
				return printItems(cmd.OutOrStdout(), page.Items)
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&q, "query", "q", "", "case-insensitive text search")
	f.StringVar(&typ, "type", "", "exact event type")
	f.StringVar(&minIntensity, "min-intensity", "", "inclusive minimum intensity")
	f.StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	f.StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	f.BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newDeleteCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event; unknown ids are ignored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(flags, func(j *internal.Journal) error {
				return j.Service.Delete(cmd.Context(), args[0])
			})
		},
	}
}

func printItems(w io.Writer, items []view.Item) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No matching events.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tTYPE\tINTENSITY\tEMOTION\tNOTES\tID")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n", it.When, it.Type, it.Intensity, it.Emotion, it.Notes, it.ID)
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
