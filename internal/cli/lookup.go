package cli

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"weather-history/internal/services/history"
)

func lookupCmd(configPath *string) *cobra.Command {
	var start, end string
	var save bool
	var label string

	c := &cobra.Command{
		Use:   "lookup <location>",
		Short: "Resolve a location and print its weather as JSON",
		Long: "Resolve a city, ZIP or \"lat,lon\" and print current conditions with\n" +
			"either the 5-day forecast or, with --start and --end, one row per day.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(cmd.Context(), *configPath, os.Stderr)
			if err != nil {
				return err
			}
			defer d.Close()

			req := history.LookupRequest{
				Query: strings.Join(args, " "),
				Start: start,
				End:   end,
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			if save {
				sr := history.SearchRequest{LookupRequest: req}
				if cmd.Flags().Changed("label") {
					sr.Label = &label
				}
				rec, err := d.history.Search(cmd.Context(), sr)
				if err != nil {
					return err
				}
				return enc.Encode(rec)
			}

			report, err := d.history.Lookup(cmd.Context(), req)
			if err != nil {
				return err
			}
			return enc.Encode(report)
		},
	}

	c.Flags().StringVar(&start, "start", "", "Range start date (YYYY-MM-DD)")
	c.Flags().StringVar(&end, "end", "", "Range end date (YYYY-MM-DD)")
	c.Flags().BoolVar(&save, "save", false, "Store the search and its snapshot in the history")
	c.Flags().StringVar(&label, "label", "", "Label for a saved search")
	return c
}
