package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func exportCmd(configPath *string) *cobra.Command {
	var format string
	var id int64

	c := &cobra.Command{
		Use:   "export",
		Short: "Write the search history (or one search) to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json" && format != "csv" {
				return fmt.Errorf("unknown format %q: expected json or csv", format)
			}
			if id < 0 {
				return fmt.Errorf("invalid id %d", id)
			}

			d, err := buildDeps(cmd.Context(), *configPath, os.Stderr)
			if err != nil {
				return err
			}
			defer d.Close()

			if format == "csv" {
				return d.history.WriteCSV(cmd.Context(), cmd.OutOrStdout(), id)
			}
			return d.history.WriteJSON(cmd.Context(), cmd.OutOrStdout(), id)
		},
	}

	c.Flags().StringVarP(&format, "format", "f", "json", "Output format: json|csv")
	c.Flags().Int64Var(&id, "id", 0, "Export a single search (0 exports the whole list)")
	return c
}
