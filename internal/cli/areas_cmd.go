package cli

import (
	"fmt"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAreasCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "areas AREAS.csv",
		Short: "Print the parsed work-area index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args[0])
			if err != nil {
				return err
			}

			idx, err := app.Convert.ParseAreas(cmd.Context(), text)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAreas(idx))
			return nil
		},
	}
}
