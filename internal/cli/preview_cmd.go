package cli

import (
	"fmt"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPreviewCmd(app *App) *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "preview WORKLOG.csv",
		Short: "Print the normalized rows without writing documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := in.request(args[0])
			if err != nil {
				return err
			}
			req.Formats = nil

			resp, err := app.Convert.Convert(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPreview(resp, in.weekly))
			return nil
		},
	}

	in.register(cmd.Flags())
	return cmd
}
