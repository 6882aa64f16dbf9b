package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/contract"
	"github.com/spf13/cobra"
)

func newConvertCmd(app *App) *cobra.Command {
	var in inputFlags
	var legend bool
	var xlsxOut, docxOut, templatePath string

	cmd := &cobra.Command{
		Use:   "convert WORKLOG.csv",
		Short: "Render the worklog as a spreadsheet and/or a Word document",
		Long: "Render the worklog as a spreadsheet and/or a Word document.\n\n" +
			"Without --xlsx or --docx the spreadsheet is written next to the worklog.\n" +
			"The Word document is built from --template, whose placeholder paragraph\n" +
			"is replaced by the table.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if docxOut != "" && templatePath == "" {
				return fmt.Errorf("--docx requires --template")
			}

			req, err := in.request(args[0])
			if err != nil {
				return err
			}
			req.IncludeLegend = legend

			dest := map[contract.Format]string{}
			req.Formats = nil
			if xlsxOut != "" {
				req.Formats = append(req.Formats, contract.FormatXlsx)
				dest[contract.FormatXlsx] = xlsxOut
			}
			if docxOut != "" {
				req.Formats = append(req.Formats, contract.FormatDocx)
				dest[contract.FormatDocx] = docxOut
				data, err := os.ReadFile(templatePath)
				if err != nil {
					return fmt.Errorf("reading %s: %w", templatePath, err)
				}
				req.Template = data
			}
			if len(req.Formats) == 0 {
				req.Formats = []contract.Format{contract.FormatXlsx}
			}

			resp, err := app.Convert.Convert(cmd.Context(), req)
			if err != nil {
				return err
			}

			paths := make([]string, 0, len(resp.Outputs))
			for _, out := range resp.Outputs {
				path, ok := dest[out.Format]
				if !ok {
					path = filepath.Join(filepath.Dir(args[0]), out.FileName)
				}
				if err := os.WriteFile(path, out.Data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
				paths = append(paths, path)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatConvertSummary(resp, paths))
			return nil
		},
	}

	in.register(cmd.Flags())
	cmd.Flags().BoolVar(&legend, "legend", false, "Append a legend of the referenced work areas")
	cmd.Flags().StringVar(&xlsxOut, "xlsx", "", "Write the spreadsheet to this path")
	cmd.Flags().StringVar(&docxOut, "docx", "", "Write the Word document to this path")
	cmd.Flags().StringVar(&templatePath, "template", "", "Word template containing the placeholder paragraph")

	return cmd
}
