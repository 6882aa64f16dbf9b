package cli

import (
	"fmt"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/config"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/spf13/cobra"
)

// ServiceFactory builds the conversion service once the configuration is
// known. Pipeline lines are sent to log.
type ServiceFactory func(cfg config.Config, log domain.Logger) (service.ConvertService, error)

// App holds the state shared by CLI commands.
type App struct {
	NewService ServiceFactory
	Log        *formatter.LogWriter

	// Set by the root command before any subcommand runs.
	Config  config.Config
	Convert service.ConvertService
}

// NewRootCmd creates the top-level "timesheet" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string
	var quiet bool

	root := &cobra.Command{
		Use:           "timesheet",
		Short:         "Turn worklog CSV exports into timesheet documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			app.Config = cfg
			app.Log.Quiet = quiet

			svc, err := app.NewService(cfg, app.Log.Line)
			if err != nil {
				return fmt.Errorf("setting up: %w", err)
			}
			app.Convert = svc
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $"+config.EnvConfigPath+")")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print warnings and errors")

	root.AddCommand(
		newConvertCmd(app),
		newPreviewCmd(app),
		newAreasCmd(app),
	)

	return root
}

// Execute runs the root command with args and returns the process exit
// code. A failure is reported as an "Error: …" line through app.Log.
func Execute(app *App, args []string) int {
	root := NewRootCmd(app)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		app.Log.Line(fmt.Sprintf("Error: %v", err))
		return 1
	}
	return 0
}
