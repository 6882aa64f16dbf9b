package main

import (
	"os"

	"github.com/alexanderramin/timesheet/internal/cli"
	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/config"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	// Color pipeline lines only when stderr is a terminal.
	color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	app := &cli.App{
		Log:        formatter.NewLogWriter(os.Stderr, color),
		NewService: newService,
	}
	os.Exit(cli.Execute(app, os.Args[1:]))
}

func newService(cfg config.Config, log domain.Logger) (service.ConvertService, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}
	return service.NewConvertService(cfg, loc, log, observer), nil
}
