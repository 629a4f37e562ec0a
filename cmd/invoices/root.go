package main

import (
	"github.com/deppfellow/invoice-dashboard/internal/config"
	"github.com/deppfellow/invoice-dashboard/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app is what every subcommand needs: configuration, the optional New
// Relic service and the root logger.
type app struct {
	cfg           *config.Config
	loggerService *logger.LoggerService
	log           zerolog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "invoices",
		Short:         "Acme invoice dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.loggerService = logger.NewLoggerService(cfg.Observability)
			a.log = logger.NewLoggerWithService(cfg.Observability, a.loggerService)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.loggerService != nil {
				a.loggerService.Shutdown()
			}
		},
	}

	cmd.AddCommand(newServeCommand(a))
	cmd.AddCommand(newMigrateCommand(a))

	return cmd
}
