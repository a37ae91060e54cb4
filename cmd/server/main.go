package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scheduler/internal/config"
	"scheduler/internal/logger"
	"scheduler/internal/repository"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scheduler",
		Short:         "Appointment booking server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database tables",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate()
			},
		},
	)
	return root
}

func runMigrate() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.Init(cfg.IsProduction())
	defer log.Sync()

	gdb, err := repository.Open(cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	if err := repository.Migrate(gdb); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

func closeDB(log *zap.Logger, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Warn("error closing database", zap.Error(err))
	}
}
