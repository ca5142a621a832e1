// Package scheduler provides the standalone scheduled generation command.
package scheduler

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Atharva080324/TrueScan/internal/app"
	"github.com/Atharva080324/TrueScan/internal/domain"
	"github.com/Atharva080324/TrueScan/internal/scheduler"
)

// Command returns the scheduler command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run scheduled broadcast generation",
		Long:  "Run broadcast generation on the cron schedule from configuration, without the HTTP server.",
		RunE:  run,
	}
}

func run(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, log, err := app.Setup(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Schedule.Cron == "" {
		return errors.New("schedule.cron must be configured")
	}

	a, err := app.New(cmd.Context(), cfg, log, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := scheduler.New(scheduler.Config{
		Spec:       cfg.Schedule.Cron,
		Topics:     cfg.Schedule.Topics,
		SourceType: domain.SourceType(cfg.Schedule.SourceType),
		Timeout:    cfg.Service.GenerateTimeout,
	}, a.Pipeline, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched.Start()
	<-ctx.Done()
	sched.Stop()

	return nil
}
