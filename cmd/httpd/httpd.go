// Package httpd provides the HTTP server command.
package httpd

import (
	"github.com/spf13/cobra"

	"github.com/Atharva080324/TrueScan/internal/api"
	"github.com/Atharva080324/TrueScan/internal/app"
	"github.com/Atharva080324/TrueScan/internal/domain"
	"github.com/Atharva080324/TrueScan/internal/logger"
	"github.com/Atharva080324/TrueScan/internal/scheduler"
)

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Start the TrueScan HTTP server",
		Long:  "Start the HTTP server exposing broadcast generation, clip downloads, health, and metrics.",
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

	a, err := app.New(cmd.Context(), cfg, log, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	handler := api.NewHandler(a.Pipeline, a.Store, cfg.Service.GenerateTimeout, log)
	server := api.NewServer(cfg, api.ServerDeps{
		Handler:   handler,
		Telemetry: a.Telemetry,
		Services:  a.Services,
		Checks:    a.Checks,
	}, log)

	// A configured cron schedule runs inside the server process.
	if cfg.Schedule.Cron != "" {
		sched, schedErr := scheduler.New(scheduler.Config{
			Spec:       cfg.Schedule.Cron,
			Topics:     cfg.Schedule.Topics,
			SourceType: domain.SourceType(cfg.Schedule.SourceType),
			Timeout:    cfg.Service.GenerateTimeout,
		}, a.Pipeline, log)
		if schedErr != nil {
			return schedErr
		}
		sched.Start()
		defer sched.Stop()
	}

	log.Info("TrueScan starting",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
		logger.Bool("debug", cfg.Service.Debug),
	)

	return server.RunWithGracefulShutdown(cmd.Context())
}
