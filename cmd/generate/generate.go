// Package generate provides the one-shot broadcast generation command.
package generate

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Atharva080324/TrueScan/internal/app"
	"github.com/Atharva080324/TrueScan/internal/domain"
	"github.com/Atharva080324/TrueScan/internal/logger"
)

// Command returns the generate command.
func Command() *cobra.Command {
	var (
		topics []string
		source string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one broadcast and exit",
		Long:  "Generate a single broadcast for the given topics and write the MP3 to a file.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, topics, source, out)
		},
	}

	cmd.Flags().StringSliceVarP(&topics, "topic", "t", nil, "topic to cover (repeatable, max 3)")
	cmd.Flags().StringVarP(&source, "source", "s", "both", "sources to use: news, reddit, or both")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output MP3 path (defaults to the clip store)")
	_ = cmd.MarkFlagRequired("topic")

	return cmd
}

func run(cmd *cobra.Command, topics []string, source, out string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, log, err := app.Setup(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	sourceType, err := domain.ParseSourceType(source)
	if err != nil {
		return err
	}

	a, err := app.New(cmd.Context(), cfg, log, app.Options{
		// No Reddit process is needed for a news-only run.
		SkipReddit: sourceType == domain.SourceNews,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Service.GenerateTimeout)
	defer cancel()

	result, err := a.Pipeline.Generate(ctx, domain.GenerateRequest{
		Topics:     topics,
		SourceType: sourceType,
	})
	if err != nil {
		return err
	}

	if out != "" {
		if err := os.WriteFile(out, result.Audio, 0o644); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
	}

	log.Info("Broadcast written",
		logger.String("clip", result.Clip.ID),
		logger.String("out", out),
		logger.Int64("audio_bytes", result.Clip.Size),
		logger.Bool("from_cache", result.Broadcast.FromCache),
	)
	return nil
}
