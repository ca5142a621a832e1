// Package scheduler runs broadcast generation on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Atharva080324/TrueScan/internal/domain"
	"github.com/Atharva080324/TrueScan/internal/logger"
	"github.com/Atharva080324/TrueScan/internal/pipeline"
)

// Generator produces broadcasts. Satisfied by pipeline.Pipeline.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerateRequest) (*pipeline.Result, error)
}

// Config configures scheduled generation.
type Config struct {
	// Spec is a standard cron expression, e.g. "0 7 * * *".
	Spec string
	// Topics are generated on every tick.
	Topics []string
	// SourceType selects which sources feed the scheduled broadcast.
	SourceType domain.SourceType
	// Timeout bounds a single scheduled run.
	Timeout time.Duration
}

// Scheduler triggers the pipeline on a cron schedule. Overlapping runs
// are skipped, not queued.
type Scheduler struct {
	cfg       Config
	cron      *cron.Cron
	generator Generator
	logger    logger.Logger
}

// New creates a scheduler. The cron spec and topics must be set.
func New(cfg Config, generator Generator, log logger.Logger) (*Scheduler, error) {
	if cfg.Spec == "" {
		return nil, errors.New("cron spec is required")
	}
	if len(cfg.Topics) == 0 {
		return nil, errors.New("scheduled topics are required")
	}
	if cfg.SourceType == "" {
		cfg.SourceType = domain.SourceBoth
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}

	s := &Scheduler{
		cfg: cfg,
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		generator: generator,
		logger:    log,
	}

	if _, err := s.cron.AddFunc(cfg.Spec, s.tick); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins scheduling. It returns immediately.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started",
		logger.String("spec", s.cfg.Spec),
		logger.Strings("topics", s.cfg.Topics),
		logger.String("source_type", string(s.cfg.SourceType)),
	)
}

// Stop stops scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) tick() {
	if err := s.RunOnce(context.Background()); err != nil {
		s.logger.Error("Scheduled broadcast failed", logger.Error(err))
	}
}

// RunOnce generates one broadcast with the configured topics, bounded
// by the configured timeout.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	result, err := s.generator.Generate(ctx, domain.GenerateRequest{
		Topics:     s.cfg.Topics,
		SourceType: s.cfg.SourceType,
	})
	if err != nil {
		return err
	}

	s.logger.Info("Scheduled broadcast generated",
		logger.String("clip", result.Clip.ID),
		logger.Bool("from_cache", result.Broadcast.FromCache),
		logger.Duration("duration", time.Since(start)),
	)
	return nil
}
