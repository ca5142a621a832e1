package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Atharva080324/TrueScan/internal/domain"
	"github.com/Atharva080324/TrueScan/internal/logger"
	"github.com/Atharva080324/TrueScan/internal/pipeline"
	"github.com/Atharva080324/TrueScan/internal/scheduler"
)

type fakeGenerator struct {
	err      error
	calls    int
	got      domain.GenerateRequest
	deadline time.Time
}

func (f *fakeGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (*pipeline.Result, error) {
	f.calls++
	f.got = req
	f.deadline, _ = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return &pipeline.Result{
		Broadcast: &domain.Broadcast{Script: "s"},
		Clip:      domain.Clip{ID: "tts_20250101_070000.mp3"},
	}, nil
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{}

	_, err := scheduler.New(scheduler.Config{Topics: []string{"ai"}}, gen, logger.NewNop())
	if err == nil {
		t.Error("expected error for missing cron spec")
	}

	_, err = scheduler.New(scheduler.Config{Spec: "0 7 * * *"}, gen, logger.NewNop())
	if err == nil {
		t.Error("expected error for missing topics")
	}

	_, err = scheduler.New(scheduler.Config{
		Spec:   "not a cron spec",
		Topics: []string{"ai"},
	}, gen, logger.NewNop())
	if err == nil {
		t.Error("expected error for invalid cron spec")
	}
}

func TestRunOnce(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{}
	s, err := scheduler.New(scheduler.Config{
		Spec:       "0 7 * * *",
		Topics:     []string{"ai", "space"},
		SourceType: domain.SourceNews,
	}, gen, logger.NewNop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	if gen.calls != 1 {
		t.Fatalf("expected 1 generation, got %d", gen.calls)
	}
	if len(gen.got.Topics) != 2 || gen.got.SourceType != domain.SourceNews {
		t.Errorf("unexpected request: %+v", gen.got)
	}
}

func TestRunOnce_AppliesTimeout(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{}
	s, err := scheduler.New(scheduler.Config{
		Spec:    "@hourly",
		Topics:  []string{"ai"},
		Timeout: 3 * time.Minute,
	}, gen, logger.NewNop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	before := time.Now()
	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	if gen.deadline.IsZero() {
		t.Fatal("expected the run context to carry a deadline")
	}
	remaining := gen.deadline.Sub(before)
	if remaining <= 0 || remaining > 3*time.Minute {
		t.Errorf("unexpected deadline %v from now", remaining)
	}
}

func TestRunOnce_PropagatesError(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{err: errors.New("pipeline down")}
	s, err := scheduler.New(scheduler.Config{
		Spec:   "@hourly",
		Topics: []string{"ai"},
	}, gen, logger.NewNop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := s.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
