package tts

import (
	"context"
	"sync"

	"github.com/Atharva080324/TrueScan/internal/logger"
)

// defaultMaxFailures is how many consecutive primary failures are
// tolerated before the fallback takes over permanently.
const defaultMaxFailures = 3

// FallbackEngine wraps a primary and a fallback engine. Each synthesis
// tries the primary first; after MaxFailures consecutive primary
// failures it stops trying the primary altogether.
type FallbackEngine struct {
	primary  Engine
	fallback Engine
	log      logger.Logger

	maxFailures int

	mu            sync.Mutex
	failures      int
	usingFallback bool
}

// NewFallbackEngine creates a fallback wrapper. maxFailures <= 0 uses
// the default.
func NewFallbackEngine(primary, fallback Engine, maxFailures int, log logger.Logger) *FallbackEngine {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	return &FallbackEngine{
		primary:     primary,
		fallback:    fallback,
		maxFailures: maxFailures,
		log:         log,
	}
}

// Name identifies the currently active engine.
func (f *FallbackEngine) Name() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.usingFallback || !f.primary.Ready() {
		return f.fallback.Name()
	}
	return f.primary.Name()
}

// Ready reports whether either engine can synthesize.
func (f *FallbackEngine) Ready() bool {
	return f.primary.Ready() || f.fallback.Ready()
}

// Synthesize tries the primary engine, falling back on failure.
func (f *FallbackEngine) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if f.tryPrimary() {
		audio, err := f.primary.Synthesize(ctx, text)
		if err == nil {
			f.recordSuccess()
			return audio, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}

		f.recordFailure(err)
	}

	return f.fallback.Synthesize(ctx, text)
}

// tryPrimary reports whether the primary engine should be attempted.
func (f *FallbackEngine) tryPrimary() bool {
	if !f.primary.Ready() {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.usingFallback
}

func (f *FallbackEngine) recordSuccess() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = 0
}

func (f *FallbackEngine) recordFailure(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failures++
	f.log.Warn("Primary TTS engine failed",
		logger.String("engine", f.primary.Name()),
		logger.Int("consecutive_failures", f.failures),
		logger.Error(err),
	)

	if f.failures >= f.maxFailures && !f.usingFallback {
		f.usingFallback = true
		f.log.Warn("Switching to fallback TTS engine",
			logger.String("fallback", f.fallback.Name()),
		)
	}
}
