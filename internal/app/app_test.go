package app_test

import (
	"context"
	"testing"

	"github.com/Atharva080324/TrueScan/internal/app"
	"github.com/Atharva080324/TrueScan/internal/config"
	"github.com/Atharva080324/TrueScan/internal/logger"
)

// Missing credentials must degrade readiness, not fail startup.
func TestNew_NoCredentialsStartsDegraded(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Audio.Dir = t.TempDir()

	a, err := app.New(context.Background(), cfg, logger.NewNop(), app.Options{SkipReddit: true})
	if err != nil {
		t.Fatalf("startup without credentials must succeed: %v", err)
	}
	defer a.Close()

	for _, name := range []string{"gemini", "brightdata", "elevenlabs", "reddit"} {
		ready, ok := a.Services[name]
		if !ok {
			t.Errorf("missing readiness flag %q", name)
			continue
		}
		if ready() {
			t.Errorf("service %q must report unready without credentials", name)
		}
	}

	if a.Pipeline == nil {
		t.Error("pipeline must be wired even when degraded")
	}
	if a.Store == nil {
		t.Error("clip store must be wired")
	}
}

func TestNew_ReadyFlagsWithCredentials(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Audio.Dir = t.TempDir()
	cfg.BrightData.APIToken = "token"
	cfg.BrightData.Zone = "zone"
	cfg.ElevenLabs.APIKey = "key"

	a, err := app.New(context.Background(), cfg, logger.NewNop(), app.Options{SkipReddit: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close()

	if !a.Services["brightdata"]() {
		t.Error("brightdata must report ready with token and zone")
	}
	if !a.Services["elevenlabs"]() {
		t.Error("elevenlabs must report ready with an api key")
	}
	if a.Services["reddit"]() {
		t.Error("reddit must report unready when skipped")
	}
}
