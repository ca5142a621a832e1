package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/Atharva080324/TrueScan/internal/domain"
)

func TestNewGemini_RequiresModel(t *testing.T) {
	t.Parallel()

	_, err := NewGemini(context.Background(), GeminiConfig{APIKey: "key"})
	if err == nil {
		t.Fatal("expected error for missing model")
	}
}

func TestNewGemini_MissingKeyStartsUnready(t *testing.T) {
	t.Parallel()

	g, err := NewGemini(context.Background(), GeminiConfig{Model: "gemini-2.0-flash"})
	if err != nil {
		t.Fatalf("missing api key must not fail construction: %v", err)
	}
	if g.Ready() {
		t.Error("expected unready client without an api key")
	}

	if _, err := g.GenerateText(context.Background(), "hi", Options{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey from GenerateText, got %v", err)
	}
	if _, err := g.GenerateContent(context.Background(), nil, nil); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey from GenerateContent, got %v", err)
	}
}

func TestClassifyErr(t *testing.T) {
	t.Parallel()

	for _, msg := range []string{
		"googleapi: Error 429: too many requests",
		"model is overloaded",
		"rpc error: resource exhausted",
	} {
		if err := classifyErr(errors.New(msg)); !errors.Is(err, domain.ErrOverloaded) {
			t.Errorf("expected overload classification for %q, got %v", msg, err)
		}
	}

	if err := classifyErr(errors.New("bad request")); errors.Is(err, domain.ErrOverloaded) {
		t.Errorf("plain errors must not be classified as overload: %v", err)
	}
}
