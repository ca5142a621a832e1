package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Atharva080324/TrueScan/internal/domain"
)

// ErrMissingAPIKey is returned by generation calls when no API key is
// configured.
var ErrMissingAPIKey = errors.New("gemini api key not configured")

// GeminiConfig configures the Gemini client.
type GeminiConfig struct {
	// APIKey authenticates against the Gemini API.
	APIKey string
	// Model is the model name, e.g. "gemini-2.0-flash".
	Model string
}

// Gemini is a Gemini-backed TextGenerator.
// It also exposes the raw generate call used by the tool-calling agent.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini client for the given model. A missing API
// key is not an error: the client is created unready and generation
// calls return ErrMissingAPIKey, so the service can start degraded and
// report readiness on its health endpoint.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.Model == "" {
		return nil, errors.New("gemini model is required")
	}
	if cfg.APIKey == "" {
		return &Gemini{model: cfg.Model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{client: client, model: cfg.Model}, nil
}

// Ready reports whether an API key was configured.
func (g *Gemini) Ready() bool {
	return g.client != nil
}

// Model returns the configured model name.
func (g *Gemini) Model() string {
	return g.model
}

// GenerateText runs a single-turn text generation call.
func (g *Gemini) GenerateText(ctx context.Context, prompt string, opts Options) (string, error) {
	if g.client == nil {
		return "", ErrMissingAPIKey
	}

	cfg := &genai.GenerateContentConfig{}
	if opts.SystemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(opts.SystemPrompt)},
		}
	}
	if opts.Temperature != 0 {
		cfg.Temperature = genai.Ptr(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = opts.MaxTokens
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", classifyErr(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty model response")
	}
	return text, nil
}

// GenerateContent runs a raw generate call with full control over contents
// and config. Used by the tool-calling agent.
func (g *Gemini) GenerateContent(
	ctx context.Context,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	if g.client == nil {
		return nil, ErrMissingAPIKey
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return nil, classifyErr(err)
	}
	return resp, nil
}

// classifyErr maps throttling responses onto domain.ErrOverloaded so
// callers can back off instead of failing outright.
func classifyErr(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "overloaded") ||
		strings.Contains(msg, "resource exhausted") {
		return fmt.Errorf("%w: %v", domain.ErrOverloaded, err)
	}
	return err
}
