package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Atharva080324/TrueScan/internal/domain"
	"github.com/Atharva080324/TrueScan/internal/httpclient"
	"github.com/Atharva080324/TrueScan/internal/retry"
)

// ErrMissingAPIKey is returned when the ElevenLabs key is not configured.
var ErrMissingAPIKey = errors.New("elevenlabs api key not configured")

// ElevenLabsConfig configures the ElevenLabs engine.
type ElevenLabsConfig struct {
	// APIKey authenticates against the ElevenLabs API.
	APIKey string
	// BaseURL is the API base URL. Defaults to the public endpoint.
	BaseURL string
	// VoiceID selects the voice.
	VoiceID string
	// ModelID selects the synthesis model.
	ModelID string
	// OutputFormat selects the audio encoding.
	OutputFormat string
	// Timeout bounds a single synthesis request.
	Timeout time.Duration
	// MaxRetries bounds retry attempts for transient failures.
	MaxRetries int
}

// ElevenLabs synthesizes speech through the ElevenLabs API.
type ElevenLabs struct {
	cfg        ElevenLabsConfig
	httpClient *http.Client
}

// ttsRequest is the text-to-speech request payload.
type ttsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// NewElevenLabs creates an ElevenLabs engine.
func NewElevenLabs(cfg ElevenLabsConfig) *ElevenLabs {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.elevenlabs.io"
	}
	if cfg.VoiceID == "" {
		cfg.VoiceID = "JBFqnCBsd6RMkjVDRZzb"
	}
	if cfg.ModelID == "" {
		cfg.ModelID = "eleven_multilingual_v2"
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "mp3_44100_128"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}

	return &ElevenLabs{
		cfg:        cfg,
		httpClient: httpclient.NewWithTimeout(cfg.Timeout),
	}
}

// Name identifies the engine.
func (e *ElevenLabs) Name() string { return "elevenlabs" }

// Ready reports whether the engine has an API key configured.
func (e *ElevenLabs) Ready() bool { return e.cfg.APIKey != "" }

// Synthesize renders text as MP3 through the ElevenLabs API.
func (e *ElevenLabs) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if !e.Ready() {
		return nil, ErrMissingAPIKey
	}

	var audio []byte
	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = e.cfg.MaxRetries

	err := retry.Retry(ctx, retryCfg, func() error {
		var synthErr error
		audio, synthErr = e.synthesizeOnce(ctx, text)
		return synthErr
	})
	if err != nil {
		return nil, fmt.Errorf("elevenlabs synthesis: %w", err)
	}

	return audio, nil
}

func (e *ElevenLabs) synthesizeOnce(ctx context.Context, text string) ([]byte, error) {
	payload, err := json.Marshal(ttsRequest{
		Text:    text,
		ModelID: e.cfg.ModelID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=%s",
		e.cfg.BaseURL,
		url.PathEscape(e.cfg.VoiceID),
		url.QueryEscape(e.cfg.OutputFormat),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("xi-api-key", e.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: status 429", domain.ErrOverloaded)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("empty audio response")
	}

	return audio, nil
}
