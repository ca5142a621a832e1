package tts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/Atharva080324/TrueScan/internal/httpclient"
)

// maxChunkChars is the per-request text limit of the translate TTS endpoint.
const maxChunkChars = 200

// GTranslateConfig configures the Google Translate TTS engine.
type GTranslateConfig struct {
	// BaseURL is the endpoint base. Defaults to the public endpoint.
	BaseURL string
	// Language is the speech language code.
	Language string
	// Timeout bounds a single chunk request.
	Timeout time.Duration
}

// GTranslate synthesizes speech through the unofficial Google Translate
// TTS endpoint. It needs no credentials, which makes it the natural
// fallback when ElevenLabs is unavailable.
type GTranslate struct {
	cfg        GTranslateConfig
	httpClient *http.Client
}

// NewGTranslate creates a Google Translate TTS engine.
func NewGTranslate(cfg GTranslateConfig) *GTranslate {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://translate.google.com/translate_tts"
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &GTranslate{
		cfg:        cfg,
		httpClient: httpclient.NewWithTimeout(cfg.Timeout),
	}
}

// Name identifies the engine.
func (g *GTranslate) Name() string { return "gtranslate" }

// Ready always reports true; the endpoint needs no credentials.
func (g *GTranslate) Ready() bool { return true }

// Synthesize renders text as MP3, splitting it into chunks the endpoint
// accepts and concatenating the resulting MP3 frames.
func (g *GTranslate) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("empty text")
	}

	var audio bytes.Buffer
	for _, chunk := range SplitChunks(text, maxChunkChars) {
		data, err := g.fetchChunk(ctx, chunk)
		if err != nil {
			return nil, err
		}
		audio.Write(data)
	}

	return audio.Bytes(), nil
}

func (g *GTranslate) fetchChunk(ctx context.Context, chunk string) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", g.cfg.Language)
	params.Set("q", chunk)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	return data, nil
}

// SplitChunks splits text into pieces no longer than limit bytes,
// preferring to break on sentence ends, then on word boundaries.
func SplitChunks(text string, limit int) []string {
	if limit <= 0 {
		limit = maxChunkChars
	}

	var chunks []string
	remaining := strings.TrimSpace(text)

	for len(remaining) > limit {
		cut := findBreak(remaining, limit)
		chunks = append(chunks, strings.TrimSpace(remaining[:cut]))
		remaining = strings.TrimSpace(remaining[cut:])
	}
	if remaining != "" {
		chunks = append(chunks, remaining)
	}

	return chunks
}

// findBreak returns a cut position at or before limit, preferring
// sentence-ending punctuation, then whitespace. The hard cut backs up
// to a rune boundary so multibyte text is never split mid-rune.
func findBreak(s string, limit int) int {
	window := s[:limit]

	if i := strings.LastIndexAny(window, ".!?"); i > 0 {
		return i + 1
	}

	for i := limit - 1; i > 0; i-- {
		if unicode.IsSpace(rune(s[i])) {
			return i
		}
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		return limit
	}
	return cut
}
