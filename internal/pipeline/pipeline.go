// Package pipeline orchestrates broadcast generation end to end:
// gather source material, write the script, synthesize audio, store the clip.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Atharva080324/TrueScan/internal/cache"
	"github.com/Atharva080324/TrueScan/internal/domain"
	"github.com/Atharva080324/TrueScan/internal/logger"
	"github.com/Atharva080324/TrueScan/internal/telemetry"
)

// ErrRedditUnavailable is returned for reddit-only requests when no
// Reddit analyzer is configured.
var ErrRedditUnavailable = errors.New("reddit analysis is not available")

// NewsScraper gathers per-topic news summaries.
type NewsScraper interface {
	ScrapeTopics(ctx context.Context, topics []string) ([]domain.TopicSummary, error)
}

// SocialAnalyzer gathers per-topic Reddit discussion summaries.
type SocialAnalyzer interface {
	AnalyzeTopics(ctx context.Context, topics []string) ([]domain.TopicSummary, error)
}

// ScriptWriter turns source material into a broadcast script.
type ScriptWriter interface {
	Write(ctx context.Context, req domain.GenerateRequest, news, social []domain.TopicSummary) (*domain.Broadcast, error)
}

// Synthesizer renders a script as MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// ClipSaver persists generated audio.
type ClipSaver interface {
	Save(audio []byte) (domain.Clip, error)
}

// Config configures the pipeline.
type Config struct {
	// MaxTopics bounds topics per request.
	MaxTopics int
	// CacheTTL is how long generated scripts stay cached.
	CacheTTL time.Duration
}

// Pipeline generates broadcasts.
type Pipeline struct {
	cfg    Config
	news   NewsScraper
	social SocialAnalyzer
	writer ScriptWriter
	engine Synthesizer
	store  ClipSaver
	cache  cache.Cache
	tel    *telemetry.Provider
	log    logger.Logger
}

// Result is a finished broadcast with its audio.
type Result struct {
	Broadcast *domain.Broadcast
	Clip      domain.Clip
	Audio     []byte
}

// New creates a pipeline. news and social may be nil when the matching
// source is not configured.
func New(
	cfg Config,
	news NewsScraper,
	social SocialAnalyzer,
	writer ScriptWriter,
	engine Synthesizer,
	store ClipSaver,
	scriptCache cache.Cache,
	tel *telemetry.Provider,
	log logger.Logger,
) *Pipeline {
	if cfg.MaxTopics <= 0 {
		cfg.MaxTopics = 3
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Minute
	}

	return &Pipeline{
		cfg:    cfg,
		news:   news,
		social: social,
		writer: writer,
		engine: engine,
		store:  store,
		cache:  scriptCache,
		tel:    tel,
		log:    log,
	}
}

// Generate produces the broadcast audio for a request.
func (p *Pipeline) Generate(ctx context.Context, req domain.GenerateRequest) (*Result, error) {
	req.Normalize()
	if err := req.Validate(p.cfg.MaxTopics); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := p.generate(ctx, req)
	p.tel.RecordBroadcast(string(req.SourceType), err == nil, time.Since(start))
	return result, err
}

func (p *Pipeline) generate(ctx context.Context, req domain.GenerateRequest) (*Result, error) {
	b, err := p.script(ctx, req)
	if err != nil {
		return nil, err
	}

	audio, err := p.synthesize(ctx, b.Script)
	if err != nil {
		return nil, err
	}

	clip, err := p.store.Save(audio)
	if err != nil {
		return nil, fmt.Errorf("store clip: %w", err)
	}
	p.tel.RecordClip(len(audio))

	p.log.Info("Broadcast generated",
		logger.Strings("topics", req.Topics),
		logger.String("source_type", string(req.SourceType)),
		logger.String("clip", clip.ID),
		logger.Bool("from_cache", b.FromCache),
		logger.Int64("audio_bytes", clip.Size),
	)

	return &Result{Broadcast: b, Clip: clip, Audio: audio}, nil
}

// script returns the broadcast script, from cache when possible.
func (p *Pipeline) script(ctx context.Context, req domain.GenerateRequest) (*domain.Broadcast, error) {
	key := cache.ScriptKey(req)

	if cached, err := p.cache.Get(ctx, key); err == nil {
		p.tel.RecordCacheHit(true)
		return &domain.Broadcast{
			Topics:     req.Topics,
			SourceType: req.SourceType,
			Script:     cached,
			FromCache:  true,
			CreatedAt:  time.Now().UTC(),
		}, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		// A broken cache should degrade to regeneration, not fail the request.
		p.log.Warn("Script cache lookup failed", logger.Error(err))
	}
	p.tel.RecordCacheHit(false)

	news, social, err := p.gather(ctx, req)
	if err != nil {
		return nil, err
	}

	b, err := p.writeScript(ctx, req, news, social)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, b.Script, p.cfg.CacheTTL); err != nil {
		p.log.Warn("Script cache store failed", logger.Error(err))
	}

	return b, nil
}

// gather collects source material from the requested sources.
func (p *Pipeline) gather(ctx context.Context, req domain.GenerateRequest) (news, social []domain.TopicSummary, err error) {
	if req.SourceType.IncludesNews() && p.news != nil {
		start := time.Now()
		news, err = p.news.ScrapeTopics(ctx, req.Topics)
		p.tel.RecordStage(telemetry.StageNews, time.Since(start), err)
		if err != nil {
			return nil, nil, fmt.Errorf("scrape news: %w", err)
		}
		p.tel.RecordTopicFailures(telemetry.StageNews, countFailed(news))
	}

	if req.SourceType.IncludesReddit() {
		if p.social == nil {
			if req.SourceType == domain.SourceReddit {
				return nil, nil, ErrRedditUnavailable
			}
			p.log.Warn("Reddit analyzer not configured, continuing with news only")
			return news, nil, nil
		}

		start := time.Now()
		social, err = p.social.AnalyzeTopics(ctx, req.Topics)
		p.tel.RecordStage(telemetry.StageReddit, time.Since(start), err)
		if err != nil {
			return nil, nil, fmt.Errorf("analyze reddit: %w", err)
		}
		p.tel.RecordTopicFailures(telemetry.StageReddit, countFailed(social))
	}

	return news, social, nil
}

func (p *Pipeline) writeScript(
	ctx context.Context,
	req domain.GenerateRequest,
	news, social []domain.TopicSummary,
) (*domain.Broadcast, error) {
	start := time.Now()
	b, err := p.writer.Write(ctx, req, news, social)
	p.tel.RecordStage(telemetry.StageScript, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (p *Pipeline) synthesize(ctx context.Context, script string) ([]byte, error) {
	start := time.Now()
	audio, err := p.engine.Synthesize(ctx, script)
	p.tel.RecordStage(telemetry.StageTTS, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("synthesize audio: %w", err)
	}
	return audio, nil
}

func countFailed(summaries []domain.TopicSummary) int {
	n := 0
	for _, s := range summaries {
		if s.Failed {
			n++
		}
	}
	return n
}
