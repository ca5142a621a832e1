package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Atharva080324/TrueScan/internal/cache"
	"github.com/Atharva080324/TrueScan/internal/domain"
	"github.com/Atharva080324/TrueScan/internal/logger"
	"github.com/Atharva080324/TrueScan/internal/pipeline"
	"github.com/Atharva080324/TrueScan/internal/telemetry"
)

type fakeNews struct {
	summaries []domain.TopicSummary
	err       error
	calls     int
}

func (f *fakeNews) ScrapeTopics(_ context.Context, topics []string) ([]domain.TopicSummary, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.summaries != nil {
		return f.summaries, nil
	}
	out := make([]domain.TopicSummary, 0, len(topics))
	for _, t := range topics {
		out = append(out, domain.TopicSummary{Topic: t, Summary: "news about " + t})
	}
	return out, nil
}

type fakeSocial struct {
	err   error
	calls int
}

func (f *fakeSocial) AnalyzeTopics(_ context.Context, topics []string) ([]domain.TopicSummary, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.TopicSummary, 0, len(topics))
	for _, t := range topics {
		out = append(out, domain.TopicSummary{Topic: t, Summary: "reddit about " + t})
	}
	return out, nil
}

type fakeWriter struct {
	err   error
	calls int
}

func (f *fakeWriter) Write(
	_ context.Context,
	req domain.GenerateRequest,
	news, social []domain.TopicSummary,
) (*domain.Broadcast, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Broadcast{
		Topics:     req.Topics,
		SourceType: req.SourceType,
		Script:     "generated script",
		CreatedAt:  time.Now().UTC(),
	}, nil
}

type fakeEngine struct {
	err   error
	calls int
	texts []string
}

func (f *fakeEngine) Synthesize(_ context.Context, text string) ([]byte, error) {
	f.calls++
	f.texts = append(f.texts, text)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("mp3"), nil
}

type fakeStore struct {
	err   error
	saved [][]byte
}

func (f *fakeStore) Save(audio []byte) (domain.Clip, error) {
	if f.err != nil {
		return domain.Clip{}, f.err
	}
	f.saved = append(f.saved, audio)
	return domain.Clip{ID: "tts_20250101_120000.mp3", Size: int64(len(audio))}, nil
}

type deps struct {
	news   *fakeNews
	social *fakeSocial
	writer *fakeWriter
	engine *fakeEngine
	store  *fakeStore
	cache  *cache.Memory
}

func newPipeline(t *testing.T, d *deps) *pipeline.Pipeline {
	t.Helper()

	var news pipeline.NewsScraper
	if d.news != nil {
		news = d.news
	}
	var social pipeline.SocialAnalyzer
	if d.social != nil {
		social = d.social
	}

	return pipeline.New(
		pipeline.Config{MaxTopics: 3, CacheTTL: time.Minute},
		news, social, d.writer, d.engine, d.store, d.cache,
		telemetry.NewProvider(), logger.NewNop(),
	)
}

func defaultDeps() *deps {
	return &deps{
		news:   &fakeNews{},
		social: &fakeSocial{},
		writer: &fakeWriter{},
		engine: &fakeEngine{},
		store:  &fakeStore{},
		cache:  cache.NewMemory(),
	}
}

func TestGenerate_BothSources(t *testing.T) {
	t.Parallel()

	d := defaultDeps()
	p := newPipeline(t, d)

	res, err := p.Generate(context.Background(), domain.GenerateRequest{
		Topics:     []string{"ai"},
		SourceType: domain.SourceBoth,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.news.calls != 1 || d.social.calls != 1 {
		t.Errorf("expected both sources queried, got news=%d social=%d", d.news.calls, d.social.calls)
	}
	if res.Broadcast.Script != "generated script" {
		t.Errorf("unexpected script: %q", res.Broadcast.Script)
	}
	if string(res.Audio) != "mp3" {
		t.Errorf("unexpected audio: %q", res.Audio)
	}
	if res.Clip.ID == "" {
		t.Error("expected clip to be saved")
	}
	if res.Broadcast.FromCache {
		t.Error("first generation should not come from cache")
	}
}

func TestGenerate_NewsOnlySkipsReddit(t *testing.T) {
	t.Parallel()

	d := defaultDeps()
	p := newPipeline(t, d)

	_, err := p.Generate(context.Background(), domain.GenerateRequest{
		Topics:     []string{"ai"},
		SourceType: domain.SourceNews,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.social.calls != 0 {
		t.Errorf("reddit should not be queried for news requests, got %d calls", d.social.calls)
	}
}

func TestGenerate_ScriptCachedOnSecondRun(t *testing.T) {
	t.Parallel()

	d := defaultDeps()
	p := newPipeline(t, d)

	req := domain.GenerateRequest{Topics: []string{"ai"}, SourceType: domain.SourceNews}

	if _, err := p.Generate(context.Background(), req); err != nil {
		t.Fatalf("first run: %v", err)
	}
	res, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !res.Broadcast.FromCache {
		t.Error("expected second run to use cached script")
	}
	if d.news.calls != 1 || d.writer.calls != 1 {
		t.Errorf("expected scrape and write once, got news=%d writer=%d", d.news.calls, d.writer.calls)
	}
	// Audio is synthesized fresh every run.
	if d.engine.calls != 2 {
		t.Errorf("expected 2 synthesis calls, got %d", d.engine.calls)
	}
}

func TestGenerate_ValidatesRequest(t *testing.T) {
	t.Parallel()

	p := newPipeline(t, defaultDeps())

	_, err := p.Generate(context.Background(), domain.GenerateRequest{Topics: nil})
	if !errors.Is(err, domain.ErrNoTopics) {
		t.Fatalf("expected ErrNoTopics, got %v", err)
	}

	_, err = p.Generate(context.Background(), domain.GenerateRequest{
		Topics: []string{"a", "b", "c", "d"},
	})
	if !errors.Is(err, domain.ErrTooManyTopics) {
		t.Fatalf("expected ErrTooManyTopics, got %v", err)
	}
}

func TestGenerate_RedditOnlyWithoutAnalyzer(t *testing.T) {
	t.Parallel()

	d := defaultDeps()
	d.social = nil
	p := newPipeline(t, d)

	_, err := p.Generate(context.Background(), domain.GenerateRequest{
		Topics:     []string{"ai"},
		SourceType: domain.SourceReddit,
	})
	if !errors.Is(err, pipeline.ErrRedditUnavailable) {
		t.Fatalf("expected ErrRedditUnavailable, got %v", err)
	}
}

func TestGenerate_BothWithoutAnalyzerFallsBackToNews(t *testing.T) {
	t.Parallel()

	d := defaultDeps()
	d.social = nil
	p := newPipeline(t, d)

	res, err := p.Generate(context.Background(), domain.GenerateRequest{
		Topics:     []string{"ai"},
		SourceType: domain.SourceBoth,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Broadcast.Script == "" {
		t.Error("expected script from news material")
	}
}

func TestGenerate_SynthesisFailure(t *testing.T) {
	t.Parallel()

	d := defaultDeps()
	d.engine.err = errors.New("tts down")
	p := newPipeline(t, d)

	_, err := p.Generate(context.Background(), domain.GenerateRequest{
		Topics:     []string{"ai"},
		SourceType: domain.SourceNews,
	})
	if err == nil {
		t.Fatal("expected synthesis error")
	}
	if len(d.store.saved) != 0 {
		t.Error("no clip should be saved when synthesis fails")
	}
}
