package broadcast_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Atharva080324/TrueScan/internal/broadcast"
	"github.com/Atharva080324/TrueScan/internal/domain"
	"github.com/Atharva080324/TrueScan/internal/llm"
	"github.com/Atharva080324/TrueScan/internal/logger"
)

type fakeGenerator struct {
	response string
	err      error
	prompt   string
	system   string
}

func (g *fakeGenerator) GenerateText(_ context.Context, prompt string, opts llm.Options) (string, error) {
	g.prompt = prompt
	g.system = opts.SystemPrompt
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func TestMergeSummaries(t *testing.T) {
	t.Parallel()

	news := []domain.TopicSummary{
		{Topic: "AI", Summary: "Model releases dominated coverage."},
		{Topic: "Space", Summary: "Launch window confirmed."},
	}
	social := []domain.TopicSummary{
		{Topic: "AI", Summary: "Users debate benchmarks."},
	}

	merged := broadcast.MergeSummaries(news, social)

	blocks := strings.Split(merged, broadcast.TopicSeparator)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 topic blocks, got %d: %q", len(blocks), merged)
	}

	// News and Reddit notes for the same topic share a block.
	if !strings.Contains(blocks[0], "Model releases") || !strings.Contains(blocks[0], "debate benchmarks") {
		t.Errorf("expected AI block to contain both analyses, got %q", blocks[0])
	}
	if !strings.Contains(blocks[1], "Launch window") {
		t.Errorf("expected Space block, got %q", blocks[1])
	}
}

func TestMergeSummaries_SkipsEmpty(t *testing.T) {
	t.Parallel()

	news := []domain.TopicSummary{{Topic: "AI", Summary: "   "}}

	if merged := broadcast.MergeSummaries(news, nil); merged != "" {
		t.Errorf("expected empty merge, got %q", merged)
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: "Good evening, here is your briefing."}
	w := broadcast.NewWriter(gen, logger.NewNop())

	req := domain.GenerateRequest{Topics: []string{"AI"}, SourceType: domain.SourceNews}
	news := []domain.TopicSummary{{Topic: "AI", Summary: "Coverage summary."}}

	b, err := w.Write(context.Background(), req, news, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Script != "Good evening, here is your briefing." {
		t.Errorf("unexpected script: %q", b.Script)
	}
	if b.SourceType != domain.SourceNews {
		t.Errorf("unexpected source type: %q", b.SourceType)
	}
	if b.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if !strings.Contains(gen.prompt, "Coverage summary.") {
		t.Errorf("expected material in prompt, got %q", gen.prompt)
	}
	if !strings.Contains(gen.system, "news reporter") {
		t.Errorf("expected reporter system prompt, got %q", gen.system)
	}
}

func TestWrite_NoMaterial(t *testing.T) {
	t.Parallel()

	w := broadcast.NewWriter(&fakeGenerator{}, logger.NewNop())

	_, err := w.Write(context.Background(), domain.GenerateRequest{}, nil, nil)
	if !errors.Is(err, broadcast.ErrNoMaterial) {
		t.Fatalf("expected ErrNoMaterial, got %v", err)
	}
}

func TestWrite_GeneratorError(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	w := broadcast.NewWriter(gen, logger.NewNop())

	news := []domain.TopicSummary{{Topic: "AI", Summary: "x"}}
	_, err := w.Write(context.Background(), domain.GenerateRequest{Topics: []string{"AI"}}, news, nil)
	if err == nil {
		t.Fatal("expected error from generator")
	}
}
