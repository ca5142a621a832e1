package reddit_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Atharva080324/TrueScan/internal/domain"
	"github.com/Atharva080324/TrueScan/internal/logger"
	"github.com/Atharva080324/TrueScan/internal/reddit"
)

type fakeAgent struct {
	err     error
	prompts []string
	systems []string
}

func (a *fakeAgent) Run(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	a.systems = append(a.systems, systemPrompt)
	a.prompts = append(a.prompts, userPrompt)
	if a.err != nil {
		return "", a.err
	}
	return fmt.Sprintf("analysis for prompt %d", len(a.prompts)), nil
}

func newAnalyzer(agent *fakeAgent) *reddit.Analyzer {
	return reddit.NewAnalyzer(agent, reddit.AnalyzerConfig{
		RateInterval: time.Millisecond,
		TopicTimeout: time.Second,
	}, logger.NewNop())
}

func TestAnalyzeTopics(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{}
	analyzer := newAnalyzer(agent)

	summaries, err := analyzer.AnalyzeTopics(context.Background(), []string{"golang", "rust"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	for i, s := range summaries {
		if s.Failed {
			t.Errorf("summary %d unexpectedly failed", i)
		}
	}

	if !strings.Contains(agent.prompts[0], `"golang"`) {
		t.Errorf("expected topic in prompt, got %q", agent.prompts[0])
	}
	// The prompt carries the date window.
	today := time.Now().Format("2006-01-02")
	if !strings.Contains(agent.prompts[0], today) {
		t.Errorf("expected current date %s in prompt, got %q", today, agent.prompts[0])
	}
	if !strings.Contains(agent.systems[0], "Reddit") {
		t.Errorf("expected Reddit analyst system prompt, got %q", agent.systems[0])
	}
}

func TestAnalyzeTopics_FailurePlaceholder(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{err: errors.New("mcp unavailable")}
	analyzer := newAnalyzer(agent)

	summaries, err := analyzer.AnalyzeTopics(context.Background(), []string{"golang"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summaries) != 1 || !summaries[0].Failed {
		t.Fatalf("expected one failed summary, got %+v", summaries)
	}
	if !strings.Contains(summaries[0].Summary, "could not be analyzed") {
		t.Errorf("unexpected placeholder: %q", summaries[0].Summary)
	}
}

func TestAnalyzeTopics_OverloadedPlaceholder(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{err: fmt.Errorf("%w: status 429", domain.ErrOverloaded)}
	analyzer := newAnalyzer(agent)

	summaries, err := analyzer.AnalyzeTopics(context.Background(), []string{"golang"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(summaries[0].Summary, "overloaded") {
		t.Errorf("expected overload placeholder, got %q", summaries[0].Summary)
	}
}

func TestAnalyzeTopics_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agent := &fakeAgent{err: context.Canceled}
	analyzer := newAnalyzer(agent)

	if _, err := analyzer.AnalyzeTopics(ctx, []string{"golang"}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
