package reddit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Atharva080324/TrueScan/internal/domain"
	"github.com/Atharva080324/TrueScan/internal/logger"
)

const redditAnalystPrompt = `You are a researcher tracking public sentiment on Reddit.
Use the available tools to find recent Reddit threads about the requested topic and
read the discussions. Report what communities are saying: main talking points,
speculation, disagreements, and overall sentiment. Only include discussions from
the requested date range. Write flowing prose without markdown, because the text
will be read aloud.`

// TopicAgent runs the tool-calling loop for one prompt. Satisfied by Agent.
type TopicAgent interface {
	Run(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// AnalyzerConfig configures per-topic analysis pacing.
type AnalyzerConfig struct {
	// RateInterval is the minimum spacing between topic analyses,
	// keeping load on the MCP server and the model down.
	RateInterval time.Duration
	// TopicTimeout bounds one topic's agent run.
	TopicTimeout time.Duration
	// Window is how far back discussions may date. Defaults to two weeks.
	Window time.Duration
}

// Analyzer produces per-topic Reddit discussion summaries.
type Analyzer struct {
	agent TopicAgent
	cfg   AnalyzerConfig
	log   logger.Logger

	// now is swapped in tests.
	now func() time.Time
}

// NewAnalyzer creates an analyzer over the given agent.
func NewAnalyzer(agent TopicAgent, cfg AnalyzerConfig, log logger.Logger) *Analyzer {
	if cfg.RateInterval <= 0 {
		cfg.RateInterval = 5 * time.Second
	}
	if cfg.TopicTimeout <= 0 {
		cfg.TopicTimeout = 2 * time.Minute
	}
	if cfg.Window <= 0 {
		cfg.Window = 14 * 24 * time.Hour
	}
	return &Analyzer{agent: agent, cfg: cfg, log: log, now: time.Now}
}

// AnalyzeTopics runs the agent once per topic. A failing topic yields a
// placeholder summary marked Failed instead of aborting the run.
func (a *Analyzer) AnalyzeTopics(ctx context.Context, topics []string) ([]domain.TopicSummary, error) {
	summaries := make([]domain.TopicSummary, 0, len(topics))

	for i, topic := range topics {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(a.cfg.RateInterval):
			}
		}

		summary, err := a.analyzeTopic(ctx, topic)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			msg := fmt.Sprintf("Reddit discussion for %q could not be analyzed.", topic)
			if errors.Is(err, domain.ErrOverloaded) {
				msg = fmt.Sprintf("Reddit analysis for %q was skipped because the service is overloaded.", topic)
			}

			a.log.Warn("Reddit analysis failed for topic",
				logger.String("topic", topic),
				logger.Error(err),
			)
			summaries = append(summaries, domain.TopicSummary{
				Topic:   topic,
				Summary: msg,
				Failed:  true,
			})
			continue
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// analyzeTopic runs one agent pass with a per-topic timeout.
func (a *Analyzer) analyzeTopic(ctx context.Context, topic string) (domain.TopicSummary, error) {
	topicCtx, cancel := context.WithTimeout(ctx, a.cfg.TopicTimeout)
	defer cancel()

	text, err := a.agent.Run(topicCtx, redditAnalystPrompt, a.buildPrompt(topic))
	if err != nil {
		return domain.TopicSummary{}, err
	}

	return domain.TopicSummary{Topic: topic, Summary: text}, nil
}

// buildPrompt renders the dated user prompt for a topic.
func (a *Analyzer) buildPrompt(topic string) string {
	to := a.now()
	from := to.Add(-a.cfg.Window)
	return fmt.Sprintf(
		"Find and summarize Reddit discussions about %q posted between %s and %s.",
		topic,
		from.Format("2006-01-02"),
		to.Format("2006-01-02"),
	)
}
