// Package scraper retrieves and summarizes news coverage for topics.
// Pages are fetched through the Bright Data Web Unlocker so that search
// results render the same way they do for a real browser.
package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/Atharva080324/TrueScan/internal/domain"
	"github.com/Atharva080324/TrueScan/internal/llm"
	"github.com/Atharva080324/TrueScan/internal/logger"
)

const newsEditorPrompt = `You are an experienced news editor preparing a briefing for a radio audience.
Given raw headlines about a topic, write a concise summary of the most newsworthy
developments. Stick to what the headlines say, merge overlapping stories, and
skip advertisements or navigation fragments. Write flowing prose without markdown,
bullet points, or headings, because the text will be read aloud.`

// Generation parameters for headline summaries.
const (
	summaryTemperature = 0.4
	summaryMaxTokens   = 1000
)

// Fetcher fetches a rendered page body.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) ([]byte, error)
}

// Config configures the news scraper.
type Config struct {
	// RateLimit is the sustained request rate against the fetcher, in
	// requests per second.
	RateLimit float64
	// RateBurst is the burst size allowed above the sustained rate.
	RateBurst int
	// Temperature and MaxTokens override the summary generation defaults
	// when non-zero.
	Temperature float32
	MaxTokens   int32
}

// Scraper gathers headlines per topic and condenses them with the model.
type Scraper struct {
	fetcher   Fetcher
	extractor *HeadlineExtractor
	generator llm.TextGenerator
	limiter   *rate.Limiter
	log       logger.Logger

	temperature float32
	maxTokens   int32
}

// New creates a news scraper.
func New(cfg Config, fetcher Fetcher, generator llm.TextGenerator, log logger.Logger) *Scraper {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 1
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 1
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = summaryTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = summaryMaxTokens
	}

	return &Scraper{
		fetcher:     fetcher,
		extractor:   NewHeadlineExtractor(),
		generator:   generator,
		limiter:     rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		log:         log,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// NewsSearchURL builds the Google News search URL for a topic,
// sorted by date so fresh coverage comes first.
func NewsSearchURL(topic string) string {
	return "https://news.google.com/search?q=" + url.QueryEscape(topic) + "&tbs=sbd:1"
}

// ScrapeTopics produces one summary per topic. A failing topic yields a
// placeholder summary marked Failed instead of aborting the whole run.
func (s *Scraper) ScrapeTopics(ctx context.Context, topics []string) ([]domain.TopicSummary, error) {
	summaries := make([]domain.TopicSummary, 0, len(topics))

	for _, topic := range topics {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		summary, err := s.scrapeTopic(ctx, topic)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.log.Warn("News scraping failed for topic",
				logger.String("topic", topic),
				logger.Error(err),
			)
			summaries = append(summaries, domain.TopicSummary{
				Topic:   topic,
				Summary: fmt.Sprintf("News coverage for %q could not be retrieved.", topic),
				Failed:  true,
			})
			continue
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// scrapeTopic fetches, extracts, and summarizes coverage for one topic.
func (s *Scraper) scrapeTopic(ctx context.Context, topic string) (domain.TopicSummary, error) {
	pageURL := NewsSearchURL(topic)

	body, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return domain.TopicSummary{}, err
	}

	headlines, err := s.extractor.Extract(body)
	if err != nil {
		return domain.TopicSummary{}, err
	}
	if len(headlines) == 0 {
		return domain.TopicSummary{}, fmt.Errorf("no headlines found for %q", topic)
	}

	s.log.Debug("Extracted headlines",
		logger.String("topic", topic),
		logger.Int("count", len(headlines)),
	)

	prompt := buildSummaryPrompt(topic, headlines)
	text, err := s.generator.GenerateText(ctx, prompt, llm.Options{
		SystemPrompt: newsEditorPrompt,
		Temperature:  s.temperature,
		MaxTokens:    s.maxTokens,
	})
	if err != nil {
		return domain.TopicSummary{}, fmt.Errorf("summarize %q: %w", topic, err)
	}

	return domain.TopicSummary{Topic: topic, Summary: text}, nil
}

// buildSummaryPrompt assembles the user prompt from topic and headlines.
func buildSummaryPrompt(topic string, headlines []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Topic: %s\n\nHeadlines:\n", topic)
	for _, h := range headlines {
		sb.WriteString("- ")
		sb.WriteString(h)
		sb.WriteByte('\n')
	}
	sb.WriteString("\nSummarize the current news coverage for this topic.")
	return sb.String()
}
