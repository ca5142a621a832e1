// Package broadcast turns per-topic analyses into a single spoken
// news script.
package broadcast

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Atharva080324/TrueScan/internal/domain"
	"github.com/Atharva080324/TrueScan/internal/llm"
	"github.com/Atharva080324/TrueScan/internal/logger"
)

// TopicSeparator splits per-topic blocks in the merged source material.
const TopicSeparator = "--- NEW TOPIC ---"

const reporterPrompt = `You are a virtual radio news reporter delivering a spoken broadcast.
You receive raw research notes grouped per topic. Turn them into one continuous,
conversational broadcast script: open with a short greeting, move through the
topics with natural transitions, and close with a brief sign-off. Notes that say
a topic could not be retrieved get a one-line on-air mention at most. Output
plain spoken text only: no markdown, no stage directions, no sound effects.`

// Generation parameters for the broadcast script.
const (
	scriptTemperature = 0.7
	scriptMaxTokens   = 2000
)

// ErrNoMaterial is returned when there is nothing to write a script from.
var ErrNoMaterial = errors.New("no source material for broadcast")

// Writer produces broadcast scripts from topic summaries.
type Writer struct {
	generator llm.TextGenerator
	log       logger.Logger
}

// NewWriter creates a broadcast writer.
func NewWriter(generator llm.TextGenerator, log logger.Logger) *Writer {
	return &Writer{generator: generator, log: log}
}

// Write merges the news and Reddit analyses per topic and generates the
// broadcast script.
func (w *Writer) Write(
	ctx context.Context,
	req domain.GenerateRequest,
	news, social []domain.TopicSummary,
) (*domain.Broadcast, error) {
	material := MergeSummaries(news, social)
	if material == "" {
		return nil, ErrNoMaterial
	}

	script, err := w.generator.GenerateText(ctx, material, llm.Options{
		SystemPrompt: reporterPrompt,
		Temperature:  scriptTemperature,
		MaxTokens:    scriptMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate broadcast script: %w", err)
	}

	w.log.Info("Broadcast script generated",
		logger.Int("topics", len(req.Topics)),
		logger.String("source_type", string(req.SourceType)),
		logger.Int("script_chars", len(script)),
	)

	return &domain.Broadcast{
		Topics:     req.Topics,
		SourceType: req.SourceType,
		Script:     script,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// MergeSummaries joins per-topic material into blocks separated by
// TopicSeparator. News and Reddit notes for the same topic land in the
// same block.
func MergeSummaries(news, social []domain.TopicSummary) string {
	type block struct {
		topic string
		parts []string
	}

	index := make(map[string]int)
	var blocks []block

	add := func(label string, summaries []domain.TopicSummary) {
		for _, s := range summaries {
			if strings.TrimSpace(s.Summary) == "" {
				continue
			}
			key := strings.ToLower(s.Topic)
			i, ok := index[key]
			if !ok {
				i = len(blocks)
				index[key] = i
				blocks = append(blocks, block{topic: s.Topic})
			}
			blocks[i].parts = append(blocks[i].parts,
				fmt.Sprintf("%s notes for %s:\n%s", label, s.Topic, s.Summary))
		}
	}

	add("News", news)
	add("Reddit", social)

	if len(blocks) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(blocks))
	for _, b := range blocks {
		rendered = append(rendered, strings.Join(b.parts, "\n\n"))
	}

	return strings.Join(rendered, "\n\n"+TopicSeparator+"\n\n")
}
