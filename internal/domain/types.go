// Package domain defines the core types shared across the TrueScan pipeline.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// SourceType selects which sources feed a broadcast.
type SourceType string

const (
	// SourceNews pulls Google News coverage only.
	SourceNews SourceType = "news"
	// SourceReddit pulls Reddit discussion only.
	SourceReddit SourceType = "reddit"
	// SourceBoth pulls both news coverage and Reddit discussion.
	SourceBoth SourceType = "both"
)

// ParseSourceType parses and validates a source type string.
func ParseSourceType(s string) (SourceType, error) {
	switch SourceType(strings.ToLower(strings.TrimSpace(s))) {
	case SourceNews:
		return SourceNews, nil
	case SourceReddit:
		return SourceReddit, nil
	case SourceBoth, "":
		return SourceBoth, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSourceType, s)
	}
}

// IncludesNews reports whether news sources should be scraped.
func (s SourceType) IncludesNews() bool {
	return s == SourceNews || s == SourceBoth
}

// IncludesReddit reports whether Reddit sources should be analyzed.
func (s SourceType) IncludesReddit() bool {
	return s == SourceReddit || s == SourceBoth
}

// GenerateRequest is a request to produce a broadcast for a set of topics.
type GenerateRequest struct {
	Topics     []string   `json:"topics"`
	SourceType SourceType `json:"source_type"`
}

// Normalize trims and deduplicates topics and defaults the source type.
func (r *GenerateRequest) Normalize() {
	seen := make(map[string]struct{}, len(r.Topics))
	topics := make([]string, 0, len(r.Topics))
	for _, t := range r.Topics {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		topics = append(topics, t)
	}
	r.Topics = topics

	if r.SourceType == "" {
		r.SourceType = SourceBoth
	}
}

// Validate checks the request against the topic limit.
// Call Normalize first.
func (r *GenerateRequest) Validate(maxTopics int) error {
	if len(r.Topics) == 0 {
		return ErrNoTopics
	}
	if len(r.Topics) > maxTopics {
		return fmt.Errorf("%w: got %d, limit %d", ErrTooManyTopics, len(r.Topics), maxTopics)
	}
	if _, err := ParseSourceType(string(r.SourceType)); err != nil {
		return err
	}
	return nil
}

// TopicSummary holds the per-topic analysis gathered from one source kind.
type TopicSummary struct {
	Topic   string
	Summary string
	// Failed marks a placeholder summary produced after a source error.
	Failed bool
}

// Broadcast is a generated broadcast script with its provenance.
type Broadcast struct {
	Topics     []string
	SourceType SourceType
	Script     string
	// FromCache marks a script served from the cache rather than generated.
	FromCache bool
	CreatedAt time.Time
}

// Clip describes one stored audio file.
type Clip struct {
	ID        string    `json:"id"`
	Size      int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}
