package scraper

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extraction limits applied when no explicit configuration is given.
const (
	defaultMaxHeadlines = 30
	defaultMinChars     = 20
)

// headlineSelectors target the elements Google News renders headlines into.
// Anchors are included because result pages wrap most headlines in links.
const headlineSelectors = "article h3, article h4, article a, h3, h4"

// nonContentSelectors lists elements to strip before extracting text.
const nonContentSelectors = "script, style, nav, header, footer, noscript"

// HeadlineExtractor pulls candidate headlines out of a rendered news
// search results page.
type HeadlineExtractor struct {
	// MaxHeadlines caps the number of headlines returned.
	MaxHeadlines int
	// MinChars drops fragments shorter than this many characters.
	MinChars int
}

// NewHeadlineExtractor creates an extractor with default limits.
func NewHeadlineExtractor() *HeadlineExtractor {
	return &HeadlineExtractor{
		MaxHeadlines: defaultMaxHeadlines,
		MinChars:     defaultMinChars,
	}
}

// Extract parses HTML and returns a deduplicated list of headline candidates.
// Structured selectors are tried first; pages that render without them fall
// back to plain text lines.
func (e *HeadlineExtractor) Extract(body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc.Find(nonContentSelectors).Remove()

	headlines := e.collect(doc)
	if len(headlines) == 0 {
		headlines = e.collectFromText(doc)
	}

	return headlines, nil
}

// collect gathers headline text from structured elements.
func (e *HeadlineExtractor) collect(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	var headlines []string

	doc.Find(headlineSelectors).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := normalizeWhitespace(s.Text())
		if !e.keep(text, seen) {
			return true
		}
		headlines = append(headlines, text)
		return len(headlines) < e.max()
	})

	return headlines
}

// collectFromText splits the page text into lines and keeps headline-sized ones.
func (e *HeadlineExtractor) collectFromText(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	var headlines []string

	for _, line := range strings.Split(doc.Text(), "\n") {
		text := normalizeWhitespace(line)
		if !e.keep(text, seen) {
			continue
		}
		headlines = append(headlines, text)
		if len(headlines) >= e.max() {
			break
		}
	}

	return headlines
}

// keep reports whether text is a usable, previously unseen headline and
// records it in seen.
func (e *HeadlineExtractor) keep(text string, seen map[string]struct{}) bool {
	minChars := e.MinChars
	if minChars <= 0 {
		minChars = defaultMinChars
	}
	if len(text) < minChars {
		return false
	}

	key := strings.ToLower(text)
	if _, ok := seen[key]; ok {
		return false
	}
	seen[key] = struct{}{}
	return true
}

func (e *HeadlineExtractor) max() int {
	if e.MaxHeadlines <= 0 {
		return defaultMaxHeadlines
	}
	return e.MaxHeadlines
}

// normalizeWhitespace collapses internal whitespace runs into single spaces.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
