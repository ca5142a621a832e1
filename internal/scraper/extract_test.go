package scraper_test

import (
	"strings"
	"testing"

	"github.com/Atharva080324/TrueScan/internal/scraper"
)

// newsResultsHTML is a rendered search results page with article elements.
const newsResultsHTML = `<!DOCTYPE html>
<html>
<head><title>Search results</title></head>
<body>
  <nav>Home World Business Technology</nav>
  <article>
    <h3>Quantum computing startup raises record funding round</h3>
    <p>2 hours ago</p>
  </article>
  <article>
    <h3>Researchers demonstrate error correction breakthrough at scale</h3>
    <p>5 hours ago</p>
  </article>
  <article>
    <h3>Quantum computing startup raises record funding round</h3>
    <p>Syndicated copy</p>
  </article>
  <footer>Privacy Terms About</footer>
</body>
</html>`

// plainTextHTML has no structured headline elements, only text lines.
const plainTextHTML = `<!DOCTYPE html>
<html>
<head><title>Fallback page</title></head>
<body>
<div>Central bank signals rate cut as inflation cools further
ok
Markets rally on stronger than expected earnings reports
ad</div>
</body>
</html>`

// scriptHeavyHTML embeds script and style content around one headline.
const scriptHeavyHTML = `<!DOCTYPE html>
<html>
<head><title>Script Test</title></head>
<body>
  <script>var headline = "should never appear in output text";</script>
  <style>.card { display: flex; }</style>
  <article><h3>Storm warnings issued across the northern coast today</h3></article>
</body>
</html>`

func TestExtract_StructuredHeadlines(t *testing.T) {
	t.Parallel()

	ext := scraper.NewHeadlineExtractor()

	headlines, err := ext.Extract([]byte(newsResultsHTML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertContains(t, headlines, "Quantum computing startup raises record funding round")
	assertContains(t, headlines, "Researchers demonstrate error correction breakthrough at scale")
	assertNotContains(t, headlines, "Home World Business Technology")
	assertNotContains(t, headlines, "Privacy Terms About")
}

func TestExtract_DuplicatesDropped(t *testing.T) {
	t.Parallel()

	ext := scraper.NewHeadlineExtractor()

	headlines, err := ext.Extract([]byte(newsResultsHTML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := 0
	for _, h := range headlines {
		if h == "Quantum computing startup raises record funding round" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected duplicate headline to appear once, got %d", count)
	}
}

func TestExtract_TextLineFallback(t *testing.T) {
	t.Parallel()

	ext := scraper.NewHeadlineExtractor()

	headlines, err := ext.Extract([]byte(plainTextHTML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertContains(t, headlines, "Central bank signals rate cut as inflation cools further")
	assertContains(t, headlines, "Markets rally on stronger than expected earnings reports")
	assertNotContains(t, headlines, "ok")
	assertNotContains(t, headlines, "ad")
}

func TestExtract_ScriptsStripped(t *testing.T) {
	t.Parallel()

	ext := scraper.NewHeadlineExtractor()

	headlines, err := ext.Extract([]byte(scriptHeavyHTML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertContains(t, headlines, "Storm warnings issued across the northern coast today")
	for _, h := range headlines {
		if strings.Contains(h, "should never appear") {
			t.Errorf("script content leaked into headlines: %q", h)
		}
	}
}

func TestExtract_MaxHeadlinesCap(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 10; i++ {
		sb.WriteString("<article><h3>Headline number ")
		sb.WriteByte(byte('0' + i))
		sb.WriteString(" with enough text to pass the filter</h3></article>")
	}
	sb.WriteString("</body></html>")

	ext := scraper.NewHeadlineExtractor()
	ext.MaxHeadlines = 4

	headlines, err := ext.Extract([]byte(sb.String()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(headlines) != 4 {
		t.Errorf("expected 4 headlines, got %d", len(headlines))
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	t.Parallel()

	ext := scraper.NewHeadlineExtractor()

	headlines, err := ext.Extract([]byte("<html><head></head><body></body></html>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(headlines) != 0 {
		t.Errorf("expected no headlines, got %v", headlines)
	}
}

// --- test helpers ---

func assertContains(t *testing.T, headlines []string, want string) {
	t.Helper()

	for _, h := range headlines {
		if h == want {
			return
		}
	}
	t.Errorf("headlines: expected to contain %q, got %v", want, headlines)
}

func assertNotContains(t *testing.T, headlines []string, needle string) {
	t.Helper()

	for _, h := range headlines {
		if h == needle {
			t.Errorf("headlines: expected NOT to contain %q", needle)
		}
	}
}
