package scraper_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Atharva080324/TrueScan/internal/scraper"
)

func TestBrightDataFetch(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotPayload map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Write([]byte("<html><body>rendered</body></html>"))
	}))
	defer srv.Close()

	client := scraper.NewBrightDataClient(scraper.BrightDataConfig{
		APIToken: "token-123",
		Zone:     "web_unlocker1",
		BaseURL:  srv.URL,
	})

	body, err := client.Fetch(context.Background(), "https://news.google.com/search?q=go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(body) != "<html><body>rendered</body></html>" {
		t.Errorf("unexpected body: %q", body)
	}
	if gotAuth != "Bearer token-123" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotPayload["zone"] != "web_unlocker1" {
		t.Errorf("expected zone in payload, got %v", gotPayload)
	}
	if gotPayload["url"] != "https://news.google.com/search?q=go" {
		t.Errorf("expected target url in payload, got %v", gotPayload)
	}
	if gotPayload["format"] != "raw" {
		t.Errorf("expected raw format, got %v", gotPayload)
	}
}

func TestBrightDataFetch_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := scraper.NewBrightDataClient(scraper.BrightDataConfig{
		APIToken: "token",
		Zone:     "zone",
		BaseURL:  srv.URL,
	})

	body, err := client.Fetch(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("unexpected error after retries: %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("unexpected body: %q", body)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestBrightDataFetch_NonRetryableStatus(t *testing.T) {
	t.Parallel()

	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := scraper.NewBrightDataClient(scraper.BrightDataConfig{
		APIToken: "token",
		Zone:     "zone",
		BaseURL:  srv.URL,
	})

	if _, err := client.Fetch(context.Background(), "https://example.com"); err == nil {
		t.Fatal("expected error for 403 response")
	}
	if attempts != 1 {
		t.Errorf("expected single attempt for non-retryable status, got %d", attempts)
	}
}

func TestBrightDataFetch_MissingCredentials(t *testing.T) {
	t.Parallel()

	client := scraper.NewBrightDataClient(scraper.BrightDataConfig{})

	_, err := client.Fetch(context.Background(), "https://example.com")
	if !errors.Is(err, scraper.ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}
	if client.Ready() {
		t.Error("expected Ready to be false without credentials")
	}
}
