package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Atharva080324/TrueScan/internal/domain"
	"github.com/Atharva080324/TrueScan/internal/httpclient"
	"github.com/Atharva080324/TrueScan/internal/retry"
)

// ErrMissingCredentials is returned when the Bright Data token or zone is not configured.
var ErrMissingCredentials = errors.New("brightdata credentials not configured")

// BrightDataConfig configures the Web Unlocker client.
type BrightDataConfig struct {
	// APIToken is the Bright Data API token.
	APIToken string
	// Zone is the Web Unlocker zone name.
	Zone string
	// BaseURL is the API base URL. Defaults to the public endpoint.
	BaseURL string
	// Timeout bounds a single fetch.
	Timeout time.Duration
	// MaxRetries bounds retry attempts for transient failures.
	MaxRetries int
}

// BrightDataClient fetches rendered pages through the Bright Data
// Web Unlocker API.
type BrightDataClient struct {
	cfg        BrightDataConfig
	httpClient *http.Client
}

// unlockRequest is the Web Unlocker request payload.
type unlockRequest struct {
	Zone   string `json:"zone"`
	URL    string `json:"url"`
	Format string `json:"format"`
}

// NewBrightDataClient creates a Web Unlocker client.
func NewBrightDataClient(cfg BrightDataConfig) *BrightDataClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.brightdata.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}

	return &BrightDataClient{
		cfg:        cfg,
		httpClient: httpclient.NewWithTimeout(cfg.Timeout),
	}
}

// Ready reports whether the client has credentials configured.
func (c *BrightDataClient) Ready() bool {
	return c.cfg.APIToken != "" && c.cfg.Zone != ""
}

// Fetch retrieves the rendered HTML of pageURL through the Web Unlocker.
// Transient upstream failures are retried with exponential backoff.
func (c *BrightDataClient) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	if !c.Ready() {
		return nil, ErrMissingCredentials
	}

	var body []byte
	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = c.cfg.MaxRetries

	err := retry.Retry(ctx, retryCfg, func() error {
		var fetchErr error
		body, fetchErr = c.fetchOnce(ctx, pageURL)
		return fetchErr
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	return body, nil
}

func (c *BrightDataClient) fetchOnce(ctx context.Context, pageURL string) ([]byte, error) {
	payload, err := json.Marshal(unlockRequest{
		Zone:   c.cfg.Zone,
		URL:    pageURL,
		Format: "raw",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/request", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: status 429", domain.ErrOverloaded)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return body, nil
}
