// Package cache stores generated broadcast scripts so repeated requests
// for the same topics skip the scrape and generation work.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Atharva080324/TrueScan/internal/domain"
)

// ErrMiss is returned when a key is not cached.
var ErrMiss = errors.New("cache miss")

// Cache stores scripts by key with a TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// ScriptKey derives a deterministic cache key for a generate request.
// Topic order and casing do not affect the key.
func ScriptKey(req domain.GenerateRequest) string {
	topics := make([]string, 0, len(req.Topics))
	for _, t := range req.Topics {
		topics = append(topics, strings.ToLower(strings.TrimSpace(t)))
	}
	sort.Strings(topics)

	h := sha256.New()
	h.Write([]byte(string(req.SourceType)))
	for _, t := range topics {
		h.Write([]byte{0})
		h.Write([]byte(t))
	}

	return "script:" + hex.EncodeToString(h.Sum(nil))
}
