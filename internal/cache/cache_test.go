package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Atharva080324/TrueScan/internal/domain"
)

func TestScriptKey_OrderAndCaseInsensitive(t *testing.T) {
	t.Parallel()

	a := ScriptKey(domain.GenerateRequest{
		Topics:     []string{"AI", "space"},
		SourceType: domain.SourceBoth,
	})
	b := ScriptKey(domain.GenerateRequest{
		Topics:     []string{"Space", "ai"},
		SourceType: domain.SourceBoth,
	})

	if a != b {
		t.Errorf("expected identical keys, got %q and %q", a, b)
	}
}

func TestScriptKey_SourceTypeMatters(t *testing.T) {
	t.Parallel()

	a := ScriptKey(domain.GenerateRequest{Topics: []string{"ai"}, SourceType: domain.SourceNews})
	b := ScriptKey(domain.GenerateRequest{Topics: []string{"ai"}, SourceType: domain.SourceReddit})

	if a == b {
		t.Error("expected different keys for different source types")
	}
}

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()

	if _, err := m.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}

	if err := m.Set(ctx, "k", "script text", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	val, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if val != "script text" {
		t.Errorf("unexpected value: %q", val)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()

	current := time.Now()
	m.now = func() time.Time { return current }

	if err := m.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	current = current.Add(2 * time.Minute)

	if _, err := m.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss after expiry, got %v", err)
	}
}
