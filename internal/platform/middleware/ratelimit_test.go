package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func limitedHandler(cfg RateLimitConfig) echo.HandlerFunc {
	return RateLimit(cfg)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
}

func fromIP(e *echo.Echo, ip string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
	req.RemoteAddr = ip + ":5000"
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRateLimit_RequestsWithinLimit(t *testing.T) {
	e := echo.New()
	handler := limitedHandler(RateLimitConfig{RequestsPerSecond: 10, BurstSize: 5})

	for i := 0; i < 5; i++ {
		c, rec := fromIP(e, "10.0.0.1")
		if err := handler(c); err != nil {
			t.Fatalf("request %d: expected no error, got %v", i+1, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
		if got := rec.Header().Get("X-RateLimit-Limit"); got != "10" {
			t.Errorf("request %d: expected X-RateLimit-Limit '10', got %q", i+1, got)
		}
	}
}

func TestRateLimit_ExceedsLimit(t *testing.T) {
	e := echo.New()
	handler := limitedHandler(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2})

	for i := 0; i < 2; i++ {
		c, _ := fromIP(e, "10.0.0.1")
		if err := handler(c); err != nil {
			t.Fatalf("request %d: expected no error, got %v", i+1, err)
		}
	}

	c, rec := fromIP(e, "10.0.0.1")
	err := handler(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", httpErr.Code)
	}

	retryAfter, convErr := strconv.Atoi(rec.Header().Get("Retry-After"))
	if convErr != nil || retryAfter < 1 {
		t.Errorf("expected Retry-After >= 1, got %q", rec.Header().Get("Retry-After"))
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("expected X-RateLimit-Remaining '0', got %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimit_PerClientIsolation(t *testing.T) {
	e := echo.New()
	handler := limitedHandler(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})

	c, _ := fromIP(e, "10.0.0.1")
	if err := handler(c); err != nil {
		t.Fatalf("first client first request: %v", err)
	}
	c, _ = fromIP(e, "10.0.0.1")
	if err := handler(c); err == nil {
		t.Fatal("first client second request: expected rate limit error")
	}
	c, _ = fromIP(e, "10.0.0.2")
	if err := handler(c); err != nil {
		t.Fatalf("second client: expected its own bucket, got %v", err)
	}
}

func TestRateLimit_InvalidConfigFallsBackToDefault(t *testing.T) {
	e := echo.New()
	handler := limitedHandler(RateLimitConfig{})
	c, rec := fromIP(e, "10.0.0.1")
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "100" {
		t.Errorf("expected default limit 100, got %q", got)
	}
}

func TestLimiter_RefillsOverTime(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newLimiter(RateLimitConfig{RequestsPerSecond: 2, BurstSize: 1})
	l.now = func() time.Time { return now }

	if ok, _ := l.take("k"); !ok {
		t.Fatal("expected first take to succeed")
	}
	ok, retry := l.take("k")
	if ok {
		t.Fatal("expected empty bucket")
	}
	if retry != 1 {
		t.Errorf("expected retry after 1s, got %d", retry)
	}

	now = now.Add(500 * time.Millisecond)
	if ok, _ := l.take("k"); !ok {
		t.Error("expected a token after half a second at 2 rps")
	}
}

func TestLimiter_SweepsIdleBuckets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newLimiter(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1, IdleTTL: time.Minute})
	l.now = func() time.Time { return now }
	l.lastSweep = now

	l.take("idle")
	now = now.Add(2 * time.Minute)
	l.take("active")

	if _, ok := l.buckets["idle"]; ok {
		t.Error("expected idle bucket to be evicted")
	}
	if _, ok := l.buckets["active"]; !ok {
		t.Error("expected active bucket to remain")
	}
}

func TestRateLimit_DefaultConfig(t *testing.T) {
	cfg := DefaultRateLimitConfig()
	if cfg.RequestsPerSecond != 100 {
		t.Errorf("expected RequestsPerSecond 100, got %f", cfg.RequestsPerSecond)
	}
	if cfg.BurstSize != 200 {
		t.Errorf("expected BurstSize 200, got %d", cfg.BurstSize)
	}
}
