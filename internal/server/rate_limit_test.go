package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestRateLimiterAllow checks the token bucket per client.
func TestRateLimiterAllow(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerMinute: 3, CleanupInterval: time.Hour})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request over the limit should be denied")
	}

	// A different client has its own bucket
	if !rl.Allow("10.0.0.2") {
		t.Error("other client should be allowed")
	}
}

// TestRateLimiterDefaults checks zero config values fall back to defaults.
func TestRateLimiterDefaults(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimiterConfig{})
	defer rl.Stop()
	if rl.rate != 60 {
		t.Errorf("rate = %d, want 60", rl.rate)
	}
	if rl.cleanup != 5*time.Minute {
		t.Errorf("cleanup = %v, want 5m", rl.cleanup)
	}
}

// TestRateLimitMiddleware checks the 429 response once exhausted.
func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerMinute: 1, CleanupInterval: time.Hour})
	defer rl.Stop()

	handler := RateLimitMiddleware(rl, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q", got)
	}
}

// TestGetClientIP covers the header priority chain.
func TestGetClientIP(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"remote addr", "192.168.1.5:4321", "", "", "192.168.1.5"},
		{"remote addr no port", "192.168.1.5", "", "", "192.168.1.5"},
		{"ipv6 remote addr", "[::1]:8080", "", "", "::1"},
		{"x-forwarded-for single", "10.0.0.1:1", "203.0.113.7", "", "203.0.113.7"},
		{"x-forwarded-for list", "10.0.0.1:1", "203.0.113.7, 70.41.3.18", "", "203.0.113.7"},
		{"x-real-ip", "10.0.0.1:1", "", "203.0.113.9", "203.0.113.9"},
		{"xff wins over xri", "10.0.0.1:1", "203.0.113.7", "203.0.113.9", "203.0.113.7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.xri != "" {
				req.Header.Set("X-Real-IP", tc.xri)
			}
			if got := getClientIP(req); got != tc.want {
				t.Errorf("getClientIP = %q, want %q", got, tc.want)
			}
		})
	}
}
