package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agbru/pellcalc/internal/config"
	"github.com/agbru/pellcalc/internal/pell"
	"github.com/agbru/pellcalc/pkg/models"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	cfg := config.AppConfig{Port: "0"}
	s := NewServer(pell.GlobalFactory(), cfg, opts...)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func doRequest(s *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

// TestHandleSolve checks a valid solve request end to end.
func TestHandleSolve(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/solve?d=2&k=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp models.SolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.Solution == nil || resp.Solution.X.String() != "17" || resp.Solution.Y.String() != "12" {
		t.Errorf("solution = %v, want (17, 12)", resp.Solution)
	}
	if resp.Method != DefaultMethod {
		t.Errorf("method = %q, want %q", resp.Method, DefaultMethod)
	}
	if resp.Digits != 2 {
		t.Errorf("digits = %d, want 2", resp.Digits)
	}
}

// TestHandleSolveDefaults checks k defaults to 1 and method is selectable.
func TestHandleSolveDefaults(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/solve?d=61&method=recurrence")
	var resp models.SolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.K != 1 || resp.Method != "recurrence" {
		t.Errorf("k = %d method = %q, want 1/recurrence", resp.K, resp.Method)
	}
	if resp.Solution == nil || resp.Solution.X.String() != "1766319049" {
		t.Errorf("solution = %v, want x = 1766319049", resp.Solution)
	}
}

// TestHandleSolveBadParams covers missing and malformed parameters.
func TestHandleSolveBadParams(t *testing.T) {
	s := newTestServer(t)
	cases := []struct {
		name   string
		target string
	}{
		{"missing d", "/solve"},
		{"negative d", "/solve?d=-2"},
		{"non-numeric d", "/solve?d=abc"},
		{"non-numeric k", "/solve?d=2&k=x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodGet, tc.target)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
			}
		})
	}
}

// TestHandleSolveDomainError checks solver errors come back in the payload.
func TestHandleSolveDomainError(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/solve?d=25")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp models.SolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(resp.Error, "non-square") {
		t.Errorf("error = %q, want a perfect-square rejection", resp.Error)
	}
}

// TestHandleSolveMaxD checks the discriminant limit yields a 400.
func TestHandleSolveMaxD(t *testing.T) {
	s := newTestServer(t, WithMaxD(100))
	rec := doRequest(s, http.MethodGet, "/solve?d=991")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "exceeds maximum") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

// TestHandleSolutions checks the batch endpoint.
func TestHandleSolutions(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/solutions?d=3&count=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp models.SolutionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Solutions) != 3 {
		t.Fatalf("got %d solutions, want 3", len(resp.Solutions))
	}
	if resp.Solutions[2].X.String() != "26" || resp.Solutions[2].Y.String() != "15" {
		t.Errorf("third solution = %v, want (26, 15)", resp.Solutions[2])
	}
}

// TestHandleSolutionsBadParams covers parameter validation for the batch
// endpoint.
func TestHandleSolutionsBadParams(t *testing.T) {
	s := newTestServer(t)
	for _, target := range []string{"/solutions", "/solutions?d=3", "/solutions?d=3&count=-1", "/solutions?d=x&count=2"} {
		rec := doRequest(s, http.MethodGet, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

// TestHandleMethods checks the registry listing endpoint.
func TestHandleMethods(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/methods")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Methods []string `json:"methods"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, m := range resp.Methods {
		if m == "fastexp" {
			found = true
		}
	}
	if !found {
		t.Errorf("methods = %v, missing fastexp", resp.Methods)
	}
}

// TestHandleHealth checks the health endpoint.
func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

// TestHandleMetrics checks the Prometheus endpoint exposes counters.
func TestHandleMetrics(t *testing.T) {
	s := newTestServer(t)
	// Generate some traffic first
	doRequest(s, http.MethodGet, "/health")

	rec := doRequest(s, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "pellcalc_requests_total") {
		t.Errorf("metrics output missing request counter")
	}
}

// TestMethodNotAllowed checks POST is rejected on all JSON endpoints.
func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	for _, target := range []string{"/solve?d=2", "/solutions?d=2&count=1", "/methods", "/health"} {
		rec := doRequest(s, http.MethodPost, target)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: status = %d, want 405", target, rec.Code)
		}
	}
}

// TestSecurityHeaders checks the middleware stamps every response.
func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/health")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

// TestCORSPreflight checks OPTIONS requests short-circuit with 204.
func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodOptions, "/solve?d=2")
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
