package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/pellcalc/internal/config"
	"github.com/agbru/pellcalc/internal/pell"
	"github.com/agbru/pellcalc/internal/testutil"
)

// TestGetMethodsToRunAll checks "all" expands to every registered method,
// sorted by name.
func TestGetMethodsToRunAll(t *testing.T) {
	t.Parallel()
	cfg := config.AppConfig{Algo: "all"}
	methods := GetMethodsToRun(cfg, pell.GlobalFactory())
	if len(methods) < 2 {
		t.Fatalf("expected at least 2 methods, got %d", len(methods))
	}
	for i := 1; i < len(methods); i++ {
		if methods[i-1].Name() >= methods[i].Name() {
			t.Errorf("methods not sorted: %q before %q", methods[i-1].Name(), methods[i].Name())
		}
	}
}

// TestGetMethodsToRunSingle checks a named method selection.
func TestGetMethodsToRunSingle(t *testing.T) {
	t.Parallel()
	cfg := config.AppConfig{Algo: "fastexp"}
	methods := GetMethodsToRun(cfg, pell.GlobalFactory())
	if len(methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(methods))
	}
	want, err := pell.GlobalFactory().Get("fastexp")
	if err != nil {
		t.Fatalf("fastexp not registered: %v", err)
	}
	if methods[0].Name() != want.Name() {
		t.Errorf("method = %q, want %q", methods[0].Name(), want.Name())
	}
}

// TestGetMethodsToRunUnknown checks an unknown method yields nothing.
func TestGetMethodsToRunUnknown(t *testing.T) {
	t.Parallel()
	cfg := config.AppConfig{Algo: "does-not-exist"}
	if methods := GetMethodsToRun(cfg, pell.GlobalFactory()); methods != nil {
		t.Errorf("expected nil, got %v", methods)
	}
}

// TestPrintExecutionConfig checks the banner names the equation.
func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{D: 61, K: 1, Timeout: time.Minute}
	PrintExecutionConfig(cfg, &buf)
	out := testutil.StripAnsiCodes(buf.String())
	if !strings.Contains(out, "x² − 61·y² = 1") {
		t.Errorf("banner missing equation: %q", out)
	}
	if !strings.Contains(out, "index 1") {
		t.Errorf("banner missing index: %q", out)
	}
}

// TestPrintExecutionConfigCount checks the batch wording when count is set.
func TestPrintExecutionConfigCount(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{D: 7, Count: 5, Timeout: time.Minute}
	PrintExecutionConfig(cfg, &buf)
	out := testutil.StripAnsiCodes(buf.String())
	if !strings.Contains(out, "first 5 solutions") {
		t.Errorf("banner missing batch wording: %q", out)
	}
}

// TestPrintExecutionMode distinguishes single runs from comparisons.
func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	all := GetMethodsToRun(config.AppConfig{Algo: "all"}, pell.GlobalFactory())

	var buf bytes.Buffer
	PrintExecutionMode(all, &buf)
	if !strings.Contains(buf.String(), "Parallel comparison") {
		t.Errorf("comparison wording missing: %q", buf.String())
	}

	buf.Reset()
	PrintExecutionMode(all[:1], &buf)
	out := testutil.StripAnsiCodes(buf.String())
	if !strings.Contains(out, "Single run") {
		t.Errorf("single-run wording missing: %q", out)
	}
}

// TestPrintAnalysis covers valid and invalid discriminants.
func TestPrintAnalysis(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintAnalysis(61, &buf)
	out := testutil.StripAnsiCodes(buf.String())
	for _, want := range []string{"D = 61", "yes", "prime", "Square-free kernel      : 61", "Estimated CF period"} {
		if !strings.Contains(out, want) {
			t.Errorf("analysis missing %q: %q", want, out)
		}
	}

	buf.Reset()
	PrintAnalysis(25, &buf)
	out = testutil.StripAnsiCodes(buf.String())
	if !strings.Contains(out, "no") {
		t.Errorf("square discriminant not rejected: %q", out)
	}
}
