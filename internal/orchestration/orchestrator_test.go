package orchestration

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/agbru/pellcalc/internal/config"
	apperrors "github.com/agbru/pellcalc/internal/errors"
	"github.com/agbru/pellcalc/internal/pell"
	"github.com/agbru/pellcalc/internal/testutil"
	"github.com/agbru/pellcalc/pkg/models"
)

// stubMethod returns a fixed solution or error, recording invocations.
type stubMethod struct {
	name   string
	x, y   int64
	err    error
	called bool
}

func (s *stubMethod) Name() string { return s.name }

func (s *stubMethod) SolveAt(ctx context.Context, reporter pell.ProgressReporter, d, k uint64) (models.Solution, error) {
	s.called = true
	if reporter != nil {
		reporter(0.5)
		reporter(1.0)
	}
	if s.err != nil {
		return models.Solution{}, s.err
	}
	return models.NewSolution(big.NewInt(s.x), big.NewInt(s.y)), nil
}

func testConfig() config.AppConfig {
	return config.AppConfig{D: 2, K: 1, Timeout: time.Minute, Quiet: true}
}

// TestExecuteSolvers checks all methods run and report results.
func TestExecuteSolvers(t *testing.T) {
	a := &stubMethod{name: "a", x: 3, y: 2}
	b := &stubMethod{name: "b", x: 3, y: 2}

	var buf bytes.Buffer
	results := ExecuteSolvers(context.Background(), []pell.Method{a, b}, testConfig(), &buf)

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if !a.called || !b.called {
		t.Error("not all methods were invoked")
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("%s: unexpected error %v", res.Name, res.Err)
		}
		if res.X.Cmp(big.NewInt(3)) != 0 || res.Y.Cmp(big.NewInt(2)) != 0 {
			t.Errorf("%s: solution = (%v, %v), want (3, 2)", res.Name, res.X, res.Y)
		}
	}
}

// TestExecuteSolversError checks a failing method is reported, not fatal.
func TestExecuteSolversError(t *testing.T) {
	ok := &stubMethod{name: "ok", x: 3, y: 2}
	bad := &stubMethod{name: "bad", err: errors.New("solver exploded")}

	var buf bytes.Buffer
	results := ExecuteSolvers(context.Background(), []pell.Method{ok, bad}, testConfig(), &buf)

	var okSeen, badSeen bool
	for _, res := range results {
		switch res.Name {
		case "ok":
			okSeen = res.Err == nil
		case "bad":
			badSeen = res.Err != nil
		}
	}
	if !okSeen || !badSeen {
		t.Errorf("unexpected result mix: %+v", results)
	}
}

// TestAnalyzeComparisonResultsSuccess checks consistent results succeed and
// the fastest run wins.
func TestAnalyzeComparisonResultsSuccess(t *testing.T) {
	results := []SolveResult{
		{Name: "slow", X: big.NewInt(3), Y: big.NewInt(2), Duration: 2 * time.Second},
		{Name: "fast", X: big.NewInt(3), Y: big.NewInt(2), Duration: time.Second},
	}

	var buf bytes.Buffer
	code := AnalyzeComparisonResults(results, testConfig(), &buf)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	out := testutil.StripAnsiCodes(buf.String())
	if !strings.Contains(out, "Success. All valid results are consistent") {
		t.Errorf("success banner missing: %q", out)
	}
	// Sorted output puts the fastest first
	if strings.Index(out, "fast") > strings.Index(out, "slow") {
		t.Errorf("results not sorted by duration: %q", out)
	}
}

// TestAnalyzeComparisonResultsMismatch checks inconsistent results trigger
// the mismatch exit code.
func TestAnalyzeComparisonResultsMismatch(t *testing.T) {
	results := []SolveResult{
		{Name: "a", X: big.NewInt(3), Y: big.NewInt(2), Duration: time.Second},
		{Name: "b", X: big.NewInt(7), Y: big.NewInt(4), Duration: time.Second},
	}

	var buf bytes.Buffer
	code := AnalyzeComparisonResults(results, testConfig(), &buf)
	if code != apperrors.ExitErrorMismatch {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitErrorMismatch)
	}
	if !strings.Contains(buf.String(), "inconsistency") {
		t.Errorf("mismatch banner missing: %q", buf.String())
	}
}

// TestAnalyzeComparisonResultsInvalidSolution checks a consistent but wrong
// pair is caught by verification.
func TestAnalyzeComparisonResultsInvalidSolution(t *testing.T) {
	results := []SolveResult{
		{Name: "a", X: big.NewInt(5), Y: big.NewInt(2), Duration: time.Second},
	}

	var buf bytes.Buffer
	code := AnalyzeComparisonResults(results, testConfig(), &buf)
	if code != apperrors.ExitErrorMismatch {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitErrorMismatch)
	}
	if !strings.Contains(buf.String(), "does not satisfy") {
		t.Errorf("verification banner missing: %q", buf.String())
	}
}

// TestAnalyzeComparisonResultsAllFailed checks total failure maps to the
// underlying error's exit code.
func TestAnalyzeComparisonResultsAllFailed(t *testing.T) {
	results := []SolveResult{
		{Name: "a", Err: context.DeadlineExceeded, Duration: time.Second},
		{Name: "b", Err: errors.New("boom"), Duration: 2 * time.Second},
	}

	var buf bytes.Buffer
	code := AnalyzeComparisonResults(results, testConfig(), &buf)
	if code != apperrors.ExitErrorTimeout {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
	if !strings.Contains(buf.String(), "No method could solve") {
		t.Errorf("failure banner missing: %q", buf.String())
	}
}

// TestOrchestrationEndToEnd runs the real registered methods through the
// orchestrator and checks their agreement on a known equation.
func TestOrchestrationEndToEnd(t *testing.T) {
	cfg := testConfig()
	cfg.D = 13
	cfg.K = 2

	methods := make([]pell.Method, 0)
	factory := pell.GlobalFactory()
	for _, key := range factory.List() {
		m, err := factory.Get(key)
		if err != nil {
			t.Fatalf("Get(%q): %v", key, err)
		}
		methods = append(methods, m)
	}

	var buf bytes.Buffer
	results := ExecuteSolvers(context.Background(), methods, cfg, &buf)
	code := AnalyzeComparisonResults(results, cfg, &buf)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, buf.String())
	}
}
