// Package orchestration coordinates the concurrent execution of solver
// methods and the comparison of their results.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/pellcalc/internal/cli"
	"github.com/agbru/pellcalc/internal/config"
	apperrors "github.com/agbru/pellcalc/internal/errors"
	"github.com/agbru/pellcalc/internal/pell"
	"github.com/agbru/pellcalc/internal/ui"
)

// SolveResult encapsulates the outcome of a single solver run.
// It serves as a standardized container for results from different methods,
// facilitating comparison and reporting.
type SolveResult struct {
	// Name is the identifier of the method used (e.g., "fastexp").
	Name string
	// X, Y form the computed solution. Both are nil if an error occurred.
	X, Y *big.Int
	// Duration is the time taken to complete the run.
	Duration time.Duration
	// Err contains any error that occurred during solving.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of blocking
// solver goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// ExecuteSolvers orchestrates the concurrent execution of one or more solver
// methods on the same equation.
//
// It manages the lifecycle of solver goroutines, collects their results, and
// coordinates the display of progress updates. This function is the core of
// the application's concurrency model.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - methods: A slice of methods to execute.
//   - cfg: The application configuration (D, k, etc.).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []SolveResult: A slice containing the result of each run.
func ExecuteSolvers(ctx context.Context, methods []pell.Method, cfg config.AppConfig, out io.Writer) []SolveResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]SolveResult, len(methods))
	progressChan := make(chan pell.ProgressUpdate, len(methods)*ProgressBufferMultiplier)
	observer := pell.NewChannelObserver(progressChan)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(methods), out)

	for i, m := range methods {
		idx, method := i, m
		g.Go(func() error {
			startTime := time.Now()
			reporter := pell.FanOutReporter(idx, observer)
			sol, err := method.SolveAt(ctx, reporter, cfg.D, cfg.K)
			results[idx] = SolveResult{
				Name: method.Name(), X: sol.X, Y: sol.Y, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults processes the results from multiple methods and
// generates a summary report.
//
// It sorts the results by execution time, validates consistency across
// successful runs, verifies the winning solution against the equation, and
// displays a comparative table. It handles the logic for determining global
// success or failure based on the individual outcomes.
//
// Parameters:
//   - results: The slice of solver results to analyze.
//   - cfg: The application configuration.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []SolveResult, cfg config.AppConfig, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *SolveResult
	var firstError error
	successCount := 0

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sMethod%s\t%sDuration%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())

	for i, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
			successCount++
			if firstValid == nil {
				firstValid = &results[i]
			}
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No method could solve the equation.\n")
		return apperrors.HandleSolveError(firstError, 0, out, cli.CLIColorProvider{})
	}

	mismatch := false
	for _, res := range results {
		if res.Err == nil && (res.X.Cmp(firstValid.X) != 0 || res.Y.Cmp(firstValid.Y) != 0) {
			mismatch = true
			break
		}
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the methods.\n")
		return apperrors.ExitErrorMismatch
	}

	if !pell.Verify(cfg.D, firstValid.X, firstValid.Y) {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The winning result does not satisfy x² − %d·y² = 1.\n", cfg.D)
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent and verified.\n")
	cli.DisplaySolution(firstValid.X, firstValid.Y, cfg.D, cfg.K, firstValid.Duration, cfg.Verbose, cfg.Details, out)
	return apperrors.ExitSuccess
}
