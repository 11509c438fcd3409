package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agbru/pellcalc/internal/cli"
	"github.com/agbru/pellcalc/internal/config"
	apperrors "github.com/agbru/pellcalc/internal/errors"
	"github.com/agbru/pellcalc/internal/orchestration"
	"github.com/agbru/pellcalc/internal/pell"
	"github.com/agbru/pellcalc/internal/server"
	"github.com/agbru/pellcalc/internal/ui"
	"github.com/agbru/pellcalc/pkg/models"
)

// Application represents the pellcalc application instance.
// It encapsulates the configuration and provides methods to run
// the application in various modes (CLI, server, analysis).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides access to the solver method implementations.
	// Uses the interface type for better testability and dependency injection.
	Factory pell.MethodFactory
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or
// validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := pell.GlobalFactory()
	availableMethods := factory.List()

	// args[0] is program name, args[1:] are the actual arguments
	programName := "pellcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableMethods)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (server, analysis, or CLI).
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Initialize CLI theme (respects --no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)

	// Server mode
	if a.Config.ServerMode {
		return a.runServer()
	}

	// Discriminant analysis mode
	if a.Config.Analyze {
		cli.PrintAnalysis(a.Config.D, out)
		return apperrors.ExitSuccess
	}

	// Batch mode: first N solutions
	if a.Config.Count > 0 {
		return a.runSolutions(ctx, out)
	}

	// Standard CLI solve mode
	return a.runSolve(ctx, out)
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runSolutions computes and prints the first Count solutions.
func (a *Application) runSolutions(ctx context.Context, out io.Writer) int {
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	sols, err := a.collectSolutions(ctx)
	if err != nil {
		return apperrors.HandleSolveError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}

	if a.Config.JSONOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sols); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	for i, sol := range sols {
		if a.Config.Quiet {
			cli.DisplayQuietSolution(out, sol.X, sol.Y, a.Config.HexOutput)
			continue
		}
		k := a.Config.Skip + uint64(i) + 1
		fmt.Fprintf(out, "%sk=%d%s: %s\n", ui.ColorMagenta(), k, ui.ColorReset(), formatSolutionLine(sol, a.Config.Verbose))
	}
	return apperrors.ExitSuccess
}

// collectSolutions gathers the requested batch of solutions. Without a skip
// offset the batch API suffices; with one, the sequence generator jumps to
// the offset via fast exponentiation and steps from there.
func (a *Application) collectSolutions(ctx context.Context) ([]models.Solution, error) {
	if a.Config.Skip == 0 {
		return pell.Solutions(ctx, a.Config.D, a.Config.Count)
	}

	seq, err := pell.NewSolutionSequence(ctx, a.Config.D)
	if err != nil {
		return nil, err
	}
	if _, err := seq.Skip(ctx, a.Config.Skip+1); err != nil {
		return nil, err
	}
	sols := make([]models.Solution, 0, a.Config.Count)
	for i := 0; i < a.Config.Count; i++ {
		sol, err := seq.Next(ctx)
		if err != nil {
			return nil, err
		}
		sols = append(sols, sol)
	}
	return sols, nil
}

// formatSolutionLine renders one solution for list output, truncating very
// large coordinates unless verbose is set.
func formatSolutionLine(sol models.Solution, verbose bool) string {
	x, y := sol.X.String(), sol.Y.String()
	if !verbose {
		x = truncateDigits(x)
		y = truncateDigits(y)
	}
	return fmt.Sprintf("(%s, %s)", x, y)
}

func truncateDigits(s string) string {
	if len(s) <= cli.TruncationLimit {
		return s
	}
	return fmt.Sprintf("%s...%s (%d digits)", s[:cli.DisplayEdges], s[len(s)-cli.DisplayEdges:], len(s))
}

// runSolve orchestrates the execution of the CLI solve command.
func (a *Application) runSolve(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	// Get methods to run
	methodsToRun := cli.GetMethodsToRun(a.Config, a.Factory)

	// Skip verbose output in quiet mode
	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(methodsToRun, out)
	}

	// Quiet and JSON modes must not interleave progress output with the result
	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	}

	// Execute solvers
	results := orchestration.ExecuteSolvers(ctx, methodsToRun, a.Config, progressOut)

	// Handle JSON output
	if a.Config.JSONOutput {
		return printJSONResults(results, out)
	}

	// Build output config for the CLI options
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		HexOutput:  a.Config.HexOutput,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
	}

	return a.analyzeResultsWithOutput(results, outputCfg, out)
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.SolveResult, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	// Handle quiet mode for single result
	if outputCfg.Quiet && bestResult != nil {
		cli.DisplayQuietSolution(out, bestResult.X, bestResult.Y, outputCfg.HexOutput)

		// Save to file if requested
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}

		return apperrors.ExitSuccess
	}

	// Use standard analysis for non-quiet mode
	exitCode := orchestration.AnalyzeComparisonResults(results, a.Config, out)

	// Handle file output and hex display for non-quiet mode
	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		// Display hex format if requested
		a.displayHexIfNeeded(bestResult, outputCfg, out)

		// Save to file if requested
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Solution saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
		}
	}

	return exitCode
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with
// success after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

func findBestResult(results []orchestration.SolveResult) *orchestration.SolveResult {
	var bestResult *orchestration.SolveResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.SolveResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteSolutionToFile(res.X, res.Y, a.Config.D, a.Config.K, res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving solution: %v\n", err)
		return err
	}
	return nil
}

func (a *Application) displayHexIfNeeded(res *orchestration.SolveResult, cfg cli.OutputConfig, out io.Writer) {
	if !cfg.HexOutput {
		return
	}
	fmt.Fprintf(out, "\n%s--- Hexadecimal Format ---%s\n", ui.ColorBold(), ui.ColorReset())
	for _, part := range []struct {
		name string
		v    string
	}{{"x", res.X.Text(16)}, {"y", res.Y.Text(16)}} {
		if len(part.v) > 100 && !a.Config.Verbose {
			fmt.Fprintf(out, "%s%s%s [hex] = %s0x%s...%s%s\n",
				ui.ColorMagenta(), part.name, ui.ColorReset(),
				ui.ColorGreen(), part.v[:40], part.v[len(part.v)-40:], ui.ColorReset())
		} else {
			fmt.Fprintf(out, "%s%s%s [hex] = %s0x%s%s\n",
				ui.ColorMagenta(), part.name, ui.ColorReset(),
				ui.ColorGreen(), part.v, ui.ColorReset())
		}
	}
}

// jsonResult represents a single solver result in JSON format.
type jsonResult struct {
	Method   string `json:"method"`
	Duration string `json:"duration"`
	X        string `json:"x,omitempty"`
	Y        string `json:"y,omitempty"`
	Error    string `json:"error,omitempty"`
}

// printJSONResults formats the solver results as a JSON array and writes
// them to the output. This is useful for programmatic consumption of the
// results.
func printJSONResults(results []orchestration.SolveResult, out io.Writer) int {
	output := make([]jsonResult, len(results))
	for i, res := range results {
		jr := jsonResult{
			Method:   res.Name,
			Duration: res.Duration.String(),
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		} else {
			jr.X = res.X.String()
			jr.Y = res.Y.String()
		}
		output[i] = jr
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
