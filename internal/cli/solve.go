package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/pellcalc/internal/config"
	"github.com/agbru/pellcalc/internal/pell"
	"github.com/agbru/pellcalc/internal/ui"
)

// GetMethodsToRun determines which solver methods should be executed based
// on the configuration. Returns methods in alphabetically sorted order for
// consistent, reproducible behavior.
//
// Parameters:
//   - cfg: The application configuration containing the method selection.
//   - factory: The method factory to retrieve implementations from.
//
// Returns:
//   - []pell.Method: A slice of methods to execute.
func GetMethodsToRun(cfg config.AppConfig, factory pell.MethodFactory) []pell.Method {
	if cfg.Algo == "all" {
		keys := factory.List() // List() returns sorted keys
		methods := make([]pell.Method, 0, len(keys))
		for _, k := range keys {
			if m, err := factory.Get(k); err == nil {
				methods = append(methods, m)
			}
		}
		return methods
	}
	if m, err := factory.Get(cfg.Algo); err == nil {
		return []pell.Method{m}
	}
	return nil
}

// PrintExecutionConfig displays the current execution configuration to the
// user. It shows the equation being solved, the timeout, and environment
// details.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	writeOut(out, "--- Execution Configuration ---\n")
	if cfg.Count > 0 {
		writeOut(out, "Solving %sx² − %d·y² = 1%s for the first %s%d%s solutions with a timeout of %s%s%s.\n",
			ui.ColorMagenta(), cfg.D, ui.ColorReset(),
			ui.ColorCyan(), cfg.Count, ui.ColorReset(),
			ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	} else {
		writeOut(out, "Solving %sx² − %d·y² = 1%s at index %s%d%s with a timeout of %s%s%s.\n",
			ui.ColorMagenta(), cfg.D, ui.ColorReset(),
			ui.ColorCyan(), cfg.K, ui.ColorReset(),
			ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	}
	writeOut(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single method vs
// comparison).
//
// Parameters:
//   - methods: The slice of methods that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(methods []pell.Method, out io.Writer) {
	var modeDesc string
	if len(methods) > 1 {
		modeDesc = "Parallel comparison of all methods"
	} else {
		modeDesc = fmt.Sprintf("Single run with the %s%s%s method",
			ui.ColorGreen(), methods[0].Name(), ui.ColorReset())
	}
	writeOut(out, "Execution mode: %s.\n", modeDesc)
	writeOut(out, "\n--- Starting Execution ---\n")
}

// PrintAnalysis displays number-theoretic properties of a discriminant:
// validity, primality, square-free kernel, and the estimated period of the
// continued-fraction expansion of √D.
//
// Parameters:
//   - d: The discriminant to analyze.
//   - out: The writer for standard output.
func PrintAnalysis(d uint64, out io.Writer) {
	writeOut(out, "%s--- Discriminant analysis: D = %d ---%s\n", ui.ColorBold(), d, ui.ColorReset())

	if !pell.IsValidDiscriminant(d) {
		writeOut(out, "Valid Pell discriminant : %sno%s\n", ui.ColorRed(), ui.ColorReset())
		if err := pell.ValidateDiscriminant(d); err != nil {
			writeOut(out, "Reason                  : %v\n", err)
		}
		return
	}

	writeOut(out, "Valid Pell discriminant : %syes%s\n", ui.ColorGreen(), ui.ColorReset())
	primality := "composite"
	if pell.IsPrime(d) {
		primality = "prime"
	}
	writeOut(out, "Primality               : %s%s%s\n", ui.ColorCyan(), primality, ui.ColorReset())
	writeOut(out, "Square-free kernel      : %s%d%s\n", ui.ColorCyan(), pell.FundamentalDiscriminant(d), ui.ColorReset())
	if est, ok := pell.EstimatePeriodLength(d); ok {
		writeOut(out, "Estimated CF period     : %s~%d%s terms\n", ui.ColorCyan(), est, ui.ColorReset())
	}
}

// writeOut writes a formatted string to the output writer.
//
// Parameters:
//   - out: The destination writer.
//   - format: The format string (see fmt.Printf).
//   - a: Arguments for the format string.
func writeOut(out io.Writer, format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
