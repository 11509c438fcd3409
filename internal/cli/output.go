// Package cli provides output utilities for exporting solver results.
package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/pellcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// HexOutput displays the solution in hexadecimal format.
	HexOutput bool
	// Quiet mode suppresses verbose output.
	Quiet bool
	// Verbose shows the full solution values.
	Verbose bool
	// Details enables the detailed solution analysis section.
	Details bool
}

// WriteSolutionToFile writes a solution to a file.
//
// Parameters:
//   - x, y: The solution pair.
//   - d: The discriminant of the equation.
//   - k: The solution index.
//   - duration: The solving duration.
//   - method: The method name used.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteSolutionToFile(x, y *big.Int, d, k uint64, duration time.Duration, method string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	// Write header
	fmt.Fprintf(file, "# Pell Equation Solution\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Method: %s\n", method)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# D: %d\n", d)
	fmt.Fprintf(file, "# K: %d\n", k)
	fmt.Fprintf(file, "# Bits (x): %d\n", x.BitLen())
	fmt.Fprintf(file, "# Digits (x): %d\n", len(x.String()))
	fmt.Fprintf(file, "\n")

	// Write solution
	if config.HexOutput {
		fmt.Fprintf(file, "x [hex] =\n0x%s\n\ny [hex] =\n0x%s\n", x.Text(16), y.Text(16))
	} else {
		fmt.Fprintf(file, "x =\n%s\n\ny =\n%s\n", x.String(), y.String())
	}

	return nil
}

// FormatQuietSolution formats a solution for quiet mode output.
// Returns a single-line "x y" pair suitable for scripting.
//
// Parameters:
//   - x, y: The solution pair.
//   - hexOutput: Whether to format as hexadecimal.
//
// Returns:
//   - string: The formatted result string.
func FormatQuietSolution(x, y *big.Int, hexOutput bool) string {
	if hexOutput {
		return fmt.Sprintf("0x%s 0x%s", x.Text(16), y.Text(16))
	}
	return fmt.Sprintf("%s %s", x.String(), y.String())
}

// DisplayQuietSolution outputs a solution in quiet mode (minimal output).
//
// Parameters:
//   - out: The output writer.
//   - x, y: The solution pair.
//   - hexOutput: Whether to format as hexadecimal.
func DisplayQuietSolution(out io.Writer, x, y *big.Int, hexOutput bool) {
	fmt.Fprintln(out, FormatQuietSolution(x, y, hexOutput))
}

// DisplaySolutionWithConfig displays a solution with the given output
// configuration. This is a unified function that handles all output modes.
//
// Parameters:
//   - out: The output writer.
//   - x, y: The solution pair.
//   - d: The discriminant of the equation.
//   - k: The solution index.
//   - duration: The solving duration.
//   - method: The method name.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplaySolutionWithConfig(out io.Writer, x, y *big.Int, d, k uint64, duration time.Duration, method string, config OutputConfig) error {
	// Handle quiet mode
	if config.Quiet {
		DisplayQuietSolution(out, x, y, config.HexOutput)
	} else {
		// Use standard display
		DisplaySolution(x, y, d, k, duration, config.Verbose, config.Details, out)

		// Show hex format if requested
		if config.HexOutput {
			fmt.Fprintf(out, "\n%sHexadecimal format:%s\n", ui.ColorBold(), ui.ColorReset())
			printHexComponent(out, "x", x, config.Verbose)
			printHexComponent(out, "y", y, config.Verbose)
		}
	}

	// Save to file if requested
	if config.OutputFile != "" {
		if err := WriteSolutionToFile(x, y, d, k, duration, method, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Solution saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}

func printHexComponent(out io.Writer, name string, v *big.Int, verbose bool) {
	hexStr := v.Text(16)
	if len(hexStr) > TruncationLimit && !verbose {
		fmt.Fprintf(out, "%s [hex] = %s0x%s...%s%s\n",
			name, ui.ColorGreen(), hexStr[:DisplayEdges], hexStr[len(hexStr)-DisplayEdges:], ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "%s [hex] = %s0x%s%s\n", name, ui.ColorGreen(), hexStr, ui.ColorReset())
}
