// The cli package provides functions for building a command-line interface
// (CLI) for the Pell equation solver. It handles the asynchronous display of
// solving progress and formats the results for a clear and readable
// presentation.
package cli

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/agbru/pellcalc/internal/pell"
	"github.com/agbru/pellcalc/internal/ui"
	"github.com/briandowns/spinner"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds
// for durations less than a second, and the default string representation
// otherwise. This approach provides a more human-readable output for short
// durations.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// TruncationLimit is the digit threshold from which a solution value is
	// truncated in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges specifies the number of digits to display at the
	// beginning and end of a truncated number.
	DisplayEdges = 25
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// CLIColorProvider exposes the current theme's colors through the
// apperrors.ColorProvider interface, breaking the import cycle between the
// error handling and presentation layers.
type CLIColorProvider struct{}

// Yellow returns the warning color from the current theme.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the reset escape code from the current theme.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and
// maintenance. It defines the essential controls for a spinner: starting,
// stopping, and updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
//
// Parameters:
//   - suffix: The string to display.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState encapsulates the aggregated progress of concurrent solver
// runs. It maintains the individual progress of each method and computes the
// average, which is essential for providing a consolidated progress view
// when multiple methods are running in parallel.
type ProgressState struct {
	progresses []float64
	numMethods int
}

// NewProgressState creates and initializes a new ProgressState.
// It sets up the internal storage for tracking the progress of a specified
// number of methods.
//
// Parameters:
//   - numMethods: The number of methods to track.
//
// Returns:
//   - *ProgressState: A pointer to the new progress state object.
func NewProgressState(numMethods int) *ProgressState {
	return &ProgressState{
		progresses: make([]float64, numMethods),
		numMethods: numMethods,
	}
}

// Update records a new progress value for a specific method. The method
// ensures that updates are only applied for valid indices.
//
// Parameters:
//   - index: The index of the method (0 to numMethods-1).
//   - value: The progress value (0.0 to 1.0).
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage computes the average progress across all tracked methods.
// This is used to display a single, consolidated progress bar to the user,
// representing the overall progress of the application.
//
// Returns:
//   - float64: The average progress (0.0 to 1.0).
func (ps *ProgressState) CalculateAverage() float64 {
	var totalProgress float64
	for _, p := range ps.progresses {
		totalProgress += p
	}
	if ps.numMethods == 0 {
		return 0.0
	}
	return totalProgress / float64(ps.numMethods)
}

// progressBar generates a string representing a textual progress bar.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - length: The total character width of the progress bar.
//
// Returns:
//   - string: A string representation of the progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress manages the asynchronous display of a spinner and progress
// bar. It is designed to run in a dedicated goroutine and orchestrates the
// UI updates for the duration of the solver runs.
//
// The function's responsibilities include:
//   - Receiving progress updates from a channel.
//   - Aggregating these updates to calculate the average progress.
//   - Calculating and displaying the estimated time remaining (ETA).
//   - Periodically refreshing the spinner and progress bar.
//   - Gracefully shutting down when the progress channel is closed.
//
// Parameters:
//   - wg: A WaitGroup to signal when the display routine is complete.
//   - progressChan: The channel receiving progress updates.
//   - numMethods: The number of methods contributing to the progress.
//   - out: The io.Writer to which the progress bar is rendered.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan pell.ProgressUpdate, numMethods int, out io.Writer) {
	defer wg.Done()
	if numMethods <= 0 {
		for range progressChan { // Drain the channel
		}
		return
	}

	state := NewProgressWithETA(numMethods)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				// Stop the spinner first to free the line
				if !spinnerStopped {
					s.Stop()
					spinnerStopped = true
				}

				// Display final 100% progress permanently by printing directly to output
				bar := progressBar(1.0, ProgressBarWidth)
				label := "Progress"
				if numMethods > 1 {
					label = "Avg progress"
				}
				// Print the final progress line with a newline so it persists
				fmt.Fprintf(out, "%s: %6.2f%% [%s] ETA: %s\n", label, 100.0, bar, "< 1s")
				return
			}
			state.UpdateWithETA(update.MethodIndex, update.Value)
		case <-ticker.C:
			avgProgress := state.CalculateAverage()
			eta := state.GetETA()
			bar := progressBar(avgProgress, ProgressBarWidth)
			label := "Progress"
			if numMethods > 1 {
				label = "Avg progress"
			}
			etaStr := FormatETA(eta)
			s.UpdateSuffix(fmt.Sprintf(" %s: %6.2f%% [%s] ETA: %s", label, avgProgress*100, bar, etaStr))
		}
	}
}

// DisplaySolution formats and prints the final solution of x² − D·y² = 1.
// It provides different levels of detail based on the verbose and details
// flags, including metadata like binary size and number of digits. For very
// large solutions, it truncates the output unless verbose is true.
//
// Parameters:
//   - x, y: The solution pair.
//   - d: The discriminant of the equation.
//   - k: The index of the solution.
//   - duration: The time taken for solving.
//   - verbose: If true, prints the full values regardless of size.
//   - details: If true, prints detailed execution metrics.
//   - out: The io.Writer for the output.
func DisplaySolution(x, y *big.Int, d, k uint64, duration time.Duration, verbose, details bool, out io.Writer) {
	fmt.Fprintf(out, "Solution binary size: %s%s%s bits (x).\n",
		ui.ColorCyan(), formatNumberString(fmt.Sprintf("%d", x.BitLen())), ui.ColorReset())

	if details {
		fmt.Fprintf(out, "\n%s--- Detailed solution analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		durationStr := FormatExecutionDuration(duration)
		if duration == 0 {
			durationStr = "< 1µs"
		}
		fmt.Fprintf(out, "Solving time          : %s%s%s\n", ui.ColorGreen(), durationStr, ui.ColorReset())
		fmt.Fprintf(out, "Digits in x           : %s%s%s\n",
			ui.ColorCyan(), formatNumberString(fmt.Sprintf("%d", len(x.String()))), ui.ColorReset())
		fmt.Fprintf(out, "Digits in y           : %s%s%s\n",
			ui.ColorCyan(), formatNumberString(fmt.Sprintf("%d", len(y.String()))), ui.ColorReset())

		if len(x.String()) > 6 {
			f := new(big.Float).SetInt(x)
			fmt.Fprintf(out, "x in scientific form  : %s%.6e%s\n", ui.ColorCyan(), f, ui.ColorReset())
		}
	}

	fmt.Fprintf(out, "\n%s--- Solution of x² − %d·y² = 1 (k = %d) ---%s\n", ui.ColorBold(), d, k, ui.ColorReset())
	printComponent(out, "x", x, verbose)
	printComponent(out, "y", y, verbose)
}

// printComponent prints one component of a solution, truncating large values
// unless verbose is set.
func printComponent(out io.Writer, name string, v *big.Int, verbose bool) {
	s := v.String()
	numDigits := len(s)
	if verbose || numDigits <= TruncationLimit {
		fmt.Fprintf(out, "%s%s%s = %s%s%s\n",
			ui.ColorMagenta(), name, ui.ColorReset(), ui.ColorGreen(), formatNumberString(s), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "%s%s%s (truncated) = %s%s...%s%s (%s digits)\n",
		ui.ColorMagenta(), name, ui.ColorReset(),
		ui.ColorGreen(), s[:DisplayEdges], s[numDigits-DisplayEdges:], ui.ColorReset(),
		formatNumberString(fmt.Sprintf("%d", numDigits)))
	fmt.Fprintf(out, "(Tip: use the %s-v%s option to display the full value)\n", ui.ColorYellow(), ui.ColorReset())
}

// formatNumberString inserts thousand separators into a numeric string.
//
// Parameters:
//   - s: The numeric string to format.
//
// Returns:
//   - string: The formatted string with comma separators.
func formatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	// Precise calculation of the required capacity to avoid reallocations
	numSeparators := (n - 1) / 3
	capacity := len(prefix) + n + numSeparators
	var builder strings.Builder
	builder.Grow(capacity)
	builder.WriteString(prefix)

	firstGroupLen := n % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}
	builder.WriteString(s[:firstGroupLen])

	for i := firstGroupLen; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}
