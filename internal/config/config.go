// Package config provides the configuration management for the pellcalc
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments, and performs validation on the
// configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/pellcalc/internal/errors"
	"github.com/agbru/pellcalc/internal/pell"
)

const (
	// EnvPrefix is the prefix for all environment variables used by pellcalc.
	// Environment variables provide an alternative to CLI flags for
	// configuration, following the 12-Factor App methodology.
	EnvPrefix = "PELLCALC_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultD is the default discriminant to solve for.
	DefaultD uint64 = 61
	// DefaultK is the default solution index.
	DefaultK uint64 = 1
	// DefaultTimeout is the default solving timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultAlgo is the default method selection.
	DefaultAlgo = "all"
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control the
// execution, from the equation being solved to output preferences.
type AppConfig struct {
	// D is the discriminant of the equation x² − D·y² = 1.
	D uint64
	// K is the index of the solution to derive (1 = fundamental).
	K uint64
	// Count, if positive, requests the first Count solutions instead of
	// the single solution at index K.
	Count int
	// Skip, if positive, starts the batch listing at index Skip+1 instead
	// of the fundamental solution. Only meaningful together with Count.
	Skip uint64
	// Verbose, if true, instructs the application to display the full
	// solution values regardless of their length.
	Verbose bool
	// Details, if true, provides a detailed report including timings and
	// solution metadata.
	Details bool
	// Timeout sets the maximum duration for solving.
	Timeout time.Duration
	// Algo specifies the method to use ("all", "fastexp", "recurrence").
	Algo string
	// Analyze, if true, prints discriminant analysis (period estimate,
	// primality, fundamental discriminant) instead of solving.
	Analyze bool
	// JSONOutput, if true, outputs the result in JSON format.
	JSONOutput bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// OutputFile, if specified, saves the result to this file path.
	OutputFile string
	// Quiet mode - minimal output for scripting purposes.
	// Suppresses progress bars, banners, and informational messages.
	Quiet bool
	// HexOutput, if true, displays the solution in hexadecimal format.
	HexOutput bool
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that numerical values are within valid ranges and that the
// chosen method is supported.
//
// Parameters:
//   - availableMethods: A slice of strings listing the valid method names
//     (e.g., ["fastexp", "recurrence"]).
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableMethods []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if err := pell.ValidateDiscriminant(c.D); err != nil {
		return apperrors.NewConfigError("invalid discriminant: %v", err)
	}
	if c.K == 0 {
		return apperrors.NewConfigError("solution index must be at least 1")
	}
	if c.Count < 0 {
		return apperrors.NewConfigError("solution count cannot be negative: %d", c.Count)
	}
	if c.Skip > 0 && c.Count <= 0 {
		return apperrors.NewConfigError("-skip requires -count")
	}
	isMethodAvailable := false
	for _, m := range availableMethods {
		if m == c.Algo {
			isMethodAvailable = true
			break
		}
	}
	if c.Algo != "all" && !isMethodAvailable {
		return apperrors.NewConfigError("unrecognized method: '%s'. Valid methods are: 'all' or [%s]", c.Algo, strings.Join(availableMethods, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// and handles the parsing process. After parsing, it performs validation on
// the resulting configuration.
//
// The function is designed to be testable by allowing the input arguments
// and output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//   - availableMethods: A slice of valid method names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableMethods []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Method to use: 'all' (default) or one of [%s].", strings.Join(availableMethods, ", "))

	config := AppConfig{}
	fs.Uint64Var(&config.D, "d", DefaultD, "Discriminant D of the equation x² − D·y² = 1 (must be > 1 and non-square).")
	fs.Uint64Var(&config.K, "k", DefaultK, "Index k of the solution to derive (1 = fundamental solution).")
	fs.IntVar(&config.Count, "count", 0, "Compute the first N solutions instead of the one at index k.")
	fs.Uint64Var(&config.Skip, "skip", 0, "Skip the first N solutions in batch mode (list starts at index N+1).")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full solution values (can be very long).")
	fs.BoolVar(&config.Details, "details", false, "Display performance details and solution metadata.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for solving.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.BoolVar(&config.Analyze, "analyze", false, "Analyze the discriminant instead of solving (period estimate, primality).")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.HexOutput, "hex", false, "Display solution values in hexadecimal format.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	if err := config.Validate(availableMethods); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
