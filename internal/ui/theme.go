// Package ui provides theme and color support for the application's user
// interface. It is the shared dependency for every package that produces
// colored terminal output, keeping presentation concerns out of the
// business logic.
package ui

import (
	"os"
	"sync"
)

// Theme is a named set of ANSI escape codes, one per color category.
type Theme struct {
	// Name identifies the theme.
	Name string
	// Primary is the main accent color.
	Primary string
	// Secondary is used for less prominent elements.
	Secondary string
	// Success indicates positive outcomes.
	Success string
	// Warning is used for caution messages.
	Warning string
	// Error indicates failures.
	Error string
	// Info is used for informational highlights.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme uses bright colors for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output. Used when NO_COLOR is set
	// or the --no-color flag is provided.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Primarily used by tests to
// restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme selects the theme from the noColor flag and the environment.
// The NO_COLOR variable (https://no-color.org/) is honored: any value,
// even empty, disables colors.
//
// Parameters:
//   - noColor: If true, disables color output regardless of environment.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}

// Color accessors return escape codes from the current theme, giving
// callers a stable API while the theme may change underneath.

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color from the current theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color from the current theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color from the current theme.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the info color from the current theme.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the secondary color from the current theme.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code from the current theme.
func ColorUnderline() string { return GetCurrentTheme().Underline }
