package cli

import (
	"bytes"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/pellcalc/internal/testutil"
)

// TestFormatQuietSolution checks the scripting-friendly single-line form.
func TestFormatQuietSolution(t *testing.T) {
	t.Parallel()
	if got := FormatQuietSolution(big.NewInt(3), big.NewInt(2), false); got != "3 2" {
		t.Errorf("quiet solution = %q, want \"3 2\"", got)
	}
	if got := FormatQuietSolution(big.NewInt(255), big.NewInt(16), true); got != "0xff 0x10" {
		t.Errorf("quiet hex solution = %q, want \"0xff 0x10\"", got)
	}
}

// TestWriteSolutionToFile checks the file contains the header and both
// components.
func TestWriteSolutionToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out", "solution.txt")
	cfg := OutputConfig{OutputFile: path}

	err := WriteSolutionToFile(big.NewInt(9801), big.NewInt(1820), 29, 2, time.Second, "fastexp", cfg)
	if err != nil {
		t.Fatalf("WriteSolutionToFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	for _, want := range []string{"# D: 29", "# K: 2", "# Method: fastexp", "9801", "1820"} {
		if !strings.Contains(content, want) {
			t.Errorf("file missing %q:\n%s", want, content)
		}
	}
}

// TestWriteSolutionToFileHex checks the hexadecimal output form.
func TestWriteSolutionToFileHex(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "solution.txt")
	cfg := OutputConfig{OutputFile: path, HexOutput: true}

	if err := WriteSolutionToFile(big.NewInt(255), big.NewInt(16), 2, 1, 0, "recurrence", cfg); err != nil {
		t.Fatalf("WriteSolutionToFile: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "0xff") {
		t.Errorf("hex value missing:\n%s", data)
	}
}

// TestWriteSolutionToFileNoPath checks the no-op when no file is requested.
func TestWriteSolutionToFileNoPath(t *testing.T) {
	t.Parallel()
	if err := WriteSolutionToFile(big.NewInt(3), big.NewInt(2), 2, 1, 0, "fastexp", OutputConfig{}); err != nil {
		t.Errorf("expected nil error for empty path, got %v", err)
	}
}

// TestDisplaySolutionWithConfigQuiet checks quiet mode emits only the pair.
func TestDisplaySolutionWithConfigQuiet(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := DisplaySolutionWithConfig(&buf, big.NewInt(3), big.NewInt(2), 2, 1, 0, "fastexp", OutputConfig{Quiet: true})
	if err != nil {
		t.Fatalf("DisplaySolutionWithConfig: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "3 2" {
		t.Errorf("quiet output = %q, want \"3 2\"", got)
	}
}

// TestDisplaySolutionWithConfigFile checks the saved-to confirmation.
func TestDisplaySolutionWithConfigFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "solution.txt")
	var buf bytes.Buffer
	err := DisplaySolutionWithConfig(&buf, big.NewInt(3), big.NewInt(2), 2, 1, 0, "fastexp", OutputConfig{OutputFile: path})
	if err != nil {
		t.Fatalf("DisplaySolutionWithConfig: %v", err)
	}
	out := testutil.StripAnsiCodes(buf.String())
	if !strings.Contains(out, "saved to") {
		t.Errorf("confirmation missing: %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file not created: %v", err)
	}
}

// TestDisplaySolutionWithConfigHex checks the hex section is appended.
func TestDisplaySolutionWithConfigHex(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := DisplaySolutionWithConfig(&buf, big.NewInt(255), big.NewInt(16), 2, 1, 0, "fastexp", OutputConfig{HexOutput: true})
	if err != nil {
		t.Fatalf("DisplaySolutionWithConfig: %v", err)
	}
	out := testutil.StripAnsiCodes(buf.String())
	if !strings.Contains(out, "Hexadecimal format") || !strings.Contains(out, "0xff") {
		t.Errorf("hex section missing: %q", out)
	}
}
