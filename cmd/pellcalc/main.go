// Command pellcalc solves the Pell equation x² − D·y² = 1 in arbitrary
// precision, from the command line or as an HTTP service.
package main

import (
	"context"
	"os"

	"github.com/agbru/pellcalc/internal/app"
	apperrors "github.com/agbru/pellcalc/internal/errors"
)

func main() {
	// Version flag works in any position and bypasses config parsing
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		os.Exit(apperrors.ExitSuccess)
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
