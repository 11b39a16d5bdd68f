package cli

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/tiberius-s/fireside/pkg/validate"
)

// PrintDiagnostics writes diagnostics with severity coloring, errors in
// red and warnings in yellow.
func PrintDiagnostics(w io.Writer, diags []validate.Diagnostic) {
	if len(diags) == 0 {
		return
	}

	profile := termenv.ColorProfile()
	for _, d := range diags {
		line := termenv.String(d.String())
		switch d.Severity {
		case validate.SeverityError:
			line = line.Foreground(profile.Color("#ef4444"))
		case validate.SeverityWarning:
			line = line.Foreground(profile.Color("#f59e0b"))
		}
		fmt.Fprintln(w, line)
	}
}
