package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Storrado98/gastosapp/internal/ui"
	"github.com/briandowns/spinner"
)

// startSpinner starts a spinner with message unless verbose or debug
// output is on. The returned cleanup stops it and prints s.FinalMSG, which
// needs no trailing newline.
func startSpinner(message string, verboseFlag, debugFlag bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	quiet := !verboseFlag && !debugFlag
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Printed to stdout for tests to capture.
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}
