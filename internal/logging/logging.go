package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger prints levelled, colour-prefixed messages. The zero value prints
// only warnings and errors.
type Logger struct {
	Verbose bool
	Debug   bool

	// Out receives every message when set. Otherwise info and debug go to
	// stdout and warnings and errors to stderr.
	Out io.Writer
}

func (l Logger) stdout() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stdout
}

func (l Logger) stderr() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stderr
}

// Infof prints in verbose or debug mode.
func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		fmt.Fprintf(l.stdout(), color.GreenString("[info] ")+msg+"\n", args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		fmt.Fprintf(l.stdout(), color.CyanString("[debug] ")+msg+"\n", args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	fmt.Fprintf(l.stderr(), color.YellowString("[warn] ")+msg+"\n", args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	fmt.Fprintf(l.stderr(), color.RedString("[error] ")+msg+"\n", args...)
}

// ErrorfAndReturn builds an error from msg, printing it in debug mode, and
// returns it. Use it in RunE bodies where cobra reports the error itself.
func (l Logger) ErrorfAndReturn(msg string, args ...any) error {
	err := fmt.Errorf(msg, args...)
	if l.Debug {
		fmt.Fprintf(l.stderr(), color.RedString("[error] ")+"%v\n", err)
	}
	return err
}
