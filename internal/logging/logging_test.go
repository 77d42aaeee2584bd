package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var errBoom = errors.New("boom")

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		logger    Logger
		wantInfo  bool
		wantDebug bool
	}{
		{"quiet", Logger{}, false, false},
		{"verbose", Logger{Verbose: true}, true, false},
		{"debug", Logger{Debug: true}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := tt.logger
			l.Out = &buf

			l.Infof("saved %d accounts", 2)
			l.Debugf("slot %s", "abc")
			l.Warnf("last user not remembered")

			out := buf.String()
			if got := strings.Contains(out, "saved 2 accounts"); got != tt.wantInfo {
				t.Errorf("info printed = %v, want %v: %q", got, tt.wantInfo, out)
			}
			if got := strings.Contains(out, "slot abc"); got != tt.wantDebug {
				t.Errorf("debug printed = %v, want %v: %q", got, tt.wantDebug, out)
			}
			if !strings.Contains(out, "last user not remembered") {
				t.Errorf("warnings must always print: %q", out)
			}
		})
	}
}

func TestErrorfAndReturn(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Out: &buf}

	err := l.ErrorfAndReturn("loading config: %w", errBoom)
	if !errors.Is(err, errBoom) {
		t.Errorf("expected wrapped error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing printed outside debug mode, got %q", buf.String())
	}

	l.Debug = true
	_ = l.ErrorfAndReturn("loading config: %w", errBoom)
	if !strings.Contains(buf.String(), "loading config: boom") {
		t.Errorf("expected the error printed in debug mode, got %q", buf.String())
	}
}
