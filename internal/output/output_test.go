package output

import (
	"bytes"
	"strings"
	"testing"
)

// captureOutput captures everything printed during f
func captureOutput(f func()) string {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(nil)

	f()
	return buf.String()
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name  string
		print func(string)
		emoji string
	}{
		{"success", Success, "🪶"},
		{"error", Error, "❌"},
		{"warn", Warn, "⚠️"},
		{"info", Info, "ℹ️"},
		{"step", Step, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(func() { tt.print("some message") })

			if !strings.Contains(out, tt.emoji) {
				t.Errorf("%s output should contain %q, got %q", tt.name, tt.emoji, out)
			}
			if !strings.Contains(out, "some message") {
				t.Errorf("%s output should contain the message, got %q", tt.name, out)
			}
		})
	}
}

func TestVerbose(t *testing.T) {
	out := captureOutput(func() {
		Verbose("Debug message")
	})
	if out != "" {
		t.Error("Verbose output should be empty when verbose mode is off")
	}

	SetVerbose(true)
	defer SetVerbose(false)

	out = captureOutput(func() {
		Verbose("Debug message")
	})
	if !strings.Contains(out, "🔍") || !strings.Contains(out, "Debug message") {
		t.Errorf("Verbose output missing content when enabled: %q", out)
	}
}
