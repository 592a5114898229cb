package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatError(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		opts     ErrorOptions
		contains []string
	}{
		{
			name: "basic error",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "type not found",
				Problem: "Acount",
			},
			contains: []string{"❌", "TYPE NOT FOUND: Acount"},
		},
		{
			name: "error with suggestions",
			opts: ErrorOptions{
				Level:       ErrorLevelError,
				Problem:     "Acount",
				Suggestions: []string{"Account", "Amount"},
			},
			contains: []string{"Did you mean: Account, Amount?"},
		},
		{
			name: "error with help commands",
			opts: ErrorOptions{
				Level:        ErrorLevelError,
				Problem:      "broken",
				HelpCommands: []string{"flute inspect types"},
			},
			contains: []string{"→ flute inspect types"},
		},
		{
			name: "warning",
			opts: ErrorOptions{
				Level:       ErrorLevelWarning,
				Problem:     "snapshot is empty",
				Consequence: "Nothing to show.",
			},
			contains: []string{"⚠️", "snapshot is empty", "Nothing to show."},
		},
		{
			name:     "info",
			opts:     ErrorOptions{Level: ErrorLevelInfo, Problem: "note"},
			contains: []string{"ℹ️", "note"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.NoColor = true
			result := FormatError(tt.opts)
			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("FormatError() missing %q in output:\n%s", expected, result)
				}
			}
		})
	}
}

func TestTypeNotFoundError(t *testing.T) {
	result := TypeNotFoundError("Acount", []string{"Account"}, true)

	for _, expected := range []string{"TYPE NOT FOUND", "Cannot find type 'Acount'", "Did you mean: Account?", "flute inspect types"} {
		if !strings.Contains(result, expected) {
			t.Errorf("missing %q in:\n%s", expected, result)
		}
	}
}

func TestSnapshotError(t *testing.T) {
	result := SnapshotError("build/app.json", errors.New("no such file"), true)

	if !strings.Contains(result, "SNAPSHOT UNAVAILABLE: build/app.json") {
		t.Errorf("missing header in:\n%s", result)
	}
	if !strings.Contains(result, "no such file") {
		t.Errorf("missing cause in:\n%s", result)
	}
}

func TestConfigErrorAndWarning(t *testing.T) {
	if result := ConfigError("bad port", true); !strings.Contains(result, "CONFIGURATION ERROR: bad port") {
		t.Errorf("unexpected config error:\n%s", result)
	}
	if result := Warning("careful", true); !strings.HasPrefix(result, "⚠️ careful") {
		t.Errorf("unexpected warning:\n%s", result)
	}
}

func TestFormatSuccess(t *testing.T) {
	if got := FormatSuccess("wrote snapshot", true); got != "✓ wrote snapshot" {
		t.Errorf("got %q", got)
	}
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	opts := ErrorOptions{Context: "snapshot unavailable", Problem: "app.json", NoColor: true}

	WriteError(&buf, opts)

	if got, want := buf.String(), FormatError(opts); got != want {
		t.Errorf("WriteError wrote %q, want %q", got, want)
	}
	if !strings.HasPrefix(buf.String(), "❌ SNAPSHOT UNAVAILABLE: app.json") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
