package ui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/quicken/pkg/ui"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		name     string
		format   ui.Format
		expected string
	}{
		{name: "auto format", format: ui.FormatAuto, expected: "auto"},
		{name: "terminal format", format: ui.FormatTerminal, expected: "term"},
		{name: "text format", format: ui.FormatText, expected: "text"},
		{name: "unknown format", format: ui.Format(999), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{"", ui.FormatAuto, false},
		{"auto", ui.FormatAuto, false},
		{"TERM", ui.FormatTerminal, false},
		{"terminal", ui.FormatTerminal, false},
		{"plain", ui.FormatText, false},
		{"json", ui.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ui.FormatText, ui.DetectFormat(&buf))

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, ui.FormatText, ui.DetectFormat(&buf))
}
