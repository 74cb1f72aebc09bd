package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewlab/baton/internal/errors"
)

// TestIsValidOutputFormat verifies output format validation.
func TestIsValidOutputFormat(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   bool
	}{
		{name: "text is valid", format: OutputText, want: true},
		{name: "json is valid", format: OutputJSON, want: true},
		{name: "empty is invalid", format: "", want: false},
		{name: "yaml is invalid", format: "yaml", want: false},
		{name: "uppercase is invalid", format: "JSON", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidOutputFormat(tt.format))
		})
	}
}

// TestValidOutputFormats verifies the advertised format list.
func TestValidOutputFormats(t *testing.T) {
	formats := ValidOutputFormats()
	require.Len(t, formats, 2)
	assert.Contains(t, formats, OutputText)
	assert.Contains(t, formats, OutputJSON)
}

// TestExitCodeForError verifies error-to-exit-code mapping.
func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: ExitSuccess},
		{name: "invalid output format", err: errors.ErrInvalidOutputFormat, want: ExitInvalidInput},
		{name: "wrapped invalid output format", err: fmt.Errorf("check: %w", errors.ErrInvalidOutputFormat), want: ExitInvalidInput},
		{name: "mission file invalid", err: errors.ErrMissionFileInvalid, want: ExitInvalidInput},
		{name: "invalid argument", err: errors.ErrInvalidArgument, want: ExitInvalidInput},
		{name: "cobra unknown flag", err: fmt.Errorf("unknown flag: --bogus"), want: ExitInvalidInput},
		{name: "cobra arg count", err: fmt.Errorf("accepts 1 arg(s), received 0"), want: ExitInvalidInput},
		{name: "cobra unknown command", err: fmt.Errorf("unknown command \"frobnicate\" for \"baton\""), want: ExitInvalidInput},
		{name: "generic error", err: fmt.Errorf("store unavailable"), want: ExitError},
		{name: "session not found", err: errors.ErrSessionNotFound, want: ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}
