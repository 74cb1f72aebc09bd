package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSensitiveValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		redacted bool
	}{
		{"apply token", "minted apply_9f2c1b44-aa31-4c1d-9d2e-001122334455", true},
		{"audit ref", "grant ref studio_access_lk3m9q2", true},
		{"api key assignment", `api_key = "abcdef1234567890abcd"`, true},
		{"bearer token", "Bearer abcdefghijklmnopqrstuvwx", true},
		{"password assignment", "password=hunter2hunter2", true},
		{"plain text", "planned 3 checkpoints for the mission", false},
		{"short token-like word", "applying changes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSensitiveValue(tt.input)
			if tt.redacted {
				assert.Contains(t, got, RedactedValue)
				assert.True(t, ContainsSensitiveData(tt.input))
			} else {
				assert.Equal(t, tt.input, got)
				assert.False(t, ContainsSensitiveData(tt.input))
			}
		})
	}
}

func TestSafeValue(t *testing.T) {
	assert.Equal(t, RedactedValue, SafeValue("apply_token", "apply_abc"))
	assert.Equal(t, RedactedValue, SafeValue("audit_ref", "studio_access_x"))
	assert.Equal(t, RedactedValue, SafeValue("Authorization", "whatever"))
	assert.Equal(t, "mission text", SafeValue("mission", "mission text"))
}

func TestIsSensitiveFieldName(t *testing.T) {
	assert.True(t, IsSensitiveFieldName("apply_token"))
	assert.True(t, IsSensitiveFieldName("session_apply_token"))
	assert.True(t, IsSensitiveFieldName("PASSWORD"))
	assert.False(t, IsSensitiveFieldName("session_id"))
	assert.False(t, IsSensitiveFieldName("mission_domain"))
}

func TestFilteringWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewFilteringWriter(&buf)

	msg := "rollback with apply_9f2c1b44-aa31-4c1d-9d2e-001122334455 done"
	n, err := w.Write([]byte(msg))
	require.NoError(t, err)
	assert.Equal(t, len(msg), n)
	assert.NotContains(t, buf.String(), "apply_9f2c")
	assert.Contains(t, buf.String(), RedactedValue)
}

func TestSensitiveDataHook(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(NewSensitiveDataHook())

	logger.Info().Msg("token studio_access_lk3m9q2 issued")
	assert.Contains(t, buf.String(), `"contains_filtered_data":true`)

	buf.Reset()
	logger.Info().Msg("session mutated")
	assert.False(t, strings.Contains(buf.String(), "contains_filtered_data"))
}
