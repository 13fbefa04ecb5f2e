package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"none", None, false},
		{"error", Error, false},
		{"warn", Warning, false},
		{"warning", Warning, false},
		{"info", Info, false},
		{"DEBUG", Debug, false},
		{"bogus", Info, true},
	}
	for _, tc := range tests {
		level, err := ParseLevel(tc.input)
		if tc.wantErr {
			require.Error(t, err, tc.input)
		} else {
			require.NoError(t, err, tc.input)
		}
		assert.Equal(t, tc.expected, level, tc.input)
	}
}

func TestSetupLoggingFallsBackToInfo(t *testing.T) {
	defer SetLevel(Info)
	assert.Equal(t, Debug, SetupLogging("debug"))
	assert.Equal(t, Debug, GetLevel())
	assert.Equal(t, Info, SetupLogging("nonsense"))
	assert.Equal(t, Info, GetLevel())
}
