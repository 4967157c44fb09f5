package severity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    any
		expected Severity
		wantErr  bool
	}{
		{"off string", "off", Off, false},
		{"warn string", "warn", Warn, false},
		{"error string", "error", Error, false},
		{"upper case", "ERROR", Error, false},
		{"padded", "  warn ", Warn, false},
		{"numeric string", "2", Error, false},
		{"int zero", 0, Off, false},
		{"int one", 1, Warn, false},
		{"int64 two", int64(2), Error, false},
		{"float from json", float64(1), Warn, false},
		{"severity passthrough", Error, Error, false},
		{"unknown word", "fatal", Off, true},
		{"warning spelled out", "warning", Off, true},
		{"out of range", 3, Off, true},
		{"negative", -1, Off, true},
		{"fractional", 1.5, Off, true},
		{"nil", nil, Off, true},
		{"bool", true, Off, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownSeverity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEnabled(t *testing.T) {
	t.Parallel()

	assert.False(t, Off.Enabled())
	assert.True(t, Warn.Enabled())
	assert.True(t, Error.Enabled())
}

func TestSeverityEncoding(t *testing.T) {
	t.Parallel()

	rules := map[string]Severity{"no-console": Off, "prettier/prettier": Error}

	data, err := json.Marshal(rules)
	require.NoError(t, err)
	assert.JSONEq(t, `{"no-console":"off","prettier/prettier":"error"}`, string(data))

	var decoded map[string]Severity
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rules, decoded)

	out, err := yaml.Marshal(map[string]Severity{"x": Warn})
	require.NoError(t, err)
	assert.Equal(t, "x: warn\n", string(out))
}

func TestStringOutOfRange(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Severity(7)", Severity(7).String())
	_, err := Severity(7).MarshalText()
	require.ErrorIs(t, err, ErrUnknownSeverity)
}
