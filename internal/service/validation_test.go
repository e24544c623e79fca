package service

import (
	"errors"
	"settings-console/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRouteMatrix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.RouteMatrix
		wantErr bool
	}{
		{name: "empty object", input: "{}", want: domain.RouteMatrix{}},
		{name: "surrounding whitespace", input: "  {}\n", want: domain.RouteMatrix{}},
		{
			name:  "wildcard and exact events",
			input: `{"ssl.*": {"webhook": true}, "backup.failed": {"telegram": true, "systemLog": true}}`,
			want: domain.RouteMatrix{
				"ssl.*":         {Webhook: true},
				"backup.failed": {Telegram: true, SystemLog: true},
			},
		},
		{name: "array", input: "[]", wantErr: true},
		{name: "invalid json", input: "{routes", wantErr: true},
		{name: "null", input: "null", wantErr: true},
		{name: "number", input: "42", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "entry not an object", input: `{"ssl.*": 1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRouteMatrix(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var vErr *ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.NotEmpty(t, vErr.Field("routes"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseJSONObject(t *testing.T) {
	obj, err := ParseJSONObject(`{"domain": "example.com", "days": 3}`)
	require.NoError(t, err)
	assert.Equal(t, "example.com", obj["domain"])

	for _, input := range []string{"[]", `[{"a":1}]`, `"text"`, "true", "null", "", "{"} {
		_, err := ParseJSONObject(input)
		assert.Error(t, err, input)
	}
}

func TestParseIntOr(t *testing.T) {
	assert.Equal(t, 2500, ParseIntOr("2500", domain.DefaultTimeoutMs))
	assert.Equal(t, 2500, ParseIntOr(" 2500 ", domain.DefaultTimeoutMs))
	assert.Equal(t, 0, ParseIntOr("0", domain.DefaultRetryAttempts))
	assert.Equal(t, domain.DefaultTimeoutMs, ParseIntOr("", domain.DefaultTimeoutMs))
	assert.Equal(t, domain.DefaultRetryAttempts, ParseIntOr("three", domain.DefaultRetryAttempts))
	assert.Equal(t, domain.DefaultRetryDelayMs, ParseIntOr("1.5", domain.DefaultRetryDelayMs))
}

func TestFormatRouteMatrix(t *testing.T) {
	assert.Equal(t, "{}", FormatRouteMatrix(nil))
	out := FormatRouteMatrix(domain.RouteMatrix{"ssl.*": {Webhook: true}})
	assert.Contains(t, out, "\n  \"ssl.*\": {")

	parsed, err := ParseRouteMatrix(out)
	require.NoError(t, err)
	assert.True(t, parsed["ssl.*"].Webhook)
}
