package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"surrounding whitespace", "\n  {\"a\": 1}\n", `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"text around", "Here is your plan: {\"a\": {\"b\": 2}} Enjoy!", `{"a": {"b": 2}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.response)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestExtractJSON_Failures(t *testing.T) {
	_, err := ExtractJSON("   ")
	assert.Error(t, err)

	_, err = ExtractJSON("Sorry, I cannot help with that.")
	assert.ErrorIs(t, err, ErrNoJSON)

	_, err = ExtractJSON(`{"a": 1`)
	assert.ErrorIs(t, err, ErrNoJSON)
}
