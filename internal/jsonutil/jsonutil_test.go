package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalRoundTrip(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int64  `json:"count"`
	}

	data, err := Marshal(payload{Name: "a", Count: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"a","count":3}`, string(data))

	var got payload
	require.NoError(t, Unmarshal(data, &got))
	assert.Equal(t, payload{Name: "a", Count: 3}, got)
}

func TestMarshalDoesNotEscapeHTML(t *testing.T) {
	data, err := Marshal(map[string]string{"q": "a<b>&c"})
	require.NoError(t, err)
	assert.Contains(t, string(data), "a<b>&c")
}

func TestUnmarshalUsesInt64(t *testing.T) {
	var got map[string]any
	require.NoError(t, UnmarshalString(`{"n": 9007199254740993}`, &got))
	// Decoding into int64 keeps integer precision that float64 would lose.
	assert.Equal(t, int64(9007199254740993), got["n"])
}

func TestMarshalIndent(t *testing.T) {
	data, err := MarshalIndent(map[string]string{"k": "v"}, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"k\": \"v\"\n}", string(data))
}

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "object", input: `{"a": 1}`, want: true},
		{name: "array", input: `[1, 2, 3]`, want: true},
		{name: "scalar", input: `"hello"`, want: true},
		{name: "duplicate keys are still valid JSON", input: `{"a": 1, "a": 2}`, want: true},
		{name: "unquoted key", input: `{a: 1}`, want: false},
		{name: "trailing comma", input: `{"a": 1,}`, want: false},
		{name: "truncated", input: `{"a": `, want: false},
		{name: "empty", input: ``, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid([]byte(tt.input)))
		})
	}
}
