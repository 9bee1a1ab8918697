// Package jsonutil wraps the JSON codec used for plain (non-document)
// serialization: option payloads, CLI envelopes, and MCP tool results.
// Document trees never pass through here; they use the order-preserving
// marshaler in the parser package.
package jsonutil

import "github.com/bytedance/sonic"

var api = sonic.Config{
	EscapeHTML:  false,
	SortMapKeys: false,
	UseInt64:    true,
	CopyString:  true, // decoded strings must not alias the input buffer
}.Froze()

// Marshal encodes v with the frozen codec configuration.
func Marshal(v any) ([]byte, error) { return api.Marshal(v) }

// Unmarshal decodes data into v with the frozen codec configuration.
func Unmarshal(data []byte, v any) error { return api.Unmarshal(data, v) }

// MarshalString is Marshal returning a string.
func MarshalString(v any) (string, error) { return api.MarshalToString(v) }

// UnmarshalString is Unmarshal over a string input.
func UnmarshalString(data string, v any) error { return api.UnmarshalFromString(data, v) }

// MarshalIndent encodes v with the given prefix and indent.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}

// Valid reports whether data is syntactically valid JSON.
func Valid(data []byte) bool { return api.Valid(data) }
