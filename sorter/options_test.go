package sorter

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/keysort/keyorder"
	"github.com/erraggy/keysort/kserrors"
	"github.com/erraggy/keysort/parser"
)

func TestParseErrorPolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    ErrorPolicy
		wantErr bool
	}{
		{input: "", want: ErrorFail},
		{input: "fail", want: ErrorFail},
		{input: "pass-through", want: ErrorPassThrough},
		{input: "passthrough", want: ErrorPassThrough},
		{input: "ignore", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			got, err := ParseErrorPolicy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, kserrors.ErrConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorPolicyString(t *testing.T) {
	assert.Equal(t, "fail", ErrorFail.String())
	assert.Equal(t, "pass-through", ErrorPassThrough.String())
	assert.Equal(t, "ErrorPolicy(7)", ErrorPolicy(7).String())
}

func TestWithOrderRejectsForgedPolicy(t *testing.T) {
	_, err := SortWithOptions(
		WithBytes([]byte(`{}`)),
		WithOrder(keyorder.Policy("bogus")),
	)
	require.Error(t, err)
	var cfgErr *kserrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "sortOrder", cfgErr.Option)
}

func TestWithOrderSpecCustomMapping(t *testing.T) {
	result, err := SortWithOptions(
		WithBytes([]byte(`{"b":1,"a":2}`)),
		WithOrderSpec(`{"a":"lexical"}`),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, parser.ObjectKeys(root(t, result)))
}

func TestWithOrderSpecMalformedJSON(t *testing.T) {
	_, err := SortWithOptions(
		WithBytes([]byte(`{}`)),
		WithOrderSpec(`{"a": "numeric"`),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, kserrors.ErrConfig)
}

func TestWithOrderSpecUnknownPolicyInMapping(t *testing.T) {
	_, err := SortWithOptions(
		WithBytes([]byte(`{}`)),
		WithOrderSpec(`{"a": "alphabetical"}`),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, kserrors.ErrConfig)
	assert.ErrorContains(t, err, "unknown policy")
}

func TestWithFilePatternsBlankListDisablesFiltering(t *testing.T) {
	// Whitespace and empty entries compile to an empty list, which means
	// no filtering at all rather than "match nothing".
	result, err := SortWithOptions(
		WithBytes([]byte(`{"b":1,"a":2}`)),
		WithFilePatterns(" , ,"),
	)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, []string{"a", "b"}, parser.ObjectKeys(root(t, result)))
}

func TestMaxDepthLimit(t *testing.T) {
	deep := strings.Repeat(`{"a":`, 10) + "1" + strings.Repeat("}", 10)

	_, err := SortWithOptions(
		WithBytes([]byte(deep)),
		WithMaxDepth(3),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, kserrors.ErrResourceLimit)
}

func TestMaxDepthLimitPassThrough(t *testing.T) {
	// Parsing succeeds at the default depth; the sorter's own walk fails
	// against a hand-set tighter limit, exercising the pass-through path.
	parsed, err := parser.ParseWithOptions(
		parser.WithBytes([]byte(`{"a":{"b":{"c":{"d":1}}}}`)),
	)
	require.NoError(t, err)

	s := New()
	s.MaxDepth = 2
	s.OnError = ErrorPassThrough
	result, err := s.SortParsed(parsed)
	require.NoError(t, err)

	assert.Equal(t, string(parsed.Source), string(result.Output))
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "resource limit")
	assert.False(t, result.HasChanges())
}

func TestErrorFailIsDefault(t *testing.T) {
	parsed, err := parser.ParseWithOptions(
		parser.WithBytes([]byte(`{"a":{"b":{"c":1}}}`)),
	)
	require.NoError(t, err)

	s := New()
	s.MaxDepth = 1
	_, err = s.SortParsed(parsed)
	require.Error(t, err)

	var limitErr *kserrors.ResourceLimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, "nesting_depth", limitErr.ResourceType)
}

func TestSortNilParsed(t *testing.T) {
	s := New()
	_, err := s.SortParsed(nil)
	require.Error(t, err)
}

func TestWithParsedNil(t *testing.T) {
	_, err := SortWithOptions(WithParsed(nil))
	require.Error(t, err)
}

func TestWithCustomOrder(t *testing.T) {
	order, err := keyorder.ParseCustomOrder(`{"9":"numeric","10":"numeric"}`)
	require.NoError(t, err)

	result, err := SortWithOptions(
		WithBytes([]byte(`{"10":1,"9":2,"x":3}`)),
		WithCustomOrder(order),
	)
	require.NoError(t, err)
	// Untagged "x" ranks before the numeric bucket; numeric keys order
	// by value, not lexically.
	assert.Equal(t, []string{"x", "9", "10"}, parser.ObjectKeys(root(t, result)))
}
