package keyorder

import (
	"errors"
	"sort"
	"testing"

	"github.com/erraggy/keysort/kserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedWith(cmp Comparator, keys ...string) []string {
	sorted := append([]string(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool { return cmp(sorted[i], sorted[j]) < 0 })
	return sorted
}

func TestParseCustomOrder(t *testing.T) {
	t.Run("valid mapping", func(t *testing.T) {
		co, err := ParseCustomOrder(`{"10a": "numeric", "label": null, "z": "none"}`)
		require.NoError(t, err)

		assert.Equal(t, 3, co.Len())
		assert.Equal(t, PolicyNumeric, co.PolicyFor("10a"))
		assert.Equal(t, PolicyNone, co.PolicyFor("label"))
		assert.Equal(t, PolicyNone, co.PolicyFor("z"))
		assert.Equal(t, PolicyNone, co.PolicyFor("absent"))
	})

	t.Run("empty object", func(t *testing.T) {
		co, err := ParseCustomOrder(`{}`)
		require.NoError(t, err)
		assert.Equal(t, 0, co.Len())
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := ParseCustomOrder(`{"a": "lexical"`)
		require.Error(t, err)
		assert.True(t, errors.Is(err, kserrors.ErrConfig))
	})

	t.Run("non-object document", func(t *testing.T) {
		for _, text := range []string{`["lexical"]`, `"lexical"`, `42`, `null`} {
			_, err := ParseCustomOrder(text)
			assert.Error(t, err, "input %s", text)
			assert.True(t, errors.Is(err, kserrors.ErrConfig), "input %s", text)
		}
	})

	t.Run("non-string value", func(t *testing.T) {
		_, err := ParseCustomOrder(`{"a": 3}`)
		require.Error(t, err)
		assert.True(t, errors.Is(err, kserrors.ErrConfig))
	})

	t.Run("unknown policy in entry", func(t *testing.T) {
		_, err := ParseCustomOrder(`{"a": "alphabetical"}`)
		require.Error(t, err)

		var cfgErr *kserrors.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Contains(t, cfgErr.Message, `"a"`)
		assert.Equal(t, "alphabetical", cfgErr.Value)
	})
}

func TestCustomOrderComparator(t *testing.T) {
	t.Run("numeric bucket sorts after unranked", func(t *testing.T) {
		co, err := ParseCustomOrder(`{"10n": "numeric", "2n": "numeric"}`)
		require.NoError(t, err)

		got := sortedWith(co.Comparator(), "10n", "alpha", "2n", "beta")
		assert.Equal(t, []string{"alpha", "beta", "2n", "10n"}, got)
	})

	t.Run("reversed numeric bucket sorts before unranked", func(t *testing.T) {
		co, err := ParseCustomOrder(`{"10n": "reverseNumeric", "2n": "reverseNumeric"}`)
		require.NoError(t, err)

		got := sortedWith(co.Comparator(), "alpha", "2n", "10n", "beta")
		assert.Equal(t, []string{"10n", "2n", "alpha", "beta"}, got)
	})

	t.Run("same policy orders within bucket", func(t *testing.T) {
		co, err := ParseCustomOrder(`{"10n": "numeric", "2n": "numeric", "03n": "numeric"}`)
		require.NoError(t, err)

		got := sortedWith(co.Comparator(), "10n", "2n", "03n")
		assert.Equal(t, []string{"2n", "03n", "10n"}, got)
	})

	t.Run("unranked keys sort lexically", func(t *testing.T) {
		co, err := ParseCustomOrder(`{"id": "numeric", "name": null}`)
		require.NoError(t, err)

		got := sortedWith(co.Comparator(), "item10", "name", "item2")
		assert.Equal(t, []string{"item10", "item2", "name"}, got)
	})

	t.Run("lexically assigned keys share the middle bucket", func(t *testing.T) {
		co, err := ParseCustomOrder(`{"b": "lexical", "a": "reverseLexical"}`)
		require.NoError(t, err)

		// Different policies, same bucket: plain lexical decides.
		got := sortedWith(co.Comparator(), "b", "a", "c")
		assert.Equal(t, []string{"a", "b", "c"}, got)
	})

	t.Run("self compare returns zero", func(t *testing.T) {
		co, err := ParseCustomOrder(`{"10n": "numeric"}`)
		require.NoError(t, err)

		cmp := co.Comparator()
		assert.Zero(t, cmp("10n", "10n"))
		assert.Zero(t, cmp("absent", "absent"))
	})
}

func TestParseOrderSpec(t *testing.T) {
	t.Run("empty resolves to default", func(t *testing.T) {
		order, err := ParseOrderSpec("")
		require.NoError(t, err)
		assert.Equal(t, DefaultPolicy, order)
	})

	t.Run("identifier resolves to policy", func(t *testing.T) {
		order, err := ParseOrderSpec("caseInsensitiveReverseNumeric")
		require.NoError(t, err)
		assert.Equal(t, PolicyCaseInsensitiveReverseNumeric, order)
	})

	t.Run("JSON object resolves to custom order", func(t *testing.T) {
		order, err := ParseOrderSpec(` {"a": "numeric"} `)
		require.NoError(t, err)

		co, ok := order.(*CustomOrder)
		require.True(t, ok)
		assert.Equal(t, PolicyNumeric, co.PolicyFor("a"))
	})

	t.Run("unknown identifier fails", func(t *testing.T) {
		_, err := ParseOrderSpec("sorted")
		require.Error(t, err)
		assert.True(t, errors.Is(err, kserrors.ErrConfig))
	})

	t.Run("malformed object fails as custom order", func(t *testing.T) {
		_, err := ParseOrderSpec(`{"a": `)
		require.Error(t, err)
		assert.True(t, errors.Is(err, kserrors.ErrConfig))
	})
}
