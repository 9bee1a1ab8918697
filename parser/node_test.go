package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestCopyNodeIsolation(t *testing.T) {
	result := mustParse(t, `{"a": {"b": [1, 2]}}`)

	dup := CopyNode(result.Document)
	require.NotNil(t, dup)
	require.NotSame(t, result.Document, dup)

	// Rename a key in the original; the copy must not see it.
	result.Root().Content[0].Value = "renamed"
	assert.Equal(t, "a", dup.Content[0].Content[0].Value)
}

func TestCopyNodeNil(t *testing.T) {
	assert.Nil(t, CopyNode(nil))
}

func TestCopyNodePreservesAliasSharing(t *testing.T) {
	result := mustParse(t, "base: &b\n  x: 1\ncopy: *b\n")

	root := result.Root()
	require.Len(t, root.Content, 4)
	anchor, alias := root.Content[1], root.Content[3]
	require.Equal(t, yaml.AliasNode, alias.Kind)
	require.Same(t, anchor, alias.Alias, "alias should point at the anchored node")

	dup := CopyNode(result.Document)
	dupRoot := dup.Content[0]
	dupAnchor, dupAlias := dupRoot.Content[1], dupRoot.Content[3]

	assert.NotSame(t, anchor, dupAnchor, "anchored node must be copied")
	assert.Same(t, dupAnchor, dupAlias.Alias, "copied alias must point at the copied anchor, not the original")
}

func TestClearStyles(t *testing.T) {
	result := mustParse(t, `{"a": [1, "two"]}`)

	root := result.Root()
	require.NotZero(t, root.Style, "JSON input parses with flow style")

	ClearStyles(result.Document)

	var check func(n *yaml.Node)
	check = func(n *yaml.Node) {
		assert.Zero(t, n.Style)
		for _, child := range n.Content {
			check(child)
		}
	}
	check(result.Document)
}

func TestNodeKindHelpers(t *testing.T) {
	result := mustParse(t, `{"obj": {}, "arr": [], "num": 7}`)
	root := result.Root()

	assert.True(t, IsObject(root))
	assert.False(t, IsArray(root))

	values := root.Content
	assert.True(t, IsObject(values[1]), "obj value")
	assert.True(t, IsArray(values[3]), "arr value")
	assert.True(t, IsScalar(values[5]), "num value")

	assert.False(t, IsObject(nil))
	assert.False(t, IsArray(nil))
	assert.False(t, IsScalar(nil))
}

func TestIsStringKey(t *testing.T) {
	strKey := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "name"}
	intKey := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: "1"}
	mapKey := &yaml.Node{Kind: yaml.MappingNode}

	assert.True(t, IsStringKey(strKey))
	assert.False(t, IsStringKey(intKey))
	assert.False(t, IsStringKey(mapKey))
	assert.False(t, IsStringKey(nil))
}

func TestObjectKeys(t *testing.T) {
	t.Run("ordered with duplicates", func(t *testing.T) {
		result := mustParse(t, `{"b": 1, "a": 2, "b": 3}`)
		assert.Equal(t, []string{"b", "a", "b"}, ObjectKeys(result.Root()))
	})

	t.Run("non-object", func(t *testing.T) {
		result := mustParse(t, `[1, 2]`)
		assert.Nil(t, ObjectKeys(result.Root()))
		assert.Nil(t, ObjectKeys(nil))
	})

	t.Run("empty object", func(t *testing.T) {
		result := mustParse(t, `{}`)
		assert.Empty(t, ObjectKeys(result.Root()))
	})
}
