package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDynamicFalseForStaticSchema(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"type": "object",
		"properties": {
			"name": {"type": "string"}
		}
	}`))
	require.NoError(t, err)

	assert.False(t, schema.isDynamic())
}

func TestIsDynamicTrueForDynamicRef(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "http://example.com/dyn",
		"$dynamicAnchor": "node",
		"properties": {
			"child": {"$dynamicRef": "#node"}
		}
	}`))
	require.NoError(t, err)

	assert.True(t, schema.isDynamic(), "a schema reachable from a $dynamicRef/$dynamicAnchor must be classified dynamic")
}

func TestIsDynamicTrueForRecursiveAnchor(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2019-09/schema",
		"$recursiveAnchor": true,
		"properties": {
			"child": {"type": "string"}
		}
	}`))
	require.NoError(t, err)

	assert.True(t, schema.isDynamic())
}

func TestIsDynamicMemoized(t *testing.T) {
	schema := &Schema{}
	first := schema.isDynamic()
	assert.False(t, first)
	assert.True(t, schema.dynamicComputed)

	// Flip the underlying field directly; isDynamic must now return the
	// memoized value rather than recomputing.
	schema.dynamicValue = true
	assert.True(t, schema.isDynamic())
}

func TestGetConstraintStaticSchemaReusesAcrossScopes(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{"type": "string"}`))
	require.NoError(t, err)

	scope1 := NewDynamicScope()
	c1 := schema.getConstraint(scope1)
	assert.Equal(t, "built", c1.Source)

	scope2 := NewDynamicScope()
	scope2.Push(&Schema{uri: "http://example.com/unrelated"})
	c2 := schema.getConstraint(scope2)

	assert.Same(t, c1, c2, "a static schema's constraint is reused regardless of scope")
	assert.Equal(t, "cached", c2.Source)
}

func TestGetConstraintDynamicSchemaKeyedByScope(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "http://example.com/dyn",
		"$dynamicAnchor": "node"
	}`))
	require.NoError(t, err)

	scopeA := NewDynamicScope()
	scopeA.Push(&Schema{uri: "http://example.com/a"})
	cA := schema.getConstraint(scopeA)
	assert.Equal(t, "built", cA.Source)

	scopeB := NewDynamicScope()
	scopeB.Push(&Schema{uri: "http://example.com/b"})
	cB := schema.getConstraint(scopeB)
	assert.Equal(t, "built", cB.Source)
	assert.NotSame(t, cA, cB, "distinct scopes must build distinct constraints for a dynamic schema")

	// Re-requesting under scopeA's exact scope key hits the cache.
	scopeAAgain := NewDynamicScope()
	scopeAAgain.Push(&Schema{uri: "http://example.com/a"})
	cAAgain := schema.getConstraint(scopeAAgain)
	assert.Same(t, cA, cAAgain)
	assert.Equal(t, "cached", cAAgain.Source)
}
