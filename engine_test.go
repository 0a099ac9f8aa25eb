package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateValidAndInvalid(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"type": "object",
		"properties": {"name": {"type": "string"}},
		"required": ["name"]
	}`))
	require.NoError(t, err)

	result := schema.Evaluate(map[string]interface{}{"name": "Ada"})
	assert.True(t, result.IsValid())

	result = schema.Evaluate(map[string]interface{}{})
	assert.False(t, result.IsValid())
}

func TestEvaluateFlag(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{"type": "string"}`))
	require.NoError(t, err)

	flag := schema.EvaluateFlag("hello")
	assert.True(t, flag.Valid)

	flag = schema.EvaluateFlag(42)
	assert.False(t, flag.Valid)
}

func TestEvaluateList(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "integer"}
		},
		"required": ["name", "age"]
	}`))
	require.NoError(t, err)

	list := schema.EvaluateList(map[string]interface{}{"age": "not a number"})
	assert.NotNil(t, list)
	assert.False(t, list.Valid)
}

func TestEvaluateWithRegistryOverride(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{"$id": "http://example.com/real", "type": "string"}`), "http://example.com/real")
	require.NoError(t, err)

	override := NewRegistry()
	placeholder := &Schema{uri: "http://example.com/real"}
	boolTrue := true
	placeholder.Boolean = &boolTrue
	require.NoError(t, override.Register("http://example.com/real", placeholder))

	result := schema.Evaluate(123, NewOptions().WithRegistry(override))
	assert.True(t, result.IsValid(), "Evaluate should validate against the schema looked up in the override registry, not s itself")
}

// TestCompileKeywordsOrderedByPriority verifies the Constraint Compiler's
// Keyword Constraint graph (constraintgraph.go's compileKeywords) is
// actually consulted at evaluation time and is sorted by keywordTable's
// priority, not a hard-coded chain of ifs in evaluate().
func TestCompileKeywordsOrderedByPriority(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"type": "object",
		"required": ["name"],
		"properties": {"name": {"type": "string"}},
		"allOf": [{"type": "object"}]
	}`))
	require.NoError(t, err)

	constraint := schema.getConstraint(NewDynamicScope())
	require.NotEmpty(t, constraint.Keywords)

	for i := 1; i < len(constraint.Keywords); i++ {
		assert.LessOrEqual(t, constraint.Keywords[i-1].Priority, constraint.Keywords[i].Priority,
			"keyword constraints must run in keywordTable priority order")
	}

	seen := make(map[string]bool)
	for _, kw := range constraint.Keywords {
		seen[kw.Name] = true
	}
	assert.True(t, seen["type"])
	assert.True(t, seen["allOf"])
	assert.True(t, seen["required"])
	assert.True(t, seen["properties"])
}

// TestEvaluateIsDeterministic covers spec.md §8 property 1: repeated
// evaluations of the same schema/instance yield identical Results.
func TestEvaluateIsDeterministic(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "integer", "minimum": 0}
		},
		"required": ["name", "age"]
	}`))
	require.NoError(t, err)

	instance := map[string]interface{}{"name": "Ada", "age": -5}

	first := schema.EvaluateList(instance)
	second := schema.EvaluateList(instance)

	assert.Equal(t, first.Valid, second.Valid)
	assert.Equal(t, len(first.Errors), len(second.Errors))
	assert.Equal(t, len(first.Details), len(second.Details))
}

// TestDynamicScopeMonotonicity covers spec.md §8 property 6: the scope
// stack's length immediately after evaluate() returns must match its length
// immediately before the call, even once $ref recursion has pushed and
// popped several nested schemas along the way.
func TestDynamicScopeMonotonicity(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$id": "https://example.com/monotonic",
		"type": "object",
		"properties": {"next": {"$ref": "#"}}
	}`))
	require.NoError(t, err)

	instance := map[string]interface{}{
		"next": map[string]interface{}{
			"next": map[string]interface{}{},
		},
	}

	scope := NewDynamicScope()
	require.Equal(t, 0, scope.Size())
	_, _, _ = schema.evaluate(instance, scope)
	assert.Equal(t, 0, scope.Size(), "the scope stack must return to its pre-call length after evaluate returns")
}

func TestEvaluateWithResolverOverrideAppliesToCompilerRegistry(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"type": "object",
		"properties": {
			"child": {"$ref": "http://example.com/child-resolved"}
		}
	}`))
	require.NoError(t, err)

	called := false
	resolver := func(uri string) ([]byte, error) {
		called = true
		return []byte(`{"$id": "http://example.com/child-resolved", "type": "number"}`), nil
	}

	schema.Evaluate(map[string]interface{}{}, NewOptions().WithResolver(resolver))

	_, err = compiler.Registry().Fetch("http://example.com/child-resolved")
	require.NoError(t, err)
	assert.True(t, called, "the installed resolver should be consulted for an unresolved $ref target")
}
