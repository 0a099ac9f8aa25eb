package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDraftString(t *testing.T) {
	tests := []struct {
		draft    Draft
		expected string
	}{
		{Draft6, "draft6"},
		{Draft7, "draft7"},
		{Draft2019_09, "2019-09"},
		{Draft2020_12, "2020-12"},
		{DraftNext, "next"},
		{DraftUnknown, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.draft.String())
		})
	}
}

func TestDraftOf(t *testing.T) {
	tests := []struct {
		schemaURI string
		expected  Draft
		found     bool
	}{
		{"http://json-schema.org/draft-06/schema#", Draft6, true},
		{"http://json-schema.org/draft-07/schema#", Draft7, true},
		{"https://json-schema.org/draft/2019-09/schema", Draft2019_09, true},
		{"https://json-schema.org/draft/2020-12/schema", Draft2020_12, true},
		{"https://json-schema.org/draft/next/schema", DraftNext, true},
		{"https://example.com/custom-schema", DraftUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.schemaURI, func(t *testing.T) {
			d, ok := draftOf(tt.schemaURI)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, d)
			}
		})
	}
}

func TestDraftFromKeywords(t *testing.T) {
	tests := []struct {
		name     string
		present  []string
		expected Draft
	}{
		{"no recognizable keywords", []string{}, DraftNext},
		{"dynamicRef narrows to 2020-12/next", []string{"$dynamicRef"}, DraftNext},
		{"recursiveRef narrows to 2019-09 only", []string{"$recursiveRef"}, Draft2019_09},
		{"legacy id narrows to draft6/7, newest wins", []string{"id"}, Draft7},
		{"prefixItems narrows to 2020-12/next", []string{"prefixItems"}, DraftNext},
		{"conflicting keywords intersect down to 2019-09", []string{"$recursiveRef", "dependentRequired"}, Draft2019_09},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, draftFromKeywords(tt.present))
		})
	}
}

func TestDraftSupportsDynamicAndRecursiveRef(t *testing.T) {
	assert.True(t, Draft2020_12.supportsDynamicRef())
	assert.True(t, DraftNext.supportsDynamicRef())
	assert.False(t, Draft2019_09.supportsDynamicRef())

	assert.True(t, Draft2019_09.supportsRecursiveRef())
	assert.False(t, Draft2020_12.supportsRecursiveRef())
	assert.False(t, Draft7.supportsRecursiveRef())
}

func TestDraftLegacyID(t *testing.T) {
	assert.True(t, Draft6.legacyID())
	assert.True(t, Draft7.legacyID())
	assert.False(t, Draft2019_09.legacyID())
	assert.False(t, Draft2020_12.legacyID())
}

func TestDetectDraftFromSchemaKeyword(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2019-09/schema",
		"type": "object"
	}`))
	assert.NoError(t, err)
	assert.Equal(t, Draft2019_09, schema.Draft)
}

func TestDetectDraftInheritsFromParent(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"properties": {
			"child": {"type": "string"}
		}
	}`))
	assert.NoError(t, err)
	assert.Equal(t, Draft7, schema.Draft)

	childProp, ok := (*schema.Properties)["child"]
	assert.True(t, ok)
	assert.Equal(t, Draft7, childProp.Draft, "nested schema without its own $schema should inherit the parent's draft")
}

func TestDetectDraftFallsBackToKeywordIntersection(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$recursiveAnchor": true,
		"type": "object"
	}`))
	assert.NoError(t, err)
	assert.Equal(t, Draft2019_09, schema.Draft)
}
