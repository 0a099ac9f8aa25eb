package jsonschema

// keywordInfo is the compile-time metadata the Constraint Compiler consults
// for a keyword: its evaluation priority (lower runs first) and which
// drafts define it. compileKeywords (constraintgraph.go) walks this table in
// order to build the ordered []*KeywordConstraint list validate.go's
// evaluate() actually iterates over, so this table drives dispatch rather
// than merely documenting it.
type keywordInfo struct {
	name     string
	priority int
	drafts   map[Draft]bool
}

var keywordTable = []keywordInfo{
	{"$ref", 0, allDrafts},
	{"$dynamicRef", 0, map[Draft]bool{Draft2020_12: true, DraftNext: true}},
	{"$recursiveRef", 0, map[Draft]bool{Draft2019_09: true}},
	{"type", 10, allDrafts},
	{"enum", 10, allDrafts},
	{"const", 10, allDrafts},
	{"allOf", 20, allDrafts},
	{"anyOf", 20, allDrafts},
	{"oneOf", 20, allDrafts},
	{"not", 20, allDrafts},
	{"if", 30, map[Draft]bool{Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true}},
	{"then", 30, map[Draft]bool{Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true}},
	{"else", 30, map[Draft]bool{Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true}},
	{"prefixItems", 40, map[Draft]bool{Draft2020_12: true, DraftNext: true}},
	{"items", 40, allDrafts},
	{"contains", 40, allDrafts},
	{"maxItems", 40, allDrafts},
	{"minItems", 40, allDrafts},
	{"uniqueItems", 40, allDrafts},
	{"multipleOf", 50, allDrafts},
	{"maximum", 50, allDrafts},
	{"exclusiveMaximum", 50, allDrafts},
	{"minimum", 50, allDrafts},
	{"exclusiveMinimum", 50, allDrafts},
	{"maxLength", 50, allDrafts},
	{"minLength", 50, allDrafts},
	{"pattern", 50, allDrafts},
	{"format", 50, allDrafts},
	{"properties", 60, allDrafts},
	{"patternProperties", 60, allDrafts},
	{"additionalProperties", 60, allDrafts},
	{"propertyNames", 60, allDrafts},
	{"maxProperties", 60, allDrafts},
	{"minProperties", 60, allDrafts},
	{"required", 60, allDrafts},
	{"dependentRequired", 60, map[Draft]bool{Draft2019_09: true, Draft2020_12: true, DraftNext: true}},
	{"dependentSchemas", 60, map[Draft]bool{Draft2019_09: true, Draft2020_12: true, DraftNext: true}},
	{"contentEncoding", 70, map[Draft]bool{Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true}},
	{"contentMediaType", 70, map[Draft]bool{Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true}},
	{"contentSchema", 70, map[Draft]bool{Draft2019_09: true, Draft2020_12: true, DraftNext: true}},
	// unevaluatedProperties/unevaluatedItems must run last: they depend on
	// annotations left behind by every other applicator.
	{"unevaluatedProperties", 90, map[Draft]bool{Draft2019_09: true, Draft2020_12: true, DraftNext: true}},
	{"unevaluatedItems", 90, map[Draft]bool{Draft2019_09: true, Draft2020_12: true, DraftNext: true}},
}

// subSchemas enumerates every direct subschema a node exposes, regardless of
// which collection shape holds it (spec.md §3's Container / Collection /
// Keyed collection). Used by dynamism detection (constraint.go) and
// identifier syntax checking (id.go); anchor collection and reference
// resolution walk their own field lists.
func (s *Schema) subSchemas() []*Schema {
	if s == nil {
		return nil
	}
	var out []*Schema
	push := func(sub *Schema) {
		if sub != nil {
			out = append(out, sub)
		}
	}

	// Container: exactly one subschema.
	push(s.Not)
	push(s.If)
	push(s.Then)
	push(s.Else)
	push(s.Items)
	push(s.Contains)
	push(s.AdditionalProperties)
	push(s.PropertyNames)
	push(s.UnevaluatedItems)
	push(s.UnevaluatedProperties)
	push(s.ContentSchema)

	// Collection: an ordered list of subschemas.
	for _, sub := range s.AllOf {
		push(sub)
	}
	for _, sub := range s.AnyOf {
		push(sub)
	}
	for _, sub := range s.OneOf {
		push(sub)
	}
	for _, sub := range s.PrefixItems {
		push(sub)
	}

	// Keyed collection: a name/pattern-keyed map of subschemas.
	for _, def := range s.Defs {
		push(def)
	}
	for _, sub := range s.DependentSchemas {
		push(sub)
	}
	if s.Properties != nil {
		for _, sub := range *s.Properties {
			push(sub)
		}
	}
	if s.PatternProperties != nil {
		for _, sub := range *s.PatternProperties {
			push(sub)
		}
	}

	return out
}
