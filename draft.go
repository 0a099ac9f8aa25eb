package jsonschema

// Draft identifies a JSON Schema dialect. Order matters: Draft is comparable
// with <, and draftRank below treats a higher value as "newer".
type Draft int

const (
	// DraftUnknown means no draft could be determined; the Initializer never
	// leaves a Schema with this value (it always settles on DraftNext as the
	// fallback), but the zero value is kept distinct for clarity.
	DraftUnknown Draft = iota
	Draft6
	Draft7
	Draft2019_09
	Draft2020_12
	DraftNext
)

func (d Draft) String() string {
	switch d {
	case Draft6:
		return "draft6"
	case Draft7:
		return "draft7"
	case Draft2019_09:
		return "2019-09"
	case Draft2020_12:
		return "2020-12"
	case DraftNext:
		return "next"
	default:
		return "unknown"
	}
}

// metaSchemaIDs maps the canonical $schema identifiers to their Draft.
var metaSchemaIDs = map[string]Draft{
	"http://json-schema.org/draft-06/schema#":                 Draft6,
	"https://json-schema.org/draft-06/schema#":                Draft6,
	"http://json-schema.org/draft-07/schema#":                 Draft7,
	"https://json-schema.org/draft-07/schema#":                Draft7,
	"https://json-schema.org/draft/2019-09/schema":             Draft2019_09,
	"https://json-schema.org/draft/2019-09/schema#":            Draft2019_09,
	"https://json-schema.org/draft/2020-12/schema":             Draft2020_12,
	"https://json-schema.org/draft/2020-12/schema#":            Draft2020_12,
	"https://json-schema.org/draft/next/schema":                 DraftNext,
	"https://json-schema.org/draft/next/schema#":                DraftNext,
}

// draftOf resolves a $schema identifier to a Draft, reporting whether it
// matched one of the built-in meta-schema identifiers.
func draftOf(schemaURI string) (Draft, bool) {
	d, ok := metaSchemaIDs[schemaURI]
	return d, ok
}

// keywordDrafts records, per keyword, the set of drafts that define it. Used
// by the Initializer's draft-intersection fallback (SPEC_FULL.md §4.3 step 3)
// when a schema carries no $schema and no recognizable dialect hint.
var keywordDrafts = map[string]map[Draft]bool{
	"id":                   {Draft6: true, Draft7: true},
	"$id":                  {Draft6: true, Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"$recursiveRef":        {Draft2019_09: true},
	"$recursiveAnchor":     {Draft2019_09: true},
	"$dynamicRef":          {Draft2020_12: true, DraftNext: true},
	"$dynamicAnchor":       {Draft2020_12: true, DraftNext: true},
	"$anchor":              {Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"$defs":                {Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"definitions":          {Draft6: true, Draft7: true},
	"dependentRequired":    {Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"dependentSchemas":     {Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"dependencies":         {Draft6: true, Draft7: true},
	"prefixItems":          {Draft2020_12: true, DraftNext: true},
	"unevaluatedProperties": {Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"unevaluatedItems":     {Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"contains":             {Draft6: true, Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"minContains":          {Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"maxContains":          {Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"if":                   {Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"then":                 {Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"else":                 {Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"exclusiveMinimum":     {Draft6: true, Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"exclusiveMaximum":     {Draft6: true, Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"const":                {Draft6: true, Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"contentEncoding":      {Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"contentMediaType":     {Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"contentSchema":        {Draft2019_09: true, Draft2020_12: true, DraftNext: true},
	"propertyNames":        {Draft6: true, Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true},
}

// allDrafts is the universe draftFromKeywords starts its intersection from.
var allDrafts = map[Draft]bool{
	Draft6: true, Draft7: true, Draft2019_09: true, Draft2020_12: true, DraftNext: true,
}

// draftFromKeywords implements SPEC_FULL.md §4.3 step 3: intersect the draft
// sets of every present keyword that has one, and pick the newest surviving
// member. An empty intersection (no keyword narrowed the set, or keywords
// disagree entirely) settles on DraftNext, matching the fallback spec.md
// documents for the S4 scenario.
func draftFromKeywords(present []string) Draft {
	candidates := map[Draft]bool{}
	for k, v := range allDrafts {
		candidates[k] = v
	}
	narrowed := false
	for _, kw := range present {
		drafts, ok := keywordDrafts[kw]
		if !ok {
			continue
		}
		narrowed = true
		for d := range candidates {
			if !drafts[d] {
				delete(candidates, d)
			}
		}
	}
	if !narrowed {
		return DraftNext
	}
	best := DraftUnknown
	for d := range candidates {
		if d > best {
			best = d
		}
	}
	if best == DraftUnknown {
		return DraftNext
	}
	return best
}

// supportsDynamicRef reports whether $dynamicRef/$dynamicAnchor resolve under d.
func (d Draft) supportsDynamicRef() bool {
	return d == Draft2020_12 || d == DraftNext
}

// supportsRecursiveRef reports whether $recursiveRef/$recursiveAnchor resolve under d.
func (d Draft) supportsRecursiveRef() bool {
	return d == Draft2019_09
}

// legacyID reports whether plain "id" (instead of "$id") is the identifier
// keyword. It does not make $ref suppress sibling keywords: those are
// initialized and compiled under every draft.
func (d Draft) legacyID() bool {
	return d == Draft6 || d == Draft7
}

// presentKeywords lists, by name, every keyword this node's parsed struct
// shows as set. Only keywords that narrow keywordDrafts need appear here;
// the rest are irrelevant to draft detection.
func (s *Schema) presentKeywords() []string {
	var present []string
	add := func(cond bool, name string) {
		if cond {
			present = append(present, name)
		}
	}
	add(s.LaxID != "", "id")
	add(s.ID != "", "$id")
	add(s.RecursiveRef != "", "$recursiveRef")
	add(s.RecursiveAnchor != nil, "$recursiveAnchor")
	add(s.DynamicRef != "", "$dynamicRef")
	add(s.DynamicAnchor != "", "$dynamicAnchor")
	add(s.Anchor != "", "$anchor")
	add(s.Defs != nil, "$defs")
	add(s.DependentRequired != nil, "dependentRequired")
	add(s.DependentSchemas != nil, "dependentSchemas")
	add(len(s.PrefixItems) > 0, "prefixItems")
	add(s.UnevaluatedProperties != nil, "unevaluatedProperties")
	add(s.UnevaluatedItems != nil, "unevaluatedItems")
	add(s.Contains != nil, "contains")
	add(s.MinContains != nil, "minContains")
	add(s.MaxContains != nil, "maxContains")
	add(s.If != nil, "if")
	add(s.Then != nil, "then")
	add(s.Else != nil, "else")
	add(s.ExclusiveMinimum != nil, "exclusiveMinimum")
	add(s.ExclusiveMaximum != nil, "exclusiveMaximum")
	add(s.Const != nil, "const")
	add(s.ContentEncoding != nil, "contentEncoding")
	add(s.ContentMediaType != nil, "contentMediaType")
	add(s.ContentSchema != nil, "contentSchema")
	add(s.PropertyNames != nil, "propertyNames")
	return present
}

// detectDraft implements SPEC_FULL.md §4.3: explicit $schema first, then a
// registry-backed fetch of an unrecognized $schema (tracking visited
// identifiers to catch meta-schema reference cycles), then inherited parent
// draft, then keyword-intersection fallback.
func (s *Schema) detectDraft(parent *Schema) Draft {
	if s.Schema != "" {
		if d, ok := draftOf(s.Schema); ok {
			return d
		}
		if d, ok := s.resolveMetaSchemaDraft(s.Schema, map[string]bool{}); ok {
			return d
		}
	}
	if parent != nil && parent.Draft != DraftUnknown {
		return parent.Draft
	}
	return draftFromKeywords(s.presentKeywords())
}

// resolveMetaSchemaDraft follows an unrecognized $schema URI through the
// Registry, recursing through the fetched document's own $schema until a
// built-in identifier is found or a cycle is detected.
func (s *Schema) resolveMetaSchemaDraft(schemaURI string, visited map[string]bool) (Draft, bool) {
	if visited[schemaURI] {
		return DraftUnknown, false
	}
	visited[schemaURI] = true

	compiler := s.GetCompiler()
	if compiler == nil || compiler.registry == nil {
		return DraftUnknown, false
	}
	meta, err := compiler.registry.Fetch(schemaURI)
	if err != nil || meta == nil {
		return DraftUnknown, false
	}
	if meta.Schema == "" || meta.Schema == schemaURI {
		return DraftUnknown, false
	}
	if d, ok := draftOf(meta.Schema); ok {
		return d, true
	}
	return s.resolveMetaSchemaDraft(meta.Schema, visited)
}
