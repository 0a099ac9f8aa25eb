package jsonschema

// KeywordConstraint is the unit the Constraint Compiler hands to the
// Evaluation Engine: one compiled, self-contained evaluator for a single
// keyword (or the small handful of keywords --- if/then/else,
// contentEncoding/contentMediaType/contentSchema, and the shared
// numeric/string type checks --- that only make sense evaluated together).
// Run receives the instance already pushed onto dynamicScope by the caller
// and reports the details/errors produced, exactly as the teacher's inline
// per-keyword blocks in evaluate() used to.
type KeywordConstraint struct {
	Name     string
	Priority int
	Run      func(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError)
}

// constraintGroup maps a keywordTable entry to the runner that evaluates it.
// Most keywords run alone; a few are grouped because the teacher's own
// evaluator function already treats them as one unit (if/then/else share a
// single evaluateConditional call, the content keywords share a single
// evaluateContent call, and the numeric/string keywords share a type check
// that must only report one invalid_numberic/length error, not one per
// enabled keyword).
func constraintGroup(name string) string {
	switch name {
	case "if", "then", "else":
		return "conditional"
	case "contentEncoding", "contentMediaType", "contentSchema":
		return "content"
	case "multipleOf", "maximum", "exclusiveMaximum", "minimum", "exclusiveMinimum":
		return "numeric"
	case "maxLength", "minLength", "pattern":
		return "string"
	default:
		return name
	}
}

// keywordPresent reports whether s sets the keyword named by a keywordTable
// entry, mirroring the presence checks the teacher's evaluate() used to
// guard each inline block with.
func (s *Schema) keywordPresent(name string) bool {
	switch name {
	case "$ref":
		return s.ResolvedRef != nil
	case "$dynamicRef":
		return s.ResolvedDynamicRef != nil
	case "$recursiveRef":
		return s.ResolvedRecursiveRef != nil
	case "type":
		return s.Type != nil
	case "enum":
		return s.Enum != nil
	case "const":
		return s.Const != nil
	case "allOf":
		return s.AllOf != nil
	case "anyOf":
		return s.AnyOf != nil
	case "oneOf":
		return s.OneOf != nil
	case "not":
		return s.Not != nil
	case "if", "then", "else":
		return s.If != nil || s.Then != nil || s.Else != nil
	case "prefixItems":
		return len(s.PrefixItems) > 0
	case "items":
		return s.Items != nil
	case "contains":
		return s.Contains != nil || (s.MaxContains != nil && s.MinContains != nil)
	case "maxItems":
		return s.MaxItems != nil
	case "minItems":
		return s.MinItems != nil
	case "uniqueItems":
		return s.UniqueItems != nil
	case "multipleOf":
		return s.MultipleOf != nil
	case "maximum":
		return s.Maximum != nil
	case "exclusiveMaximum":
		return s.ExclusiveMaximum != nil
	case "minimum":
		return s.Minimum != nil
	case "exclusiveMinimum":
		return s.ExclusiveMinimum != nil
	case "maxLength":
		return s.MaxLength != nil
	case "minLength":
		return s.MinLength != nil
	case "pattern":
		return s.Pattern != nil
	case "format":
		return s.Format != nil
	case "properties":
		return s.Properties != nil
	case "patternProperties":
		return s.PatternProperties != nil
	case "additionalProperties":
		return s.AdditionalProperties != nil
	case "propertyNames":
		return s.PropertyNames != nil
	case "maxProperties":
		return s.MaxProperties != nil
	case "minProperties":
		return s.MinProperties != nil
	case "required":
		return len(s.Required) > 0
	case "dependentRequired":
		return len(s.DependentRequired) > 0
	case "dependentSchemas":
		return s.DependentSchemas != nil
	case "contentEncoding", "contentMediaType", "contentSchema":
		return s.ContentEncoding != nil || s.ContentMediaType != nil || s.ContentSchema != nil
	case "unevaluatedProperties":
		return s.UnevaluatedProperties != nil
	case "unevaluatedItems":
		return s.UnevaluatedItems != nil
	default:
		return false
	}
}

// compileKeywords walks keywordTable in priority order and builds the
// ordered list of KeywordConstraint entries applicable to s: present on s,
// defined for s.Draft, and deduplicated by constraintGroup so a grouped
// runner (conditional/content/numeric/string) is only scheduled once no
// matter how many of its member keywords are set.
func (s *Schema) compileKeywords() []*KeywordConstraint {
	var out []*KeywordConstraint
	scheduled := make(map[string]bool, len(keywordTable))

	for _, info := range keywordTable {
		if info.drafts != nil && !info.drafts[s.Draft] {
			continue
		}
		if !s.keywordPresent(info.name) {
			continue
		}
		group := constraintGroup(info.name)
		if scheduled[group] {
			continue
		}
		runner, ok := keywordRunners[group]
		if !ok {
			continue
		}
		scheduled[group] = true
		out = append(out, &KeywordConstraint{Name: group, Priority: info.priority, Run: runner})
	}
	return out
}

// keywordRunners holds one evaluator per constraintGroup, each a thin
// adapter over the teacher's existing per-keyword evaluate* functions so
// this module keeps the teacher's own keyword semantics and only changes
// how they get invoked.
var keywordRunners = map[string]func(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError){
	"$ref":          runRefKeyword,
	"$dynamicRef":   runDynamicRefKeyword,
	"$recursiveRef": runRecursiveRefKeyword,
	"type":          runType,
	"enum":          runEnum,
	"const":         runConst,
	"allOf":         runAllOf,
	"anyOf":         runAnyOf,
	"oneOf":         runOneOf,
	"not":           runNot,
	"conditional":   runConditional,
	"prefixItems":   runPrefixItems,
	"items":         runItems,
	"contains":      runContains,
	"maxItems":      runMaxItems,
	"minItems":      runMinItems,
	"uniqueItems":   runUniqueItems,
	"numeric":       runNumeric,
	"string":        runStringKeywords,
	"format":                runFormat,
	"properties":            runProperties,
	"patternProperties":     runPatternProperties,
	"additionalProperties":  runAdditionalProperties,
	"propertyNames":         runPropertyNames,
	"maxProperties":         runMaxProperties,
	"minProperties":         runMinProperties,
	"required":              runRequired,
	"dependentRequired":     runDependentRequired,
	"dependentSchemas":      runDependentSchemas,
	"content":               runContent,
	"unevaluatedProperties": runUnevaluatedProperties,
	"unevaluatedItems":      runUnevaluatedItems,
}

func runRefKeyword(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	if s.ResolvedRef == nil {
		return nil, nil
	}
	refResult, props, items := s.ResolvedRef.evaluate(instance, dynamicScope)
	mergeStringMaps(evaluatedProps, props)
	mergeIntMaps(evaluatedItems, items)
	if refResult == nil {
		return nil, nil
	}
	if !refResult.IsValid() {
		return []*EvaluationResult{refResult}, []*EvaluationError{
			NewEvaluationError("$ref", "ref_mismatch", "Value does not match the reference schema"),
		}
	}
	return []*EvaluationResult{refResult}, nil
}

func runDynamicRefKeyword(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	if s.ResolvedDynamicRef == nil {
		return nil, nil
	}
	anchorSchema := s.ResolvedDynamicRef
	_, anchor := splitRef(s.DynamicRef)
	if !isJSONPointer(anchor) {
		if dynamicAnchor := s.ResolvedDynamicRef.DynamicAnchor; dynamicAnchor != "" {
			if schema := dynamicScope.LookupDynamicAnchor(dynamicAnchor); schema != nil {
				anchorSchema = schema
			}
		}
	}

	dynamicRefResult, props, items := anchorSchema.evaluate(instance, dynamicScope)
	mergeStringMaps(evaluatedProps, props)
	mergeIntMaps(evaluatedItems, items)
	if dynamicRefResult == nil {
		return nil, nil
	}
	if !dynamicRefResult.IsValid() {
		return []*EvaluationResult{dynamicRefResult}, []*EvaluationError{
			NewEvaluationError("$dynamicRef", "dynamic_ref_mismatch", "Value does not match the dynamic reference schema"),
		}
	}
	return []*EvaluationResult{dynamicRefResult}, nil
}

func runRecursiveRefKeyword(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	if s.ResolvedRecursiveRef == nil {
		return nil, nil
	}
	anchorSchema := s.ResolvedRecursiveRef
	if recursive := dynamicScope.LookupRecursiveAnchor(); recursive != nil {
		anchorSchema = recursive
	}

	recursiveRefResult, props, items := anchorSchema.evaluate(instance, dynamicScope)
	mergeStringMaps(evaluatedProps, props)
	mergeIntMaps(evaluatedItems, items)
	if recursiveRefResult == nil {
		return nil, nil
	}
	if !recursiveRefResult.IsValid() {
		return []*EvaluationResult{recursiveRefResult}, []*EvaluationError{
			NewEvaluationError("$recursiveRef", "recursive_ref_mismatch", "Value does not match the recursive reference schema"),
		}
	}
	return []*EvaluationResult{recursiveRefResult}, nil
}

func runType(s *Schema, instance interface{}, _ map[string]bool, _ map[int]bool, _ *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	if err := evaluateType(s, instance); err != nil {
		return nil, []*EvaluationError{err}
	}
	return nil, nil
}

func runEnum(s *Schema, instance interface{}, _ map[string]bool, _ map[int]bool, _ *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	if err := evaluateEnum(s, instance); err != nil {
		return nil, []*EvaluationError{err}
	}
	return nil, nil
}

func runConst(s *Schema, instance interface{}, _ map[string]bool, _ map[int]bool, _ *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	if err := evaluateConst(s, instance); err != nil {
		return nil, []*EvaluationError{err}
	}
	return nil, nil
}

func runAllOf(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	results, err := evaluateAllOf(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
	if err != nil {
		return results, []*EvaluationError{err}
	}
	return results, nil
}

func runAnyOf(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	results, err := evaluateAnyOf(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
	if err != nil {
		return results, []*EvaluationError{err}
	}
	return results, nil
}

func runOneOf(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	results, err := evaluateOneOf(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
	if err != nil {
		return results, []*EvaluationError{err}
	}
	return results, nil
}

func runNot(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	notResult, notErr := evaluateNot(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
	var details []*EvaluationResult
	if notResult != nil {
		details = append(details, notResult)
	}
	if notErr != nil {
		return details, []*EvaluationError{notErr}
	}
	return details, nil
}

func runConditional(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	results, err := evaluateConditional(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
	if err != nil {
		return results, []*EvaluationError{err}
	}
	return results, nil
}

func runPrefixItems(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	items, ok := instance.([]interface{})
	if !ok {
		return nil, nil
	}
	results, err := evaluatePrefixItems(s, items, evaluatedProps, evaluatedItems, dynamicScope)
	if err != nil {
		return results, []*EvaluationError{err}
	}
	return results, nil
}

func runItems(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	items, ok := instance.([]interface{})
	if !ok {
		return nil, nil
	}
	results, err := evaluateItems(s, items, evaluatedProps, evaluatedItems, dynamicScope)
	if err != nil {
		return results, []*EvaluationError{err}
	}
	return results, nil
}

func runContains(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	items, ok := instance.([]interface{})
	if !ok {
		return nil, nil
	}
	results, err := evaluateContains(s, items, evaluatedProps, evaluatedItems, dynamicScope)
	if err != nil {
		return results, []*EvaluationError{err}
	}
	return results, nil
}

func runMaxItems(s *Schema, instance interface{}, _ map[string]bool, _ map[int]bool, _ *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	items, ok := instance.([]interface{})
	if !ok {
		return nil, nil
	}
	if err := evaluateMaxItems(s, items); err != nil {
		return nil, []*EvaluationError{err}
	}
	return nil, nil
}

func runMinItems(s *Schema, instance interface{}, _ map[string]bool, _ map[int]bool, _ *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	items, ok := instance.([]interface{})
	if !ok {
		return nil, nil
	}
	if err := evaluateMinItems(s, items); err != nil {
		return nil, []*EvaluationError{err}
	}
	return nil, nil
}

func runUniqueItems(s *Schema, instance interface{}, _ map[string]bool, _ map[int]bool, _ *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	if s.UniqueItems == nil || !*s.UniqueItems {
		return nil, nil
	}
	items, ok := instance.([]interface{})
	if !ok {
		return nil, nil
	}
	if err := evaluateUniqueItems(s, items); err != nil {
		return nil, []*EvaluationError{err}
	}
	return nil, nil
}

func runNumeric(s *Schema, instance interface{}, _ map[string]bool, _ map[int]bool, _ *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	errs := evaluateNumeric(s, instance)
	if len(errs) == 0 {
		return nil, nil
	}
	return nil, errs
}

func runStringKeywords(s *Schema, instance interface{}, _ map[string]bool, _ map[int]bool, _ *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	errs := evaluateString(s, instance)
	if len(errs) == 0 {
		return nil, nil
	}
	return nil, errs
}

func runFormat(s *Schema, instance interface{}, _ map[string]bool, _ map[int]bool, _ *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	if err := evaluateFormat(s, instance); err != nil {
		return nil, []*EvaluationError{err}
	}
	return nil, nil
}

func runProperties(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	object, ok := instance.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	results, err := evaluateProperties(s, object, evaluatedProps, evaluatedItems, dynamicScope)
	if err != nil {
		return results, []*EvaluationError{err}
	}
	return results, nil
}

func runPatternProperties(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	object, ok := instance.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	results, err := evaluatePatternProperties(s, object, evaluatedProps, evaluatedItems, dynamicScope)
	if err != nil {
		return results, []*EvaluationError{err}
	}
	return results, nil
}

func runAdditionalProperties(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	object, ok := instance.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	results, err := evaluateAdditionalProperties(s, object, evaluatedProps, evaluatedItems, dynamicScope)
	if err != nil {
		return results, []*EvaluationError{err}
	}
	return results, nil
}

func runPropertyNames(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	object, ok := instance.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	results, err := evaluatePropertyNames(s, object, evaluatedProps, evaluatedItems, dynamicScope)
	if err != nil {
		return results, []*EvaluationError{err}
	}
	return results, nil
}

func runMaxProperties(s *Schema, instance interface{}, _ map[string]bool, _ map[int]bool, _ *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	object, ok := instance.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	if err := evaluateMaxProperties(s, object); err != nil {
		return nil, []*EvaluationError{err}
	}
	return nil, nil
}

func runMinProperties(s *Schema, instance interface{}, _ map[string]bool, _ map[int]bool, _ *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	object, ok := instance.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	if err := evaluateMinProperties(s, object); err != nil {
		return nil, []*EvaluationError{err}
	}
	return nil, nil
}

func runRequired(s *Schema, instance interface{}, _ map[string]bool, _ map[int]bool, _ *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	object, ok := instance.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	if err := evaluateRequired(s, object); err != nil {
		return nil, []*EvaluationError{err}
	}
	return nil, nil
}

func runDependentRequired(s *Schema, instance interface{}, _ map[string]bool, _ map[int]bool, _ *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	object, ok := instance.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	if err := evaluateDependentRequired(s, object); err != nil {
		return nil, []*EvaluationError{err}
	}
	return nil, nil
}

func runDependentSchemas(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	results, err := evaluateDependentSchemas(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
	if err != nil {
		return results, []*EvaluationError{err}
	}
	return results, nil
}

func runContent(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	contentResult, contentErr := evaluateContent(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
	if contentErr != nil {
		// Matches the teacher's own evaluate() chain: the detail is only
		// attached alongside an error, never on its own.
		return []*EvaluationResult{contentResult}, []*EvaluationError{contentErr}
	}
	return nil, nil
}

func runUnevaluatedProperties(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	results, err := evaluateUnevaluatedProperties(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
	if err != nil {
		return results, []*EvaluationError{err}
	}
	return results, nil
}

func runUnevaluatedItems(s *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, []*EvaluationError) {
	results, err := evaluateUnevaluatedItems(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
	if err != nil {
		return results, []*EvaluationError{err}
	}
	return results, nil
}
