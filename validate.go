package jsonschema

import (
	"reflect"

	"github.com/goccy/go-json"
)

// isByteSlice reports whether v is []byte or a named type whose underlying
// type is []byte (e.g. json.RawMessage or a user-defined `type Foo []byte`).
// A plain type switch only matches exact types, which misses named
// redefinitions, so this checks the reflect.Kind chain instead.
func isByteSlice(v interface{}) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

// convertToByteSlice converts v to []byte if it is []byte or a named
// redefinition of it, reporting ok=false otherwise.
func convertToByteSlice(v interface{}) ([]byte, bool) {
	if !isByteSlice(v) {
		return nil, false
	}
	return reflect.ValueOf(v).Bytes(), true
}

// Validate checks if the given instance conforms to the schema. Raw JSON
// bytes (including named []byte redefinitions such as json.RawMessage) and
// Go structs are routed through ValidateJSON/ValidateStruct first so they
// reach evaluation as the same map/slice/scalar shape a decoded JSON
// document would have; everything already in that shape (map[string]any,
// []any, and JSON scalars) evaluates directly.
func (s *Schema) Validate(instance interface{}) *EvaluationResult {
	if data, ok := convertToByteSlice(instance); ok {
		return s.ValidateJSON(data)
	}

	switch v := instance.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		map[string]interface{}, []interface{}:
		return s.evaluateInstance(v)
	default:
		return s.ValidateStruct(instance)
	}
}

// evaluateInstance runs the core Evaluation Engine dispatch against an
// instance already in decoded-JSON shape.
func (s *Schema) evaluateInstance(instance interface{}) *EvaluationResult {
	dynamicScope := NewDynamicScope()
	result, _, _ := s.evaluate(instance, dynamicScope)

	return result
}

// ValidateJSON decodes raw JSON bytes and validates the result, so Valid
// still reflects real type distinctions (e.g. "1" is an integer, "1.0" is
// a number) that a prior unmarshal into a concrete Go type would erase.
func (s *Schema) ValidateJSON(data []byte) *EvaluationResult {
	var instance interface{}
	if err := json.Unmarshal(data, &instance); err != nil {
		result := NewEvaluationResult(s)
		result.AddError(NewEvaluationError("", "invalid_json", "Instance is not valid JSON: {error}", map[string]interface{}{
			"error": err.Error(),
		}))
		return result
	}
	return s.evaluateInstance(instance)
}

// ValidateMap validates a map[string]any instance directly.
func (s *Schema) ValidateMap(instance map[string]interface{}) *EvaluationResult {
	return s.evaluateInstance(instance)
}

// ValidateStruct validates a Go struct by round-tripping it through JSON so
// it arrives as the same map/slice/scalar shape a parsed JSON document would.
func (s *Schema) ValidateStruct(instance interface{}) *EvaluationResult {
	data, err := json.Marshal(instance)
	if err != nil {
		result := NewEvaluationResult(s)
		result.AddError(NewEvaluationError("", "struct_marshal_failed", "Failed to marshal struct for validation: {error}", map[string]interface{}{
			"error": err.Error(),
		}))
		return result
	}
	return s.ValidateJSON(data)
}

func (s *Schema) evaluate(instance interface{}, dynamicScope *DynamicScope) (*EvaluationResult, map[string]bool, map[int]bool) {
	dynamicScope.Push(s)
	constraint := s.getConstraint(dynamicScope)
	result := NewEvaluationResult(s)

	evaluatedProps := make(map[string]bool)
	evaluatedItems := make(map[int]bool)

	if s.Boolean != nil {
		// Check if the schema is a boolean
		if err := s.evaluateBoolean(instance, evaluatedProps, evaluatedItems); err != nil {
			//nolint:errcheck
			result.AddError(err)
		}
	} else {
		// Compile patterns for PatternProperties if not already compiled
		if s.PatternProperties != nil {
			s.compilePatterns()
		}

		// Run the compiled Keyword Constraints in priority order (constraint.go's
		// getConstraint/compileKeywords). Each one is a thin adapter over the
		// same per-keyword evaluate* functions the teacher wrote; the dispatch
		// order itself now comes from keywordTable rather than a hard-coded
		// chain of ifs.
		for _, kw := range constraint.Keywords {
			details, errs := kw.Run(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
			for _, detail := range details {
				if detail != nil {
					//nolint:errcheck
					result.AddDetail(detail)
				}
			}
			for _, err := range errs {
				if err != nil {
					//nolint:errcheck
					result.AddError(err)
				}
			}
		}
	}

	// Pop the schema from the dynamic scope
	dynamicScope.Pop()

	return result, evaluatedProps, evaluatedItems
}

func (s *Schema) evaluateBoolean(instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool) *EvaluationError {
	if s.Boolean == nil {
		return nil
	}

	if *s.Boolean {
		switch v := instance.(type) {
		case map[string]interface{}:
			for key := range v {
				evaluatedProps[key] = true
			}
		case []interface{}:
			for index := range v {
				evaluatedItems[index] = true
			}
		}
		return nil // No error, validation passes as the schema is true
	} else {
		return NewEvaluationError("schema", "false_schema_mismatch", "No values are allowed because the schema is set to 'false'")
	}
}

// evaluateNumeric groups the validation of all numeric-specific keywords.
func evaluateNumeric(schema *Schema, data interface{}) []*EvaluationError {
	dataType := getDataType(data)

	if dataType != "number" && dataType != "integer" {
		// If data is not a number, then skip the numeric-specific validations.
		return nil
	}

	errors := []*EvaluationError{}

	value := NewRat(data)
	if value == nil {
		// If the type conversion fails, the data might not be a number.
		errors = append(errors, NewEvaluationError("type", "invalid_numberic", "Value is {received} but should be numeric", map[string]interface{}{
			"received": dataType,
		}))

		return errors
	}

	// Validation Keywords for Numeric Instances (number and integer)
	if schema.MultipleOf != nil {
		if err := evaluateMultipleOf(schema, value); err != nil {
			errors = append(errors, err)
		}
	}

	if schema.Maximum != nil {
		if err := evaluateMaximum(schema, value); err != nil {
			errors = append(errors, err)
		}
	}

	if schema.ExclusiveMaximum != nil {
		if err := evaluateExclusiveMaximum(schema, value); err != nil {
			errors = append(errors, err)
		}
	}

	if schema.Minimum != nil {
		if err := evaluateMinimum(schema, value); err != nil {
			errors = append(errors, err)
		}
	}

	if schema.ExclusiveMinimum != nil {
		if err := evaluateExclusiveMinimum(schema, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return errors
	}

	return nil
}

// evaluateString groups the validation of all string-specific keywords.
func evaluateString(schema *Schema, data interface{}) []*EvaluationError {
	value, ok := data.(string)
	if !ok {
		// If data is not a string, then skip the string-specific validations.
		return nil
	}

	errors := []*EvaluationError{}

	// Validation Keywords for Strings
	if schema.MaxLength != nil {
		if err := evaluateMaxLength(schema, value); err != nil {
			errors = append(errors, err)
		}
	}

	if schema.MinLength != nil {
		if err := evaluateMinLength(schema, value); err != nil {
			errors = append(errors, err)
		}
	}

	if schema.Pattern != nil {
		if err := evaluatePattern(schema, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return errors
	}

	return nil
}
