package jsonschema

import (
	"errors"
	"fmt"
)

// === Network and IO Related Errors ===
var (
	// ErrNoLoaderRegistered is returned when no loader is registered for the specified scheme.
	ErrNoLoaderRegistered = errors.New("no loader registered for scheme")

	// ErrDataRead is returned when data cannot be read from the specified URL.
	ErrDataRead = errors.New("data read failed")

	// ErrNetworkFetch is returned when there is an error fetching from the URL.
	ErrNetworkFetch = errors.New("network fetch failed")

	// ErrInvalidStatusCode is returned when an invalid HTTP status code is returned.
	ErrInvalidStatusCode = errors.New("invalid http status code")
)

// === Format Validation Errors (formats.go) ===
var (
	// ErrIPv6AddressNotEnclosed is returned when an IPv6 address in a URI host is not bracket-enclosed.
	ErrIPv6AddressNotEnclosed = errors.New("ipv6 address must be enclosed in brackets")

	// ErrInvalidIPv6Address is returned when an IPv6 address fails to parse.
	ErrInvalidIPv6Address = errors.New("invalid ipv6 address")
)

// === Serialization Related Errors ===
var (
	// ErrJSONUnmarshal is returned when there is an error unmarshalling JSON.
	ErrJSONUnmarshal = errors.New("json unmarshal failed")

	// ErrXMLUnmarshal is returned when there is an error unmarshalling XML.
	ErrXMLUnmarshal = errors.New("xml unmarshal failed")

	// ErrYAMLUnmarshal is returned when there is an error unmarshalling YAML.
	ErrYAMLUnmarshal = errors.New("yaml unmarshal failed")
)

// === Schema Compilation and Parsing Related Errors ===
var (
	// ErrSchemaCompilation is returned when a schema fails to parse.
	ErrSchemaCompilation = errors.New("schema compilation failed")

	// ErrReferenceResolution is returned when a reference cannot be resolved.
	ErrReferenceResolution = errors.New("reference resolution failed")

	// ErrGlobalReferenceResolution is returned when a global reference cannot be resolved.
	ErrGlobalReferenceResolution = errors.New("global reference resolution failed")

	// ErrJSONPointerSegmentDecode is returned when a JSON Pointer segment cannot be decoded.
	ErrJSONPointerSegmentDecode = errors.New("json pointer segment decode failed")

	// ErrJSONPointerSegmentNotFound is returned when a segment is not found in the schema context.
	ErrJSONPointerSegmentNotFound = errors.New("json pointer segment not found")

	// ErrInvalidSchemaType is returned when the JSON schema type is invalid.
	ErrInvalidSchemaType = errors.New("invalid schema type")

	// ErrRegexValidation is returned when a pattern/patternProperties keyword
	// carries a regular expression the engine's regexp flavor cannot compile.
	ErrRegexValidation = errors.New("regex validation failed")
)

// === Numeric Conversion Errors ===
var (
	// ErrUnsupportedRatType is returned when a JSON value cannot be converted to *big.Rat.
	ErrUnsupportedRatType = errors.New("unsupported rat type")

	// ErrRatConversion is returned when conversion to *big.Rat fails.
	ErrRatConversion = errors.New("rat conversion failed")

	// ErrNilConstValue is returned when trying to unmarshal into a nil ConstValue.
	ErrNilConstValue = errors.New("cannot unmarshal into nil ConstValue")
)

// RegexPatternError reports a single keyword/location whose regular
// expression failed to compile, collected by Schema.validateRegexSyntax
// across every pattern/patternProperties/propertyNames node in a document.
type RegexPatternError struct {
	Keyword  string // Keyword that carried the bad pattern ("pattern" or "patternProperties").
	Location string // JSON Pointer to the offending node.
	Pattern  string // The regular expression text that failed to compile.
	Err      error  // Underlying regexp.Compile error.
}

func (e *RegexPatternError) Error() string {
	return fmt.Sprintf("%s: invalid pattern %q at %s: %v", e.Keyword, e.Pattern, e.Location, e.Err)
}

func (e *RegexPatternError) Unwrap() error {
	return e.Err
}

// === Typed evaluation-engine error kinds (spec §7) ===
//
// Every kind here reports a problem with the SCHEMA DOCUMENT or its
// resolution, never with the instance being evaluated: a failed instance
// evaluation is always a *Result with Valid=false, never one of these.

// ParseError means the schema or instance input was not valid JSON, or the
// schema document failed structural validation (e.g. type mismatches on a
// keyword's own value).
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return "parse error: " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// UnsupportedSchemaError means the schema declares (or was detected to use) a
// draft/dialect this engine does not implement.
type UnsupportedSchemaError struct {
	SchemaURI string
}

func (e *UnsupportedSchemaError) Error() string {
	return fmt.Sprintf("unsupported schema dialect: %s", e.SchemaURI)
}

// UnresolvedReferenceError means a $ref/$dynamicRef/$recursiveRef target
// could not be found anywhere reachable from the Registry.
type UnresolvedReferenceError struct {
	Ref            string
	EvaluationPath string
}

func (e *UnresolvedReferenceError) Error() string {
	if e.EvaluationPath != "" {
		return fmt.Sprintf("unresolved reference %q at %s", e.Ref, e.EvaluationPath)
	}
	return fmt.Sprintf("unresolved reference %q", e.Ref)
}

// UnresolvableMetaSchemaError means a $schema chain could not be resolved to
// a known draft, either because fetching it failed or because following its
// own $schema revisited an identifier already seen (a cycle).
type UnresolvableMetaSchemaError struct {
	SchemaURI string
	Cause     error
}

func (e *UnresolvableMetaSchemaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unresolvable meta-schema %q: %v", e.SchemaURI, e.Cause)
	}
	return fmt.Sprintf("unresolvable meta-schema %q", e.SchemaURI)
}

func (e *UnresolvableMetaSchemaError) Unwrap() error { return e.Cause }

// DuplicateRegistrationError means Registry.Register was called with an id
// already bound to a different *Schema.
type DuplicateRegistrationError struct {
	ID string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("duplicate schema registration for %q", e.ID)
}
