package jsonschema

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"sync"

	"github.com/go-json-experiment/json"

	"github.com/goccy/go-yaml"
)

// FormatDef defines a custom format validation rule.
type FormatDef struct {
	// Type specifies which JSON Schema type this format applies to (optional).
	// Supported values: "string", "number", "integer", "boolean", "array", "object".
	// Empty string means applies to all types.
	Type string

	// Validate is the validation function.
	Validate func(any) bool
}

// Compiler is the Constraint Compiler's front door (component D): it parses
// and initializes schema documents, delegates identifier bookkeeping to a
// Registry (component A), and hosts the collaborators (decoders, media
// types, loaders, format registry) keyword evaluators consult at evaluation
// time.
type Compiler struct {
	registry     *Registry
	PreserveExtra bool // Keep unrecognized keywords on Schema.Extra through Marshal round-trips.

	Decoders       map[string]func(string) ([]byte, error)            // Decoders for various encoding formats.
	MediaTypes     map[string]func([]byte) (any, error)               // Media type handlers for unmarshalling data.
	Loaders        map[string]func(url string) (io.ReadCloser, error) // Functions to load schemas from URLs.
	DefaultBaseURI string                                             // Base URI used to resolve relative references.
	AssertFormat   bool                                               // Flag to enforce format validation.

	// JSON encoder/decoder configuration
	jsonEncoder func(v any) ([]byte, error)
	jsonDecoder func(data []byte, v any) error

	// Custom format registry
	customFormats   map[string]*FormatDef
	customFormatsRW sync.RWMutex
}

// defaultCompiler is the fallback Compiler for a *Schema with neither its own
// nor an ancestor's Compiler set (e.g. one built directly via newSchema for
// ad-hoc use rather than through Compile).
var defaultCompiler = NewCompiler()

// NewCompiler creates a new Compiler instance and initializes it with default settings.
func NewCompiler() *Compiler {
	registry := NewRegistry()
	compiler := &Compiler{
		registry:       registry,
		Decoders:       make(map[string]func(string) ([]byte, error)),
		MediaTypes:     make(map[string]func([]byte) (any, error)),
		Loaders:        make(map[string]func(url string) (io.ReadCloser, error)),
		DefaultBaseURI: "",
		AssertFormat:   false,
		customFormats:  make(map[string]*FormatDef),

		// Default to go-json-experiment JSON implementation
		jsonEncoder: func(v any) ([]byte, error) { return json.Marshal(v) },
		jsonDecoder: func(data []byte, v any) error { return json.Unmarshal(data, v) },
	}
	registry.compiler = compiler
	compiler.initDefaults()
	return compiler
}

// WithRegistry swaps in an externally constructed Registry, e.g. one shared
// across several Compiler instances.
func (c *Compiler) WithRegistry(r *Registry) *Compiler {
	c.registry = r
	r.compiler = c
	return c
}

// WithEncoderJSON configures custom JSON encoder implementation.
func (c *Compiler) WithEncoderJSON(encoder func(v any) ([]byte, error)) *Compiler {
	c.jsonEncoder = encoder
	return c
}

// WithDecoderJSON configures custom JSON decoder implementation.
func (c *Compiler) WithDecoderJSON(decoder func(data []byte, v any) error) *Compiler {
	c.jsonDecoder = decoder
	return c
}

// Compile compiles a JSON schema and registers it. The schema's own $id is
// used as the registry key; if it has none and a URI is provided, the first
// URI is used instead.
func (c *Compiler) Compile(jsonSchema []byte, uris ...string) (*Schema, error) {
	schema, err := newSchema(jsonSchema)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaCompilation, err)
	}

	if schema.ID == "" && len(uris) > 0 {
		schema.ID = uris[0]
	}

	uri := schema.ID
	if uri != "" && isValidURI(uri) {
		if existing, ok := c.registry.Get(uri); ok {
			return existing, nil
		}
	}

	schema.initializeSchema(c, nil)

	if err := schema.validateRegexSyntax(); err != nil {
		return nil, err
	}

	if err := schema.validateIdentifierSyntax(); err != nil {
		return nil, err
	}

	if schema.uri != "" && isValidURI(schema.uri) {
		if err := c.registry.Register(schema.uri, schema); err != nil {
			return nil, err
		}
	}

	c.trackUnresolvedReferences(schema)

	var schemasToResolve []*Schema
	if schema.uri != "" {
		schemasToResolve = c.registry.popWaiting(schema.uri)
	}

	for _, waitingSchema := range schemasToResolve {
		waitingSchema.ResolveUnresolvedReferences()
		c.trackUnresolvedReferences(waitingSchema)
	}

	return schema, nil
}

// trackUnresolvedReferences records schema's unresolved $ref/$dynamicRef/
// $recursiveRef targets with the Registry so a later Compile/SetSchema for
// one of them re-resolves it.
func (c *Compiler) trackUnresolvedReferences(schema *Schema) {
	c.registry.trackUnresolved(schema, schema.GetUnresolvedReferenceURIs())
}

// resolveSchemaURL attempts to fetch and compile a schema from a URL via the Registry.
func (c *Compiler) resolveSchemaURL(url string) (*Schema, error) {
	return c.registry.Fetch(url)
}

// SetSchema associates a specific schema with a URI in the Registry.
func (c *Compiler) SetSchema(uri string, schema *Schema) *Compiler {
	_ = c.registry.Register(uri, schema)
	return c
}

// GetSchema retrieves a schema by reference, resolving it via the Registry
// (and, on a miss, its loaders) if necessary.
func (c *Compiler) GetSchema(ref string) (*Schema, error) {
	return c.registry.Fetch(ref)
}

// Registry exposes the Compiler's Schema Registry (component A).
func (c *Compiler) Registry() *Registry {
	return c.registry
}

// SetDefaultBaseURI sets the default base URL for resolving relative references.
func (c *Compiler) SetDefaultBaseURI(baseURI string) *Compiler {
	c.DefaultBaseURI = baseURI
	return c
}

// SetAssertFormat enables or disables format assertion.
func (c *Compiler) SetAssertFormat(assert bool) *Compiler {
	c.AssertFormat = assert
	return c
}

// SetPreserveExtra controls whether unrecognized keywords survive on
// Schema.Extra through Marshal/Unmarshal round-trips.
func (c *Compiler) SetPreserveExtra(preserve bool) *Compiler {
	c.PreserveExtra = preserve
	return c
}

// RegisterDecoder adds a new decoder function for a specific encoding.
func (c *Compiler) RegisterDecoder(encodingName string, decoderFunc func(string) ([]byte, error)) *Compiler {
	c.Decoders[encodingName] = decoderFunc
	return c
}

// RegisterMediaType adds a new unmarshal function for a specific media type.
func (c *Compiler) RegisterMediaType(mediaTypeName string, unmarshalFunc func([]byte) (any, error)) *Compiler {
	c.MediaTypes[mediaTypeName] = unmarshalFunc
	return c
}

// RegisterLoader adds a new loader function for a specific URI scheme. It is
// recorded in Compiler.Loaders and installed on the backing Registry, whose
// Fetch is what calls it (resolveSchemaURL and GetSchema go through Fetch).
func (c *Compiler) RegisterLoader(scheme string, loaderFunc func(url string) (io.ReadCloser, error)) *Compiler {
	c.Loaders[scheme] = loaderFunc
	c.registry.RegisterLoader(scheme, loaderFunc)
	return c
}

// initDefaults initializes default values for decoders, media types, and loaders.
func (c *Compiler) initDefaults() {
	c.Decoders["base64"] = base64.StdEncoding.DecodeString
	c.setupMediaTypes()
}

// setupMediaTypes configures default media type handlers.
func (c *Compiler) setupMediaTypes() {
	c.MediaTypes["application/json"] = func(data []byte) (any, error) {
		var temp any
		if err := c.jsonDecoder(data, &temp); err != nil {
			return nil, ErrJSONUnmarshal
		}
		return temp, nil
	}

	c.MediaTypes["application/xml"] = func(data []byte) (any, error) {
		var temp any
		if err := xml.Unmarshal(data, &temp); err != nil {
			return nil, ErrXMLUnmarshal
		}
		return temp, nil
	}

	c.MediaTypes["application/yaml"] = func(data []byte) (any, error) {
		var temp any
		if err := yaml.Unmarshal(data, &temp); err != nil {
			return nil, ErrYAMLUnmarshal
		}
		return temp, nil
	}
}

// CompileBatch compiles multiple schemas efficiently by deferring reference
// resolution until all schemas are compiled. This is the most efficient
// approach when you have many schemas with interdependencies.
func (c *Compiler) CompileBatch(schemas map[string][]byte) (map[string]*Schema, error) {
	compiledSchemas := make(map[string]*Schema)

	// First pass: compile all schemas without resolving references
	for id, schemaBytes := range schemas {
		schema, err := newSchema(schemaBytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSchemaCompilation, id, err)
		}

		if schema.ID == "" {
			schema.ID = id
		}
		schema.uri = schema.ID

		schema.compiler = c
		schema.initializeSchemaWithoutReferences(c, nil)

		compiledSchemas[id] = schema

		if schema.uri != "" && isValidURI(schema.uri) {
			_ = c.registry.Register(schema.uri, schema)
		}
	}

	// Second pass: resolve all references at once
	for _, schema := range compiledSchemas {
		schema.resolveReferences()
	}

	return compiledSchemas, nil
}

// RegisterFormat registers a custom format. The optional typeName parameter
// specifies which JSON Schema type the format applies to (e.g., "string",
// "number"). If omitted, the format applies to all types.
func (c *Compiler) RegisterFormat(name string, validator func(any) bool, typeName ...string) *Compiler {
	c.customFormatsRW.Lock()
	defer c.customFormatsRW.Unlock()

	var t string
	if len(typeName) > 0 {
		t = typeName[0]
	}

	c.customFormats[name] = &FormatDef{
		Type:     t,
		Validate: validator,
	}
	return c
}

// UnregisterFormat removes a custom format.
func (c *Compiler) UnregisterFormat(name string) *Compiler {
	c.customFormatsRW.Lock()
	defer c.customFormatsRW.Unlock()

	delete(c.customFormats, name)
	return c
}
