package jsonschema

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"
)

// Registry is the Schema Registry (component A): a concurrency-safe store of
// compiled schemas keyed by their resolved URI, plus the pool of documents
// still waiting on an unresolved $ref/$dynamicRef/$recursiveRef target. It is
// grounded on the Compiler's own schema cache, lifted into its own type so
// the Constraint Compiler and the Initializer's meta-schema lookups share one
// place to register and fetch documents.
type Registry struct {
	mu             sync.RWMutex
	schemas        map[string]*Schema
	unresolvedRefs map[string][]*Schema
	loaders        map[string]func(url string) (io.ReadCloser, error)
	resolver       func(uri string) ([]byte, error)
	compiler       *Compiler // back-reference used to compile bytes Fetch loads
}

// NewRegistry creates an empty Registry pre-seeded with the built-in
// meta-schema identifiers of the five drafts (SPEC_FULL.md §4.1) and the
// default http/https loaders.
func NewRegistry() *Registry {
	r := &Registry{
		schemas:        make(map[string]*Schema),
		unresolvedRefs: make(map[string][]*Schema),
		loaders:        make(map[string]func(url string) (io.ReadCloser, error)),
	}
	r.registerBuiltinMetaSchemas()

	client := &http.Client{Timeout: 10 * time.Second}
	httpLoader := func(url string) (io.ReadCloser, error) {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, ErrNetworkFetch
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, ErrInvalidStatusCode
		}
		return resp.Body, nil
	}
	r.loaders["http"] = httpLoader
	r.loaders["https"] = httpLoader
	return r
}

// registerBuiltinMetaSchemas registers a minimal placeholder document under
// every identifier in metaSchemaIDs: enough for draft detection's $schema
// lookup. Full meta-schema vocabularies are outside this engine's scope.
func (r *Registry) registerBuiltinMetaSchemas() {
	for id, draft := range metaSchemaIDs {
		// one placeholder per identifier; an id already registered is left as is
		if _, ok := r.schemas[id]; ok {
			continue
		}
		r.schemas[id] = &Schema{ID: id, Schema: id, uri: id, Draft: draft}
	}
}

// Register binds id to schema. It returns a *DuplicateRegistrationError if id
// is already bound to a different *Schema pointer (SPEC_FULL.md §4.1).
func (r *Registry) Register(id string, schema *Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.schemas[id]; ok && existing != schema {
		return &DuplicateRegistrationError{ID: id}
	}
	r.schemas[id] = schema
	return nil
}

// Get reads a schema by its exact registered id. The second result is false
// on a cache miss.
func (r *Registry) Get(id string) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[id]
	return s, ok
}

// SetResolver installs the function Fetch consults on a registry miss. While
// a resolver is installed, Fetch uses it instead of the scheme-keyed loaders.
func (r *Registry) SetResolver(fn func(uri string) ([]byte, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolver = fn
}

// RegisterLoader adds a loader function for a specific URI scheme.
func (r *Registry) RegisterLoader(scheme string, fn func(url string) (io.ReadCloser, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[scheme] = fn
}

// Fetch returns the registered schema for id, or — on a miss — loads it via
// the installed resolver (or, when none is installed, the scheme-keyed
// loaders), compiles the result, and registers it before returning. A
// resolver error is returned as is; the loaders are not tried after it.
func (r *Registry) Fetch(id string) (*Schema, error) {
	baseURI, anchor := splitRef(id)

	if s, ok := r.Get(baseURI); ok {
		if anchor == "" {
			return s, nil
		}
		return s.resolveAnchor(anchor)
	}

	r.mu.RLock()
	resolver := r.resolver
	compiler := r.compiler
	r.mu.RUnlock()

	var data []byte
	var err error
	if resolver != nil {
		data, err = resolver(baseURI)
	} else {
		loader, ok := r.loaders[getURLScheme(baseURI)]
		if !ok {
			return nil, ErrNoLoaderRegistered
		}
		var body io.ReadCloser
		body, err = loader(baseURI)
		if err == nil {
			defer body.Close() //nolint:errcheck
			data, err = io.ReadAll(body)
			if err != nil {
				err = ErrDataRead
			}
		}
	}
	if err != nil {
		return nil, err
	}

	if compiler == nil {
		compiler = defaultCompiler
	}
	schema, err := compiler.Compile(data, baseURI)
	if err != nil {
		return nil, err
	}
	if anchor != "" {
		return schema.resolveAnchor(anchor)
	}
	return schema, nil
}

// trackUnresolved records that schema still has unresolved reference targets
// at the given URIs, so a later Register for one of them can re-resolve it.
func (r *Registry) trackUnresolved(schema *Schema, uris []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, uri := range uris {
		list := r.unresolvedRefs[uri]
		found := false
		for _, existing := range list {
			if existing == schema {
				found = true
				break
			}
		}
		if !found {
			r.unresolvedRefs[uri] = append(list, schema)
		}
	}
}

// popWaiting returns and clears the schemas waiting on uri.
func (r *Registry) popWaiting(uri string) []*Schema {
	r.mu.Lock()
	defer r.mu.Unlock()
	waiting, ok := r.unresolvedRefs[uri]
	if !ok {
		return nil
	}
	delete(r.unresolvedRefs, uri)
	cp := make([]*Schema, len(waiting))
	copy(cp, waiting)
	return cp
}
