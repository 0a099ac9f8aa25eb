package jsonschema

// Evaluate is the Evaluation Engine's (component E, spec.md §4.5) public
// entry point: it runs instance against s under a fresh DynamicScope and
// returns the hierarchical Result whatever OutputFormat opts request (see
// EvaluateFlag/EvaluateList for the other shapes). Evaluate never mutates s.
// With WithRegistry, the schema registered there under s's URI, if any, is
// evaluated in place of s. A WithResolver callback is installed on that
// registry, or on the registry of s's Compiler when none is given, and stays
// installed after the call. References already resolved when s was compiled
// are not looked up again.
func (s *Schema) Evaluate(instance interface{}, opts ...*Options) *Result {
	merged := mergeOptions(opts)

	schema := s
	if merged.registry != nil {
		if resolved, ok := merged.registry.Get(s.GetSchemaURI()); ok {
			schema = resolved
		}
		if merged.resolver != nil {
			merged.registry.SetResolver(merged.resolver)
		}
	} else if merged.resolver != nil {
		if compiler := schema.GetCompiler(); compiler != nil {
			compiler.Registry().SetResolver(merged.resolver)
		}
	}

	// Result's shape is fixed to the hierarchical tree regardless of
	// outputFormat: Flag and List are caller-invoked projections (ToFlag,
	// ToList) rather than three distinct return types, so outputFormat only
	// steers the convenience wrappers below.
	return schema.Validate(instance)
}

// EvaluateFlag runs Evaluate and projects straight to the Flag shape, for
// callers that only care about pass/fail.
func (s *Schema) EvaluateFlag(instance interface{}, opts ...*Options) *Flag {
	return s.Evaluate(instance, opts...).ToFlag()
}

// EvaluateList runs Evaluate and projects to the flattened List shape.
func (s *Schema) EvaluateList(instance interface{}, opts ...*Options) *List {
	merged := mergeOptions(opts)
	includeHierarchy := merged.outputFormat == OutputHierarchical
	return s.Evaluate(instance, opts...).ToList(includeHierarchy)
}
