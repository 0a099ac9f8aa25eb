package jsonschema

// OutputFormat selects the shape Evaluate renders its Result into (spec.md
// §4.6/§6): Flag collapses to a single boolean, List flattens (or keeps the
// tree, depending on Hierarchy), Hierarchical returns the tree unmodified.
type OutputFormat int

const (
	OutputFlag OutputFormat = iota
	OutputList
	OutputHierarchical
)

// Options carries the six recognized configuration knobs spec.md §6 lists.
// It is built with functional setters, mirroring the Compiler's own fluent
// setter style (SetDefaultBaseURI, SetAssertFormat, ...).
type Options struct {
	draft         Draft
	outputFormat  OutputFormat
	culture       string
	registry      *Registry
	resolver      func(uri string) ([]byte, error)
	customKeywords bool
}

// NewOptions returns the default Options: auto-detected draft, Flag output,
// neutral culture, no registry/resolver override, custom keywords dropped.
func NewOptions() *Options {
	return &Options{
		draft:        DraftUnknown, // Unspecified: auto-detect
		outputFormat: OutputFlag,
	}
}

// WithDraft pins evaluation to a specific draft instead of auto-detecting.
func (o *Options) WithDraft(d Draft) *Options {
	o.draft = d
	return o
}

// WithOutputFormat selects the shape Evaluate renders its Result into.
func (o *Options) WithOutputFormat(f OutputFormat) *Options {
	o.outputFormat = f
	return o
}

// WithCulture selects the locale used for error message localization.
func (o *Options) WithCulture(culture string) *Options {
	o.culture = culture
	return o
}

// WithRegistry supplies a Schema Registry for the call: Evaluate evaluates the
// schema registered there under the evaluated schema's URI, when present, and
// installs any WithResolver callback on it. References resolved at compile
// time are not re-resolved through it.
func (o *Options) WithRegistry(r *Registry) *Options {
	o.registry = r
	return o
}

// WithResolver installs a callback invoked when the registry does not
// contain a referenced identifier.
func (o *Options) WithResolver(fn func(uri string) ([]byte, error)) *Options {
	o.resolver = fn
	return o
}

// WithCustomKeywords controls whether Unrecognized Keywords are carried
// through on Schema.Extra (the expanded name for spec.md's
// process_custom_keywords).
func (o *Options) WithCustomKeywords(keep bool) *Options {
	o.customKeywords = keep
	return o
}

// mergeOptions folds opts into a single effective Options, starting from
// NewOptions and skipping nil entries. For draft, culture, registry and
// resolver a later option's set value overrides an earlier one and an unset
// value leaves it in place; outputFormat and customKeywords are always taken
// from the last non-nil option.
func mergeOptions(opts []*Options) *Options {
	merged := NewOptions()
	for _, o := range opts {
		if o == nil {
			continue
		}
		if o.draft != DraftUnknown {
			merged.draft = o.draft
		}
		merged.outputFormat = o.outputFormat
		if o.culture != "" {
			merged.culture = o.culture
		}
		if o.registry != nil {
			merged.registry = o.registry
		}
		if o.resolver != nil {
			merged.resolver = o.resolver
		}
		merged.customKeywords = o.customKeywords
	}
	return merged
}
