package jsonschema

import "net/url"

// validateIdentifierSyntax walks the schema tree checking every $id/id value
// is a well-formed URI without a fragment (JSON Schema core's "id" keyword
// rule: $id both names and serves as the base URI for a schema resource, and
// a resource's own URI never carries a fragment — $anchor covers fragment
// identifiers instead). Run once at compile time, alongside
// Schema.validateRegexSyntax, rather than at every evaluation.
func (s *Schema) validateIdentifierSyntax() error {
	id := s.ID
	if id == "" {
		id = s.LaxID
	}
	if id != "" {
		if err := checkIDSyntax(id); err != nil {
			return err
		}
	}
	for _, sub := range s.subSchemas() {
		if err := sub.validateIdentifierSyntax(); err != nil {
			return err
		}
	}
	return nil
}

func checkIDSyntax(id string) error {
	u, err := url.Parse(id)
	if err != nil {
		return &ParseError{Message: "invalid $id URI: " + id, Cause: err}
	}
	if u.Fragment != "" {
		return &ParseError{Message: "$id must not contain a fragment: " + id}
	}
	return nil
}
