// Package jsonschema implements a JSON Schema validation engine spanning
// Draft-06 through Draft 2020-12 plus the in-development "next" dialect, with
// automatic draft detection, a concurrency-safe schema Registry for cross-
// document $ref/$dynamicRef/$recursiveRef resolution, and a Result tree that
// projects to flag, list, or hierarchical output shapes with optional
// localized error messages.
//
// Credit to https://github.com/santhosh-tekuri/jsonschema for format validators.
package jsonschema
