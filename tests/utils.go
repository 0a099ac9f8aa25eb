package tests

import (
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/schemarun/jsonschema"
)

// jsonSchemaTestCase mirrors one entry of the official JSON Schema Test
// Suite's fixture shape (schema + a list of data/valid pairs), so fixtures
// under testdata/ can be authored and read the same way the upstream suite's
// are, even though this module carries its own small, hand-authored set
// rather than a vendored copy of the full suite (see testdata/README.md).
type jsonSchemaTestCase struct {
	Description string      `json:"description"`
	Schema      interface{} `json:"schema"`
	Tests       []struct {
		Description string      `json:"description"`
		Data        interface{} `json:"data"`
		Valid       bool        `json:"valid"`
	} `json:"tests"`
}

// runTestSuiteFixture compiles and evaluates every case in a Test-Suite-style
// fixture file, the same two-level (case -> sub-test) shape and Compile-once-
// per-case/evaluate-per-sub-test structure the teacher's tests/utils.go used.
func runTestSuiteFixture(t *testing.T, filePath string, exclusions ...string) {
	t.Helper()

	data, err := os.ReadFile(filePath) //nolint:gosec
	if err != nil {
		t.Fatalf("failed to read fixture file: %s", err)
	}

	var cases []jsonSchemaTestCase
	if err := json.Unmarshal(data, &cases); err != nil {
		t.Fatalf("failed to unmarshal fixture cases: %v", err)
	}

	excluded := make(map[string]bool, len(exclusions))
	for _, exc := range exclusions {
		excluded[exc] = true
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Description, func(t *testing.T) {
			if excluded[tc.Description] {
				t.Skip("excluded")
			}

			schemaJSON, err := json.Marshal(tc.Schema)
			if err != nil {
				t.Fatalf("failed to marshal fixture schema: %v", err)
			}

			compiler := jsonschema.NewCompiler()
			if strings.Contains(filePath, "format") {
				compiler.SetAssertFormat(true)
			}
			schema, err := compiler.Compile(schemaJSON)
			if err != nil {
				t.Fatalf("failed to compile fixture schema: %v", err)
			}

			for _, test := range tc.Tests {
				test := test
				if excluded[tc.Description+"/"+test.Description] {
					t.Run(test.Description, func(t *testing.T) { t.Skip("excluded") })
					continue
				}
				t.Run(test.Description, func(t *testing.T) {
					result := schema.Validate(test.Data)
					if test.Valid && !result.IsValid() {
						t.Errorf("expected data to be valid, got errors: %v", result.ToList())
					}
					if !test.Valid && result.IsValid() {
						t.Error("expected data to be invalid, got no error")
					}
				})
			}
		})
	}
}
