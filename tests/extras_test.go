package tests

import "testing"

// TestUnrecognizedKeywordForTestSuite executes the unrecognized-keyword
// preservation tests (spec.md scenario S5) against a Test-Suite-shaped
// fixture.
func TestUnrecognizedKeywordForTestSuite(t *testing.T) {
	runTestSuiteFixture(t, "testdata/unrecognized_keyword.json")
}
