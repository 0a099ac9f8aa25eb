package tests

import "testing"

// TestRefForTestSuite executes the $ref validation tests (spec.md scenario
// S2, recursive schema via $ref) against a Test-Suite-shaped fixture.
func TestRefForTestSuite(t *testing.T) {
	runTestSuiteFixture(t, "testdata/ref.json")
}
