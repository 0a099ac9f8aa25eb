package tests

import "testing"

// TestMinItemsForTestSuite executes the minItems validation tests (spec.md
// scenario S1) against a Test-Suite-shaped fixture.
func TestMinItemsForTestSuite(t *testing.T) {
	runTestSuiteFixture(t, "testdata/minItems.json")
}
