package tests

import "testing"

// TestFormatForTestSuite executes the format assertion tests against a
// Test-Suite-shaped fixture, with format assertion enabled (see
// runTestSuiteFixture).
func TestFormatForTestSuite(t *testing.T) {
	runTestSuiteFixture(t, "testdata/format.json")
}
