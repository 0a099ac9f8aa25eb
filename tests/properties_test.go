package tests

import "testing"

// TestPropertiesForTestSuite executes the properties/additionalProperties/
// required validation tests against a Test-Suite-shaped fixture.
func TestPropertiesForTestSuite(t *testing.T) {
	runTestSuiteFixture(t, "testdata/properties.json")
}
