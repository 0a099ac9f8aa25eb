package tests

import "testing"

// TestContentForTestSuite executes the contentEncoding/contentMediaType
// validation tests against a Test-Suite-shaped fixture.
func TestContentForTestSuite(t *testing.T) {
	runTestSuiteFixture(t, "testdata/content.json")
}
