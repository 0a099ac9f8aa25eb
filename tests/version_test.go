package tests

import "testing"

// TestDraftDetectionForTestSuite executes the keyword-based draft detection
// tests (spec.md scenario S4) against a Test-Suite-shaped fixture.
func TestDraftDetectionForTestSuite(t *testing.T) {
	runTestSuiteFixture(t, "testdata/draft_detection.json")
}
