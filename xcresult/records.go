package xcresult

import (
	"fmt"
	"math"
	"strconv"

	"github.com/bitrise-steplib/xcresult2junit/document"
)

// Test statuses ...
const (
	TestStatusFailure = "Failure"
)

// UnknownFileName is reported by Xcode for failures without a source location (crashes, launch failures).
const UnknownFileName = "<unknown>"

// FailureSummary ...
type FailureSummary struct {
	FileName   string
	Message    string
	LineNumber int
}

// TestsRefID reads actions._values[0].actionResult.testsRef.id._value from an ActionsInvocationRecord.
func TestsRefID(record document.Node) (string, error) {
	action, err := record.FirstValue("actions")
	if err != nil {
		return "", err
	}

	actionResult, err := action.Object("actionResult")
	if err != nil {
		return "", err
	}

	return actionResult.Reference("testsRef")
}

// TestableSummaries reads summaries._values[0].testableSummaries._values from an
// ActionTestPlanRunSummaries document. There is one testable summary per test target.
func TestableSummaries(planRunSummaries document.Node) ([]document.Node, error) {
	summary, err := planRunSummaries.FirstValue("summaries")
	if err != nil {
		return nil, err
	}

	return summary.Values("testableSummaries")
}

// TargetName reads targetName._value from an ActionTestableSummary.
func TargetName(testableSummary document.Node) (string, error) {
	return testableSummary.String("targetName")
}

// TestClasses returns the test classes of a target.
//
// The first two levels below tests._values are summary groups (the test bundle
// and "All tests"), not real classes, so the classes are read from
// tests._values[0].subtests._values[0].subtests._values.
// The returned bool is false when the target has no tests at all.
func TestClasses(testableSummary document.Node) ([]document.Node, bool, error) {
	tests, err := testableSummary.Values("tests")
	if err != nil {
		return nil, false, err
	}
	if len(tests) == 0 {
		return nil, false, nil
	}

	bundleGroup, err := tests[0].FirstValue("subtests")
	if err != nil {
		return nil, true, err
	}

	classes, err := bundleGroup.Values("subtests")
	if err != nil {
		return nil, true, err
	}
	return classes, true, nil
}

// ClassName reads name._value from a test class summary group.
func ClassName(testClass document.Node) (string, error) {
	return testClass.String("name")
}

// ClassTestCases reads subtests._values from a test class summary group.
func ClassTestCases(testClass document.Node) ([]document.Node, error) {
	return testClass.Values("subtests")
}

// TestCaseName reads name._value from an ActionTestMetadata.
func TestCaseName(testCase document.Node) (string, error) {
	return testCase.String("name")
}

// TestCaseDuration reads duration._value in seconds, 0 when the test has no duration.
func TestCaseDuration(testCase document.Node) (float64, error) {
	raw, found, err := testCase.OptionalString("duration")
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}

	duration, err := strconv.ParseFloat(raw, 64)
	if err != nil || duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return 0, &document.PathError{Path: testCase.Path() + ".duration._value", Reason: fmt.Sprintf("invalid duration %q", raw)}
	}
	if duration == 0 {
		// -0 would be written as time="-0"
		return 0, nil
	}
	return duration, nil
}

// TestCaseStatus reads testStatus._value from an ActionTestMetadata.
func TestCaseStatus(testCase document.Node) (string, error) {
	return testCase.String("testStatus")
}

// TestCaseSummaryRef reads summaryRef.id._value, the id of the test's ActionTestSummary.
func TestCaseSummaryRef(testCase document.Node) (string, error) {
	return testCase.Reference("summaryRef")
}

// FirstFailureSummary reads failureSummaries._values[0] from an ActionTestSummary.
//
// Newer Xcode versions may move the failure summaries; this is the only place
// that knows where they are.
func FirstFailureSummary(testSummary document.Node) (FailureSummary, error) {
	if !testSummary.Has("failureSummaries") {
		return FailureSummary{}, &document.PathError{
			Path:   testSummary.Path(),
			Reason: `no "failureSummaries" in the test summary of a failed test, the xcresult format might have changed`,
		}
	}

	failure, err := testSummary.FirstValue("failureSummaries")
	if err != nil {
		return FailureSummary{}, err
	}

	fileName, err := failure.String("fileName")
	if err != nil {
		return FailureSummary{}, err
	}

	message, err := failure.String("message")
	if err != nil {
		return FailureSummary{}, err
	}

	summary := FailureSummary{FileName: fileName, Message: message}
	if fileName == UnknownFileName {
		return summary, nil
	}

	lineNumber, err := failure.Int("lineNumber")
	if err != nil {
		return FailureSummary{}, err
	}
	summary.LineNumber = lineNumber

	return summary, nil
}
