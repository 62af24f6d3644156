package xcresult

import (
	"fmt"
	"time"

	"github.com/bitrise-io/go-utils/log"
	"github.com/bitrise-steplib/xcresult2junit/document"
	"github.com/bitrise-steplib/xcresult2junit/junit"
)

// NoTestsFoundMessage is reported for test targets which failed to launch any tests.
const NoTestsFoundMessage = "No tests found in target"

// Extractor walks an xcresult bundle and collects its test results.
type Extractor struct {
	resolver Resolver
}

// NewExtractor ...
func NewExtractor(resolver Resolver) Extractor {
	return Extractor{resolver: resolver}
}

// Extract loads the test results of the bundle at bundlePath.
// Suites keep the order in which they appear in the bundle.
func (e Extractor) Extract(bundlePath string) (junit.TestReport, error) {
	start := time.Now()

	record, err := e.resolver.Root(bundlePath)
	if err != nil {
		return junit.TestReport{}, fmt.Errorf("failed to load ActionsInvocationRecord: %w", err)
	}

	testsRef, err := TestsRefID(record)
	if err != nil {
		return junit.TestReport{}, fmt.Errorf("no test results found in the bundle: %w", err)
	}
	log.Debugf("Test results reference: %s", testsRef)

	planRunSummaries, err := e.resolver.Object(bundlePath, testsRef)
	if err != nil {
		return junit.TestReport{}, fmt.Errorf("failed to load ActionTestPlanRunSummaries: %w", err)
	}

	targets, err := TestableSummaries(planRunSummaries)
	if err != nil {
		return junit.TestReport{}, err
	}

	var report junit.TestReport
	for _, target := range targets {
		suites, err := e.targetSuites(bundlePath, target)
		if err != nil {
			return junit.TestReport{}, err
		}
		report.TestSuites = append(report.TestSuites, suites...)
	}

	log.Debugf("Extracted %d test suites from %d targets in %v", len(report.TestSuites), len(targets), time.Since(start))

	return report, nil
}

func (e Extractor) targetSuites(bundlePath string, target document.Node) ([]junit.TestSuite, error) {
	targetName, err := TargetName(target)
	if err != nil {
		return nil, err
	}

	classes, hasTests, err := TestClasses(target)
	if err != nil {
		return nil, fmt.Errorf("target (%s): %w", targetName, err)
	}
	if !hasTests {
		log.Warnf("No tests found in target: %s", targetName)
		return []junit.TestSuite{junit.NewLaunchErrorSuite(targetName, NoTestsFoundMessage)}, nil
	}

	log.Debugf("Target (%s): %d test classes", targetName, len(classes))

	suites := make([]junit.TestSuite, 0, len(classes))
	for _, class := range classes {
		suite, err := e.classSuite(bundlePath, targetName, class)
		if err != nil {
			return nil, fmt.Errorf("target (%s): %w", targetName, err)
		}
		suites = append(suites, suite)
	}
	return suites, nil
}

func (e Extractor) classSuite(bundlePath, targetName string, class document.Node) (junit.CaseSuite, error) {
	className, err := ClassName(class)
	if err != nil {
		return junit.CaseSuite{}, err
	}
	suiteName := targetName + "." + className

	tests, err := ClassTestCases(class)
	if err != nil {
		return junit.CaseSuite{}, err
	}

	testCases := make([]junit.TestCase, 0, len(tests))
	for _, test := range tests {
		testCase, err := e.testCase(bundlePath, test)
		if err != nil {
			return junit.CaseSuite{}, fmt.Errorf("test suite (%s): %w", suiteName, err)
		}
		testCases = append(testCases, testCase)
	}

	suite := junit.NewCaseSuite(suiteName, testCases)
	log.Debugf("Test suite (%s): %d tests, %d failures, %d errors", suiteName, suite.Tests(), suite.Failures(), suite.Errors())

	return suite, nil
}

func (e Extractor) testCase(bundlePath string, test document.Node) (junit.TestCase, error) {
	name, err := TestCaseName(test)
	if err != nil {
		return junit.TestCase{}, err
	}

	duration, err := TestCaseDuration(test)
	if err != nil {
		return junit.TestCase{}, err
	}

	status, err := TestCaseStatus(test)
	if err != nil {
		return junit.TestCase{}, err
	}

	testCase := junit.TestCase{Name: name, Time: duration, Outcome: junit.Passed{}}
	if status != TestStatusFailure {
		return testCase, nil
	}

	failure, err := e.failureSummary(bundlePath, test)
	if err != nil {
		return junit.TestCase{}, fmt.Errorf("test case (%s): %w", name, err)
	}
	testCase.Outcome = Classify(failure)

	return testCase, nil
}

func (e Extractor) failureSummary(bundlePath string, test document.Node) (FailureSummary, error) {
	summaryRef, err := TestCaseSummaryRef(test)
	if err != nil {
		return FailureSummary{}, err
	}

	testSummary, err := e.resolver.Object(bundlePath, summaryRef)
	if err != nil {
		return FailureSummary{}, fmt.Errorf("failed to load ActionTestSummary: %w", err)
	}

	return FirstFailureSummary(testSummary)
}

// Classify turns a failure summary into a junit outcome: failures without a
// known source file are errors, everything else is a located failure.
func Classify(failure FailureSummary) junit.Outcome {
	if failure.FileName == UnknownFileName {
		return junit.Error{Message: failure.Message}
	}
	return junit.Failure{
		Message:  failure.Message,
		Location: fmt.Sprintf("%s:%d", failure.FileName, failure.LineNumber),
	}
}
