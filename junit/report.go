package junit

// TestReport is the internal test report structure used to present test results.
type TestReport struct {
	TestSuites []TestSuite
}

// TestSuite is either a CaseSuite or a LaunchErrorSuite.
type TestSuite interface {
	SuiteName() string
	isTestSuite()
}

// CaseSuite is a test class with its executed test cases.
type CaseSuite struct {
	Name      string
	TestCases []TestCase
}

// NewCaseSuite ...
func NewCaseSuite(name string, testCases []TestCase) CaseSuite {
	return CaseSuite{Name: name, TestCases: testCases}
}

// SuiteName ...
func (s CaseSuite) SuiteName() string { return s.Name }

func (CaseSuite) isTestSuite() {}

// Tests returns the number of test cases in the suite.
func (s CaseSuite) Tests() int {
	return len(s.TestCases)
}

// Failures returns the number of test cases with a located failure.
func (s CaseSuite) Failures() (failures int) {
	for _, testCase := range s.TestCases {
		if _, ok := testCase.Outcome.(Failure); ok {
			failures++
		}
	}
	return
}

// Errors returns the number of test cases that failed without a known location.
func (s CaseSuite) Errors() (errors int) {
	for _, testCase := range s.TestCases {
		if _, ok := testCase.Outcome.(Error); ok {
			errors++
		}
	}
	return
}

// LaunchErrorSuite is a test target which did not produce any tests.
type LaunchErrorSuite struct {
	Name    string
	Message string
}

// NewLaunchErrorSuite ...
func NewLaunchErrorSuite(name, message string) LaunchErrorSuite {
	return LaunchErrorSuite{Name: name, Message: message}
}

// SuiteName ...
func (s LaunchErrorSuite) SuiteName() string { return s.Name }

func (LaunchErrorSuite) isTestSuite() {}

// TestCase ...
type TestCase struct {
	Name string
	// Time is the test case duration in seconds.
	Time    float64
	Outcome Outcome
}

// Outcome is one of Passed, Failure or Error.
type Outcome interface {
	isOutcome()
}

// Passed ...
type Passed struct{}

// Failure is an assertion failure with a known source location ("file:line").
type Failure struct {
	Message  string
	Location string
}

// Error is a failure without a known source location, like a crash.
type Error struct {
	Message string
}

func (Passed) isOutcome()  {}
func (Failure) isOutcome() {}
func (Error) isOutcome()   {}
