package junit

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestCaseSuite_Counts(t *testing.T) {
	suite := NewCaseSuite("T.C", []TestCase{
		{Name: "a", Outcome: Passed{}},
		{Name: "b", Outcome: Failure{Message: "m", Location: "f.swift:1"}},
		{Name: "c", Outcome: Error{Message: "crash"}},
		{Name: "d", Outcome: Failure{Message: "m", Location: "f.swift:2"}},
		{Name: "e"},
	})

	require.Equal(t, 5, suite.Tests())
	require.Equal(t, 2, suite.Failures())
	require.Equal(t, 1, suite.Errors())
	require.Equal(t, "T.C", suite.SuiteName())
}

func TestCaseSuite_CountsMatchOutcomes(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("counts are derived from the cases", prop.ForAll(
		func(kinds []int) bool {
			var cases []TestCase
			wantFailures, wantErrors := 0, 0
			for _, kind := range kinds {
				switch kind {
				case 0:
					cases = append(cases, TestCase{Outcome: Passed{}})
				case 1:
					wantFailures++
					cases = append(cases, TestCase{Outcome: Failure{}})
				default:
					wantErrors++
					cases = append(cases, TestCase{Outcome: Error{}})
				}
			}

			suite := NewCaseSuite("S", cases)
			return suite.Tests() == len(cases) &&
				suite.Failures() == wantFailures &&
				suite.Errors() == wantErrors &&
				suite.Failures()+suite.Errors() <= suite.Tests()
		},
		gen.SliceOf(gen.IntRange(0, 2)),
	))

	properties.TestingRun(t)
}

func TestLaunchErrorSuite(t *testing.T) {
	suite := NewLaunchErrorSuite("Target", "No tests found in target")

	var s TestSuite = suite
	require.Equal(t, "Target", s.SuiteName())
	require.Equal(t, "No tests found in target", suite.Message)
}
