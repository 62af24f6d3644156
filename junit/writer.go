package junit

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Marshal renders the report as a JUnit XML document.
func Marshal(report TestReport) ([]byte, error) {
	var buf bytes.Buffer
	w := &writer{buf: &buf}

	buf.WriteString(header)
	buf.WriteString("<testsuites>\n")
	for _, suite := range report.TestSuites {
		switch s := suite.(type) {
		case LaunchErrorSuite:
			w.launchErrorSuite(s)
		case CaseSuite:
			w.caseSuite(s)
		default:
			return nil, fmt.Errorf("unsupported test suite type: %T", suite)
		}
	}
	buf.WriteString("</testsuites>\n")

	if w.err != nil {
		return nil, w.err
	}
	return buf.Bytes(), nil
}

// Write renders the report into out. Nothing is written if rendering fails.
func Write(out io.Writer, report TestReport) error {
	content, err := Marshal(report)
	if err != nil {
		return err
	}

	_, err = out.Write(content)
	return err
}

// FormatTime formats a duration in seconds without exponent notation.
func FormatTime(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

type writer struct {
	buf *bytes.Buffer
	err error
}

func (w *writer) launchErrorSuite(s LaunchErrorSuite) {
	w.raw(`<testsuite name="`)
	w.escaped(s.Name)
	w.raw(`" errors="1"><error>`)
	w.escaped(s.Message)
	w.raw("</error></testsuite>\n")
}

func (w *writer) caseSuite(s CaseSuite) {
	w.raw(`<testsuite name="`)
	w.escaped(s.Name)
	w.raw(fmt.Sprintf(`" tests="%d" failures="%d" errors="%d">`+"\n", s.Tests(), s.Failures(), s.Errors()))

	for _, testCase := range s.TestCases {
		w.testCase(s.Name, testCase)
	}

	w.raw("</testsuite>\n")
}

func (w *writer) testCase(className string, testCase TestCase) {
	w.raw(`<testcase classname="`)
	w.escaped(className)
	w.raw(`" name="`)
	w.escaped(testCase.Name)
	w.raw(`" time="`)
	w.escaped(FormatTime(testCase.Time))
	w.raw(`"`)

	switch outcome := testCase.Outcome.(type) {
	case Failure:
		w.raw(`><failure message="`)
		w.escaped(outcome.Message)
		w.raw(`">`)
		w.escaped(outcome.Location)
		w.raw("</failure></testcase>\n")
	case Error:
		w.raw("><error>")
		w.escaped(outcome.Message)
		w.raw("</error></testcase>\n")
	case Passed, nil:
		w.raw("/>\n")
	default:
		w.err = fmt.Errorf("unsupported test case outcome: %T", outcome)
	}
}

func (w *writer) raw(s string) {
	w.buf.WriteString(s)
}

// escaped writes s with every markup-significant character replaced by a
// character reference, which is valid in both attribute values and element text.
func (w *writer) escaped(s string) {
	if w.err != nil {
		return
	}
	if err := xml.EscapeText(w.buf, []byte(s)); err != nil {
		w.err = err
	}
}
