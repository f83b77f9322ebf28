package reporting

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one dataset document.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one check.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
}

// JUnitFailure represents an advisory check that did not pass.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitError represents a schema violation.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a check report to JUnit XML format. Schema
// validation becomes one test case reported as an error on failure; each
// consistency check becomes a test case reported as a failure.
func ConvertToJUnit(r *CheckReport) *JUnitTestSuites {
	suite := JUnitTestSuite{
		Name: "benchviz dataset checks",
		Properties: []JUnitProperty{
			{Name: "source", Value: r.Source},
		},
	}

	schema := JUnitTestCase{Name: "schema", Classname: "validation"}
	if len(r.SchemaErrors) > 0 {
		schema.Error = &JUnitError{
			Message: fmt.Sprintf("%d schema error(s)", len(r.SchemaErrors)),
			Type:    "SchemaError",
			Body:    strings.Join(r.SchemaErrors, "\n"),
		}
		suite.Errors++
	}
	suite.TestCases = append(suite.TestCases, schema)

	for _, res := range r.Results {
		tc := JUnitTestCase{Name: res.Name, Classname: "checks"}
		if !res.Passed {
			tc.Failure = &JUnitFailure{
				Message: res.Summary,
				Type:    "ConsistencyWarning",
				Body:    strings.Join(res.Details, "\n"),
			}
			suite.Failures++
		}
		suite.TestCases = append(suite.TestCases, tc)
	}
	suite.Tests = len(suite.TestCases)

	return &JUnitTestSuites{
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		Errors:     suite.Errors,
		TestSuites: []JUnitTestSuite{suite},
	}
}

// WriteJUnitXML writes the report as JUnit XML.
func WriteJUnitXML(w io.Writer, r *CheckReport) error {
	data, err := xml.MarshalIndent(ConvertToJUnit(r), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	output = append(output, '\n')
	if _, err := w.Write(output); err != nil {
		return fmt.Errorf("writing JUnit XML: %w", err)
	}
	return nil
}
