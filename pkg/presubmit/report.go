package presubmit

import (
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/webtc/pkg/errors"
	"github.com/beevik/etree"
)

// Checks returns the names of the checks Run performs.
func Checks(committing, description bool) []string {
	checks := []string{NameWhitespace, NameLicense}
	if committing {
		checks = append(checks, NameDoNotSubmit)
		if description {
			checks = append(checks, NameDescription)
		}
	}
	return checks
}

// WriteJUnit writes results as a JUnit XML report: one test suite per check,
// one test case per checked file. The description check has a single test
// case of its own.
func WriteJUnit(w io.Writer, checks, files []string, results []Result) error {
	byKey := make(map[string][]Result)
	for _, r := range results {
		key := r.Check + "\x00" + r.File
		byKey[key] = append(byKey[key], r)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	suites := doc.CreateElement("testsuites")
	suites.CreateAttr("name", "presubmit")

	total, totalFailures := 0, 0
	for _, check := range checks {
		suite := suites.CreateElement("testsuite")
		suite.CreateAttr("name", check)

		cases := files
		if check == NameDescription {
			cases = []string{""}
		}

		failures := 0
		for _, file := range cases {
			name := file
			if name == "" {
				name = NameDescription
			}
			tc := suite.CreateElement("testcase")
			tc.CreateAttr("classname", "presubmit."+check)
			tc.CreateAttr("name", name)

			found := byKey[check+"\x00"+file]
			if len(found) == 0 {
				continue
			}
			failures++

			text := make([]string, len(found))
			for i, r := range found {
				text[i] = r.String()
			}
			failure := tc.CreateElement("failure")
			failure.CreateAttr("message", found[0].Message)
			failure.CreateAttr("type", found[0].Severity.String())
			failure.SetText(strings.Join(text, "\n"))
		}

		suite.CreateAttr("tests", strconv.Itoa(len(cases)))
		suite.CreateAttr("failures", strconv.Itoa(failures))
		total += len(cases)
		totalFailures += failures
	}
	suites.CreateAttr("tests", strconv.Itoa(total))
	suites.CreateAttr("failures", strconv.Itoa(totalFailures))

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return errors.Wrap(err, errors.ErrReportWrite, "failed to write junit report")
	}
	return nil
}
