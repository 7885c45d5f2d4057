package presubmit

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Check names
const (
	NameWhitespace  = "stray-whitespace"
	NameLicense     = "license"
	NameDoNotSubmit = "do-not-submit"
	NameDescription = "description"
)

// Severity of a finding.
type Severity int

const (
	// Warning findings are reported but do not block an upload.
	Warning Severity = iota
	// Error findings block a commit.
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// MarshalText renders the severity by name in JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SeverityFor returns the severity of findings for a commit or an upload.
func SeverityFor(committing bool) Severity {
	if committing {
		return Error
	}
	return Warning
}

// Result is a single finding.
type Result struct {
	Check string `json:"check"`
	// File is relative to the source root, slash separated. Empty for
	// findings about the change description.
	File string `json:"file,omitempty"`
	// Line is 1-based; zero for whole-file findings.
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func (r Result) String() string {
	if r.File == "" {
		return fmt.Sprintf("%s: %s [%s]", r.Severity, r.Message, r.Check)
	}
	loc := r.File
	if r.Line > 0 {
		loc = fmt.Sprintf("%s:%d", r.File, r.Line)
	}
	return fmt.Sprintf("%s: %s: %s [%s]", r.Severity, loc, r.Message, r.Check)
}

// File is a changed file under check.
type File struct {
	Path    string
	Content []byte
	// Changed holds the 1-based numbers of changed lines. Nil means every
	// line counts as changed.
	Changed map[int]bool
}

func (f File) changed(line int) bool {
	return f.Changed == nil || f.Changed[line]
}

// lines splits content into lines without their terminators. A trailing
// newline does not start an extra line.
func lines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	s := strings.TrimSuffix(string(content), "\n")
	return strings.Split(s, "\n")
}

// CheckStrayWhitespace reports changed lines that end in whitespace.
func CheckStrayWhitespace(files []File, severity Severity) []Result {
	var results []Result
	for _, f := range files {
		for i, line := range lines(f.Content) {
			n := i + 1
			if !f.changed(n) {
				continue
			}
			if strings.TrimRightFunc(line, unicode.IsSpace) != line {
				results = append(results, Result{
					Check:    NameWhitespace,
					File:     f.Path,
					Line:     n,
					Message:  "line ends with whitespace",
					Severity: severity,
				})
			}
		}
	}
	return results
}

// CheckLicense reports non-empty files in which header finds no match.
func CheckLicense(files []File, header *regexp.Regexp, severity Severity) []Result {
	var results []Result
	for _, f := range files {
		if len(f.Content) == 0 {
			continue
		}
		if header.Match(f.Content) {
			continue
		}
		results = append(results, Result{
			Check:    NameLicense,
			File:     f.Path,
			Message:  "missing or malformed license header",
			Severity: severity,
		})
	}
	return results
}

// doNotSubmit is split so this file does not trip its own check.
var doNotSubmit = []byte("DO NOT" + " SUBMIT")

// CheckDoNotSubmit reports changed lines carrying the do-not-submit marker.
func CheckDoNotSubmit(files []File, severity Severity) []Result {
	var results []Result
	for _, f := range files {
		if !bytes.Contains(f.Content, doNotSubmit) {
			continue
		}
		for i, line := range lines(f.Content) {
			n := i + 1
			if f.changed(n) && strings.Contains(line, string(doNotSubmit)) {
				results = append(results, Result{
					Check:    NameDoNotSubmit,
					File:     f.Path,
					Line:     n,
					Message:  string(doNotSubmit) + " found",
					Severity: severity,
				})
			}
		}
	}
	return results
}

// CheckDescription reports an empty change description, or one carrying
// the do-not-submit marker.
func CheckDescription(description string, severity Severity) []Result {
	if strings.TrimSpace(description) == "" {
		return []Result{{
			Check:    NameDescription,
			Message:  "change has no description",
			Severity: severity,
		}}
	}
	if strings.Contains(description, string(doNotSubmit)) {
		return []Result{{
			Check:    NameDescription,
			Message:  string(doNotSubmit) + " found in the change description",
			Severity: severity,
		}}
	}
	return nil
}

// Options selects the checks Run performs.
type Options struct {
	Header     *regexp.Regexp
	Committing bool
	// Description of the change. Nil skips the description check.
	Description *string
}

// Run performs every check on files. The do-not-submit and description
// checks only run when committing.
func Run(files []File, opts Options) []Result {
	severity := SeverityFor(opts.Committing)

	var results []Result
	results = append(results, CheckStrayWhitespace(files, severity)...)
	if opts.Header != nil {
		results = append(results, CheckLicense(files, opts.Header, severity)...)
	}
	if opts.Committing {
		results = append(results, CheckDoNotSubmit(files, severity)...)
		if opts.Description != nil {
			results = append(results, CheckDescription(*opts.Description, severity)...)
		}
	}
	return results
}

// Failed reports whether any result has Error severity.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Severity == Error {
			return true
		}
	}
	return false
}
