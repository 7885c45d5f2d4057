package presubmit

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/webtc/pkg/errors"
)

// YearPlaceholder marks where the copyright year goes in a header template.
const YearPlaceholder = "YEARPATTERN"

// HeaderExpr builds the license header expression for template. Each template
// line may be preceded by a comment leader; blank lines match any leader.
// YEARPATTERN on the first line matches the years from now back to
// firstYear.
func HeaderExpr(template string, firstYear int, now time.Time) string {
	lines := strings.Split(strings.TrimSpace(template), "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ".*?"
			continue
		}
		lines[i] = ".*? " + regexp.QuoteMeta(line)
	}
	lines[0] = strings.Replace(lines[0], YearPlaceholder, yearsExpr(firstYear, now.Year()), 1)
	return strings.Join(lines, "\n") + `(?: \*/)?\n`
}

// yearsExpr is an alternation of the years last down to first.
func yearsExpr(first, last int) string {
	if last < first {
		last = first
	}
	years := make([]string, 0, last-first+1)
	for y := last; y >= first; y-- {
		years = append(years, strconv.Itoa(y))
	}
	return "(" + strings.Join(years, "|") + ")"
}

// HeaderPattern compiles HeaderExpr in multi-line mode.
func HeaderPattern(template string, firstYear int, now time.Time) (*regexp.Regexp, error) {
	if strings.TrimSpace(template) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "license template is empty")
	}
	re, err := regexp.Compile("(?m)" + HeaderExpr(template, firstYear, now))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid license template")
	}
	return re, nil
}
