package presubmit

import (
	"regexp"

	"github.com/arthur-debert/webtc/pkg/errors"
)

// SourceFilter selects the files the checks apply to. Patterns match from
// the start of the slash-separated path relative to the source root.
type SourceFilter struct {
	Allow []*regexp.Regexp
	Deny  []*regexp.Regexp
}

// NewSourceFilter compiles allow and deny patterns.
func NewSourceFilter(allow, deny []string) (*SourceFilter, error) {
	a, err := compileAll(allow)
	if err != nil {
		return nil, err
	}
	d, err := compileAll(deny)
	if err != nil {
		return nil, err
	}
	return &SourceFilter{Allow: a, Deny: d}, nil
}

func compileAll(exprs []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile("^(?:" + expr + ")")
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid file pattern %q", expr)
		}
		res = append(res, re)
	}
	return res, nil
}

// Match reports whether path is allowed and not denied.
func (f *SourceFilter) Match(path string) bool {
	if !matchAny(f.Allow, path) {
		return false
	}
	return !matchAny(f.Deny, path)
}

func matchAny(res []*regexp.Regexp, path string) bool {
	for _, re := range res {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
