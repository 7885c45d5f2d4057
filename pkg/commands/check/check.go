package check

import (
	"bytes"
	"context"
	"time"

	"github.com/arthur-debert/webtc/pkg/config"
	"github.com/arthur-debert/webtc/pkg/errors"
	"github.com/arthur-debert/webtc/pkg/logging"
	"github.com/arthur-debert/webtc/pkg/paths"
	"github.com/arthur-debert/webtc/pkg/presubmit"
	"github.com/arthur-debert/webtc/pkg/runner"
	"github.com/arthur-debert/webtc/pkg/types"
)

// Options defines the options for the Check command.
type Options struct {
	Config *config.Config
	Paths  paths.Paths
	FS     types.FS
	Runner runner.Runner

	// Files to check, absolute or relative to the source root. When empty,
	// the files changed against Base are checked, and line checks only
	// look at changed lines.
	Files []string
	// Base defaults to presubmit.base from the configuration.
	Base string
	// Committing turns findings into errors and enables the
	// do-not-submit check.
	Committing bool
	// Now fixes the clock for the license year range. Zero means now.
	Now time.Time
	// JUnit, when set, is the path of a JUnit XML report to write.
	JUnit string
	// Description of the change, checked when committing. Nil skips it.
	Description *string
}

// Result holds the result of the 'check' command.
type Result struct {
	Base       string             `json:"base,omitempty"`
	Committing bool               `json:"committing"`
	Files      []string           `json:"files"`
	Findings   []presubmit.Result `json:"findings"`
}

// Failed reports whether the findings block the change.
func (r *Result) Failed() bool {
	return presubmit.Failed(r.Findings)
}

// Check runs the license and whitespace policy over a change.
func Check(ctx context.Context, opts Options) (*Result, error) {
	log := logging.GetLogger("commands.check")
	log.Debug().
		Str("command", "Check").
		Bool("committing", opts.Committing).
		Msg("Executing command")

	cfg := opts.Config.Presubmit
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	header, err := presubmit.HeaderPattern(cfg.Template, cfg.Since, now)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid presubmit.template")
	}
	filter, err := presubmit.NewSourceFilter(cfg.Allow, cfg.Deny)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid presubmit file patterns")
	}

	result := &Result{Committing: opts.Committing}
	root := opts.Paths.Root()

	var rels []string
	var changed map[string]map[int]bool
	if len(opts.Files) > 0 {
		for _, f := range opts.Files {
			rel, err := opts.Paths.Rel(f)
			if err != nil {
				return nil, err
			}
			rels = append(rels, rel)
		}
	} else {
		result.Base = opts.Base
		if result.Base == "" {
			result.Base = cfg.Base
		}
		rels, err = presubmit.ChangedFiles(ctx, opts.Runner, root, result.Base)
		if err != nil {
			return nil, err
		}
		changed, err = presubmit.ChangedLines(ctx, opts.Runner, root, result.Base)
		if err != nil {
			return nil, err
		}
	}

	files, err := presubmit.Collect(opts.FS, root, rels, filter, changed)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		result.Files = append(result.Files, f.Path)
	}
	log.Debug().
		Int("candidates", len(rels)).
		Int("checked", len(files)).
		Msg("Collected files")

	result.Findings = presubmit.Run(files, presubmit.Options{
		Header:      header,
		Committing:  opts.Committing,
		Description: opts.Description,
	})

	if opts.JUnit != "" {
		var buf bytes.Buffer
		if err := presubmit.WriteJUnit(&buf, presubmit.Checks(opts.Committing, opts.Description != nil), result.Files, result.Findings); err != nil {
			return nil, err
		}
		if err := opts.FS.WriteFile(opts.JUnit, buf.Bytes(), 0644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrReportWrite, "failed to write report %s", opts.JUnit).
				WithDetail("path", opts.JUnit)
		}
		log.Info().Str("path", opts.JUnit).Msg("Wrote JUnit report")
	}

	return result, nil
}
