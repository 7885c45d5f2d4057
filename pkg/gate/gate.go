package gate

import (
	"bytes"
	"context"
	"os"

	"github.com/arthur-debert/webtc/pkg/errors"
	"github.com/arthur-debert/webtc/pkg/logging"
	"github.com/arthur-debert/webtc/pkg/types"
	"github.com/rs/zerolog"
)

// Action performs the gated install. A returned error is handed back to the
// caller of EnsureInstalled untouched.
type Action func(ctx context.Context) error

// Spec describes one gated install.
type Spec struct {
	// Name labels the install in logs, e.g. "npm".
	Name string

	// MarkerPath records the specification content of the last successful run.
	MarkerPath string

	// SpecPath is the specification file whose content drives the decision.
	SpecPath string

	// OutputPaths are purged, in order, before the action re-runs.
	OutputPaths []string
}

// Outcome reports what EnsureInstalled did.
type Outcome int

const (
	// OutcomeUpToDate means the marker matched and nothing was touched.
	OutcomeUpToDate Outcome = iota
	// OutcomeInstalled means outputs were purged, the action ran and the
	// marker was rewritten.
	OutcomeInstalled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpToDate:
		return "up-to-date"
	case OutcomeInstalled:
		return "installed"
	default:
		return "unknown"
	}
}

// State is the result of a side-effect-free Check.
type State int

const (
	// StateMissing means there is no marker: nothing was installed, or the
	// last attempt failed.
	StateMissing State = iota
	// StateStale means the marker differs from the specification.
	StateStale
	// StateCurrent means the marker equals the specification.
	StateCurrent
)

func (s State) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateStale:
		return "stale"
	case StateCurrent:
		return "current"
	default:
		return "unknown"
	}
}

// Gate evaluates install specs against a filesystem.
type Gate struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a Gate operating on fs.
func New(fs types.FS) *Gate {
	return &Gate{
		fs:     fs,
		logger: logging.GetLogger("gate"),
	}
}

// EnsureInstalled runs action unless the marker already records the current
// specification content. With force set the action always runs.
func (g *Gate) EnsureInstalled(ctx context.Context, spec Spec, action Action, force bool) (Outcome, error) {
	logger := g.logger.With().Str("install", spec.Name).Logger()

	snapshot, err := g.fs.ReadFile(spec.SpecPath)
	if err != nil {
		return OutcomeUpToDate, errors.Wrapf(err, errors.ErrSpecRead,
			"failed to read specification %s", spec.SpecPath).
			WithDetail("path", spec.SpecPath)
	}

	if !force {
		installed, err := g.readMarker(spec.MarkerPath)
		if err != nil {
			return OutcomeUpToDate, err
		}
		if installed != nil && bytes.Equal(installed, snapshot) {
			logger.Debug().
				Str("marker", spec.MarkerPath).
				Msg("Install is up to date")
			return OutcomeUpToDate, nil
		}
	}

	logger.Debug().
		Bool("force", force).
		Str("spec", spec.SpecPath).
		Msg("Install is out of date")

	// Outputs first, marker last.
	purge := make([]string, 0, len(spec.OutputPaths)+1)
	purge = append(purge, spec.OutputPaths...)
	purge = append(purge, spec.MarkerPath)
	for _, path := range purge {
		if err := g.purge(logger, path); err != nil {
			return OutcomeUpToDate, err
		}
	}

	if err := action(ctx); err != nil {
		return OutcomeUpToDate, err
	}

	if err := g.fs.WriteFileAtomic(spec.MarkerPath, snapshot, 0644); err != nil {
		return OutcomeInstalled, errors.Wrapf(err, errors.ErrMarkerWrite,
			"failed to write install marker %s", spec.MarkerPath).
			WithDetail("path", spec.MarkerPath)
	}

	logger.Debug().
		Str("marker", spec.MarkerPath).
		Msg("Recorded install marker")
	return OutcomeInstalled, nil
}

// Check reports whether spec would trigger an install, without touching
// anything.
func (g *Gate) Check(spec Spec) (State, error) {
	snapshot, err := g.fs.ReadFile(spec.SpecPath)
	if err != nil {
		return StateMissing, errors.Wrapf(err, errors.ErrSpecRead,
			"failed to read specification %s", spec.SpecPath).
			WithDetail("path", spec.SpecPath)
	}

	installed, err := g.readMarker(spec.MarkerPath)
	if err != nil {
		return StateMissing, err
	}
	switch {
	case installed == nil:
		return StateMissing, nil
	case bytes.Equal(installed, snapshot):
		return StateCurrent, nil
	default:
		return StateStale, nil
	}
}

// readMarker returns the marker content, or nil when there is no regular
// file at path.
func (g *Gate) readMarker(path string) ([]byte, error) {
	info, err := g.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrMarkerRead,
			"failed to stat install marker %s", path).
			WithDetail("path", path)
	}
	if info.IsDir() {
		return nil, nil
	}

	data, err := g.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMarkerRead,
			"failed to read install marker %s", path).
			WithDetail("path", path)
	}
	return data, nil
}

func (g *Gate) purge(logger zerolog.Logger, path string) error {
	info, err := g.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrCleanup, "failed to inspect %s", path).
			WithDetail("path", path)
	}

	if info.IsDir() {
		logger.Info().Str("path", path).Msg("Purging directory on reprovision")
		err = g.fs.RemoveAll(path)
	} else {
		logger.Info().Str("path", path).Msg("Purging file on reprovision")
		err = g.fs.Remove(path)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrCleanup, "failed to purge %s", path).
			WithDetail("path", path)
	}
	return nil
}

// EnsureInstalled is the one-shot form of Gate.EnsureInstalled.
func EnsureInstalled(ctx context.Context, fs types.FS, action Action, markerPath, specPath string, outputPaths []string, force bool) error {
	_, err := New(fs).EnsureInstalled(ctx, Spec{
		MarkerPath:  markerPath,
		SpecPath:    specPath,
		OutputPaths: outputPaths,
	}, action, force)
	return err
}
