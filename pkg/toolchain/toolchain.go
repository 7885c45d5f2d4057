package toolchain

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/webtc/pkg/config"
	"github.com/arthur-debert/webtc/pkg/errors"
	"github.com/arthur-debert/webtc/pkg/gate"
	"github.com/arthur-debert/webtc/pkg/logging"
	"github.com/arthur-debert/webtc/pkg/paths"
	"github.com/arthur-debert/webtc/pkg/runner"
	"github.com/arthur-debert/webtc/pkg/types"
	"github.com/rs/zerolog"
)

// LookPathFunc resolves an executable name, like exec.LookPath.
type LookPathFunc func(file string) (string, error)

// Options configures Initialize.
type Options struct {
	Paths  paths.Paths
	Config *config.Config
	FS     types.FS
	Runner runner.Runner
	// LookPath defaults to exec.LookPath.
	LookPath LookPathFunc
	// Force re-runs every installer regardless of its marker.
	Force bool
}

// Installer is a configured install resolved against the source root.
type Installer struct {
	Spec     gate.Spec
	Steps    [][]string
	Optional bool
}

// InstallResult records what Initialize did for one installer.
type InstallResult struct {
	Name    string
	Outcome gate.Outcome
	// Skipped is set for optional installers without a spec file.
	Skipped bool
}

// Toolchain runs the Node toolchain of one checkout.
type Toolchain struct {
	paths  paths.Paths
	cfg    config.Toolchain
	fs     types.FS
	runner runner.Runner
	logger zerolog.Logger

	node     string
	npm      string
	installs []InstallResult
}

// Installers resolves the configured installers against p.
func Installers(cfg *config.Config, p paths.Paths) []Installer {
	installers := make([]Installer, 0, len(cfg.Installers))
	for _, inst := range cfg.Installers {
		outputs := make([]string, len(inst.Outputs))
		for i, out := range inst.Outputs {
			outputs[i] = p.Resolve(out)
		}
		installers = append(installers, Installer{
			Spec: gate.Spec{
				Name:        inst.Name,
				MarkerPath:  p.Resolve(inst.Marker),
				SpecPath:    p.Resolve(inst.Spec),
				OutputPaths: outputs,
			},
			Steps:    inst.Steps,
			Optional: inst.Optional,
		})
	}
	return installers
}

// Locate finds the node and npm executables.
func Locate(cfg config.Toolchain, lookPath LookPathFunc) (node, npm string, err error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	var missing []string
	node, nodeErr := lookPath(cfg.Node)
	if nodeErr != nil {
		missing = append(missing, cfg.Node)
	}
	npm, npmErr := lookPath(cfg.NPM)
	if npmErr != nil {
		missing = append(missing, cfg.NPM)
	}
	if len(missing) > 0 {
		return "", "", errors.Newf(errors.ErrToolchainMissing,
			"unable to locate Node.js installation: build requires the %q and %q executables "+
				"to be installed on your local system; please install Node.js and NPM (%s)",
			cfg.Node, cfg.NPM, cfg.Help).
			WithDetail("missing", missing).
			WithDetail("help", cfg.Help)
	}
	return node, npm, nil
}

// Initialize locates the toolchain and runs every out-of-date installer.
func Initialize(ctx context.Context, opts Options) (*Toolchain, error) {
	logger := logging.GetLogger("toolchain")
	done := logging.LogOperationStart(logger, "initialize")
	defer done()

	node, npm, err := Locate(opts.Config.Toolchain, opts.LookPath)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("node", node).
		Str("npm", npm).
		Msg("Located toolchain")

	tc := &Toolchain{
		paths:  opts.Paths,
		cfg:    opts.Config.Toolchain,
		fs:     opts.FS,
		runner: opts.Runner,
		logger: logger,
		node:   node,
		npm:    npm,
	}

	g := gate.New(opts.FS)
	for _, inst := range Installers(opts.Config, opts.Paths) {
		result := InstallResult{Name: inst.Spec.Name}

		if inst.Optional {
			if _, err := opts.FS.Stat(inst.Spec.SpecPath); os.IsNotExist(err) {
				logger.Debug().
					Str("install", inst.Spec.Name).
					Str("spec", inst.Spec.SpecPath).
					Msg("Skipping optional install without spec file")
				result.Skipped = true
				tc.installs = append(tc.installs, result)
				continue
			}
		}

		steps := inst.Steps
		outcome, err := g.EnsureInstalled(ctx, inst.Spec, func(ctx context.Context) error {
			for _, step := range steps {
				if err := tc.runStep(ctx, step); err != nil {
					return err
				}
			}
			return nil
		}, opts.Force)
		if err != nil {
			return nil, err
		}

		result.Outcome = outcome
		tc.installs = append(tc.installs, result)
	}

	return tc, nil
}

// runStep runs one installer step in the web directory. The first word
// names a toolchain program or any other executable.
func (t *Toolchain) runStep(ctx context.Context, step []string) error {
	dir := t.WebDir()
	args := step[1:]
	switch step[0] {
	case "node":
		return t.Node(ctx, dir, args...)
	case "npm":
		return t.NPM(ctx, dir, args...)
	case "bower":
		return t.Bower(ctx, dir, args...)
	case "gulp":
		return t.Gulp(ctx, dir, args...)
	default:
		return t.runner.Run(ctx, runner.Command{Name: step[0], Args: args, Dir: dir})
	}
}

// Installs reports the installer outcomes of Initialize, in order.
func (t *Toolchain) Installs() []InstallResult {
	return append([]InstallResult(nil), t.installs...)
}

func (t *Toolchain) WebDir() string  { return t.paths.WebDir() }
func (t *Toolchain) AppsDir() string { return t.paths.AppsDir() }

// Node runs node with args in dir.
func (t *Toolchain) Node(ctx context.Context, dir string, args ...string) error {
	return t.runner.Run(ctx, runner.Command{Name: t.node, Args: args, Dir: dir})
}

// NPM runs npm with args in dir.
func (t *Toolchain) NPM(ctx context.Context, dir string, args ...string) error {
	return t.runner.Run(ctx, runner.Command{Name: t.npm, Args: args, Dir: dir})
}

// Bower runs the checkout's bower through node.
func (t *Toolchain) Bower(ctx context.Context, dir string, args ...string) error {
	return t.Node(ctx, dir, append([]string{t.script(t.cfg.Bower)}, args...)...)
}

// Gulp runs the checkout's gulp through node.
func (t *Toolchain) Gulp(ctx context.Context, dir string, args ...string) error {
	return t.Node(ctx, dir, append([]string{t.script(t.cfg.Gulp)}, args...)...)
}

func (t *Toolchain) script(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(t.WebDir(), path)
}

// Apps lists the applications under AppsDir: directories holding a gulpfile.
func (t *Toolchain) Apps() ([]string, error) {
	entries, err := t.fs.ReadDir(t.AppsDir())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess,
			"failed to list applications in %s", t.AppsDir())
	}

	var apps []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if t.hasGulpfile(filepath.Join(t.AppsDir(), entry.Name())) {
			apps = append(apps, entry.Name())
		}
	}
	sort.Strings(apps)
	return apps, nil
}

// AppDir returns the directory of app, which must hold a gulpfile.
func (t *Toolchain) AppDir(app string) (string, error) {
	if app == "" || app == "." || app == ".." || strings.ContainsAny(app, `/\`) {
		return "", invalidApp(app)
	}
	dir := filepath.Join(t.AppsDir(), app)
	if !t.hasGulpfile(dir) {
		return "", invalidApp(app)
	}
	return dir, nil
}

func (t *Toolchain) hasGulpfile(dir string) bool {
	info, err := t.fs.Stat(filepath.Join(dir, t.cfg.Gulpfile))
	return err == nil && !info.IsDir()
}

func invalidApp(app string) error {
	return errors.Newf(errors.ErrInvalidApp, "[%s] is not a valid application", app).
		WithDetail("app", app)
}
