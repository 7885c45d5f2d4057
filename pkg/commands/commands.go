// Package commands provides the command implementations of webtc.
//
// This package contains the orchestration layer between the CLI and the
// toolchain, gate and presubmit packages. Each command is implemented in its
// own subdirectory:
//   - install/   - Install: report the outcome of toolchain initialization
//   - presubmit/ - Presubmit: run the web presubmit gulp target
//   - build/     - Build: build web applications
//   - gulp/      - Gulp: run gulp globally or for one application
//   - status/    - Status: report installer state without side effects
//   - check/     - Check: license and whitespace policy on changed files
//   - genconfig/ - GenConfig: print or write a .webtc.toml
//
// This file re-exports the command functions for the CLI.
package commands

import (
	"context"

	"github.com/arthur-debert/webtc/pkg/commands/build"
	"github.com/arthur-debert/webtc/pkg/commands/check"
	"github.com/arthur-debert/webtc/pkg/commands/genconfig"
	"github.com/arthur-debert/webtc/pkg/commands/gulp"
	"github.com/arthur-debert/webtc/pkg/commands/install"
	"github.com/arthur-debert/webtc/pkg/commands/presubmit"
	"github.com/arthur-debert/webtc/pkg/commands/status"
)

// Install reports what toolchain initialization installed.
type InstallOptions = install.Options

func Install(opts InstallOptions) *install.Result {
	return install.Install(opts)
}

// Presubmit runs the web presubmit gulp target.
type PresubmitOptions = presubmit.Options

func Presubmit(ctx context.Context, opts PresubmitOptions) error {
	return presubmit.Presubmit(ctx, opts)
}

// Build builds web applications.
type BuildOptions = build.Options

func Build(ctx context.Context, opts BuildOptions) (*build.Result, error) {
	return build.Build(ctx, opts)
}

// Gulp runs gulp globally or for one application.
type GulpOptions = gulp.Options

func Gulp(ctx context.Context, opts GulpOptions) error {
	return gulp.Gulp(ctx, opts)
}

// Status reports installer state.
type StatusOptions = status.Options

func Status(opts StatusOptions) (*status.Result, error) {
	return status.Status(opts)
}

// Check runs the license and whitespace policy.
type CheckOptions = check.Options

func Check(ctx context.Context, opts CheckOptions) (*check.Result, error) {
	return check.Check(ctx, opts)
}

// GenConfig outputs or writes a configuration file.
type GenConfigOptions = genconfig.Options

func GenConfig(opts GenConfigOptions) (*genconfig.Result, error) {
	return genconfig.GenConfig(opts)
}
