package build

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/webtc/pkg/errors"
	"github.com/arthur-debert/webtc/pkg/logging"
	"github.com/arthur-debert/webtc/pkg/types"
)

// Options defines the options for the Build command.
type Options struct {
	Toolchain types.WebToolchain
	// Apps to build. If empty, every app with a gulpfile is built.
	Apps []string
	// BuildDir is passed to gulp as --out.
	BuildDir string
}

// Result holds the result of the 'build' command.
type Result struct {
	BuildDir string   `json:"buildDir"`
	Apps     []string `json:"apps"`
}

// Build runs gulp --out BuildDir in each application directory, in order.
// The first failing app stops the build.
func Build(ctx context.Context, opts Options) (*Result, error) {
	log := logging.GetLogger("commands.build")
	log.Debug().Str("command", "Build").Msg("Executing command")

	if opts.BuildDir == "" {
		return nil, errors.New(errors.ErrInvalidInput, "build directory is required")
	}
	buildDir, err := filepath.Abs(opts.BuildDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid build directory %s", opts.BuildDir)
	}

	apps := opts.Apps
	if len(apps) == 0 {
		apps, err = opts.Toolchain.Apps()
		if err != nil {
			return nil, err
		}
	}

	// Resolve every app before building any.
	dirs := make([]string, len(apps))
	for i, app := range apps {
		dir, err := opts.Toolchain.AppDir(app)
		if err != nil {
			return nil, err
		}
		dirs[i] = dir
	}

	result := &Result{BuildDir: buildDir}
	for i, app := range apps {
		log.Info().Msgf("Building app [%s] => [%s]", app, buildDir)
		if err := opts.Toolchain.Gulp(ctx, dirs[i], "--out", buildDir); err != nil {
			return result, err
		}
		result.Apps = append(result.Apps, app)
	}
	return result, nil
}
