package gulp

import (
	"context"

	"github.com/arthur-debert/webtc/pkg/logging"
	"github.com/arthur-debert/webtc/pkg/types"
)

// Options defines the options for the Gulp command.
type Options struct {
	Toolchain types.WebToolchain
	// Args are passed to gulp unchanged.
	Args []string
	// App selects an application; empty runs gulp from the apps directory.
	App string
}

// Gulp runs gulp with Args, either globally or for one application.
func Gulp(ctx context.Context, opts Options) error {
	log := logging.GetLogger("commands.gulp")
	log.Debug().
		Str("command", "Gulp").
		Str("app", opts.App).
		Strs("args", opts.Args).
		Msg("Executing command")

	dir := opts.Toolchain.AppsDir()
	if opts.App != "" {
		appDir, err := opts.Toolchain.AppDir(opts.App)
		if err != nil {
			return err
		}
		dir = appDir
	}
	return opts.Toolchain.Gulp(ctx, dir, opts.Args...)
}
