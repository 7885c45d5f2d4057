package presubmit

import (
	"context"

	"github.com/arthur-debert/webtc/pkg/logging"
	"github.com/arthur-debert/webtc/pkg/types"
)

// Options defines the options for the Presubmit command.
type Options struct {
	Toolchain types.WebToolchain
}

// Presubmit runs the global gulp "presubmit" target from the apps directory.
func Presubmit(ctx context.Context, opts Options) error {
	log := logging.GetLogger("commands.presubmit")
	log.Debug().Str("command", "Presubmit").Msg("Executing command")

	return opts.Toolchain.Gulp(ctx, opts.Toolchain.AppsDir(), "presubmit")
}
