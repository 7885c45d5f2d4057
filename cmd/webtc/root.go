package webtc

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/arthur-debert/webtc/internal/version"
	"github.com/arthur-debert/webtc/pkg/cobrax/topics"
	"github.com/arthur-debert/webtc/pkg/filesystem"
	"github.com/arthur-debert/webtc/pkg/logging"
	"github.com/arthur-debert/webtc/pkg/runner"
	"github.com/arthur-debert/webtc/pkg/toolchain"
	"github.com/arthur-debert/webtc/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// deps are the collaborators the subcommands work with.
type deps struct {
	fs       types.FS
	runner   runner.Runner
	lookPath toolchain.LookPathFunc
	now      func() time.Time
}

func defaultDeps() deps {
	return deps{
		fs:       filesystem.NewOS(),
		runner:   runner.NewExec(nil),
		lookPath: exec.LookPath,
		now:      time.Now,
	}
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultDeps())
}

func newRootCmd(d deps) *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity    int
		forceInstall bool
		output       string
	)

	rootCmd := &cobra.Command{
		Use:     "webtc",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithOutput(verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVarP(&forceInstall, "force-install", "i", false, MsgFlagForceInstall)
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "auto", MsgFlagOutput)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "config", Title: "CONFIGURATION:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInstallCmd(d))
	rootCmd.AddCommand(newPresubmitCmd(d))
	rootCmd.AddCommand(newBuildCmd(d))
	rootCmd.AddCommand(newGulpCmd(d))
	rootCmd.AddCommand(newGulpAppCmd(d))
	rootCmd.AddCommand(newCheckCmd(d))
	rootCmd.AddCommand(newStatusCmd(d))
	rootCmd.AddCommand(newGenConfigCmd(d))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if _, err := topics.InitializeWithOptions(rootCmd, helpTopics(), topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	if helpCmd, _, err := rootCmd.Find([]string{"help"}); err == nil {
		helpCmd.GroupID = "misc"
	}

	return rootCmd
}
