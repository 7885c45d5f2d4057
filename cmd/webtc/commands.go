package webtc

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/webtc/internal/version"
	"github.com/arthur-debert/webtc/pkg/commands"
	"github.com/arthur-debert/webtc/pkg/config"
	"github.com/arthur-debert/webtc/pkg/errors"
	"github.com/arthur-debert/webtc/pkg/paths"
	"github.com/arthur-debert/webtc/pkg/toolchain"
	"github.com/arthur-debert/webtc/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// session is the resolved configuration of one invocation.
type session struct {
	config *config.Config
	paths  paths.Paths
}

// loadSession finds the source root and loads its configuration, warning
// when the current directory is used as a fallback.
func loadSession(cmd *cobra.Command, overrides map[string]interface{}) (*session, error) {
	root, usedFallback, err := paths.FindRoot()
	if err != nil {
		return nil, err
	}
	if usedFallback {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, root)
	}

	cfg, err := config.Load(root, overrides)
	if err != nil {
		return nil, err
	}

	p, err := paths.FromRoot(root, usedFallback, cfg.Paths)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("root", p.Root()).
		Bool("fallback", usedFallback).
		Msg("Loaded configuration")
	return &session{config: cfg, paths: p}, nil
}

// initToolchain locates node and npm and brings the installs up to date.
func initToolchain(cmd *cobra.Command, d deps, s *session) (*toolchain.Toolchain, error) {
	force, _ := cmd.Root().PersistentFlags().GetBool("force-install")
	return toolchain.Initialize(cmd.Context(), toolchain.Options{
		Paths:    s.paths,
		Config:   s.config,
		FS:       d.fs,
		Runner:   d.runner,
		LookPath: d.lookPath,
		Force:    force,
	})
}

func render(cmd *cobra.Command, result interface{}) error {
	name, _ := cmd.Root().PersistentFlags().GetString("output")
	format, err := ui.ParseFormat(name)
	if err != nil {
		return err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return renderer.RenderResult(result)
}

func newInstallCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd, nil)
			if err != nil {
				return err
			}
			tc, err := initToolchain(cmd, d, s)
			if err != nil {
				return err
			}
			return render(cmd, commands.Install(commands.InstallOptions{Installs: tc.Installs()}))
		},
	}
}

func newPresubmitCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:     "presubmit",
		Short:   MsgPresubmitShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd, nil)
			if err != nil {
				return err
			}
			tc, err := initToolchain(cmd, d, s)
			if err != nil {
				return err
			}
			return commands.Presubmit(cmd.Context(), commands.PresubmitOptions{Toolchain: tc})
		},
	}
}

func newBuildCmd(d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "build [apps...]",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			var overrides map[string]interface{}
			if dir, _ := cmd.Flags().GetString("build-dir"); dir != "" {
				abs, err := filepath.Abs(dir)
				if err != nil {
					return errors.Wrapf(err, errors.ErrInvalidInput, "invalid build directory %s", dir)
				}
				overrides = map[string]interface{}{"paths.build": abs}
			}

			s, err := loadSession(cmd, overrides)
			if err != nil {
				return err
			}
			tc, err := initToolchain(cmd, d, s)
			if err != nil {
				return err
			}

			result, err := commands.Build(cmd.Context(), commands.BuildOptions{
				Toolchain: tc,
				Apps:      args,
				BuildDir:  s.paths.BuildDir(),
			})
			if err != nil {
				return err
			}
			return render(cmd, result)
		},
	}

	cmd.Flags().StringP("build-dir", "b", "", MsgFlagBuildDir)
	return cmd
}

func newGulpCmd(d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gulp [args...]",
		Short:   MsgGulpShort,
		Long:    MsgGulpLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd, nil)
			if err != nil {
				return err
			}
			tc, err := initToolchain(cmd, d, s)
			if err != nil {
				return err
			}
			return commands.Gulp(cmd.Context(), commands.GulpOptions{Toolchain: tc, Args: args})
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newGulpAppCmd(d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gulp-app APP [args...]",
		Short:   MsgGulpAppShort,
		Long:    MsgGulpAppLong,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd, nil)
			if err != nil {
				return err
			}
			tc, err := initToolchain(cmd, d, s)
			if err != nil {
				return err
			}
			return commands.Gulp(cmd.Context(), commands.GulpOptions{
				Toolchain: tc,
				App:       args[0],
				Args:      args[1:],
			})
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newCheckCmd(d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check [files...]",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		Example: MsgCheckExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			committing, _ := cmd.Flags().GetBool("commit")
			base, _ := cmd.Flags().GetString("base")
			junit, _ := cmd.Flags().GetString("junit")
			var description *string
			if cmd.Flags().Changed("description") {
				desc, _ := cmd.Flags().GetString("description")
				description = &desc
			}

			s, err := loadSession(cmd, nil)
			if err != nil {
				return err
			}

			// file arguments are relative to the working directory
			files := make([]string, 0, len(args))
			for _, f := range args {
				abs, err := filepath.Abs(f)
				if err != nil {
					return errors.Wrapf(err, errors.ErrInvalidInput, "invalid path %s", f)
				}
				files = append(files, abs)
			}
			if junit != "" {
				if junit, err = filepath.Abs(junit); err != nil {
					return errors.Wrapf(err, errors.ErrInvalidInput, "invalid report path")
				}
			}

			result, err := commands.Check(cmd.Context(), commands.CheckOptions{
				Config:     s.config,
				Paths:      s.paths,
				FS:         d.fs,
				Runner:     d.runner,
				Files:      files,
				Base:       base,
				Committing: committing,
				Now:        d.now(),
				JUnit:       junit,
				Description: description,
			})
			if err != nil {
				return err
			}
			if err := render(cmd, result); err != nil {
				return err
			}
			if result.Failed() {
				return errors.New(errors.ErrPresubmitFailed, MsgChecksFailed).
					WithDetail("findings", len(result.Findings))
			}
			return nil
		},
	}

	cmd.Flags().Bool("commit", false, MsgFlagCommit)
	cmd.Flags().String("base", "", MsgFlagBase)
	cmd.Flags().String("junit", "", MsgFlagJUnit)
	cmd.Flags().StringP("description", "m", "", MsgFlagDescription)
	return cmd
}

func newStatusCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd, nil)
			if err != nil {
				return err
			}
			result, err := commands.Status(commands.StatusOptions{
				Config: s.config,
				Paths:  s.paths,
				FS:     d.fs,
			})
			if err != nil {
				return err
			}
			return render(cmd, result)
		},
	}
}

func newGenConfigCmd(d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			effective, _ := cmd.Flags().GetBool("effective")
			write, _ := cmd.Flags().GetBool("write")

			s, err := loadSession(cmd, nil)
			if err != nil {
				return err
			}
			result, err := commands.GenConfig(commands.GenConfigOptions{
				Root:      s.paths.Root(),
				Effective: effective,
				Config:    s.config,
				Write:     write,
				FS:        d.fs,
			})
			if err != nil {
				return err
			}
			return render(cmd, result)
		},
	}

	cmd.Flags().Bool("effective", false, MsgFlagEffective)
	cmd.Flags().BoolP("write", "w", false, MsgFlagWrite)
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd.Run == nil {
				return fmt.Errorf("help command not found")
			}
			helpCmd.Run(helpCmd, []string{"topics"})
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
