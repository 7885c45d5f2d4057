package webtc

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Node.js toolchain and presubmit checks for the web applications"
	MsgInstallShort    = "Install the Node.js toolchain dependencies"
	MsgInstallLong     = "Install runs every installer whose package specification changed since its last successful install. Use --force-install to run them all."
	MsgPresubmitShort  = "Run the presubmit gulp target of the web applications"
	MsgBuildShort      = "Build web applications"
	MsgGulpShort       = "Run gulp for all web applications"
	MsgGulpAppShort    = "Run gulp for a single web application"
	MsgStatusShort     = "Show the state of the toolchain installers"
	MsgCheckShort      = "Check changed files against the license and whitespace policy"
	MsgGenConfigShort  = "Generate a configuration file"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgChecksFailed  = "presubmit checks failed"
	MsgVersionFormat = "webtc version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error messages
	MsgErrNoCommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v DEBUG, -vv TRACE)"
	MsgFlagForceInstall = "Force reinstall of the toolchain dependencies"
	MsgFlagOutput       = "Output format: auto, term, text or json"
	MsgFlagBuildDir     = "Directory the applications are built into"
	MsgFlagCommit       = "Check for a commit: findings are errors and the do-not-submit check runs"
	MsgFlagBase         = "Revision to diff against (default from presubmit.base)"
	MsgFlagJUnit        = "Write a JUnit XML report to `FILE`"
	MsgFlagDescription  = "Change description, checked with --commit"
	MsgFlagEffective    = "Print the configuration in effect instead of the commented defaults"
	MsgFlagWrite        = "Write .webtc.toml to the source root instead of stdout"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/gulp-long.txt
	msgGulpLongRaw string
	MsgGulpLong    = strings.TrimSpace(msgGulpLongRaw)

	//go:embed msgs/gulp-app-long.txt
	msgGulpAppLongRaw string
	MsgGulpAppLong    = strings.TrimSpace(msgGulpAppLongRaw)

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/check-example.txt
	msgCheckExampleRaw string
	MsgCheckExample    = strings.TrimRight(msgCheckExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw) + "\n"

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
