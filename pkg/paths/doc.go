// Package paths resolves the source root and the directories webtc works in.
//
// The source root is found, in order, from:
//
//   - the WEBTC_ROOT environment variable
//   - the enclosing git repository (git rev-parse --show-toplevel)
//   - the current working directory, flagged as a fallback so the CLI can warn
//
// Every other directory (web/, web/apps/, the default build directory) is
// derived from the root and the [paths] configuration table.
package paths
