// Package gate decides whether an expensive install action has to run again.
//
// A gate compares the raw bytes of a specification file (for example
// web/package.json) against a marker file written after the last successful
// install (web/.npm.installed). When they match the gate does nothing. When
// they differ, or when the caller forces a reinstall, the gate purges the
// install outputs and the marker, runs the action and, only if the action
// succeeds, records the specification snapshot as the new marker.
//
// The marker is the single source of truth: either it is absent and the
// outputs are considered stale, or it equals the specification the outputs
// were produced from. The comparison is byte-for-byte; a reordered but
// equivalent manifest triggers a reinstall.
//
// There is no locking. Two processes gating the same marker can both decide
// the install is stale and both run the action; the last marker write wins.
package gate
