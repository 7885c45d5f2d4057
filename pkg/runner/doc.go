// Package runner executes external commands for webtc.
//
// Commands are values (Command) handed to a Runner. The Exec runner streams
// the child's stdout and stderr into a single writer and turns a non-zero
// exit status into an *errors.ExitError so callers can propagate the child's
// status as their own. The Recorder runner records commands instead of
// running them and is used throughout the tests.
package runner
