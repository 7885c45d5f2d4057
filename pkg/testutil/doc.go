// Package testutil provides utilities for testing webtc components.
//
// Key components:
//   - File helpers that create fixture trees under t.TempDir()
//   - RecordingFS: a types.FS wrapper that records every mutating call, so
//     tests can assert that a code path touched nothing or touched paths in
//     a given order
//   - NewTestFS: an in-memory filesystem for tests that never hit the disk
//
// All test data should be defined inline, not in external files.
package testutil
