// Package filesystem provides filesystem implementations for webtc.
//
// This package contains implementations of the types.FS interface:
// the OS filesystem used at runtime and an afero-backed filesystem used
// by tests that should not touch the disk.
package filesystem
