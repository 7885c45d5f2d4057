// Package types defines the small set of interfaces shared across webtc
// packages, most importantly the FS abstraction used by the install gate.
package types
