// Package config loads webtc configuration.
//
// Configuration is layered with koanf, later layers overriding earlier ones:
//
//  1. the embedded defaults (embedded/defaults.toml)
//  2. <root>/.webtc.toml, when present
//  3. WEBTC_* environment variables (WEBTC_TOOLCHAIN_NODE sets toolchain.node)
//  4. explicit overrides, usually from command-line flags
//
// Arrays are replaced, not merged: a .webtc.toml that declares
// [[installers]] replaces the whole default installer list.
package config
