// Package config resolves skyhook's settings.
//
// Resolution order, lowest to highest precedence:
//
//  1. Embedded TOML defaults (embedded/defaults.toml)
//  2. SKYHOOK_-prefixed environment variables
//  3. An optional key=value overrides file
//
// CLI flags are overlaid by the command layer after Load returns. The
// resolved Settings value is passed by parameter everywhere; nothing in
// the codebase reads configuration from ambient process state.
package config
