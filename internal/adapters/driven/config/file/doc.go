// Package file provides file-based configuration for passman.
//
// Adapters:
//   - ConfigStore: TOML file at ~/.passman/config.toml
//   - EnvConfigStore: PASSMAN_* environment overrides layered over any store,
//     with optional .env loading
package file
