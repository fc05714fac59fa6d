// Package config loads Etcher's bootstrap configuration.
//
// # Overview
//
// The bootstrap file tells Etcher where the flashing daemon listens and where
// its own state lives on disk. User-facing application settings (the ones the
// settings overlay edits) are a separate concern handled by package settings.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/etcher/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/etcher/config.toml
//   - Daemon endpoint: 127.0.0.1:7489
//   - Settings file: ~/.config/etcher/settings.json
//   - Preferences file: ~/.config/etcher/prefs.toml
//   - Log file: ~/.local/state/etcher/etcher.log
//   - Poll interval: 1 second
//
// # Example config.toml
//
//	daemon_addr = "127.0.0.1:7489"
//	log_level = "debug"
//	poll_interval = 2
//
// # Error Handling
//
// A missing file is not an error. An unreadable or unparsable file is, since
// silently ignoring a broken config would point Etcher at the wrong daemon.
package config
