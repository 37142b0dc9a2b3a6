// Package config handles loading and parsing the dnf-ui configuration file.
//
// # Overview
//
// This package reads a small TOML file that tells dnf-ui which binaries to
// drive and where to keep its own data. Every field is optional; a machine
// with dnf5 on PATH needs no configuration file at all.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/dnf-ui/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/dnf-ui/config.toml
//   - dnf binary: dnf5
//   - rpm binary: rpm
//   - Result cache size: 128 searches
//   - Search history: ~/.local/share/dnf-ui/history.db, 50 terms
//   - Log file: ~/.local/share/dnf-ui/dnf-ui.log, level info
//
// # TOML Format
//
// Example config.toml:
//
//	dnf_bin = "dnf5"
//	rpm_bin = "rpm"
//	cache_size = 128
//	history_path = "~/.local/share/dnf-ui/history.db"
//	history_limit = 50
//	log_path = "~/.local/share/dnf-ui/dnf-ui.log"
//	log_level = "info"
//
// Tilde expansion is performed automatically on every path field.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead.
// This allows dnf-ui to work out-of-the-box without configuration.
//
// # Design Philosophy
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct. Values the user
// changes at runtime (theme, pane split, search flags) do not belong here;
// they live in the prefs package, which writes back to disk.
package config
