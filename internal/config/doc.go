// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/latebind/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/latebind/config.cue on macOS,
// %APPDATA%\latebind\config.cue on Windows) unless an explicit file is given. The file is
// validated against the embedded CUE schema (config_schema.cue) before it is merged over
// the defaults. Environment variables prefixed with LATEBIND_ override both, e.g.
// LATEBIND_LOG_LEVEL=debug or LATEBIND_RESOLVER_CRITERIA=name,culture.
package config
