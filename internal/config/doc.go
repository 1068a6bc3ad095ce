// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as
// the file format.
//
// Configuration is loaded from ~/.config/mcpsetup/config.cue (or the XDG
// equivalent on Linux, ~/Library/Application Support/mcpsetup/config.cue on
// macOS, %APPDATA%\mcpsetup\config.cue on Windows). Every field has a
// default that reproduces the stock copilot-MCP bootstrap, so a config file
// is optional.
//
// Files are validated against an embedded CUE schema (config_schema.cue)
// before their values are merged into Viper.
package config
