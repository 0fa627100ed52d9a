// Package config provides redit's settings.
//
// Settings are resolved in layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. The config file: <UserConfigDir>/redit/config.toml, or the file
//     passed with --config (TOML or YAML)
//  3. REDIT_* environment variables
//  4. Command line flags, applied by the caller
//
// # Basic Usage
//
//	cfg, err := config.Load(config.Options{Path: path})
//	if err != nil {
//	    return err
//	}
//	width := cfg.Editor.TabWidth
//
// # File Format
//
//	[editor]
//	tab_width = 4
//	mouse = true
//
//	[clipboard]
//	provider = "system"
//
//	[theme]
//	style = "monokai"
//
//	[log]
//	level = "debug"
//	file = "/tmp/redit.log"
package config
