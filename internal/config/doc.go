// Package config provides the configuration system for stormview.
//
// Configuration is resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← STORMVIEW_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/stormview/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The config file may be TOML (config.toml) or YAML (config.yaml,
// config.yml). A missing file is not an error; the defaults apply.
//
// # Basic Usage
//
//	cfg, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // non-fatal: log and continue with config.Default()
//	}
//
// # Live Reload
//
// A Watcher observes the directory holding the config file and delivers a
// Reload on every change to the file:
//
//	w, err := config.NewWatcher(path)
//	for r := range w.Changes() {
//	    if r.Err == nil {
//	        apply(r.Config)
//	    }
//	}
package config
