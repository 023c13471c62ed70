package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/stormview/internal/renderer/core"
)

// Default values.
const (
	DefaultLogLevel         = "info"
	DefaultMessageTimeout   = 5 * time.Second
	DefaultPollInterval     = 100 * time.Millisecond
	DefaultFiller           = "~"
	DefaultStatusForeground = "#3f3f3f"
	DefaultStatusBackground = "#efefef"
)

// Config holds every stormview setting.
type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	UI     UIConfig     `toml:"ui" yaml:"ui"`
	Script ScriptConfig `toml:"script" yaml:"script"`
}

// LogConfig configures the log file.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`
	// File is the log destination. Empty discards log output.
	File string `toml:"file" yaml:"file"`
}

// EditorConfig configures viewer behavior.
type EditorConfig struct {
	// MessageTimeout is how long a message stays on screen.
	MessageTimeout Duration `toml:"message_timeout" yaml:"message_timeout"`
	// PollInterval is the forced re-render period.
	PollInterval Duration `toml:"poll_interval" yaml:"poll_interval"`
	// Filler is drawn on rows past the end of the document.
	Filler string `toml:"filler" yaml:"filler"`
}

// UIConfig configures colours.
type UIConfig struct {
	StatusForeground string `toml:"status_foreground" yaml:"status_foreground"`
	StatusBackground string `toml:"status_background" yaml:"status_background"`
}

// ScriptConfig points at the optional Lua script.
type ScriptConfig struct {
	Path string `toml:"path" yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Editor: EditorConfig{
			MessageTimeout: Duration(DefaultMessageTimeout),
			PollInterval:   Duration(DefaultPollInterval),
			Filler:         DefaultFiller,
		},
		UI: UIConfig{
			StatusForeground: DefaultStatusForeground,
			StatusBackground: DefaultStatusBackground,
		},
	}
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Set assigns value to the setting at path, e.g. "editor.filler".
// Durations use time.ParseDuration syntax.
func (c *Config) Set(path, value string) error {
	switch path {
	case "log.level":
		c.Log.Level = value
	case "log.file":
		c.Log.File = value
	case "editor.message_timeout":
		return c.Editor.MessageTimeout.UnmarshalText([]byte(value))
	case "editor.poll_interval":
		return c.Editor.PollInterval.UnmarshalText([]byte(value))
	case "editor.filler":
		c.Editor.Filler = value
	case "ui.status_foreground":
		c.UI.StatusForeground = value
	case "ui.status_background":
		c.UI.StatusBackground = value
	case "script.path":
		c.Script.Path = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSetting, path)
	}
	return nil
}

var logLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error

	if !logLevels[strings.ToLower(strings.TrimSpace(c.Log.Level))] {
		errs = append(errs, &ValidationError{
			Path:    "log.level",
			Message: "must be one of debug, info, warn, error",
			Value:   c.Log.Level,
		})
	}
	if c.Editor.MessageTimeout <= 0 {
		errs = append(errs, &ValidationError{
			Path:    "editor.message_timeout",
			Message: "must be positive",
			Value:   c.Editor.MessageTimeout,
		})
	}
	if c.Editor.PollInterval <= 0 {
		errs = append(errs, &ValidationError{
			Path:    "editor.poll_interval",
			Message: "must be positive",
			Value:   c.Editor.PollInterval,
		})
	}
	if core.StringWidth(c.Editor.Filler) != 1 {
		errs = append(errs, &ValidationError{
			Path:    "editor.filler",
			Message: "must occupy exactly one cell",
			Value:   c.Editor.Filler,
		})
	}
	colours := []struct{ path, hex string }{
		{"ui.status_foreground", c.UI.StatusForeground},
		{"ui.status_background", c.UI.StatusBackground},
	}
	for _, col := range colours {
		if _, err := core.ColorFromHex(col.hex); err != nil {
			errs = append(errs, &ValidationError{
				Path:    col.path,
				Message: "must be a hex colour",
				Value:   col.hex,
			})
		}
	}

	return errors.Join(errs...)
}

// Duration is a time.Duration that reads and writes as "5s", "100ms".
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String implements fmt.Stringer.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	return d.UnmarshalText([]byte(node.Value))
}
