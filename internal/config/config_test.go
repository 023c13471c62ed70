package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Editor.MessageTimeout.Std() != 5*time.Second {
		t.Errorf("MessageTimeout = %v, want 5s", cfg.Editor.MessageTimeout)
	}
	if cfg.Editor.PollInterval.Std() != 100*time.Millisecond {
		t.Errorf("PollInterval = %v, want 100ms", cfg.Editor.PollInterval)
	}
	if cfg.Editor.Filler != "~" {
		t.Errorf("Filler = %q, want ~", cfg.Editor.Filler)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
[log]
level = "debug"

[editor]
message_timeout = "2s"
filler = "·"

[ui]
status_background = "#000"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Editor.MessageTimeout.Std() != 2*time.Second {
		t.Errorf("MessageTimeout = %v, want 2s", cfg.Editor.MessageTimeout)
	}
	if cfg.Editor.Filler != "·" {
		t.Errorf("Filler = %q", cfg.Editor.Filler)
	}
	if cfg.UI.StatusBackground != "#000" {
		t.Errorf("StatusBackground = %q", cfg.UI.StatusBackground)
	}
	// Untouched settings keep defaults.
	if cfg.Editor.PollInterval.Std() != DefaultPollInterval {
		t.Errorf("PollInterval = %v, want default", cfg.Editor.PollInterval)
	}
	if cfg.UI.StatusForeground != DefaultStatusForeground {
		t.Errorf("StatusForeground = %q, want default", cfg.UI.StatusForeground)
	}
}

func TestLoadYAML(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), name, `
log:
  level: warn
  file: /tmp/stormview.log
editor:
  poll_interval: 250ms
script:
  path: hooks.lua
`)
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Log.Level != "warn" || cfg.Log.File != "/tmp/stormview.log" {
				t.Errorf("Log = %+v", cfg.Log)
			}
			if cfg.Editor.PollInterval.Std() != 250*time.Millisecond {
				t.Errorf("PollInterval = %v", cfg.Editor.PollInterval)
			}
			if cfg.Script.Path != "hooks.lua" {
				t.Errorf("Script.Path = %q", cfg.Script.Path)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Editor.Filler != DefaultFiller {
		t.Errorf("missing file should give defaults, got filler %q", cfg.Editor.Filler)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if _, err := Load(""); err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
}

func TestLoadParseError(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "config.toml", "[log\nlevel = 1"},
		{"toml bad duration", "config.toml", "[editor]\nmessage_timeout = \"soon\"\n"},
		{"yaml", "config.yaml", "log: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			_, err := Load(path)

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Load() error = %v, want *ParseError", err)
			}
			if pe.Path != path {
				t.Errorf("ParseError.Path = %q, want %q", pe.Path, path)
			}
			if !strings.Contains(pe.Error(), path) {
				t.Errorf("Error() = %q should mention the path", pe.Error())
			}
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.ini", "level=debug")
	_, err := Load(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadValidationError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[ui]\nstatus_foreground = \"teal\"\n")
	_, err := Load(path)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Load() error = %v, want *ValidationError", err)
	}
	if ve.Path != "ui.status_foreground" {
		t.Errorf("ValidationError.Path = %q", ve.Path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"timeout", func(c *Config) { c.Editor.MessageTimeout = 0 }, "editor.message_timeout"},
		{"poll", func(c *Config) { c.Editor.PollInterval = -1 }, "editor.poll_interval"},
		{"empty filler", func(c *Config) { c.Editor.Filler = "" }, "editor.filler"},
		{"long filler", func(c *Config) { c.Editor.Filler = "~~" }, "editor.filler"},
		{"wide filler", func(c *Config) { c.Editor.Filler = "世" }, "editor.filler"},
		{"background", func(c *Config) { c.UI.StatusBackground = "#12" }, "ui.status_background"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if ve.Path != tt.path {
				t.Errorf("ValidationError.Path = %q, want %q", ve.Path, tt.path)
			}
		})
	}
}

func TestValidateLevelCase(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "WARN"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("editor.filler", "."); err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.Filler != "." {
		t.Errorf("Filler = %q", cfg.Editor.Filler)
	}
	if err := cfg.Set("editor.message_timeout", "1m"); err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.MessageTimeout.Std() != time.Minute {
		t.Errorf("MessageTimeout = %v", cfg.Editor.MessageTimeout)
	}
	if err := cfg.Set("editor.poll_interval", "fast"); err == nil {
		t.Error("Set() with bad duration should fail")
	}
	if err := cfg.Set("editor.tab_size", "4"); !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("Set() unknown = %v, want ErrUnknownSetting", err)
	}
}

func TestClone(t *testing.T) {
	cfg := Default()
	cp := cfg.Clone()
	cp.Editor.Filler = "."

	if cfg.Editor.Filler != DefaultFiller {
		t.Error("Clone() shares state with original")
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte(" 1500ms ")); err != nil {
		t.Fatal(err)
	}
	if d.Std() != 1500*time.Millisecond {
		t.Errorf("Duration = %v", d)
	}
	text, _ := d.MarshalText()
	if string(text) != "1.5s" {
		t.Errorf("MarshalText() = %q, want 1.5s", text)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[log]\nlevel = \"debug\"\n")

	t.Setenv("STORMVIEW_LOG_LEVEL", "error")
	t.Setenv("STORMVIEW_MESSAGE_TIMEOUT", "3s")
	t.Setenv("STORMVIEW_SCRIPT", "/etc/stormview.lua")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("env should override file: Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Editor.MessageTimeout.Std() != 3*time.Second {
		t.Errorf("MessageTimeout = %v", cfg.Editor.MessageTimeout)
	}
	if cfg.Script.Path != "/etc/stormview.lua" {
		t.Errorf("Script.Path = %q", cfg.Script.Path)
	}
}

func TestEnvBadValue(t *testing.T) {
	t.Setenv("STORMVIEW_POLL_INTERVAL", "often")

	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "STORMVIEW_POLL_INTERVAL") {
		t.Errorf("Load() error = %v, want mention of variable", err)
	}
}

func TestEnvLoaderCustomMapping(t *testing.T) {
	t.Setenv("TEST_FILL", "#")

	l := NewEnvLoaderWithMapping("TEST_", map[string]string{"TEST_FILL": "editor.filler"})
	cfg := Default()
	if err := l.Apply(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.Filler != "#" {
		t.Errorf("Filler = %q, want #", cfg.Editor.Filler)
	}
}

func TestEnvMapping(t *testing.T) {
	names := NewEnvLoader(EnvPrefix).Mapping()
	want := []string{
		"STORMVIEW_LOG_FILE",
		"STORMVIEW_LOG_LEVEL",
		"STORMVIEW_MESSAGE_TIMEOUT",
		"STORMVIEW_POLL_INTERVAL",
		"STORMVIEW_SCRIPT",
	}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Mapping() = %v, want %v", names, want)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/custom/config.yaml")
		if got := DefaultPath(); got != "/custom/config.yaml" {
			t.Errorf("DefaultPath() = %q", got)
		}
	})

	t.Run("prefers existing yaml", func(t *testing.T) {
		base := t.TempDir()
		t.Setenv(EnvConfigPath, "")
		t.Setenv("XDG_CONFIG_HOME", base)
		t.Setenv("HOME", base)

		dir, err := os.UserConfigDir()
		if err != nil {
			t.Skip("no user config dir")
		}
		if err := os.MkdirAll(filepath.Join(dir, AppName), 0o755); err != nil {
			t.Fatal(err)
		}

		if got := DefaultPath(); got != filepath.Join(dir, AppName, "config.toml") {
			t.Errorf("DefaultPath() = %q, want toml fallback", got)
		}

		yml := writeFile(t, filepath.Join(dir, AppName), "config.yml", "")
		if got := DefaultPath(); got != yml {
			t.Errorf("DefaultPath() = %q, want %q", got, yml)
		}
	})
}

func TestParseErrorFormat(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a.toml", Line: 2, Column: 5, Message: "bad"}, "parse error in a.toml at line 2, column 5: bad"},
		{&ParseError{Path: "a.toml", Line: 2, Message: "bad"}, "parse error in a.toml at line 2: bad"},
		{&ParseError{Path: "a.toml", Message: "bad"}, "parse error in a.toml: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
