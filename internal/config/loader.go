package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// AppName names the per-user config directory.
const AppName = "stormview"

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "STORMVIEW_CONFIG"

var fileNames = []string{"config.toml", "config.yaml", "config.yml"}

// DefaultPath returns the config file to load.
// $STORMVIEW_CONFIG wins; otherwise the first existing file among
// config.toml, config.yaml and config.yml in <UserConfigDir>/stormview.
// When none exists the TOML path is returned. An empty string means no
// config directory could be determined.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(base, AppName)

	for _, name := range fileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(dir, fileNames[0])
}

// Load resolves the configuration: defaults, then the file at path, then
// environment variables. The result is validated. An empty path or a missing
// file leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := NewEnvLoader(EnvPrefix).Apply(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the file at path onto cfg. Settings absent from the file
// keep their current values. A missing file is not an error.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(cfg, path, data)
}

// parse decodes data according to the extension of path.
func parse(cfg *Config, path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return parseTOML(cfg, path, data)
	case ".yaml", ".yml":
		return parseYAML(cfg, path, data)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func parseTOML(cfg *Config, path string, data []byte) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		pe := &ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return pe
	}
	return nil
}

func parseYAML(cfg *Config, path string, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
	}
	return nil
}
