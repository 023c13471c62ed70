package config

import (
	"fmt"
	"os"
	"sort"
)

// EnvPrefix is the prefix shared by all stormview environment variables.
const EnvPrefix = "STORMVIEW_"

// EnvLoader applies environment variables to a Config.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "STORMVIEW_")
	mapping map[string]string // Env var -> config path
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "STORMVIEW_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
	}
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
	}
}

// defaultEnvMapping returns the default environment variable mappings.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":       "log.level",
		prefix + "LOG_FILE":        "log.file",
		prefix + "MESSAGE_TIMEOUT": "editor.message_timeout",
		prefix + "POLL_INTERVAL":   "editor.poll_interval",
		prefix + "SCRIPT":          "script.path",
	}
}

// Mapping returns the env var names this loader reads, sorted.
func (l *EnvLoader) Mapping() []string {
	names := make([]string, 0, len(l.mapping))
	for env := range l.mapping {
		names = append(names, env)
	}
	sort.Strings(names)
	return names
}

// Apply sets every mapped variable that is present in the environment.
// Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Apply(cfg *Config) error {
	for _, env := range l.Mapping() {
		val, ok := os.LookupEnv(env)
		if !ok {
			continue
		}
		if err := cfg.Set(l.mapping[env], val); err != nil {
			return fmt.Errorf("environment %s: %w", env, err)
		}
	}
	return nil
}
