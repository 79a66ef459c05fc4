package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for an empath invocation. Values
// are layered: defaults <- config.yaml <- EMPATH_* env vars <- CLI flags.
type Config struct {
	Provider    string  `mapstructure:"provider" yaml:"provider"`
	Model       string  `mapstructure:"model" yaml:"model"`
	Persona     string  `mapstructure:"persona" yaml:"persona"`
	PersonaFile string  `mapstructure:"persona_file" yaml:"persona_file"`
	Format      string  `mapstructure:"format" yaml:"format"`
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`

	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Privacy PrivacyConfig `mapstructure:"privacy" yaml:"privacy"`
	History HistoryConfig `mapstructure:"history" yaml:"history"`
}

// CacheConfig controls LLM response caching.
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir        string `mapstructure:"dir" yaml:"dir"`
	TTLSeconds int    `mapstructure:"ttl_seconds" yaml:"ttl_seconds"`
}

// PrivacyConfig controls snippet redaction.
type PrivacyConfig struct {
	RedactSecrets bool `mapstructure:"redact_secrets" yaml:"redact_secrets"`
}

// HistoryConfig controls the local run history store.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// Dir returns the platform-appropriate config directory for empath.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "empath"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "empath"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "empath"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "empath"), nil
	default:
		return filepath.Join(home, ".config", "empath"), nil
	}
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Init wires viper to the empath config file, env prefix, and defaults.
// Call once from the CLI before Load.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(dir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("EMPATH")
	viper.AutomaticEnv()

	viper.SetDefault("provider", "anthropic")
	viper.SetDefault("model", "claude-sonnet-4-20250514")
	viper.SetDefault("persona", "senior_developer")
	viper.SetDefault("persona_file", "")
	viper.SetDefault("format", "text")
	viper.SetDefault("max_tokens", 4096)
	viper.SetDefault("temperature", 0.7)
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.dir", "")
	viper.SetDefault("cache.ttl_seconds", 86400)
	viper.SetDefault("privacy.redact_secrets", true)
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.path", "")

	// A missing config file is fine; defaults and env still apply.
	_ = viper.ReadInConfig()
	return nil
}

// Load materializes the effective configuration from viper.
func Load() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// WriteDefault writes a commented starter config file, creating the config
// directory if needed. Fails if the file already exists.
func WriteDefault() (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}

const defaultConfigYAML = `# empath configuration
provider: anthropic
model: claude-sonnet-4-20250514
persona: senior_developer
# persona_file: /path/to/personas.yaml
format: text
max_tokens: 4096
temperature: 0.7

cache:
  enabled: true
  ttl_seconds: 86400

privacy:
  redact_secrets: true

history:
  enabled: true
`
