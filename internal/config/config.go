// Package config loads promptcraft settings from flags, environment and an
// optional YAML config file through viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/valpere/promptcraft/internal/provider"
)

const (
	EnvPrefix     = "PROMPTCRAFT"
	DefaultName   = ".promptcraft"
	DefaultDBPath = "./data/promptcraft.db"
	DefaultLang   = "English"
	DefaultOutput = "human"
	geminiKeyEnv  = "GEMINI_API_KEY"
	keyAPIKey     = "api_key"
)

var outputFormats = []string{"human", "json", "yaml"}

type Config struct {
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	BaseURL  string `mapstructure:"base_url"`
	Language string `mapstructure:"language"`
	DBPath   string `mapstructure:"db"`
	History  bool   `mapstructure:"history"`
	Strict   bool   `mapstructure:"strict"`
	Verbose  bool   `mapstructure:"verbose"`
	Output   string `mapstructure:"output"`
}

// SetDefaults registers default values and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("provider", provider.NameGemini)
	v.SetDefault("model", "")
	v.SetDefault("base_url", "")
	v.SetDefault("language", DefaultLang)
	v.SetDefault("db", DefaultDBPath)
	v.SetDefault("history", true)
	v.SetDefault("strict", false)
	v.SetDefault("verbose", false)
	v.SetDefault("output", DefaultOutput)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// PROMPTCRAFT_API_KEY wins over GEMINI_API_KEY.
	_ = v.BindEnv(keyAPIKey, EnvPrefix+"_API_KEY", geminiKeyEnv)
}

// ReadFile loads configFile, or $HOME/.promptcraft.yaml when empty.
// A missing file is not an error; an explicit path is still remembered as
// the place SaveAPIKey writes to.
func ReadFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(home)
		v.SetConfigName(DefaultName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && configFile == "" {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	if cfg.Model == "" {
		cfg.Model = provider.DefaultModel(cfg.Provider)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	known := false
	for _, name := range provider.Available() {
		if c.Provider == name {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown provider %q (supported: %s)", c.Provider, strings.Join(provider.Available(), ", "))
	}

	for _, f := range outputFormats {
		if c.Output == f {
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q (supported: %s)", c.Output, strings.Join(outputFormats, ", "))
}

// FilePath returns the config file in use, or the default location that
// SaveAPIKey writes to.
func FilePath(v *viper.Viper) (string, error) {
	if f := v.ConfigFileUsed(); f != "" {
		return f, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate home directory: %w", err)
	}
	return filepath.Join(home, DefaultName+".yaml"), nil
}

// SaveAPIKey stores key in the config file, creating it with 0600 when absent.
func SaveAPIKey(v *viper.Viper, key string) (string, error) {
	return writeKey(v, key)
}

// ClearAPIKey blanks the stored key in the config file.
func ClearAPIKey(v *viper.Viper) (string, error) {
	return writeKey(v, "")
}

func writeKey(v *viper.Viper, key string) (string, error) {
	path, err := FilePath(v)
	if err != nil {
		return "", err
	}

	// Write only what the file already holds plus the key, so flag and
	// environment values never leak into the file.
	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType("yaml")
	if _, statErr := os.Stat(path); statErr == nil {
		if err := file.ReadInConfig(); err != nil {
			return "", fmt.Errorf("failed to read config: %w", err)
		}
	}
	file.Set(keyAPIKey, key)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := file.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return "", fmt.Errorf("failed to restrict config permissions: %w", err)
	}

	v.Set(keyAPIKey, key)
	return path, nil
}

// MaskKey hides all but the last four characters of key.
func MaskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
