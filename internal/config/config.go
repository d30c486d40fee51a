// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Store StoreConfig
	AI    AIConfig
}

// StoreConfig holds sqlite settings.
type StoreConfig struct {
	Path string
}

// AIConfig holds advice-provider settings. The API key is read from the
// environment variable named in APIKeyEnv when APIKey itself is empty.
type AIConfig struct {
	Provider  string
	APIKeyEnv string `mapstructure:"api_key_env"`
	APIKey    string `mapstructure:"api_key"`
	Model     string
}

// Load reads configuration from file and env. Env var overrides use prefix
// FININSIGHT_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("store.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "fininsight", "fininsight.db"))
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.api_key_env", "GEMINI_API_KEY")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("FININSIGHT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "fininsight"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FININSIGHT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// ResolveAPIKey returns the configured API key, falling back to the named
// environment variable.
func (c AIConfig) ResolveAPIKey() (string, error) {
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	if c.APIKeyEnv != "" {
		if key := os.Getenv(c.APIKeyEnv); key != "" {
			return key, nil
		}
	}
	return "", fmt.Errorf("no API key configured for provider %q (set ai.api_key or %s)", c.Provider, c.APIKeyEnv)
}
