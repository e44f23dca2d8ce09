// Package config loads server configuration from an optional config file
// and HEARTH_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Auth   AuthConfig
	Log    LogConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr       string
	StaticPath string
}

// StoreConfig holds document store settings.
type StoreConfig struct {
	Path string
}

// AuthConfig holds session settings.
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenDuration time.Duration `mapstructure:"token_duration"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix
// HEARTH_, e.g. HEARTH_STORE_PATH or HEARTH_AUTH_JWT_SECRET.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.staticpath", "./frontend/static")
	v.SetDefault("store.path", filepath.Join("data", "hearth.db"))
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_duration", 24*time.Hour)
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("HEARTH_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "hearth"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("HEARTH")
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
