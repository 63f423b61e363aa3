package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// APIConfig describes how to reach the CitéFix backend.
type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// ListConfig holds defaults for list rendering.
type ListConfig struct {
	PageSize int
	CacheTTL time.Duration
}

// Config holds the client configuration.
type Config struct {
	Environment string
	LogLevel    string
	StateDir    string
	API         APIConfig
	List        ListConfig
}

// Load reads configuration from an optional ~/.citefix/config.yaml plus
// CITEFIX_* environment variables, falling back to built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := defaultStateDir(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("CITEFIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.StringToTimeDurationHookFunc()
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.StateDir == "" {
		dir, err := defaultStateDir()
		if err != nil {
			return nil, fmt.Errorf("resolve state dir: %w", err)
		}
		cfg.StateDir = dir
	}
	if cfg.List.PageSize < 1 {
		return nil, fmt.Errorf("list.pagesize must be positive, got %d", cfg.List.PageSize)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("loglevel", "info")

	v.SetDefault("api.baseurl", "http://localhost:3000/api")
	v.SetDefault("api.requesttimeout", "15s")

	// The citizen list renders nine cards per page.
	v.SetDefault("list.pagesize", 9)
	v.SetDefault("list.cachettl", "30s")
}

func defaultStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".citefix"), nil
}
