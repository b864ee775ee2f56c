package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tinytelemetry/dealer365/internal/model"
	"github.com/tinytelemetry/dealer365/internal/workspace"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	defaultRole         = model.DefaultRole
	defaultTypingDelay  = model.DefaultTypingDelay
	defaultQueryTimeout = model.DefaultQueryTimeout
)

// appConfig is the runtime configuration of every subcommand.
type appConfig struct {
	Role               string        `mapstructure:"role"`
	Sidebar            bool          `mapstructure:"sidebar"`
	TypingDelay        time.Duration `mapstructure:"typing-delay"`
	ReverseScrollWheel bool          `mapstructure:"reverse-scroll-wheel"`
	LogLevel           string        `mapstructure:"log-level"`
	LogFile            string        `mapstructure:"log-file"`
	RatesFile          string        `mapstructure:"rates-file"`
	QueryTimeout       time.Duration `mapstructure:"query-timeout"`
	ConfigPath         string        `mapstructure:"-"`
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	// A missing .env is normal.
	_ = godotenv.Load()

	home, err := homedir.Dir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("DEALER365")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("role", defaultRole)
	v.SetDefault("sidebar", true)
	v.SetDefault("typing-delay", defaultTypingDelay)
	v.SetDefault("reverse-scroll-wheel", false)
	v.SetDefault("log-level", "")
	v.SetDefault("log-file", filepath.Join(home, ".local", "state", "dealer365", "dealer365.log"))
	v.SetDefault("rates-file", "")
	v.SetDefault("query-timeout", defaultQueryTimeout)

	if configPath != "" {
		expanded, err := homedir.Expand(configPath)
		if err != nil {
			return cfg, fmt.Errorf("expanding config path: %w", err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "dealer365", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	for _, p := range []*string{&cfg.LogFile, &cfg.RatesFile} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return cfg, fmt.Errorf("expanding %q: %w", *p, err)
		}
		*p = expanded
	}

	if _, ok := parseRole(cfg.Role); !ok {
		return cfg, fmt.Errorf("invalid role %q: want one of manager, sales, service, technician", cfg.Role)
	}
	if cfg.TypingDelay < 0 {
		return cfg, fmt.Errorf("invalid typing-delay: %s", cfg.TypingDelay)
	}

	return cfg, nil
}

// parseRole accepts a role name in any case.
func parseRole(s string) (workspace.Role, bool) {
	return workspace.ParseRole(strings.ToUpper(strings.TrimSpace(s)))
}
