package config

import (
	"errors"
	"fmt"
	"strings"

	internal "github.com/ZanzyTHEbar/stest/stest"
	"github.com/ZanzyTHEbar/stest/stest/common"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config stores the run settings that are not tests.
// The values are read by viper from flags, environment variables or a config file.
type Config struct {
	Workers int       `mapstructure:"workers"`
	Log     LogConfig `mapstructure:"log"`
	Exclude []string  `mapstructure:"exclude"`
}

// LogConfig stores logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// flagKeys maps command line flags to config keys
var flagKeys = map[string]string{
	"workers":   "workers",
	"log-level": "log.level",
	"exclude":   "exclude",
}

// LoadConfig reads configuration from configPath, or from the default config
// directory when configPath is empty, then applies STEST_* environment
// variables and any flags in flags that were set.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(internal.DefaultConfigPath)
		v.SetConfigName(internal.DefaultConfigName)
		v.SetConfigType(internal.DefaultConfigType)
	}

	v.SetDefault("workers", internal.DefaultWorkers)
	v.SetDefault("log.level", internal.DefaultLogLevel)
	v.SetDefault("exclude", []string{})

	v.SetEnvPrefix(internal.DefaultEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_")) // log.level becomes STEST_LOG_LEVEL
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file; defaults, environment and flags still apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values no flag parser can reject
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers %d: %w", c.Workers, common.ErrInvalidWorkers)
	}
	for _, p := range c.Exclude {
		if strings.TrimSpace(p) == "" {
			return common.ErrInvalidPattern
		}
	}
	return nil
}
