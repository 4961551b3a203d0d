// Package config loads pagenav settings from flags, environment and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/taigrr/obsidian-pagenav/internal/navigation"
)

// FileName is looked up in the vault root when no config file is given.
const FileName = ".pagenav.yaml"

// Config holds the resolved settings.
type Config struct {
	VaultPath    string   `mapstructure:"vault"`
	RootIndex    string   `mapstructure:"root_index"`
	UntitledName string   `mapstructure:"untitled_name"`
	Extension    string   `mapstructure:"extension"`
	Ignore       []string `mapstructure:"ignore"`
	LogLevel     string   `mapstructure:"log_level"`
	Watch        bool     `mapstructure:"watch"`
}

// Load resolves settings for the vault at vaultPath. Flags override
// PAGENAV_* environment variables, which override the config file. An
// explicit configFile must exist; the default one is optional.
func Load(vaultPath, configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("vault", vaultPath)
	v.SetDefault("root_index", navigation.DefaultRootIndex)
	v.SetDefault("untitled_name", navigation.DefaultUntitledName)
	v.SetDefault("extension", navigation.DefaultExtension)
	v.SetDefault("ignore", []string{})
	v.SetDefault("log_level", "warn")
	v.SetDefault("watch", false)

	v.SetEnvPrefix("PAGENAV")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{"root-index", "untitled-name", "log-level", "watch", "ignore"} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(strings.ReplaceAll(key, "-", "_"), f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", key, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigFile(DefaultConfigPath(vaultPath))
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.VaultPath = vaultPath
	cfg.Extension = strings.TrimPrefix(cfg.Extension, ".")
	return &cfg, nil
}

// Logger builds the stderr logger at the configured level. stdout is left
// alone since the MCP transport owns it.
func (c *Config) Logger() (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	logger.SetLevel(level)
	return logger, nil
}

// DefaultConfigPath is where `pagenav` looks for a config file in a vault.
func DefaultConfigPath(vaultPath string) string {
	return filepath.Join(vaultPath, FileName)
}
