package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Bootstrap is the process-level configuration loaded once at startup.
// Per-guild moderation state lives in Store, not here.
type Bootstrap struct {
	Bot      BotConfig      `mapstructure:"bot"`
	Data     DataConfig     `mapstructure:"data"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Watchdog WatchdogConfig `mapstructure:"watchdog"`
}

type BotConfig struct {
	Token string `mapstructure:"token"`
}

type DataConfig struct {
	Dir          string `mapstructure:"dir"`
	DatabasePath string `mapstructure:"database_path"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Directory  string `mapstructure:"directory"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type MetricsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ListenAddr string `mapstructure:"listen_addr"`
}

type WatchdogConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	IntervalSec int  `mapstructure:"interval_sec"`
}

// LoadBootstrap reads the process config file, with environment overrides
// (GUARDIAN_ prefix; DISCORD_TOKEN is honored for the bot token).
func LoadBootstrap(path string) (*Bootstrap, error) {
	v := viper.New()

	v.SetDefault("data.dir", "data")
	v.SetDefault("data.database_path", "data/guardian.db")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.directory", "logs")
	v.SetDefault("logger.max_size_mb", 50)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age_days", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.listen_addr", ":9190")
	v.SetDefault("watchdog.enabled", true)
	v.SetDefault("watchdog.interval_sec", 60)

	v.SetEnvPrefix("GUARDIAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("bot.token", "GUARDIAN_BOT_TOKEN", "DISCORD_TOKEN")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	var cfg Bootstrap
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
