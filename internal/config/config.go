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
	UI     UIConfig     `mapstructure:"ui"`
	Log    LogConfig    `mapstructure:"log"`
	Import ImportConfig `mapstructure:"import"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	Timezone       string `mapstructure:"timezone"`
	DateFormat     string `mapstructure:"date_format"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path string `mapstructure:"path"`
}

// ImportConfig holds bulk-import defaults.
type ImportConfig struct {
	DefaultPath string `mapstructure:"default_path"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// INNBOARD_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.timezone", "Asia/Kolkata")
	v.SetDefault("ui.date_format", "02 Jan")
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "innboard", "innboard.log"))
	v.SetDefault("import.default_path", "bookings.csv")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("INNBOARD_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "innboard"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("INNBOARD")
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

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the settings view for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("INNBOARD_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "innboard", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("log.path", cfg.Log.Path)
	v.Set("import.default_path", cfg.Import.DefaultPath)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
