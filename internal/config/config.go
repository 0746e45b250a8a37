package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is the book API used when nothing else is configured
const DefaultBaseURL = "https://rest-api-server-book.onrender.com"

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Network NetworkConfig `mapstructure:"network"`
	History HistoryConfig `mapstructure:"history"`
	UI      UIConfig      `mapstructure:"ui"`
}

// APIConfig holds the book API settings
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// NetworkConfig holds network settings
type NetworkConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	RetryAttempts   int           `mapstructure:"retry_attempts"`
	RetryBaseDelay  time.Duration `mapstructure:"retry_base_delay"`
	RetryMaxDelay   time.Duration `mapstructure:"retry_max_delay"`
	RetryMultiplier float64       `mapstructure:"retry_multiplier"`
	UserAgent       string        `mapstructure:"user_agent"`
}

// HistoryConfig holds command history settings
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Limit   int  `mapstructure:"limit"`
}

// UIConfig holds terminal output settings
type UIConfig struct {
	Spinner bool   `mapstructure:"spinner"`
	Prompt  string `mapstructure:"prompt"`
}

var cfg *Config

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bookshelf")
}

// GetDBPath returns the database file path
func GetDBPath() string {
	return filepath.Join(GetConfigDir(), "bookshelf.db")
}

// GetConfigPath returns the config file path
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Init initializes the configuration
func Init(cfgFile string) error {
	viper.SetDefault("api.base_url", DefaultBaseURL)
	viper.SetDefault("network.timeout", 5*time.Second)
	viper.SetDefault("network.retry_attempts", 1) // a single attempt, no retry
	viper.SetDefault("network.retry_base_delay", 500*time.Millisecond)
	viper.SetDefault("network.retry_max_delay", 5*time.Second)
	viper.SetDefault("network.retry_multiplier", 2.0)
	viper.SetDefault("network.user_agent", "bookshelf (+https://github.com/billmal071/bookshelf)")
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.limit", 20)
	viper.SetDefault("ui.spinner", true)
	viper.SetDefault("ui.prompt", "") // empty keeps the built-in prompt

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(GetConfigDir())
	}

	// Environment variable overrides
	viper.SetEnvPrefix("BOOKSHELF")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file (ignore if not found)
	_ = viper.ReadInConfig()

	cfg = nil
	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		cfg = &Config{}
		viper.Unmarshal(cfg)
		cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
		if cfg.API.BaseURL == "" {
			cfg.API.BaseURL = DefaultBaseURL
		}
	}
	return cfg
}

// Override sets a value for this process only, without writing the config file.
// Used for command-line flags.
func Override(key string, value interface{}) {
	viper.Set(key, value)
	cfg = nil
}

// Set sets a configuration value
func Set(key, value string) error {
	viper.Set(key, value)

	// Ensure config directory exists
	configDir := GetConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	// Reset cached config
	cfg = nil

	return viper.WriteConfigAs(GetConfigPath())
}

// GetValue retrieves a configuration value
func GetValue(key string) interface{} {
	return viper.Get(key)
}

// Reset drops all settings. Tests call it between cases.
func Reset() {
	viper.Reset()
	cfg = nil
}
