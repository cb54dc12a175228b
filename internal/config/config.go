// Package config loads the whctl configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Sternrassler/wallhaven-client/pkg/client"
	"github.com/Sternrassler/wallhaven-client/pkg/logging"
)

// EnvPrefix prefixes every environment override, e.g. WALLHAVEN_API_KEY.
const EnvPrefix = "WALLHAVEN"

// Config represents the application configuration.
type Config struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
	PageDelay time.Duration `mapstructure:"page_delay"`
	Retry     RetryConfig   `mapstructure:"retry"`
	Redis     RedisConfig   `mapstructure:"redis"`
	Log       LogConfig     `mapstructure:"log"`
	Serve     ServeConfig   `mapstructure:"serve"`
}

// RetryConfig configures retries of server and network errors.
type RetryConfig struct {
	MaxAttempts    int           `mapstructure:"max_attempts"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
	MaxBackoff     time.Duration `mapstructure:"max_backoff"`
}

// RedisConfig locates the preset store.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Pretty     bool   `mapstructure:"pretty"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// ServeConfig configures whctl serve.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

func setDefaults(v *viper.Viper) {
	clientDefaults := client.DefaultConfig("")
	logDefaults := logging.DefaultConfig()

	v.SetDefault("api_key", "")
	v.SetDefault("base_url", clientDefaults.BaseURL)
	v.SetDefault("user_agent", clientDefaults.UserAgent)
	v.SetDefault("timeout", clientDefaults.Timeout)
	v.SetDefault("page_delay", clientDefaults.PageDelay)
	v.SetDefault("retry.max_attempts", clientDefaults.Retry.MaxAttempts)
	v.SetDefault("retry.initial_backoff", clientDefaults.Retry.InitialBackoff)
	v.SetDefault("retry.max_backoff", clientDefaults.Retry.MaxBackoff)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "wallhaven")
	v.SetDefault("log.level", string(logDefaults.Level))
	v.SetDefault("log.pretty", true)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", logDefaults.File.MaxSize)
	v.SetDefault("log.max_backups", logDefaults.File.MaxBackups)
	v.SetDefault("log.max_age", logDefaults.File.MaxAge)
	v.SetDefault("log.compress", logDefaults.File.Compress)
	v.SetDefault("serve.addr", ":8080")
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over config file values, and a
// missing default config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		configDir, err := defaultConfigDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case configPath == "" && os.IsNotExist(err):
		case configPath != "" && errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("config file %s not found", configPath)
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

func defaultConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "whctl"), nil
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() (string, error) {
	dir, err := defaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ClientConfig converts the configuration into a wallhaven client configuration.
func (c *Config) ClientConfig() client.Config {
	cfg := client.DefaultConfig(c.APIKey)
	cfg.BaseURL = c.BaseURL
	cfg.UserAgent = c.UserAgent
	cfg.Timeout = c.Timeout
	cfg.PageDelay = c.PageDelay
	cfg.Retry.MaxAttempts = c.Retry.MaxAttempts
	cfg.Retry.InitialBackoff = c.Retry.InitialBackoff
	cfg.Retry.MaxBackoff = c.Retry.MaxBackoff
	return cfg
}

// LoggingConfig converts the configuration into a logging configuration.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.LogLevel(c.Log.Level)
	cfg.Pretty = c.Log.Pretty
	cfg.File = logging.FileConfig{
		Path:       c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
		Compress:   c.Log.Compress,
	}
	return cfg
}
