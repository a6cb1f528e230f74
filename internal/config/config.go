package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Keepalive KeepaliveConfig `mapstructure:"keepalive"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig represents the HTTP listener configuration
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// UpstreamConfig represents the feiertage-api.de client configuration
type UpstreamConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`
}

// KeepaliveConfig represents the self-ping task configuration.
// URL is resolved from KEEPALIVE_URL, falling back to the platform's
// RENDER_EXTERNAL_URL; when both are absent the task stays disabled.
type KeepaliveConfig struct {
	URL      string `mapstructure:"url"`
	Interval string `mapstructure:"interval"`
	Timeout  string `mapstructure:"timeout"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load loads configuration from file plus environment variables. A
// missing config file is fine (env-only deployments); a broken one is
// still an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/feiertage-api")
	}

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("upstream.base_url", "https://feiertage-api.de/api/")
	v.SetDefault("upstream.timeout", "5s")
	v.SetDefault("keepalive.interval", "30s")
	v.SetDefault("keepalive.timeout", "5s")
	v.SetDefault("log.level", "info")

	// Read environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.addr", "SERVER_ADDR")
	_ = v.BindEnv("upstream.base_url", "UPSTREAM_BASE_URL")
	_ = v.BindEnv("keepalive.url", "KEEPALIVE_URL", "RENDER_EXTERNAL_URL")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.file", "LOG_FILE")

	// Hosting platforms hand out the listen port separately
	if port := v.GetString("PORT"); port != "" {
		v.Set("server.addr", ":"+port)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.base_url is required")
	}
	if c.Upstream.GetTimeout() <= 0 {
		return fmt.Errorf("upstream.timeout must be a positive duration")
	}
	if c.Keepalive.GetInterval() <= 0 {
		return fmt.Errorf("keepalive.interval must be a positive duration")
	}
	if c.Keepalive.GetTimeout() <= 0 {
		return fmt.Errorf("keepalive.timeout must be a positive duration")
	}
	return nil
}

// GetTimeout returns the upstream call timeout duration
func (c *UpstreamConfig) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 5*time.Second)
}

// GetInterval returns the pause between keepalive pings
func (c *KeepaliveConfig) GetInterval() time.Duration {
	return parseDuration(c.Interval, 30*time.Second)
}

// GetTimeout returns the per-ping timeout duration
func (c *KeepaliveConfig) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 5*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	duration, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return duration
}
