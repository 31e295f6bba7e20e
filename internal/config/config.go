package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type SMTPConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type CampaignConfig struct {
	DispatchInterval time.Duration `mapstructure:"dispatch_interval"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Campaign  CampaignConfig  `mapstructure:"campaign"`
	SeedDemo  bool            `mapstructure:"seed_demo"`
	LogLevel  string          `mapstructure:"log_level"`
}

// EnvOverrides are the settings that usually differ per deployment and
// are more convenient to set through the environment than the YAML file.
type EnvOverrides struct {
	Port         int    `envconfig:"PORT"`
	RedisURL     string `envconfig:"REDIS_URL"`
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPUser     string `envconfig:"SMTP_USER"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	LogLevel     string `envconfig:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 10*time.Second)
	viper.SetDefault("rate_limit.rps", 50)
	viper.SetDefault("rate_limit.burst", 100)
	viper.SetDefault("campaign.dispatch_interval", time.Minute)
	viper.SetDefault("seed_demo", true)
	viper.SetDefault("log_level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env EnvOverrides
	if err := envconfig.Process("leadtrack", &env); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	applyOverrides(&config, &env)

	return &config, nil
}

func applyOverrides(cfg *Config, env *EnvOverrides) {
	if env.Port != 0 {
		cfg.Server.Port = env.Port
	}
	if env.RedisURL != "" {
		cfg.Redis.URL = env.RedisURL
		cfg.Redis.Enabled = true
	}
	if env.SMTPHost != "" {
		cfg.SMTP.Host = env.SMTPHost
		cfg.SMTP.Enabled = true
	}
	if env.SMTPUser != "" {
		cfg.SMTP.User = env.SMTPUser
	}
	if env.SMTPPassword != "" {
		cfg.SMTP.Password = env.SMTPPassword
	}
	if env.LogLevel != "" {
		cfg.LogLevel = env.LogLevel
	}
}
