package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/AaSu9/Aamcare/pkg/messaging/redis"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Notifier  NotifierConfig  `mapstructure:"notifier"`
	Content   ContentConfig   `mapstructure:"content"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type RedisConfig struct {
	URL          string `mapstructure:"url"`
	MaxRetries   int    `mapstructure:"max_retries"`
	RetryBackoff int    `mapstructure:"retry_backoff_ms"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

// ToBrokerConfig maps the file-level redis section to the broker's config.
func (c RedisConfig) ToBrokerConfig() redis.Config {
	return redis.Config{
		URL:          c.URL,
		MaxRetries:   c.MaxRetries,
		RetryBackoff: time.Duration(c.RetryBackoff) * time.Millisecond,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
	}
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type NotifierConfig struct {
	Hour            int `mapstructure:"hour"`
	Minute          int `mapstructure:"minute"`
	ReminderDays    int `mapstructure:"reminder_days"`
	MetricsPort     int `mapstructure:"metrics_port"`
	IntervalMinutes int `mapstructure:"interval_minutes"`
}

type ContentConfig struct {
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes"`
}

// TwilioConfig carries WhatsApp/SMS credentials. These are secrets, read from
// the environment only, never from the config file.
type TwilioConfig struct {
	AccountSID   string `envconfig:"TWILIO_ACCOUNT_SID"`
	AuthToken    string `envconfig:"TWILIO_AUTH_TOKEN"`
	FromWhatsApp string `envconfig:"TWILIO_FROM_WHATSAPP"`
	FromSMS      string `envconfig:"TWILIO_FROM_SMS"`
}

// SMTPConfig carries the email sender credentials, environment-only like the
// Twilio ones.
type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadTwilioConfig reads the Twilio credentials from the environment.
func LoadTwilioConfig() (*TwilioConfig, error) {
	var cfg TwilioConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read twilio config: %w", err)
	}
	return &cfg, nil
}

// LoadSMTPConfig reads the SMTP credentials from the environment.
func LoadSMTPConfig() (*SMTPConfig, error) {
	var cfg SMTPConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read smtp config: %w", err)
	}
	return &cfg, nil
}
