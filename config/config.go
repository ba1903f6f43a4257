package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/futuresmile/clinic-api/internal/repository/postgres"
	"github.com/futuresmile/clinic-api/internal/router"
	"github.com/futuresmile/clinic-api/internal/service/notification"
	"github.com/futuresmile/clinic-api/internal/worker"
	"github.com/futuresmile/clinic-api/pkg/messaging/redis"
)

type ServerConfig struct {
	Port         int           `yaml:"port" envconfig:"SERVER_PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
}

type RedisConfig struct {
	URL          string        `yaml:"url" envconfig:"REDIS_URL"`
	MaxRetries   int           `yaml:"max_retries" envconfig:"REDIS_MAX_RETRIES"`
	RetryBackoff time.Duration `yaml:"retry_backoff" envconfig:"REDIS_RETRY_BACKOFF"`
	PoolSize     int           `yaml:"pool_size" envconfig:"REDIS_POOL_SIZE"`
	MinIdleConns int           `yaml:"min_idle_conns" envconfig:"REDIS_MIN_IDLE_CONNS"`
}

// ToBrokerConfig converts to the broker package's config type.
func (c RedisConfig) ToBrokerConfig() redis.Config {
	return redis.Config{
		URL:          c.URL,
		MaxRetries:   c.MaxRetries,
		RetryBackoff: c.RetryBackoff,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
	}
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" envconfig:"LOG_PRETTY"`
}

type NotificationsConfig struct {
	Enabled bool                    `yaml:"enabled" envconfig:"NOTIFICATIONS_ENABLED"`
	SMTP    notification.SMTPConfig `yaml:"smtp"`
}

type Config struct {
	Server        ServerConfig                 `yaml:"server"`
	Database      postgres.Config              `yaml:"database"`
	Redis         RedisConfig                  `yaml:"redis"`
	Router        router.Config                `yaml:"router"`
	Log           LogConfig                    `yaml:"log"`
	Notifications NotificationsConfig          `yaml:"notifications"`
	Statistics    worker.QueueStatisticsConfig `yaml:"statistics"`
}

// Load reads config.yml, then applies environment overrides. A .env file is
// honored when present so local runs match container runs.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/app/config")

	cfg := defaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: postgres.Config{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			Name:    "clinic",
			SSLMode: "disable",
		},
		Redis: RedisConfig{
			URL: "redis://localhost:6379/0",
		},
		Router: router.Config{
			RateLimit: 50,
			RateBurst: 100,
		},
		Log: LogConfig{
			Level: "info",
		},
		Statistics: worker.QueueStatisticsConfig{
			Interval: 15 * time.Minute,
		},
	}
}
