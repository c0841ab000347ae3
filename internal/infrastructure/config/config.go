package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// RetentionHours is the donation retention window; records older than
	// this are purged on the next sweep regardless of claimed state.
	RetentionHours int `env:"RETENTION_HOURS, default=48"`
	// TaskWorkers is the size of the background dispatcher worker pool.
	TaskWorkers int `env:"TASK_WORKERS, default=4"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Mailgun  MailgunConfig
	Geocoder GeocoderConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=sharebite"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MailgunConfig struct {
	Domain string `env:"MAILGUN_DOMAIN"`
	APIKey string `env:"MAILGUN_API_KEY"`
	Sender string `env:"MAIL_SENDER, default=ShareBite <no-reply@sharebite.app>"`
}

type GeocoderConfig struct {
	BaseURL   string `env:"GEOCODER_BASE_URL,   default=https://nominatim.openstreetmap.org"`
	UserAgent string `env:"GEOCODER_USER_AGENT, default=sharebite_app"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
