package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Stockpile"`
		Port int    `envconfig:"PORT" default:"8080"`
		Env  string `envconfig:"APP_ENV" default:"development"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"stockpile"`
	}

	JWT struct {
		Secret string        `envconfig:"JWT_SECRET_KEY" required:"true"`
		TTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`
	}

	RateLimit struct {
		RequestsPerMinute int `envconfig:"ALLOWED_REQUEST_PER_MINUTE" default:"120"`
	}

	Avatars struct {
		Dir string `envconfig:"AVATAR_DIR" default:"./avatars"`
	}

	Stock struct {
		LowThreshold int `envconfig:"LOW_STOCK_THRESHOLD" default:"10"`
	}

	SchemaFile string `envconfig:"SCHEMA_FILE" default:"./db/schema.sql"`
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func (c *Config) Production() bool {
	return c.App.Env == "production"
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
