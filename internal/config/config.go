package config

import (
	"fmt"
	"os"
	"time"
)

// Config carries everything the process needs, resolved once at
// startup and passed explicitly to the pieces that use it.
type Config struct {
	Addr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr  string
	SessionTTL time.Duration

	TemplateDir string
	StaticDir   string
}

// FromEnv builds a Config from the environment, falling back to local
// development defaults for anything unset.
func FromEnv() *Config {
	return &Config{
		Addr:        ":" + getenv("SERVER_PORT", "8080"),
		DBHost:      getenv("DB_HOST", "localhost"),
		DBPort:      getenv("DB_PORT", "5432"),
		DBUser:      getenv("DB_USER", "bloguser"),
		DBPassword:  getenv("DB_PASSWORD", "blogpass"),
		DBName:      getenv("DB_NAME", "blogdb"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		SessionTTL:  getduration("SESSION_TTL", 24*time.Hour),
		TemplateDir: getenv("TEMPLATE_DIR", "web/templates"),
		StaticDir:   getenv("STATIC_DIR", "web/public"),
	}
}

// DSN renders the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
