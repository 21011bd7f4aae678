package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment variables for the storefront service.
type Config struct {
	Port        string
	Env         string
	PostgresDSN string
	RedisURL    string
	JWTSecret   string

	KafkaBrokers []string
	KafkaTopic   string

	SessionCookieMaxAge time.Duration
	LatestProductsLimit int
}

// Load reads configuration from the environment, applying defaults.
// A .env file is honored when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("APP_ENV", "development"),
		PostgresDSN:         buildDSN(),
		RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		KafkaBrokers:        []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
		KafkaTopic:          getEnv("KAFKA_TOPIC", "order.created"),
		SessionCookieMaxAge: 30 * 24 * time.Hour,
		LatestProductsLimit: 4,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func buildDSN() string {
	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	user := getEnv("POSTGRES_USER", "postgres")
	password := os.Getenv("POSTGRES_PASSWORD")
	dbName := getEnv("POSTGRES_DB", "storefront")

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbName, port)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
