package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	StoreBackend     string
	DBConnectRetries int

	MarketplaceOrigin string
	MaxPages          int
	NavTimeoutSec     int
	SettleMinMs       int
	SettleMaxMs       int
	PaceMinMs         int
	PaceMaxMs         int
	ChromeBin         string

	CSVOutputPath string
	HTTPPort      string
	CORSOrigins   []string
	LogLevel      string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "mercari_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		StoreBackend:     strings.ToLower(getEnv("STORE_BACKEND", "postgres")),
		DBConnectRetries: getEnvInt("DB_CONNECT_RETRIES", 10),

		MarketplaceOrigin: strings.TrimRight(getEnv("MARKETPLACE_ORIGIN", "https://jp.mercari.com"), "/"),
		MaxPages:          getEnvInt("MAX_PAGES", 5),
		NavTimeoutSec:     getEnvInt("NAV_TIMEOUT_SEC", 60),
		SettleMinMs:       getEnvInt("SETTLE_MIN_MS", 2000),
		SettleMaxMs:       getEnvInt("SETTLE_MAX_MS", 4000),
		PaceMinMs:         getEnvInt("PACE_MIN_MS", 1000),
		PaceMaxMs:         getEnvInt("PACE_MAX_MS", 2000),
		ChromeBin:         getEnv("CHROME_BIN", ""),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", ""),
		HTTPPort:      getEnv("HTTP_PORT", "8000"),
		CORSOrigins:   splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// NavTimeout is the per-page navigation bound.
func (c *Config) NavTimeout() time.Duration {
	return time.Duration(c.NavTimeoutSec) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
