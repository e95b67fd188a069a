package config

import (
	"fmt"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type Config struct {
	AppURL                   string
	DatabaseDriver           string
	DatabaseDSN              string
	RateLimit                int
	RedisAddr                string
	DashboardCacheTTLSeconds int
	ShutdownTimeoutSeconds   int
	LogLevel                 string
	LogFormat                string
	DigestCron               string
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	redisAddr := ""
	if redisHost := getEnv("REDIS_HOST", ""); redisHost != "" {
		redisAddr = fmt.Sprintf("%s:%s", redisHost, getEnv("REDIS_PORT", "6379"))
	}

	cfg := Config{
		AppURL:                   fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDriver:           getEnv("DATABASE_DRIVER", DriverSQLite),
		DatabaseDSN:              getEnv("DATABASE_DSN", "crm.db"),
		RateLimit:                getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		RedisAddr:                redisAddr,
		DashboardCacheTTLSeconds: getEnvAsInt("DASHBOARD_CACHE_TTL_SECONDS", 60),
		ShutdownTimeoutSeconds:   getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		LogFormat:                getEnv("LOG_FORMAT", "text"),
		DigestCron:               getEnv("DIGEST_CRON", ""),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	return cfg
}

// Validate reports the first setting that cannot be used.
func (cfg Config) Validate() error {
	switch {
	case cfg.AppURL == "":
		return fmt.Errorf("APP_HOST/APP_PORT must not be empty (e.g. 127.0.0.1:8080)")
	case cfg.DatabaseDriver != DriverSQLite && cfg.DatabaseDriver != DriverPostgres:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, cfg.DatabaseDriver)
	case cfg.DatabaseDSN == "":
		return fmt.Errorf("DATABASE_DSN must not be empty")
	case cfg.RateLimit <= 0:
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	case cfg.DashboardCacheTTLSeconds < 0:
		return fmt.Errorf("DASHBOARD_CACHE_TTL_SECONDS must not be negative")
	case cfg.ShutdownTimeoutSeconds <= 0:
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	case cfg.LogFormat != "text" && cfg.LogFormat != "json":
		return fmt.Errorf("LOG_FORMAT must be text or json")
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
