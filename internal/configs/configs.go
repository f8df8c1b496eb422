package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	LookaheadDays          int
	IntervalMinutes        int
	DefaultNotifyEmail     string
	NotificationDryRun     bool
	SMTPHost               string
	SMTPPort               int
	SMTPUsername           string
	SMTPPassword           string
	SMTPFrom               string
	SMTPTimeoutSeconds     int
	RedisAddr              string
	RedisLockKey           string
	RateLimit              int
	ShutdownTimeoutSeconds int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	// An empty REDIS_HOST keeps the cycle lock in-process; set it when more
	// than one instance shares the store.
	redisHost := getEnv("REDIS_HOST", "")
	redisPort := getEnv("REDIS_PORT", "6379")
	redisAddr := ""
	if redisHost != "" {
		redisAddr = fmt.Sprintf("%s:%s", redisHost, redisPort)
	}

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "followups.db"),
		LookaheadDays:          getEnvAsInt("AUTOMATION_LOOKAHEAD_DAYS", 3),
		IntervalMinutes:        getEnvAsInt("AUTOMATION_INTERVAL_MINUTES", 15),
		DefaultNotifyEmail:     getEnv("DEFAULT_NOTIFY_EMAIL", ""),
		NotificationDryRun:     getEnvAsBool("NOTIFICATION_DRY_RUN", false),
		SMTPHost:               getEnv("SMTP_HOST", ""),
		SMTPPort:               getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername:           getEnv("SMTP_USERNAME", ""),
		SMTPPassword:           getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:               getEnv("SMTP_FROM", "followup-boss@example.com"),
		SMTPTimeoutSeconds:     getEnvAsInt("SMTP_TIMEOUT_SECONDS", 10),
		RedisAddr:              redisAddr,
		RedisLockKey:           getEnv("REDIS_LOCK_KEY", "followup_cycle_lock"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.LookaheadDays <= 0 {
		log.Fatal("AUTOMATION_LOOKAHEAD_DAYS must be greater than 0")
	}
	if cfg.IntervalMinutes <= 0 {
		log.Fatal("AUTOMATION_INTERVAL_MINUTES must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		log.Fatal("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
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

func getEnvAsBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return defaultVal
}
