package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

const (
	ReminderBackendMemory = "memory"
	ReminderBackendRedis  = "redis"
)

type Config struct {
	AppURL                      string
	DatabaseDSN                 string
	RateLimit                   int
	ShutdownTimeoutSeconds      int
	ReminderBackend             string
	RedisAddr                   string
	RedisReminderKey            string
	ReminderWorkers             int
	ReminderQueueSize           int
	ReminderPollIntervalSeconds int
	ReminderPollBatchSize       int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                      fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:                 getEnv("DATABASE_DSN", "todos.db"),
		RateLimit:                   getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		ShutdownTimeoutSeconds:      getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
		ReminderBackend:             getEnv("REMINDER_BACKEND", ReminderBackendMemory),
		RedisAddr:                   fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisReminderKey:            getEnv("REDIS_REMINDER_KEY", "reminders:due"),
		ReminderWorkers:             getEnvAsInt("REMINDER_WORKERS", 2),
		ReminderQueueSize:           getEnvAsInt("REMINDER_QUEUE_SIZE", 100),
		ReminderPollIntervalSeconds: getEnvAsInt("REMINDER_POLL_INTERVAL_SECONDS", 10),
		ReminderPollBatchSize:       getEnvAsInt("REMINDER_POLL_BATCH_SIZE", 50),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.ReminderBackend != ReminderBackendMemory && cfg.ReminderBackend != ReminderBackendRedis {
		log.Fatalf("REMINDER_BACKEND must be %q or %q", ReminderBackendMemory, ReminderBackendRedis)
	}
	if cfg.ReminderWorkers <= 0 {
		log.Fatal("REMINDER_WORKERS must be greater than 0")
	}
	if cfg.ReminderQueueSize <= 0 {
		log.Fatal("REMINDER_QUEUE_SIZE must be greater than 0")
	}
	if cfg.ReminderPollIntervalSeconds <= 0 {
		log.Fatal("REMINDER_POLL_INTERVAL_SECONDS must be greater than 0")
	}
	if cfg.ReminderPollBatchSize <= 0 {
		log.Fatal("REMINDER_POLL_BATCH_SIZE must be greater than 0")
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
