package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv        string
	Port          string
	LogLevel      string
	LogFormat     string
	SessionSecret string
	SeedDemoData  bool

	TipInterval       time.Duration
	MaxClientsPerUser int

	WSMaxConnections   int64
	WSMaxPerIP         int
	WSConnectionsRate  float64
	WSConnectionsBurst int
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if len(cfg.SessionSecret) < 16 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 16 characters")
	}

	seed, err := getEnvBool("SEED_DEMO_DATA", cfg.AppEnv != "production")
	if err != nil {
		return nil, err
	}
	cfg.SeedDemoData = seed

	tipInterval, err := getEnvDuration("TIP_INTERVAL", 60*time.Second)
	if err != nil {
		return nil, err
	}
	if tipInterval <= 0 {
		return nil, fmt.Errorf("TIP_INTERVAL must be positive")
	}
	cfg.TipInterval = tipInterval

	maxClients, err := getEnvInt("MAX_CLIENTS_PER_USER", 10)
	if err != nil {
		return nil, err
	}
	if maxClients < 1 {
		return nil, fmt.Errorf("MAX_CLIENTS_PER_USER must be at least 1")
	}
	cfg.MaxClientsPerUser = maxClients

	maxConns, err := getEnvInt("WS_MAX_CONNECTIONS", 1000)
	if err != nil {
		return nil, err
	}
	cfg.WSMaxConnections = int64(maxConns)

	maxPerIP, err := getEnvInt("WS_MAX_PER_IP", 20)
	if err != nil {
		return nil, err
	}
	cfg.WSMaxPerIP = maxPerIP

	connRate, err := getEnvFloat("WS_CONNECTIONS_PER_SECOND", 10.0)
	if err != nil {
		return nil, err
	}
	cfg.WSConnectionsRate = connRate

	connBurst, err := getEnvInt("WS_CONNECTIONS_BURST", 10)
	if err != nil {
		return nil, err
	}
	cfg.WSConnectionsBurst = connBurst

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return parsed, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 60s or 5m: %w", key, err)
	}
	return parsed, nil
}
