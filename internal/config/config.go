package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port        string
	Origin      string
	Environment string
	Database    DatabaseConfig
	Notify      NotifyConfig
	Rounds      RoundsConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// NotifyConfig holds the outbound webhook settings for missed-rounds alerts.
type NotifyConfig struct {
	LineToken    string
	LineEndpoint string
	Timeout      time.Duration
}

// RoundsConfig is the daily time window used by the missed-rounds check.
type RoundsConfig struct {
	Start string // "HH:MM"
	End   string // "HH:MM"
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "admit_planner"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	notifyTimeoutSec, err := strconv.Atoi(getEnv("NOTIFY_TIMEOUT_SECONDS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFY_TIMEOUT_SECONDS: %w", err)
	}

	notifyConfig := NotifyConfig{
		LineToken:    getEnv("LINE_NOTIFY_TOKEN", ""),
		LineEndpoint: getEnv("LINE_NOTIFY_URL", "https://notify-api.line.me/api/notify"),
		Timeout:      time.Duration(notifyTimeoutSec) * time.Second,
	}

	roundsConfig := RoundsConfig{
		Start: getEnv("ROUND_START", "08:00"),
		End:   getEnv("ROUND_END", "12:00"),
	}
	for _, v := range []string{roundsConfig.Start, roundsConfig.End} {
		if _, err := time.Parse("15:04", v); err != nil {
			return nil, fmt.Errorf("invalid rounds window time %q: %w", v, err)
		}
	}

	return &Config{
		Port:        getEnv("PORT", "3001"),
		Origin:      getEnv("ORIGIN", "http://localhost:4200"),
		Environment: getEnv("APP_ENV", "development"),
		Database:    dbConfig,
		Notify:      notifyConfig,
		Rounds:      roundsConfig,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
