// Package config
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Address        string
	DBPath         string
	PollInterval   time.Duration
	AlertThreshold float64
	WebhookURL     string
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
}

func Load() *Config {
	godotenv.Load()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8503"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "diskmon.db"
	}

	// POLL_INTERVAL is in seconds.
	interval := 300 * time.Second
	if raw := os.Getenv("POLL_INTERVAL"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			interval = time.Duration(parsed) * time.Second
		}
	}

	threshold := 90.0
	if raw := os.Getenv("ALERT_THRESHOLD"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			threshold = float64(parsed)
		}
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	return &Config{
		Address:        addr,
		DBPath:         dbPath,
		PollInterval:   interval,
		AlertThreshold: threshold,
		WebhookURL:     os.Getenv("WEBHOOK_URL"),
		AllowedOrigins: origins,
		LogLevel:       logLevel,
		LogFormat:      logFormat,
	}
}
