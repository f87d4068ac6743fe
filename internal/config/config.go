package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath      string        // "stats.db"
	APIBaseURL  string        // "https://api.qiniuapi.com"
	LogLevel    string        // "debug"|"info"|"warn"|"error"
	LogJSON     bool          // true -> JSON, false -> text
	HTTPTimeout time.Duration // 30s

	// daemon-режим: период запуска по гранулярностям
	MinuteEvery time.Duration
	HourEvery   time.Duration
	DayEvery    time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid %s: %q, using %s", key, v, def)
	}
	return def
}

func New() Config {
	// .env опционален
	_ = godotenv.Load()

	return Config{
		DBPath:      getenv("DB_PATH", "stats.db"),
		APIBaseURL:  getenv("QINIU_API_BASE_URL", "https://api.qiniuapi.com"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogJSON:     getenv("LOG_FORMAT", "json") == "json",
		HTTPTimeout: getduration("HTTP_TIMEOUT", 30*time.Second),
		MinuteEvery: getduration("SYNC_MINUTE_EVERY", 5*time.Minute),
		HourEvery:   getduration("SYNC_HOUR_EVERY", 10*time.Minute),
		DayEvery:    getduration("SYNC_DAY_EVERY", 12*time.Hour),
	}
}
