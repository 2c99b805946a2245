package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries all runtime settings. Everything comes from the
// environment with sane defaults; a .env file may supply the variables in
// development.
type Config struct {
	ListenAddr string

	CacheTTL        time.Duration
	CacheMaxEntries int
	CacheSweepEvery time.Duration

	RateLimit      int
	RateWindow     time.Duration
	RateSweepEvery time.Duration

	// ProxyHeader, when set (e.g. "X-Forwarded-For"), is trusted for
	// client IP extraction. Leave empty unless behind a trusted proxy.
	ProxyHeader string

	HTTPTimeout time.Duration
}

func Load() Config {
	return Config{
		ListenAddr:      getenvDefault("LISTEN_ADDR", ":8080"),
		CacheTTL:        getenvDurationDefault("CACHE_TTL", time.Hour),
		CacheMaxEntries: getenvIntDefault("CACHE_MAX_ENTRIES", 1000),
		CacheSweepEvery: getenvDurationDefault("CACHE_SWEEP_EVERY", 5*time.Minute),
		RateLimit:       getenvIntDefault("RATE_LIMIT", 100),
		RateWindow:      getenvDurationDefault("RATE_WINDOW", time.Hour),
		RateSweepEvery:  getenvDurationDefault("RATE_SWEEP_EVERY", 10*time.Minute),
		ProxyHeader:     os.Getenv("PROXY_HEADER"),
		HTTPTimeout:     getenvDurationDefault("HTTP_TIMEOUT", 30*time.Second),
	}
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
