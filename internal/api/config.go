package api

import (
	"os"
	"strings"
	"time"
)

// Config holds HTTP server settings.
type Config struct {
	HTTPAddr       string
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// DefaultConfig returns the server defaults.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:       ":8080",
		CORSOrigins:    []string{"http://localhost:3000"},
		RequestTimeout: 60 * time.Second,
	}
}

// ConfigFromEnv reads MYOQUIZ_HTTP_ADDR, MYOQUIZ_CORS_ORIGINS (comma
// separated) and MYOQUIZ_HTTP_TIMEOUT on top of the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.HTTPAddr = envOr("MYOQUIZ_HTTP_ADDR", cfg.HTTPAddr)
	cfg.CORSOrigins = csvOr("MYOQUIZ_CORS_ORIGINS", cfg.CORSOrigins)
	if v := os.Getenv("MYOQUIZ_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}
	return cfg
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func csvOr(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
