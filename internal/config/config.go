package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port               string
	ContentFile        string
	GalleryPageSize    int
	CacheTTL           time.Duration
	RateLimit          int
	CORSAllowAll       bool
	CORSAllowedOrigins []string
	MediaURL           string
	LogLevel           slog.Level
	LogFormat          string
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:        getOr(getenv, "PORT", "8080"),
		ContentFile: strings.TrimSpace(getenv("CONTENT_FILE")),
		MediaURL:    getOr(getenv, "MEDIA_URL", "/media/"),
		LogFormat:   strings.ToLower(getOr(getenv, "LOG_FORMAT", "text")),
		// matches the Django setting: only the literal "True" enables it
		CORSAllowAll:       getenv("CORS_ALLOW_ALL_ORIGINS") == "True",
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS")),
	}

	var err error
	if cfg.GalleryPageSize, err = positiveInt(getenv, "GALLERY_PAGE_SIZE", 6); err != nil {
		return cfg, err
	}
	if cfg.RateLimit, err = positiveInt(getenv, "RATE_LIMIT", 500); err != nil {
		return cfg, err
	}

	ttl := getOr(getenv, "CACHE_TTL", "60m")
	if cfg.CacheTTL, err = time.ParseDuration(ttl); err != nil || cfg.CacheTTL <= 0 {
		return cfg, fmt.Errorf("config: CACHE_TTL must be a positive duration, got %q", ttl)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getOr(getenv, "LOG_LEVEL", "info"))); err != nil {
		return cfg, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return cfg, fmt.Errorf("config: LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return cfg, fmt.Errorf("config: PORT must be numeric, got %q", cfg.Port)
	}

	return cfg, nil
}

// NewLogger builds the process logger from the configured level and format.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func getOr(getenv func(string) string, key, fallback string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return fallback
}

func positiveInt(getenv func(string) string, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive integer, got %q", key, raw)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
