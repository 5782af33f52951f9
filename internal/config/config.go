// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Data     DataConfig
	Server   ServerConfig
	Upstream UpstreamConfig
	Catalog  CatalogConfig
	Showcase ShowcaseConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds local storage configuration.
type DataConfig struct {
	// BasePath is the directory holding the embedded database.
	BasePath string
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Name         string
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// UpstreamConfig holds library backend API configuration.
type UpstreamConfig struct {
	// BaseURL is the root of the library backend API.
	BaseURL string
	// Locale is the display language for localized text (default: uz)
	// Valid values: uz, ru
	Locale string
	// Timeout is the per-request deadline for upstream calls (default: 30s)
	Timeout time.Duration
	// RequestsPerSecond throttles calls to the backend (default: 5)
	RequestsPerSecond int
}

// CatalogConfig holds catalog snapshot configuration.
type CatalogConfig struct {
	// SnapshotTTL is how long a catalog snapshot is served before a
	// refresh is attempted (default: 5m)
	SnapshotTTL time.Duration
}

// ShowcaseConfig holds new-arrivals showcase configuration.
type ShowcaseConfig struct {
	// AutoplayInterval is the cadence of automatic slide advances (default: 4s)
	AutoplayInterval time.Duration
	// ViewportWidth classifies the server-driven rendition (default: 1280)
	ViewportWidth int
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	// Define command-line flags.
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for local storage")
	serverName := flag.String("server-name", "", "Name for the server")

	// Server flags
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	// Upstream flags
	upstreamURL := flag.String("upstream-url", "", "Base URL of the library backend API")
	upstreamLocale := flag.String("locale", "", "Display language (uz, ru)")
	upstreamTimeout := flag.String("upstream-timeout", "", "Upstream request deadline (default: 30s)")
	upstreamRPS := flag.String("upstream-rps", "", "Upstream requests per second (default: 5)")

	// Catalog and showcase flags
	snapshotTTL := flag.String("snapshot-ttl", "", "Catalog snapshot lifetime (default: 5m)")
	showcaseInterval := flag.String("showcase-interval", "", "Showcase autoplay cadence (default: 4s)")
	showcaseViewport := flag.String("showcase-viewport", "", "Showcase viewport width (default: 1280)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	// Parse flags but don't exit on error - we want to handle it gracefully.
	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	// Build config with proper precedence.
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},

		Server: ServerConfig{
			Name: getConfigValue(*serverName, "SERVER_NAME", "USAT Library"),
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},

		Upstream: UpstreamConfig{
			BaseURL:           getConfigValue(*upstreamURL, "UPSTREAM_URL", ""),
			Locale:            getConfigValue(*upstreamLocale, "LOCALE", "uz"),
			RequestsPerSecond: getIntConfigValue(*upstreamRPS, "UPSTREAM_RPS", 5),
		},

		Showcase: ShowcaseConfig{
			ViewportWidth: getIntConfigValue(*showcaseViewport, "SHOWCASE_VIEWPORT", 1280),
		},
	}

	// Parse durations.
	d, err := parseDurationValue(*upstreamTimeout, "UPSTREAM_TIMEOUT", "30s")
	if err != nil {
		return nil, fmt.Errorf("invalid upstream timeout: %w", err)
	}
	cfg.Upstream.Timeout = d

	d, err = parseDurationValue(*snapshotTTL, "SNAPSHOT_TTL", "5m")
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot ttl: %w", err)
	}
	cfg.Catalog.SnapshotTTL = d

	d, err = parseDurationValue(*showcaseInterval, "SHOWCASE_INTERVAL", "4s")
	if err != nil {
		return nil, fmt.Errorf("invalid showcase interval: %w", err)
	}
	cfg.Showcase.AutoplayInterval = d

	d, err = parseDurationValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	if err != nil {
		return nil, fmt.Errorf("invalid read timeout: %w", err)
	}
	cfg.Server.ReadTimeout = d

	d, err = parseDurationValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s")
	if err != nil {
		return nil, fmt.Errorf("invalid write timeout: %w", err)
	}
	cfg.Server.WriteTimeout = d

	d, err = parseDurationValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	if err != nil {
		return nil, fmt.Errorf("invalid idle timeout: %w", err)
	}
	cfg.Server.IdleTimeout = d

	// Expand and validate data path.
	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Upstream.BaseURL == "" {
		return errors.New("UPSTREAM_URL is required")
	}
	if _, err := url.ParseRequestURI(c.Upstream.BaseURL); err != nil {
		return fmt.Errorf("invalid upstream url %q: %w", c.Upstream.BaseURL, err)
	}

	validLocales := map[string]bool{
		"uz": true,
		"ru": true,
	}
	if !validLocales[strings.ToLower(c.Upstream.Locale)] {
		return fmt.Errorf("invalid locale: %s (must be uz or ru)", c.Upstream.Locale)
	}

	if c.Upstream.RequestsPerSecond <= 0 {
		return fmt.Errorf("invalid upstream rps: %d (must be positive)", c.Upstream.RequestsPerSecond)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "usat-library", "data")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// parseDurationValue resolves a duration from flag, env var, or default.
func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", raw, err)
	}
	return d, nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
