// Package config loads client settings from defaults, an optional
// ~/.gobarber/config.yaml and GOBARBER_* environment variables, in that
// order of precedence (environment wins).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Session store backends.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds every setting of the client.
type Config struct {
	APIURL      string        `yaml:"api_url" env:"GOBARBER_API_URL"`
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"GOBARBER_HTTP_TIMEOUT"`
	DataDir     string        `yaml:"data_dir" env:"GOBARBER_DATA_DIR"`
	Store       string        `yaml:"store" env:"GOBARBER_STORE"`
	RedisAddr   string        `yaml:"redis_addr" env:"GOBARBER_REDIS_ADDR"`
	RedisPrefix string        `yaml:"redis_prefix" env:"GOBARBER_REDIS_PREFIX"`
	ToastTTL    time.Duration `yaml:"toast_ttl" env:"GOBARBER_TOAST_TTL"`
	LogFile     string        `yaml:"log_file" env:"GOBARBER_LOG_FILE"` // empty: <data_dir>/gobarber.log
	LogLevel    string        `yaml:"log_level" env:"GOBARBER_LOG_LEVEL"`
}

// Default returns the built-in settings rooted at dataDir.
func Default(dataDir string) *Config {
	return &Config{
		APIURL:      "http://localhost:3333",
		HTTPTimeout: 30 * time.Second,
		DataDir:     dataDir,
		Store:       StoreFile,
		RedisAddr:   "localhost:6379",
		RedisPrefix: "gobarber:",
		ToastTTL:    3 * time.Second,
		LogLevel:    "info",
	}
}

// defaultDataDir returns ~/.gobarber.
func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".gobarber"), nil
}

// Load reads .env (if present), then the YAML file in the data directory,
// then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env is optional

	dir := os.Getenv("GOBARBER_DATA_DIR")
	if dir == "" {
		d, err := defaultDataDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return LoadFrom(dir)
}

// LoadFrom is Load without .env handling, with an explicit data directory.
func LoadFrom(dataDir string) (*Config, error) {
	cfg := Default(dataDir)

	path := filepath.Join(dataDir, "config.yaml")
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// LogPath returns the log file, defaulting to gobarber.log in the data directory.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "gobarber.log")
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("GOBARBER_API_URL must be an absolute URL, got %q", c.APIURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("GOBARBER_HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	if c.ToastTTL <= 0 {
		return fmt.Errorf("GOBARBER_TOAST_TTL must be positive, got %s", c.ToastTTL)
	}
	switch c.Store {
	case StoreFile, StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("GOBARBER_REDIS_ADDR must not be empty when GOBARBER_STORE=redis")
		}
	default:
		return fmt.Errorf("GOBARBER_STORE must be one of file, memory, redis, got %q", c.Store)
	}
	if c.DataDir == "" {
		return fmt.Errorf("GOBARBER_DATA_DIR must not be empty")
	}
	return nil
}
