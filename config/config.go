package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBackendURL is used when neither the config file nor the environment names a backend
const DefaultBackendURL = "http://localhost:8000"

// Environment variables consulted after the config file
const (
	EnvBackendURL     = "BACKEND_URL"
	EnvViteBackendURL = "VITE_BACKEND_URL"
	EnvConfigPath     = "TENANTDESK_CONFIG"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Backend   BackendConfig   `yaml:"backend"`
	Log       LogConfig       `yaml:"log"`
	Session   SessionConfig   `yaml:"session"`
	Upload    UploadConfig    `yaml:"upload"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type BackendConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SessionConfig struct {
	CookieName  string `yaml:"cookie_name"`
	MaxSessions int    `yaml:"max_sessions"` // 0 = unlimited
}

type UploadConfig struct {
	MaxMemoryMB int64 `yaml:"max_memory_mb"`
}

type RateLimitConfig struct {
	Requests      int `yaml:"requests"`
	WindowSeconds int `yaml:"window_seconds"`
}

// Timeout returns the per-request deadline for backend calls
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// Window returns the rate limit window as a duration
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// MaxMemory returns the multipart memory ceiling in bytes
func (u UploadConfig) MaxMemory() int64 {
	return u.MaxMemoryMB << 20
}

// Load reads the YAML file at path, applies defaults and then environment
// overrides. A missing file is not an error: the defaults are used.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv(os.Getenv)

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Backend.URL == "" {
		c.Backend.URL = DefaultBackendURL
	}
	if c.Backend.TimeoutSeconds <= 0 {
		c.Backend.TimeoutSeconds = 60
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "tenantdesk_session"
	}
	if c.Session.MaxSessions < 0 {
		c.Session.MaxSessions = 0
	}
	if c.Upload.MaxMemoryMB <= 0 {
		c.Upload.MaxMemoryMB = 32
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = 30
	}
	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = 60
	}
}

// applyEnv lets the environment override the backend address. BACKEND_URL
// wins over VITE_BACKEND_URL.
func (c *Config) applyEnv(getenv func(string) string) {
	for _, key := range []string{EnvViteBackendURL, EnvBackendURL} {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			c.Backend.URL = v
		}
	}
	c.Backend.URL = strings.TrimRight(c.Backend.URL, "/")
}
