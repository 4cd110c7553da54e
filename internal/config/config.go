// Package config loads the site configuration from YAML with env overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/logger"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logger    logger.Config   `yaml:"logger"`
	Profile   ProfileConfig   `yaml:"profile"`
	Storage   StorageConfig   `yaml:"storage"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Admin     AdminConfig     `yaml:"admin"`
	Chat      ChatConfig      `yaml:"chat"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int    `yaml:"port"`
	Mode            string `yaml:"mode"` // gin mode: debug, release, test
	StaticDir       string `yaml:"static_dir"`
	ImagesDir       string `yaml:"images_dir"`
	ShutdownTimeout int    `yaml:"shutdown_timeout_seconds"`
}

// ProfileConfig points at the profile YAML. Empty Path uses the built-in profile.
type ProfileConfig struct {
	Path string `yaml:"path"`
}

// StorageConfig configures the sqlite analytics store.
type StorageConfig struct {
	DataDir              string `yaml:"data_dir"`
	VisitorRetentionDays int    `yaml:"visitor_retention_days"`
}

// SMTPConfig configures the contact relay.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	To       string `yaml:"to"`
}

// AdminConfig holds dashboard credentials. Admin routes are off while Password is empty.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// ChatConfig controls session lifetime and reply pacing.
type ChatConfig struct {
	SessionTTLMinutes int `yaml:"session_ttl_minutes"`
	MaxSessions       int `yaml:"max_sessions"`
	DelayBaseMS       int `yaml:"delay_base_ms"`
	DelayPerRuneMS    int `yaml:"delay_per_rune_ms"`
	DelayMinMS        int `yaml:"delay_min_ms"`
	DelayMaxMS        int `yaml:"delay_max_ms"`
}

// RateLimitConfig bounds chat and contact requests per client IP.
type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute"`
	Burst     int `yaml:"burst"`
}

// SessionTTL returns the idle lifetime of a chat session.
func (c ChatConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// Address returns the listen address for the configured port.
func (s ServerConfig) Address() string {
	return ":" + strconv.Itoa(s.Port)
}

// Default returns a configuration usable for local development.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Mode:            "debug",
			StaticDir:       "./static",
			ImagesDir:       "./images",
			ShutdownTimeout: 5,
		},
		Logger: logger.Config{
			Level:  "info",
			Format: "json",
		},
		Storage: StorageConfig{
			DataDir:              "./data",
			VisitorRetentionDays: 365,
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
		Admin: AdminConfig{
			Username: "admin",
		},
		Chat: ChatConfig{
			SessionTTLMinutes: 30,
			MaxSessions:       10000,
			DelayBaseMS:       600,
			DelayPerRuneMS:    4,
			DelayMinMS:        800,
			DelayMaxMS:        2500,
		},
		RateLimit: RateLimitConfig{
			PerMinute: 30,
			Burst:     10,
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies env
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("PROFILE_PATH"); v != "" {
		cfg.Profile.Path = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SMTP_PORT %q: %w", v, err)
		}
		cfg.SMTP.Port = port
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		cfg.SMTP.User = v
	}
	if v := os.Getenv("SMTP_PASS"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("TO_EMAIL"); v != "" {
		cfg.SMTP.To = v
	}
	if v := os.Getenv("ADMIN_USERNAME"); v != "" {
		cfg.Admin.Username = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	switch c.Server.Mode {
	case "", "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode))
	}
	if c.SMTP.Port < 0 || c.SMTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("smtp.port %d out of range", c.SMTP.Port))
	}
	if c.Storage.VisitorRetentionDays < 0 {
		errs = append(errs, errors.New("storage.visitor_retention_days must not be negative"))
	}
	if c.Chat.SessionTTLMinutes <= 0 {
		errs = append(errs, errors.New("chat.session_ttl_minutes must be positive"))
	}
	if c.Chat.MaxSessions < 0 {
		errs = append(errs, errors.New("chat.max_sessions must not be negative"))
	}
	if c.Chat.DelayBaseMS < 0 || c.Chat.DelayPerRuneMS < 0 || c.Chat.DelayMinMS < 0 || c.Chat.DelayMaxMS < 0 {
		errs = append(errs, errors.New("chat delays must not be negative"))
	}
	if c.Chat.DelayMaxMS > 0 && c.Chat.DelayMinMS > c.Chat.DelayMaxMS {
		errs = append(errs, fmt.Errorf("chat.delay_min_ms %d exceeds delay_max_ms %d", c.Chat.DelayMinMS, c.Chat.DelayMaxMS))
	}
	if c.RateLimit.PerMinute < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate_limit values must not be negative"))
	}
	return errors.Join(errs...)
}
