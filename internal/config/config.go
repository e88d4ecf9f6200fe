// Package config loads application configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all externally tunable settings.
type Config struct {
	Addr        string `yaml:"addr"`
	WebDir      string `yaml:"web_dir"`
	DatabaseURL string `yaml:"database_url"`

	Attendance AttendanceConfig `yaml:"attendance"`
	Sessions   SessionConfig    `yaml:"sessions"`
	SSO        SSOConfig        `yaml:"sso"`
}

// AttendanceConfig tunes the attendance ledger.
type AttendanceConfig struct {
	// Threshold is the minimum acceptable attendance percentage.
	Threshold int `yaml:"threshold"`
	// WindowDays is the default lookback window for stats and history.
	WindowDays int `yaml:"window_days"`
}

// SessionConfig tunes the session registry.
type SessionConfig struct {
	LifetimeHours int `yaml:"lifetime_hours"`
}

// SSOConfig configures the optional OIDC login flow.
type SSOConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Issuer       string `yaml:"issuer"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Addr:   ":8080",
		WebDir: "web",
		Attendance: AttendanceConfig{
			Threshold:  75,
			WindowDays: 30,
		},
		Sessions: SessionConfig{
			LifetimeHours: 24,
		},
	}
}

// Lifetime returns the session lifetime as a duration.
func (c *Config) Lifetime() time.Duration {
	return time.Duration(c.Sessions.LifetimeHours) * time.Hour
}

// Load reads the config file at path (defaults apply when path is empty or
// the file is absent), applies environment overrides, and validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ROLLCALL_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("ROLLCALL_WEB_DIR"); v != "" {
		c.WebDir = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("ROLLCALL_ATTENDANCE_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Attendance.Threshold = n
		}
	}
	if v := os.Getenv("ROLLCALL_WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Attendance.WindowDays = n
		}
	}
	if v := os.Getenv("ROLLCALL_SESSION_LIFETIME_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Sessions.LifetimeHours = n
		}
	}
}

// Validate rejects settings the services cannot operate with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.Attendance.Threshold < 0 || c.Attendance.Threshold > 100 {
		return fmt.Errorf("attendance.threshold must be within [0, 100], got %d", c.Attendance.Threshold)
	}
	if c.Attendance.WindowDays <= 0 {
		return fmt.Errorf("attendance.window_days must be positive, got %d", c.Attendance.WindowDays)
	}
	if c.Sessions.LifetimeHours <= 0 {
		return fmt.Errorf("sessions.lifetime_hours must be positive, got %d", c.Sessions.LifetimeHours)
	}
	if c.SSO.Enabled {
		if c.SSO.Issuer == "" || c.SSO.ClientID == "" || c.SSO.RedirectURL == "" {
			return fmt.Errorf("sso requires issuer, client_id and redirect_url")
		}
	}
	return nil
}
