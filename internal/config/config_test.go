package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 75, cfg.Attendance.Threshold)
	assert.Equal(t, 30, cfg.Attendance.WindowDays)
	assert.Equal(t, 24*time.Hour, cfg.Lifetime())
	assert.False(t, cfg.SSO.Enabled)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
addr: ":9090"
database_url: "postgres://localhost/rollcall"
attendance:
  threshold: 80
  window_days: 14
sessions:
  lifetime_hours: 12
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "postgres://localhost/rollcall", cfg.DatabaseURL)
	assert.Equal(t, 80, cfg.Attendance.Threshold)
	assert.Equal(t, 14, cfg.Attendance.WindowDays)
	assert.Equal(t, 12*time.Hour, cfg.Lifetime())
	// Unset keys keep their defaults.
	assert.Equal(t, "web", cfg.WebDir)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	// Neutralise any overrides leaking in from the host environment.
	for _, k := range []string{"ROLLCALL_ADDR", "ROLLCALL_WEB_DIR", "DATABASE_URL", "ROLLCALL_ATTENDANCE_THRESHOLD", "ROLLCALL_WINDOW_DAYS", "ROLLCALL_SESSION_LIFETIME_HOURS"} {
		t.Setenv(k, "")
	}
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ROLLCALL_ADDR", ":7070")
	t.Setenv("DATABASE_URL", "postgres://db/att")
	t.Setenv("ROLLCALL_ATTENDANCE_THRESHOLD", "90")
	t.Setenv("ROLLCALL_SESSION_LIFETIME_HOURS", "48")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "postgres://db/att", cfg.DatabaseURL)
	assert.Equal(t, 90, cfg.Attendance.Threshold)
	assert.Equal(t, 48*time.Hour, cfg.Lifetime())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"threshold too high", func(c *Config) { c.Attendance.Threshold = 101 }, false},
		{"negative threshold", func(c *Config) { c.Attendance.Threshold = -1 }, false},
		{"zero window", func(c *Config) { c.Attendance.WindowDays = 0 }, false},
		{"zero lifetime", func(c *Config) { c.Sessions.LifetimeHours = 0 }, false},
		{"empty addr", func(c *Config) { c.Addr = "" }, false},
		{"sso missing issuer", func(c *Config) { c.SSO.Enabled = true }, false},
		{"sso complete", func(c *Config) {
			c.SSO = SSOConfig{Enabled: true, Issuer: "https://sso.example.edu", ClientID: "rollcall", RedirectURL: "https://rollcall.example.edu/api/auth/sso/callback"}
		}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
