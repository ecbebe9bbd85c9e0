package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 2.0, cfg.Server.RateLimitRPS)
	require.Equal(t, 5, cfg.Server.RateLimitBurst)
	require.Equal(t, 20, cfg.Fetch.TimeoutSeconds)
	require.Equal(t, 5, cfg.Fetch.MaxRedirects)
	require.Contains(t, cfg.Fetch.UserAgent, "Mozilla/5.0")
	require.True(t, cfg.Logging.Development)
	require.Equal(t, 20*time.Second, cfg.FetchTimeout())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("server:\n  port: 9090\nfetch:\n  timeout_seconds: 7\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 7, cfg.Fetch.TimeoutSeconds)
	require.Equal(t, 5, cfg.Fetch.MaxRedirects, "unset keys keep their defaults")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("server:\n  port: -1\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "server.port")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero fetch timeout", func(c *Config) { c.Fetch.TimeoutSeconds = 0 }, "fetch.timeout_seconds"},
		{"zero redirects", func(c *Config) { c.Fetch.MaxRedirects = 0 }, "fetch.max_redirects"},
		{"zero rate limit", func(c *Config) { c.Server.RateLimitRPS = 0 }, "rate_limit_rps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(&cfg)

			err = cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
