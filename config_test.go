package shiftboard

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.BaseURL = "https://intranet.example.com"
	cfg.Month = "2024-06"

	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "calendario.violations", cfg.ViolationSubject)
	assert.Equal(t, 2, cfg.Retry.Attempts)
}

func TestSetDefaults(t *testing.T) {
	cfg := Config{BaseURL: "https://example.com", Month: "2024-06"}
	SetDefaults(&cfg)

	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 200*time.Millisecond, cfg.Retry.Base)
	assert.Equal(t, 2*time.Second, cfg.Retry.Cap)

	// Explicit values survive.
	cfg = Config{BaseURL: "https://example.com", Month: "2024-06", RequestTimeout: time.Second}
	SetDefaults(&cfg)
	assert.Equal(t, time.Second, cfg.RequestTimeout)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.BaseURL = "" },
			wantErr: "BaseURL is required",
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.BaseURL = "/calendario" },
			wantErr: "absolute URL",
		},
		{
			name:    "missing month",
			mutate:  func(c *Config) { c.Month = "" },
			wantErr: "Month is required",
		},
		{
			name:    "bad month key",
			mutate:  func(c *Config) { c.Month = "June 2024" },
			wantErr: "month key",
		},
		{
			name:    "negative retries",
			mutate:  func(c *Config) { c.Retry.Attempts = -1 },
			wantErr: "Retry.Attempts",
		},
		{
			name:    "cap below base",
			mutate:  func(c *Config) { c.Retry.Cap = c.Retry.Base / 2 },
			wantErr: "Retry.Cap",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.RequestTimeout = 0 },
			wantErr: "RequestTimeout",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
baseUrl: https://intranet.example.com
month: "2024-06"
retry:
  attempts: 4
  base: 50ms
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://intranet.example.com", cfg.BaseURL)
	assert.Equal(t, "2024-06", cfg.Month)
	assert.Equal(t, 4, cfg.Retry.Attempts)
	assert.Equal(t, 50*time.Millisecond, cfg.Retry.Base)
	// Defaults filled in around the file's values.
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.Retry.Cap)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))
	_, err = LoadConfig(path)
	require.Error(t, err)
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()
	require.NoError(t, cfg.Validate())
	assert.Less(t, cfg.Retry.Base, 10*time.Millisecond)
}
