package config_test

import (
	"os"
	"path/filepath"
	"targets/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, []string{"friday"}, cfg.Distribution.ExcludedWeekdays)
	require.Equal(t, "literal", cfg.Distribution.Mode)
	require.Equal(t, 1200, cfg.Distribution.MaxMonths)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, "/metrics", cfg.HTTP.MetricsPath)
	require.Equal(t, 10*time.Second, cfg.GracefulShutdownTimeout)
	require.Empty(t, cfg.JWT.PublicKey)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: production
distribution:
  excludedWeekdays: [sunday, friday]
  mode: weighted
  maxMonths: 24
http:
  addr: ":9090"
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, []string{"sunday", "friday"}, cfg.Distribution.ExcludedWeekdays)
	require.Equal(t, "weighted", cfg.Distribution.Mode)
	require.Equal(t, 24, cfg.Distribution.MaxMonths)
	require.Equal(t, ":9090", cfg.HTTP.Addr)
	require.Equal(t, time.Minute, cfg.HTTP.ReadTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DISTRIBUTION_MODE", "weighted")
	t.Setenv("DISTRIBUTION_EXCLUDED_WEEKDAYS", "sat,sun")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	require.Equal(t, "weighted", cfg.Distribution.Mode)
	require.Equal(t, []string{"sat", "sun"}, cfg.Distribution.ExcludedWeekdays)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("distribution: [unterminated"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
}
