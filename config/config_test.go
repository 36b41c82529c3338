package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into a scratch directory so Load never picks up a stray
// config.yaml from the repo.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, []string{"capacitor://*", "http://localhost:*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "https://world.openfoodfacts.org", cfg.OFF.BaseURL)
	assert.Equal(t, 168*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 0.40, cfg.Scoring.WeightNutrient)
	assert.Equal(t, 0.10, cfg.Scoring.WeightMicronutrients)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t)
	t.Setenv("SCOREMYFOOD_SERVER_PORT", "9090")
	t.Setenv("SCOREMYFOOD_SERVER_ENVIRONMENT", "production")
	t.Setenv("SCOREMYFOOD_OFF_BASE_URL", "https://off.mirror.example")
	t.Setenv("SCOREMYFOOD_CACHE_TTL", "24h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.Equal(t, "https://off.mirror.example", cfg.OFF.BaseURL)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdir(t)

	yaml := `
server:
  port: "3000"
  environment: staging
off:
  base_url: https://off.staging.example
cache:
  ttl: 1h
scoring:
  weight_nutrient: 0.5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "staging", cfg.Server.Environment)
	assert.Equal(t, "https://off.staging.example", cfg.OFF.BaseURL)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 0.5, cfg.Scoring.WeightNutrient)
	// Values the file omits keep their defaults.
	assert.Equal(t, 0.20, cfg.Scoring.WeightProcessing)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("empty base URL is rejected", func(t *testing.T) {
		dir := chdir(t)
		// A file value overrides the default; env vars can't express an
		// explicit empty string.
		yaml := "off:\n  base_url: \"\"\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base URL")
	})

	t.Run("negative weight is rejected", func(t *testing.T) {
		dir := chdir(t)
		yaml := "scoring:\n  weight_flags: -0.1\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-negative")
	})
}
