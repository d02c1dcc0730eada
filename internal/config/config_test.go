package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, DefaultAssetsDir, cfg.AssetsDir)
	assert.Equal(t, DefaultFontsDir, cfg.FontsDir)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, DefaultPriceTimeout, cfg.PriceTimeout)
	assert.Equal(t, DefaultPriceMaxRetry, cfg.PriceMaxRetry)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
}

func TestLoadConfig_Values(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{
		"assets_dir": "custom/assets",
		"price_api_url": "https://quotes.example.com/v1",
		"fallback_prices": {"SOL": 150.0, "ETH": 3500.0},
		"debug_logging": true
	}`))
	require.NoError(t, err)

	assert.Equal(t, "custom/assets", cfg.AssetsDir)
	assert.Equal(t, "https://quotes.example.com/v1", cfg.PriceAPIURL)
	assert.Equal(t, 150.0, cfg.FallbackPrices["SOL"])
	assert.Equal(t, 3500.0, cfg.FallbackPrices["ETH"])
	assert.True(t, cfg.DebugLogging)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad price API protocol", `{"price_api_url": "ftp://quotes.example.com"}`},
		{"zero timeout", `{"price_timeout_ms": 0}`},
		{"negative retry window", `{"price_max_retry_ms": -1}`},
		{"non-positive fallback price", `{"fallback_prices": {"SOL": 0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
