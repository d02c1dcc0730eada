// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AssetsDir      string             `mapstructure:"assets_dir"`
	FontsDir       string             `mapstructure:"fonts_dir"`
	OutputDir      string             `mapstructure:"output_dir"`
	PriceAPIURL    string             `mapstructure:"price_api_url"`
	PriceTimeout   int                `mapstructure:"price_timeout_ms"`
	PriceMaxRetry  int                `mapstructure:"price_max_retry_ms"`
	FallbackPrices map[string]float64 `mapstructure:"fallback_prices"`
	LogFile        string             `mapstructure:"log_file"`
	DebugLogging   bool               `mapstructure:"debug_logging"`
}

const (
	DefaultAssetsDir     = "assets"
	DefaultFontsDir      = "assets/fonts"
	DefaultOutputDir     = "out"
	DefaultPriceTimeout  = 10000
	DefaultPriceMaxRetry = 15000
	DefaultLogFile       = "mugshot.log"
)

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"assets_dir":         DefaultAssetsDir,
		"fonts_dir":          DefaultFontsDir,
		"output_dir":         DefaultOutputDir,
		"price_timeout_ms":   DefaultPriceTimeout,
		"price_max_retry_ms": DefaultPriceMaxRetry,
		"log_file":           DefaultLogFile,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loadEnvironmentVariables(v, &cfg)

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if cfg.AssetsDir == "" {
		return errors.New("assets_dir cannot be empty")
	}
	if cfg.FontsDir == "" {
		return errors.New("fonts_dir cannot be empty")
	}
	if cfg.PriceAPIURL != "" {
		if err := validateURL(cfg.PriceAPIURL, "http"); err != nil {
			return errors.New("invalid price API URL protocol")
		}
	}
	if cfg.PriceTimeout <= 0 {
		return errors.New("invalid price_timeout_ms")
	}
	if cfg.PriceMaxRetry <= 0 {
		return errors.New("invalid price_max_retry_ms")
	}
	for chain, price := range cfg.FallbackPrices {
		if price <= 0 {
			return errors.New("invalid fallback price for " + chain)
		}
	}
	return nil
}

func validateURL(rawURL string, protocol string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) {
		return errors.New("invalid URL protocol")
	}
	return nil
}

func loadEnvironmentVariables(v *viper.Viper, cfg *Config) {
	v.AutomaticEnv()
	v.SetEnvPrefix("MUGSHOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if dir := v.GetString("ASSETS_DIR"); dir != "" {
		cfg.AssetsDir = dir
	}
	if dir := v.GetString("FONTS_DIR"); dir != "" {
		cfg.FontsDir = dir
	}
	if u := v.GetString("PRICE_API_URL"); u != "" {
		cfg.PriceAPIURL = u
	}
	if v.IsSet("DEBUG_LOGGING") {
		cfg.DebugLogging = v.GetBool("DEBUG_LOGGING")
	}
}
