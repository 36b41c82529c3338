package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	OFF     OFFConfig
	Cache   CacheConfig
	Scoring ScoringConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OFFConfig holds Open Food Facts API configuration
type OFFConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// ScoringConfig holds the weight overrides for the scoring engine. Weights
// default to the built-in table; they exist here so tuning deployments can
// shift emphasis without a code change.
type ScoringConfig struct {
	WeightNutrient       float64 `mapstructure:"weight_nutrient"`
	WeightProcessing     float64 `mapstructure:"weight_processing"`
	WeightAdditives      float64 `mapstructure:"weight_additives"`
	WeightFlags          float64 `mapstructure:"weight_flags"`
	WeightMicronutrients float64 `mapstructure:"weight_micronutrients"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/scoremyfood/")

	// Environment variable settings
	v.SetEnvPrefix("SCOREMYFOOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"capacitor://*", "http://localhost:*"})

	// Open Food Facts defaults
	v.SetDefault("off.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("off.user_agent", "ScoreMyFood/1.0 (backend)")

	// Cache defaults
	v.SetDefault("cache.ttl", "168h") // 7 days

	// Scoring weight defaults (must match the built-in table)
	v.SetDefault("scoring.weight_nutrient", 0.40)
	v.SetDefault("scoring.weight_processing", 0.20)
	v.SetDefault("scoring.weight_additives", 0.20)
	v.SetDefault("scoring.weight_flags", 0.10)
	v.SetDefault("scoring.weight_micronutrients", 0.10)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.OFF.BaseURL == "" {
		return fmt.Errorf("Open Food Facts base URL is required (set SCOREMYFOOD_OFF_BASE_URL)")
	}

	weights := []float64{
		config.Scoring.WeightNutrient,
		config.Scoring.WeightProcessing,
		config.Scoring.WeightAdditives,
		config.Scoring.WeightFlags,
		config.Scoring.WeightMicronutrients,
	}
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("scoring weights must be non-negative, got: %v", weights)
		}
	}

	return nil
}
