package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges configs/config.<APP_ENVIRONMENT>.yaml
// over it and applies environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return build(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return build(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func build(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideFromEnv(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars replaces ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok || !strings.Contains(strVal, "$") {
			continue
		}
		if expanded := os.ExpandEnv(strVal); expanded != strVal {
			v.Set(key, expanded)
		}
	}
}

// overrideFromEnv lets the conventional deployment variables win over the
// config files.
func overrideFromEnv(cfg *Config) {
	if val := os.Getenv("PLACES_API_KEY"); val != "" {
		cfg.Places.APIKey = val
	}
	if val := os.Getenv("POSTGRES_URL"); val != "" {
		cfg.Database.Postgres.URL = val
	}
	if val := os.Getenv("REDIS_ADDRESS"); val != "" {
		cfg.Cache.Redis.Address = val
	}
	if val := os.Getenv("PORT"); val != "" {
		cfg.Server.Port = val
	}
	if val := os.Getenv("MODEL_PATH"); val != "" {
		cfg.Model.Path = val
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "playgroundr"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}

	if cfg.Places.BaseURL == "" {
		cfg.Places.BaseURL = "https://maps.googleapis.com/maps/api/place"
	}
	if cfg.Places.SearchRadius == 0 {
		cfg.Places.SearchRadius = 500
	}
	if cfg.Places.RequestTimeout == 0 {
		cfg.Places.RequestTimeout = 10000
	}
	if cfg.Places.Language == "" {
		cfg.Places.Language = "en"
	}

	if cfg.Model.Path == "" {
		cfg.Model.Path = "data/model.json"
	}

	if cfg.Scoring.MinReviews == 0 {
		cfg.Scoring.MinReviews = 4
	}
	if cfg.Scoring.WalkingThresholdKm == 0 {
		cfg.Scoring.WalkingThresholdKm = 1.0
	}
	if cfg.Scoring.TopK == 0 {
		cfg.Scoring.TopK = 5
	}
	if cfg.Scoring.OriginLat == 0 && cfg.Scoring.OriginLng == 0 {
		cfg.Scoring.OriginLat = 43.65
		cfg.Scoring.OriginLng = -79.38
	}
	if cfg.Scoring.Zoom == 0 {
		cfg.Scoring.Zoom = 12
	}

	if cfg.Cache.Driver == "" {
		cfg.Cache.Driver = "memory"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 3600
	}

	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Places.APIKey == "" {
		return fmt.Errorf("places.api_key is required")
	}
	if cfg.Scoring.MinReviews < 1 {
		return fmt.Errorf("scoring.min_reviews must be at least 1")
	}
	if cfg.Scoring.WalkingThresholdKm < 0 {
		return fmt.Errorf("scoring.walking_threshold_km must not be negative")
	}
	if cfg.Scoring.TopK < 1 {
		return fmt.Errorf("scoring.top_k must be at least 1")
	}

	switch cfg.Cache.Driver {
	case "memory", "none":
	case "redis":
		if cfg.Cache.Redis.Address == "" {
			return fmt.Errorf("cache.redis.address is required when cache.driver is redis")
		}
	default:
		return fmt.Errorf("unknown cache.driver %q", cfg.Cache.Driver)
	}

	if cfg.Database.Enabled && cfg.Database.Postgres.URL == "" {
		return fmt.Errorf("database.postgres.url is required when the database is enabled")
	}
	return nil
}
