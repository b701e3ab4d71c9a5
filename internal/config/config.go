package config

import "time"

// Config is the application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Places   PlacesConfig   `mapstructure:"places"`
	Model    ModelConfig    `mapstructure:"model"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	// Mode is the gin mode: debug, release or test.
	Mode string `mapstructure:"mode"`
}

func (s ServerConfig) Address() string {
	return s.Host + ":" + s.Port
}

type PlacesConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	SearchRadius   int    `mapstructure:"search_radius"`   // metres
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	Language       string `mapstructure:"language"`
}

type ModelConfig struct {
	Path string `mapstructure:"path"`
}

type ScoringConfig struct {
	MinReviews         int     `mapstructure:"min_reviews"`
	WalkingThresholdKm float64 `mapstructure:"walking_threshold_km"`
	TopK               int     `mapstructure:"top_k"`
	OriginLat          float64 `mapstructure:"origin_lat"`
	OriginLng          float64 `mapstructure:"origin_lng"`
	Zoom               float64 `mapstructure:"zoom"`
}

type CacheConfig struct {
	// Driver is memory, redis or none.
	Driver string      `mapstructure:"driver"`
	TTL    int         `mapstructure:"ttl"` // seconds
	Redis  RedisConfig `mapstructure:"redis"`
}

func (c CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DatabaseConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	URL            string `mapstructure:"url"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	AutoMigrate    bool   `mapstructure:"auto_migrate"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
