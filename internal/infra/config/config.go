package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	AirQuality AirQualityConfig `yaml:"airQuality"`
	Routing    RoutingConfig    `yaml:"routing"`
	Cache      CacheConfig      `yaml:"cache"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// AirQualityConfig controls the pollution model and its data source.
type AirQualityConfig struct {
	CSVPath         string         `yaml:"csvPath"`
	Epsilon         float64        `yaml:"epsilon"`
	MinSeparation   float64        `yaml:"minSeparation"`
	RefreshInterval time.Duration  `yaml:"refreshInterval"`
	Postgres        PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings for the sensor store.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// RoutingConfig controls the external routing provider and route scoring.
type RoutingConfig struct {
	BaseURL           string        `yaml:"baseUrl"`
	APIKey            string        `yaml:"apiKey"`
	Profile           string        `yaml:"profile"`
	Alternatives      int           `yaml:"alternatives"`
	Timeout           time.Duration `yaml:"timeout"`
	ResolutionDegrees float64       `yaml:"resolutionDegrees"`
	CacheTTL          time.Duration `yaml:"cacheTtl"`
}

// CacheConfig contains connection information for the route cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = isTruthy(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("AQ_CSV_PATH"); v != "" {
		cfg.AirQuality.CSVPath = v
	}
	if v := os.Getenv("AQ_EPSILON"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.AirQuality.Epsilon = parsed
		}
	}
	if v := os.Getenv("AQ_MIN_SEPARATION"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.AirQuality.MinSeparation = parsed
		}
	}
	if v := os.Getenv("AQ_REFRESH_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.AirQuality.RefreshInterval = parsed
		}
	}
	if v := os.Getenv("AQ_POSTGRES_DSN"); v != "" {
		cfg.AirQuality.Postgres.DSN = v
	}
	if v := os.Getenv("AQ_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.AirQuality.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("AQ_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.AirQuality.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("ORS_BASE_URL"); v != "" {
		cfg.Routing.BaseURL = v
	}
	if v := os.Getenv("ORS_API_KEY"); v != "" {
		cfg.Routing.APIKey = v
	}
	if v := os.Getenv("ORS_PROFILE"); v != "" {
		cfg.Routing.Profile = v
	}
	if v := os.Getenv("ORS_ALTERNATIVES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Routing.Alternatives = parsed
		}
	}
	if v := os.Getenv("ORS_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Routing.Timeout = parsed
		}
	}
	if v := os.Getenv("ROUTES_RESOLUTION_DEGREES"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Routing.ResolutionDegrees = parsed
		}
	}
	if v := os.Getenv("ROUTES_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Routing.CacheTTL = parsed
		}
	}
	if v := os.Getenv("CACHE_ENABLED"); v != "" {
		cfg.Cache.Enabled = isTruthy(v)
	}
	if v := os.Getenv("CACHE_ADDR"); v != "" {
		cfg.Cache.Addr = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		AirQuality: AirQualityConfig{
			CSVPath:         "data/air_quality_hourly.csv",
			Epsilon:         0.1,
			MinSeparation:   0,
			RefreshInterval: time.Hour,
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
		},
		Routing: RoutingConfig{
			BaseURL:           "https://api.openrouteservice.org",
			Profile:           "driving-car",
			Alternatives:      3,
			Timeout:           10 * time.Second,
			ResolutionDegrees: 0.001,
			CacheTTL:          10 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled: false,
			Addr:    "",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.AirQuality.CSVPath) == "" && strings.TrimSpace(c.AirQuality.Postgres.DSN) == "" {
		return errors.New("airQuality needs a csvPath or a postgres.dsn")
	}
	if c.AirQuality.Epsilon <= 0 {
		return errors.New("airQuality.epsilon must be positive")
	}
	if c.AirQuality.MinSeparation < 0 {
		return errors.New("airQuality.minSeparation cannot be negative")
	}
	if c.AirQuality.RefreshInterval < 0 {
		return errors.New("airQuality.refreshInterval cannot be negative")
	}
	if c.Routing.BaseURL == "" {
		return errors.New("routing.baseUrl cannot be empty")
	}
	if c.Routing.Profile == "" {
		return errors.New("routing.profile cannot be empty")
	}
	if c.Routing.Alternatives <= 0 {
		return errors.New("routing.alternatives must be positive")
	}
	if c.Routing.ResolutionDegrees <= 0 {
		return errors.New("routing.resolutionDegrees must be positive")
	}
	if c.Routing.CacheTTL < 0 {
		return errors.New("routing.cacheTtl cannot be negative")
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Addr) == "" {
		return errors.New("cache.addr cannot be empty when the cache is enabled")
	}
	return nil
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
