package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DatabaseConfig database connection settings
type DatabaseConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	DBName   string
}

// URL builds a postgres:// connection URL
func (d *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.DBName)
}

// DSN builds a key=value DSN for pgx
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.DBName)
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port string
	Env  string
	Host string // Swagger host
}

// RecommenderConfig settings for the external idea generator
type RecommenderConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Enabled reports whether the recommender can be called at all
func (r *RecommenderConfig) Enabled() bool {
	return r.APIKey != ""
}

// ImageProviderConfig one photo provider: credentials plus its call budget
type ImageProviderConfig struct {
	APIKey string
	Limit  int
	Window time.Duration
}

// ImagesConfig the ordered photo provider chain
type ImagesConfig struct {
	Foursquare ImageProviderConfig
	Pexels     ImageProviderConfig
	Unsplash   ImageProviderConfig
	Timeout    time.Duration
}

// ResolverConfig reverse geocoding settings
type ResolverConfig struct {
	PrimaryURL  string // Nominatim-compatible base URL
	FallbackURL string // secondary backend, tried after the primary is exhausted
	UserAgent   string
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
	Timezone    string // reference timezone for dateKey / expiry computation
}

// Location returns the configured timezone as *time.Location
func (r *ResolverConfig) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// BatchConfig maintenance sweeper scheduling
type BatchConfig struct {
	Mode            string // daily | interval | once
	TimeHHMM        string // run time for daily mode (HH:MM)
	IntervalSeconds int    // period for interval mode
	Timezone        string
	RunAtStart      bool
}

// Location returns the configured timezone as *time.Location
func (b *BatchConfig) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SweepConfig retention policy for the venue store
type SweepConfig struct {
	VenueRetentionDays int // delete only venues not viewed for this long...
	VenueViewThreshold int // ...and with fewer views than this
}

// Config top-level application configuration
type Config struct {
	Server      ServerConfig
	DB          DatabaseConfig
	Recommender RecommenderConfig
	Images      ImagesConfig
	Resolver    ResolverConfig
	Batch       BatchConfig
	Sweep       SweepConfig
	OTLPEndpoint string
}

// Load reads configuration from the environment (.env is optional)
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8000"),
			Env:  getEnv("SERVER_ENV", "development"),
			Host: getEnv("SERVER_HOST", "localhost:8000"),
		},
		DB: DatabaseConfig{
			User:     getEnv("POSTGRES_USER", ""),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			DBName:   getEnv("POSTGRES_DB", ""),
		},
		Recommender: RecommenderConfig{
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Model:       getEnv("AI_MODEL", "gpt-3.5-turbo"),
			MaxTokens:   getEnvInt("AI_MAX_TOKENS", 2000),
			Temperature: getEnvFloat("AI_TEMPERATURE", 0.7),
			Timeout:     time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Images: ImagesConfig{
			Foursquare: ImageProviderConfig{
				APIKey: getEnv("FOURSQUARE_API_KEY", ""),
				Limit:  getEnvInt("FOURSQUARE_RATE_LIMIT", 1000),
				Window: time.Duration(getEnvInt("FOURSQUARE_WINDOW_SECONDS", 86400)) * time.Second,
			},
			Pexels: ImageProviderConfig{
				APIKey: getEnv("PEXELS_API_KEY", ""),
				Limit:  getEnvInt("PEXELS_RATE_LIMIT", 200),
				Window: time.Duration(getEnvInt("PEXELS_WINDOW_SECONDS", 3600)) * time.Second,
			},
			Unsplash: ImageProviderConfig{
				APIKey: getEnv("UNSPLASH_API_KEY", ""),
				Limit:  getEnvInt("UNSPLASH_RATE_LIMIT", 50),
				Window: time.Duration(getEnvInt("UNSPLASH_WINDOW_SECONDS", 3600)) * time.Second,
			},
			Timeout: time.Duration(getEnvInt("IMAGE_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Resolver: ResolverConfig{
			PrimaryURL:  getEnv("NOMINATIM_API_URL", "https://nominatim.openstreetmap.org"),
			FallbackURL: getEnv("NOMINATIM_FALLBACK_URL", ""),
			UserAgent:   getEnv("GEOCODE_USER_AGENT", "D8-Restaurant-App/1.0"),
			Timeout:     time.Duration(getEnvInt("GEOCODE_TIMEOUT_SECONDS", 5)) * time.Second,
			MaxRetries:  getEnvInt("GEOCODE_MAX_RETRIES", 2),
			RetryDelay:  time.Duration(getEnvInt("GEOCODE_RETRY_DELAY_SECONDS", 1)) * time.Second,
			Timezone:    getEnv("TIMEZONE", "UTC"),
		},
		Batch: BatchConfig{
			Mode:            getEnv("BATCH_MODE", "daily"),
			TimeHHMM:        getEnv("BATCH_TIME", "03:00"),
			IntervalSeconds: getEnvInt("BATCH_INTERVAL_SECONDS", 3600),
			Timezone:        getEnv("TIMEZONE", "UTC"),
			RunAtStart:      getEnvBool("RUN_AT_START", false),
		},
		Sweep: SweepConfig{
			VenueRetentionDays: getEnvInt("VENUE_RETENTION_DAYS", 90),
			VenueViewThreshold: getEnvInt("VENUE_VIEW_THRESHOLD", 3),
		},
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	return cfg, nil
}

// getEnv reads an environment variable with a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool reads an environment variable as bool
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt reads an environment variable as int
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

// getEnvFloat reads an environment variable as float64
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}
