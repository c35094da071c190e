package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	SourceFile     = "file"
	SourceElastic  = "elastic"
	SourcePostgres = "postgres"
)

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the lib/pq connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

type ElasticConfig struct {
	URL        string
	Index      string
	SchemaPath string
}

type DiscoveryConfig struct {
	RadiusKm      float64
	NewWithinDays int
	Cutoff        int
}

type Config struct {
	HTTPAddr      string
	LogLevel      string
	CatalogSource string
	CatalogPath   string
	SeedCatalog   bool

	Elastic   ElasticConfig
	Postgres  PostgresConfig
	Discovery DiscoveryConfig
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8888"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CatalogSource: strings.ToLower(getEnv("CATALOG_SOURCE", SourceFile)),
		CatalogPath:   getEnv("CATALOG_PATH", "./materials/restaurants.json"),
		SeedCatalog:   getEnvBool("SEED_CATALOG", false),

		Elastic: ElasticConfig{
			URL:        getEnv("ELASTIC_URL", "http://localhost:9200"),
			Index:      getEnv("ELASTIC_INDEX", "restaurants"),
			SchemaPath: getEnv("ELASTIC_SCHEMA_PATH", "./src/templates/schema.json"),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "discovery"),
			Password: getEnv("POSTGRES_PASSWORD", "discovery"),
			DBName:   getEnv("POSTGRES_DB", "discovery"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Discovery: DiscoveryConfig{
			RadiusKm:      getEnvFloat("DISCOVERY_RADIUS_KM", 1.5),
			NewWithinDays: getEnvInt("DISCOVERY_NEW_WITHIN_DAYS", 120),
			Cutoff:        getEnvInt("DISCOVERY_CUTOFF", 10),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CatalogSource {
	case SourceFile, SourceElastic, SourcePostgres:
	default:
		return fmt.Errorf("config: unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	if c.Discovery.RadiusKm <= 0 {
		return fmt.Errorf("config: DISCOVERY_RADIUS_KM must be positive, got %v", c.Discovery.RadiusKm)
	}
	if c.Discovery.Cutoff <= 0 {
		return fmt.Errorf("config: DISCOVERY_CUTOFF must be positive, got %d", c.Discovery.Cutoff)
	}
	if c.Discovery.NewWithinDays <= 0 {
		return fmt.Errorf("config: DISCOVERY_NEW_WITHIN_DAYS must be positive, got %d", c.Discovery.NewWithinDays)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
