package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"culinarycompass/hours"
)

// Catalog source kinds accepted by CATALOG_SOURCE.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceElastic  = "elasticsearch"
)

type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Kafka   KafkaConfig
	Clock   ClockConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port           string
	TemplatePath   string
	StaticDir      string
	AllowedOrigins []string
}

type CatalogConfig struct {
	Source          string
	Path            string
	DatabaseURL     string
	ElasticURL      string
	ElasticIndex    string
	RefreshInterval time.Duration
}

type KafkaConfig struct {
	Brokers     []string
	ReloadTopic string
	GroupID     string
}

// ClockConfig controls the reference time used for open-hours checks.
type ClockConfig struct {
	Location *time.Location
	// Simulated pins every check to a fixed time of day when set.
	Simulated *hours.TimeOfDay
}

type LoggingConfig struct {
	Level     string
	Format    string
	Directory string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "5000"),
			TemplatePath:   getEnv("TEMPLATE_PATH", "templates/index.html"),
			StaticDir:      getEnv("STATIC_DIR", "static"),
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Catalog: CatalogConfig{
			Source:       strings.ToLower(getEnv("CATALOG_SOURCE", SourceFile)),
			Path:         getEnv("CATALOG_PATH", "data/restaurants.json"),
			DatabaseURL:  os.Getenv("DATABASE_URL"),
			ElasticURL:   getEnv("ELASTIC_URL", "http://localhost:9200"),
			ElasticIndex: getEnv("ELASTIC_INDEX", "restaurants"),
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(firstNonEmpty(os.Getenv("KAFKA_BROKERS"), os.Getenv("KAFKA_BROKER"))),
			ReloadTopic: getEnv("KAFKA_RELOAD_TOPIC", "catalog.reload"),
			GroupID:     getEnv("KAFKA_GROUP_ID", "culinary-compass"),
		},
		Logging: LoggingConfig{
			Level:     getEnv("LOG_LEVEL", "info"),
			Format:    getEnv("LOG_FORMAT", "text"),
			Directory: os.Getenv("LOG_DIR"),
		},
	}

	switch cfg.Catalog.Source {
	case SourceFile, SourcePostgres, SourceElastic:
	default:
		return nil, fmt.Errorf("CATALOG_SOURCE %q: must be one of %s, %s, %s", cfg.Catalog.Source, SourceFile, SourcePostgres, SourceElastic)
	}

	if raw := strings.TrimSpace(os.Getenv("CATALOG_REFRESH_INTERVAL")); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("CATALOG_REFRESH_INTERVAL: %w", err)
		}
		if interval < 0 {
			return nil, fmt.Errorf("CATALOG_REFRESH_INTERVAL: must not be negative")
		}
		cfg.Catalog.RefreshInterval = interval
	}

	loc := time.Local
	if name := strings.TrimSpace(os.Getenv("TIMEZONE")); name != "" {
		var err error
		loc, err = time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("TIMEZONE: %w", err)
		}
	}
	cfg.Clock.Location = loc

	if raw := strings.TrimSpace(os.Getenv("SIMULATED_TIME")); raw != "" {
		tod, err := hours.ParseTimeOfDay(raw)
		if err != nil {
			return nil, fmt.Errorf("SIMULATED_TIME: %w", err)
		}
		cfg.Clock.Simulated = &tod
	}

	return cfg, nil
}

// Now returns the clock described by the configuration.
func (c ClockConfig) Now() func() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	if c.Simulated != nil {
		tod := int(*c.Simulated)
		return func() time.Time {
			y, m, d := time.Now().In(loc).Date()
			return time.Date(y, m, d, tod/60, tod%60, 0, 0, loc)
		}
	}
	return func() time.Time { return time.Now().In(loc) }
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
