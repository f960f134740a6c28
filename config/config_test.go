package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "TEMPLATE_PATH", "STATIC_DIR", "CORS_ALLOWED_ORIGINS",
	"CATALOG_SOURCE", "CATALOG_PATH", "DATABASE_URL", "ELASTIC_URL", "ELASTIC_INDEX",
	"CATALOG_REFRESH_INTERVAL", "KAFKA_BROKERS", "KAFKA_BROKER", "KAFKA_RELOAD_TOPIC",
	"KAFKA_GROUP_ID", "TIMEZONE", "SIMULATED_TIME", "LOG_LEVEL", "LOG_FORMAT", "LOG_DIR",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "5000", cfg.Server.Port)
	require.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	require.Equal(t, SourceFile, cfg.Catalog.Source)
	require.Equal(t, "data/restaurants.json", cfg.Catalog.Path)
	require.Zero(t, cfg.Catalog.RefreshInterval)
	require.Empty(t, cfg.Kafka.Brokers)
	require.Equal(t, "catalog.reload", cfg.Kafka.ReloadTopic)
	require.Nil(t, cfg.Clock.Simulated)
	require.Equal(t, time.Local, cfg.Clock.Location)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_SOURCE", "Postgres")
	t.Setenv("CATALOG_REFRESH_INTERVAL", "5m")
	t.Setenv("KAFKA_BROKER", "kafka-1:9092, kafka-2:9092")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("SIMULATED_TIME", "23:30")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, http://localhost:3000")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, SourcePostgres, cfg.Catalog.Source)
	require.Equal(t, 5*time.Minute, cfg.Catalog.RefreshInterval)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Server.AllowedOrigins)
	require.NotNil(t, cfg.Clock.Simulated)
	require.Equal(t, "23:30", cfg.Clock.Simulated.String())

	now := cfg.Clock.Now()()
	require.Equal(t, 23, now.Hour())
	require.Equal(t, 30, now.Minute())
	require.Equal(t, time.UTC, now.Location())
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"CATALOG_SOURCE":           "mongodb",
		"CATALOG_REFRESH_INTERVAL": "soon",
		"TIMEZONE":                 "Mars/Olympus_Mons",
		"SIMULATED_TIME":           "25:00",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
