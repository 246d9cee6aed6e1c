package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8081", cfg.HTTPAddr)
	require.Equal(t, "market-api", cfg.ServiceName)
	require.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers())
	require.False(t, cfg.AutoMigrate)
	require.Equal(t, 4, cfg.ProjectorWorkers)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("PROJECTOR_WORKERS", "0")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.HTTPAddr)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers())
	require.True(t, cfg.AutoMigrate)
	require.Equal(t, 1, cfg.ProjectorWorkers)
	require.False(t, cfg.IsDev())
}
