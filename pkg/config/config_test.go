package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.DB.Enabled())
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 2*time.Hour, cfg.Redis.DraftTTL)
	assert.Equal(t, "Performa Invoices & Quotations", cfg.Drive.FolderName)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DRAFT_TTL_MINUTES", "15")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "p@ss:word")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 15*time.Minute, cfg.Redis.DraftTTL)
	assert.True(t, cfg.DB.Enabled())
	assert.Equal(t, "postgres://postgres:p%40ss%3Aword@db:5432/cotizador?sslmode=disable", cfg.DB.ConnectionString())
	assert.Equal(t, "client-id", cfg.Drive.ClientID)
}

func TestDBConfig_DatabaseURLTienePrioridad(t *testing.T) {
	c := config.DBConfig{DatabaseURL: "postgres://u:p@h:1/x", Host: "otro"}
	assert.Equal(t, "postgres://u:p@h:1/x", c.ConnectionString())
}
