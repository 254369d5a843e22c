package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/config"
)

func TestSetDefaults_FillsSQLiteSetup(t *testing.T) {
	cfg := &config.Config{}

	config.SetDefaults(cfg)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "smartschedule.db", cfg.Database.Path)
	assert.Equal(t, 10, cfg.Database.Pool.MaxOpen)
	assert.Equal(t, 7*24*time.Hour, cfg.Jobs.RiskCheckInterval)
	assert.Equal(t, time.Hour, cfg.Jobs.MissingDemandsInterval)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestSetDefaults_FillsPostgresHostAndPort(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Type = "postgres"

	config.SetDefaults(cfg)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestValidateConfig_AcceptsDefaults(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)

	require.NoError(t, config.ValidateConfig(cfg))
}

func TestValidateConfig_RejectsUnknownDatabaseType(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Database.Type = "oracle"

	err := config.ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Type")
}

func TestPostgresDSN_URLWinsOverFields(t *testing.T) {
	cfg := config.DatabaseConfig{
		URL:  "postgres://app:secret@db:5432/smartschedule",
		Host: "ignored",
	}

	assert.Equal(t, "postgres://app:secret@db:5432/smartschedule", cfg.PostgresDSN())
}

func TestPostgresDSN_AssembledFromFields(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "app",
		Password: "secret",
		Name:     "smartschedule",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=app password=secret dbname=smartschedule sslmode=disable",
		cfg.PostgresDSN())
}

func TestSQLitePath_DefaultsToInMemory(t *testing.T) {
	cfg := config.DatabaseConfig{}

	assert.Equal(t, ":memory:", cfg.SQLitePath())
}
