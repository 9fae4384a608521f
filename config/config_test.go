package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "restaurant", cfg.App.Name)
	assert.Equal(t, "memory", cfg.Database.Type)
	assert.Equal(t, 24*time.Hour, cfg.Redis.CartTTL)
	assert.Equal(t, "crm.orders", cfg.CRM.Kafka.Topic)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte("database:\n  type: sqlite\n  sqlite_path: /tmp/r.db\nserver:\n  port: \"9090\"\n")
	require.NoError(t, os.WriteFile(path, yaml, 0o644))
	t.Setenv("RESTAURANT_SERVER_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "/tmp/r.db", cfg.Database.SQLitePath)
	assert.Equal(t, "7070", cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Type: "postgres"}}
	assert.Error(t, cfg.Validate())

	cfg = &Config{
		Database: DatabaseConfig{Type: "memory"},
		CRM:      CRMConfig{Kafka: KafkaConfig{Enabled: true}},
	}
	assert.Error(t, cfg.Validate())

	cfg.CRM.Kafka = KafkaConfig{Enabled: true, Brokers: []string{"k:9092"}, Topic: "t"}
	assert.NoError(t, cfg.Validate())
}
