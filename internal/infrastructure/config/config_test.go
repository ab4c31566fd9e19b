package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "salonkit-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "salonkit", cfg.Database.DBName)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins, "no wildcard CORS default")
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	require.NoError(t, cfg.validate())

	t.Run("idle conns above open conns", func(t *testing.T) {
		bad := &Config{}
		applyDefaults(bad)
		bad.Database.MaxIdleConns = 50
		assert.Error(t, bad.validate())
	})

	t.Run("production requires password and ssl", func(t *testing.T) {
		prod := &Config{}
		applyDefaults(prod)
		prod.App.Env = "production"
		assert.Error(t, prod.validate())

		prod.Database.Password = "secret"
		assert.Error(t, prod.validate(), "sslmode=disable still rejected")

		prod.Database.SSLMode = "require"
		assert.NoError(t, prod.validate())
	})

	t.Run("production rejects wildcard cors", func(t *testing.T) {
		prod := &Config{}
		applyDefaults(prod)
		prod.App.Env = "production"
		prod.Database.Password = "secret"
		prod.Database.SSLMode = "require"
		prod.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, prod.validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "salonkit",
		Password: "p@ss/word",
		DBName:   "salonkit",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word", "password must be escaped")
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
