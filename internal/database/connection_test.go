package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/velog-io/velog-api/config"
)

func validConfig() *config.DatabaseConfig {
	return &config.DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "velog",
		DBName:   "velog",
		Password: "secret",
		SSLMode:  "disable",
	}
}

func TestBuildDSN(t *testing.T) {
	dsn, err := buildDSN(validConfig())
	require.NoError(t, err)
	assert.Equal(t, "host=localhost port=5432 user=velog password=secret dbname=velog sslmode=disable", dsn)

	cfg := validConfig()
	cfg.Port = "not-a-port"
	_, err = buildDSN(cfg)
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, validateConfig(validConfig()))
	assert.Error(t, validateConfig(nil))

	tests := map[string]func(c *config.DatabaseConfig){
		"host":     func(c *config.DatabaseConfig) { c.Host = "" },
		"port":     func(c *config.DatabaseConfig) { c.Port = "" },
		"user":     func(c *config.DatabaseConfig) { c.User = "" },
		"password": func(c *config.DatabaseConfig) { c.Password = "" },
		"name":     func(c *config.DatabaseConfig) { c.DBName = "" },
		"sslmode":  func(c *config.DatabaseConfig) { c.SSLMode = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, parseLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, parseLogLevel("ERROR"))
	assert.Equal(t, gormlogger.Info, parseLogLevel("info"))
	assert.Equal(t, gormlogger.Warn, parseLogLevel("WARN"))
	assert.Equal(t, gormlogger.Warn, parseLogLevel(""))
}
