package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/velog-io/velog-api/internal/logger"
	"github.com/velog-io/velog-api/internal/tracing"
)

type Config struct {
	AppConfig      *AppConfig
	Logger         *logger.Config
	Tracing        *tracing.JaegerConfig
	DatabaseConfig *DatabaseConfig
	AuthConfig     *AuthConfig
	StorageConfig  *StorageConfig
}

func newConfig() *Config {
	return &Config{
		AppConfig:      &AppConfig{},
		Logger:         &logger.Config{},
		Tracing:        &tracing.JaegerConfig{},
		DatabaseConfig: &DatabaseConfig{},
		AuthConfig:     &AuthConfig{},
		StorageConfig:  &StorageConfig{},
	}
}

func InitConfig() (*Config, error) {
	config := newConfig()

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
