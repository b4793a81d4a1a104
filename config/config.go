package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Redis    Redis
	Auth     Auth
	Logger   Logger
}

type Server struct {
	Port        string
	Environment string
}

type Database struct {
	URL string
}

type Redis struct {
	URL string
}

type Auth struct {
	JWTSecret string
}

type Logger struct {
	Development bool
}

// Load reads config.yaml (if present) and overlays environment variables.
// Env keys use underscores: SERVER_PORT, DATABASE_URL, REDIS_URL, AUTH_JWTSECRET.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("logger.development", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// No config file is fine; env vars carry everything in production.
	}

	// viper.AutomaticEnv does not bind nested keys on Unmarshal, so bind explicitly.
	for _, key := range []string{
		"server.port", "server.environment",
		"database.url", "redis.url",
		"auth.jwtsecret",
		"logger.development",
	} {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
