package config

import "github.com/joho/godotenv"

type Config interface {
	EnvConfig
	AuthConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Auth
	Cors
}

func New() Config {
	// Development convenience only; missing .env is not an error.
	_ = godotenv.Load()
	return mainConfig{}
}
