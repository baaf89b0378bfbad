package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
}
type ServerConfig struct {
	SecretKey         string
	Port              string
	ExpirationMinutes int
}
type DatabaseConfig struct {
	Host         string
	Username     string
	Password     string
	DatabaseName string
	Port         string
}

var Cfg = Config{}

func (config *Config) Init() {
	// .env is optional, real environment variables take precedence
	_ = godotenv.Load()

	config.Server = ServerConfig{
		SecretKey:         os.Getenv("SECRET_KEY"),
		Port:              getEnv("SERVER_PORT", "8080"),
		ExpirationMinutes: 120,
	}
	config.Database = DatabaseConfig{
		Host:         os.Getenv("DATABASE_HOST"),
		Username:     os.Getenv("DATABASE_USER"),
		Password:     os.Getenv("DATABASE_PASSWORD"),
		DatabaseName: os.Getenv("DATABASE_NAME"),
		Port:         getEnv("DATABASE_PORT", "5432"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
