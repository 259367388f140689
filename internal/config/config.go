package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	SharedPassword string
	GinMode        string
	Port           string
	OpenAIAPIKey   string
}

func Load() *Config {
	// Best-effort: a missing .env just means plain environment variables.
	_ = godotenv.Load()

	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "smartharvest"),
		DBPassword:     getEnv("DB_PASSWORD", "smartharvest"),
		DBName:         getEnv("DB_NAME", "smartharvest"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		SharedPassword: getEnv("SHARED_PASSWORD", "growtrack2024"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		Port:           getEnv("PORT", "8080"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
