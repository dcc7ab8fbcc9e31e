package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"gameshelf/internal/utils"
)

type Config struct {
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost string
	RedisPort string

	SessionSecret string
	GinMode       string

	SteamAPIKey      string
	EpicClientID     string
	EpicClientSecret string
	EpicDeploymentID string

	OpenAIAPIKey string
}

func Load() *Config {
	// Optional .env file for local development.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := &Config{
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBPath:     getEnv("DB_PATH", "gameshelf.sqlite"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "gameshelf"),
		DBPassword: getEnv("DB_PASSWORD", "gameshelf"),
		DBName:     getEnv("DB_NAME", "gameshelf"),

		RedisHost: getEnv("REDIS_HOST", ""),
		RedisPort: getEnv("REDIS_PORT", "6379"),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		GinMode:       getEnv("GIN_MODE", "debug"),

		SteamAPIKey:      getEnv("STEAM_API_KEY", ""),
		EpicClientID:     getEnv("EPIC_CLIENT_ID", ""),
		EpicClientSecret: getEnv("EPIC_CLIENT_SECRET", ""),
		EpicDeploymentID: getEnv("EPIC_DEPLOYMENT_ID", "prod"),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
	}

	if cfg.SessionSecret == "" {
		secret, err := utils.GenerateSecret()
		if err != nil {
			log.Fatalf("Failed to generate session secret: %v", err)
		}
		log.Println("SESSION_SECRET not set, generated an ephemeral one (sessions reset on restart)")
		cfg.SessionSecret = secret
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
