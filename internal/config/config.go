package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Retrieval RetrievalConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
}

type RetrievalConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AssistantConfig struct {
	SessionTTL      time.Duration
	EventsTopicName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Retrieval: RetrievalConfig{
			BaseURL: getEnv("RETRIEVAL_BASE_URL", "http://localhost:8100"),
			Timeout: time.Duration(getEnvAsInt("RETRIEVAL_TIMEOUT_SECONDS", 20)) * time.Second,
		},
		Assistant: AssistantConfig{
			SessionTTL:      time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
			EventsTopicName: getEnv("ASSISTANT_EVENTS_TOPIC_NAME", "ASSISTANT_EVENTS"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
