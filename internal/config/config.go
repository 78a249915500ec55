package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port            string
	Environment     string
	MLServiceURL    string
	DataProvider    string // "yahoo" or "alphavantage"
	AlphaVantageKey string
	AllowOrigins    string
	StaticDir       string
	RequestTimeout  int // seconds
	LogLevel        string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "production"),
		MLServiceURL:    getEnv("ML_SERVICE_URL", ""),
		DataProvider:    getEnv("DATA_PROVIDER", "yahoo"),
		AlphaVantageKey: getEnv("ALPHA_VANTAGE_KEY", ""),
		AllowOrigins:    getEnv("ALLOW_ORIGINS", "*"),
		StaticDir:       getEnv("STATIC_DIR", ""),
		RequestTimeout:  getEnvInt("REQUEST_TIMEOUT", 30),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	if cfg.MLServiceURL == "" {
		log.Fatal().Msg("ML_SERVICE_URL is required")
	}

	if cfg.DataProvider == "alphavantage" && cfg.AlphaVantageKey == "" {
		log.Fatal().Msg("ALPHA_VANTAGE_KEY is required when DATA_PROVIDER=alphavantage")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
