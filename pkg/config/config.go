package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL  string
	AdminToken  string
	Environment string
	HTTPTimeout int64
	UploadDir   string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8000"),
		AdminToken:  getEnv("ADMIN_TOKEN", ""),
		Environment: getEnv("ENVIRONMENT", "development"),
		HTTPTimeout: getEnvAsInt64("HTTP_TIMEOUT_SECONDS", 30),
		UploadDir:   getEnv("UPLOAD_FOLDER", "products"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
