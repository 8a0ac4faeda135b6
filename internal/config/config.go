package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI  string
	DBName    string
	JWTSecret string
	TokenTTL  time.Duration
	UploadDir string
	Port      string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:  getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017/contactdb"),
		DBName:    getEnvOrDefault("DB_NAME", "contactdb"),
		JWTSecret: getEnvOrDefault("JWT_SECRET", ""),
		TokenTTL:  getDurationEnv("TOKEN_TTL_DAYS", 7, 24*time.Hour),
		UploadDir: getEnvOrDefault("UPLOAD_DIR", "./uploads"),
		Port:      getEnvOrDefault("PORT", "3000"),
	}
	if AppEnv.JWTSecret == "" {
		log.Println("JWT_SECRET not set, using insecure development default")
		AppEnv.JWTSecret = "your-secret-key-change-in-production"
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
