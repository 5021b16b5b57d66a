package config

import (
	"log"
	"os"
	"strconv"
)

const (
	DefaultAccessTokenExpiryMin  = 15
	DefaultRefreshTokenExpiryMin = 10080 // 7 days
	DefaultTokenLeewaySec        = 5
	DefaultBcryptCost            = 10
)

type Config struct {
	Env                string
	Port               string
	DBURL              string
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessExpiryMin    int
	RefreshExpiryMin   int
	TokenLeewaySec     int
	BcryptCost         int

	S3Region        string
	S3Bucket        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string
}

func Load() *Config {
	return &Config{
		Env:                getEnv("ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DBURL:              mustGetEnv("DB_URL"),
		AccessTokenSecret:  mustGetEnv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: mustGetEnv("REFRESH_TOKEN_SECRET"),
		AccessExpiryMin:    getEnvAsInt("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenExpiryMin),
		RefreshExpiryMin:   getEnvAsInt("REFRESH_TOKEN_EXPIRY", DefaultRefreshTokenExpiryMin),
		TokenLeewaySec:     getEnvAsInt("TOKEN_LEEWAY_SEC", DefaultTokenLeewaySec),
		BcryptCost:         getEnvAsInt("BCRYPT_COST", DefaultBcryptCost),

		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3Bucket:        mustGetEnv("S3_BUCKET"),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3AccessKey:     mustGetEnv("S3_ACCESS_KEY"),
		S3SecretKey:     mustGetEnv("S3_SECRET_KEY"),
		S3PublicBaseURL: mustGetEnv("S3_PUBLIC_BASE_URL"),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
