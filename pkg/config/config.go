package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port                    string
	Env                     string
	PostgresConnStr         string
	MongoURI                string
	JWTSecret               string
	FirebaseCredentialsPath string
	MediaBucket             string
	MaxUploadBytes          int64
	SupportPhone            string
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		MediaBucket:             getEnv("MEDIA_BUCKET", "munasbate-media"),
		MaxUploadBytes:          getEnvInt64("MAX_UPLOAD_BYTES", 100<<20),
		SupportPhone:            getEnv("SUPPORT_PHONE", "+966508370913"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
