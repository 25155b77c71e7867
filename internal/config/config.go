package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
	URLExpiry  time.Duration
}

// Session controls bearer-token lifetime and the cookie that carries it.
// CookieMaxAge must not be shorter than Duration, otherwise the browser
// drops the token while the server still considers it valid.
type Session struct {
	Duration     time.Duration
	RenewWindow  time.Duration
	CookieName   string
	CookieMaxAge time.Duration
	CookieSecure bool
}

type Pagination struct {
	DefaultPageSize int
	MaxPageSize     int
}

type Config struct {
	ServerPort    int
	LogLevel      string
	DB            DB
	MinIO         MinIO
	Session       Session
	Pagination    Pagination
	BcryptCost    int
	MaxUploadSize int64
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "quillhub"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "documents"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),
		URLExpiry:  getEnvDuration("MINIO_URL_EXPIRY", 15*time.Minute),
	}
}

func LoadSession() Session {
	s := Session{
		Duration:     getEnvDuration("SESSION_DURATION", 30*24*time.Hour),
		RenewWindow:  getEnvDuration("SESSION_RENEW_WINDOW", 15*24*time.Hour),
		CookieName:   getEnv("SESSION_COOKIE_NAME", "session"),
		CookieMaxAge: getEnvDuration("SESSION_COOKIE_MAX_AGE", 400*24*time.Hour),
		CookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
	}
	if s.CookieMaxAge < s.Duration {
		s.CookieMaxAge = s.Duration
	}
	return s
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort: getEnvAsInt("SERVER_PORT", 8080),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		DB:         LoadDB(),
		MinIO:      LoadMinIO(),
		Session:    LoadSession(),
		Pagination: Pagination{
			DefaultPageSize: getEnvAsInt("PAGE_SIZE_DEFAULT", 12),
			MaxPageSize:     getEnvAsInt("PAGE_SIZE_MAX", 50),
		},
		BcryptCost:    getEnvAsInt("BCRYPT_COST", 14),
		MaxUploadSize: parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}
