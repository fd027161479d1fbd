package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	ConnectRetries     int
}

// BlobConfig holds object storage settings for the blob backend.
// Driver selects the client: "minio" (default) or "s3".
type BlobConfig struct {
	Driver    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PathStyle bool
}

// AuthConfig holds the shared-password session settings.
// Either Password or PasswordHash (bcrypt) must be set.
type AuthConfig struct {
	Password     string
	PasswordHash string
	TokenSecret  string
	TokenTTL     time.Duration
	CookieName   string
	CookieSecure bool
}

var (
	ErrPasswordRequired    = errors.New("auth password or password hash is required")
	ErrTokenSecretRequired = errors.New("auth token secret is required")
)

// Validate reports whether the auth settings are usable.
func (a AuthConfig) Validate() error {
	if a.Password == "" && a.PasswordHash == "" {
		return ErrPasswordRequired
	}
	if a.TokenSecret == "" {
		return ErrTokenSecretRequired
	}
	return nil
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost            string
	Port               string
	Timezone           string
	LogLevel           string
	MaxUploadBytes     int
	DefaultStorageType string
	Database           DatabaseConfig
	Blob               BlobConfig
	Auth               AuthConfig
}

// Location resolves Timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:            getEnv("APP_HOST", "localhost:8080"),
		Port:               getEnv("PORT", "8080"),
		Timezone:           getEnv("APP_TIMEZONE", "UTC"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		MaxUploadBytes:     getEnvInt("MAX_UPLOAD_BYTES", 100<<20),
		DefaultStorageType: getEnv("DEFAULT_STORAGE_TYPE", "structured"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			ConnectRetries:     getEnvInt("DB_CONNECT_RETRIES", 5),
		},
		Blob: BlobConfig{
			Driver:    getEnv("BLOB_DRIVER", "minio"),
			Endpoint:  getEnv("BLOB_ENDPOINT", ""),
			Region:    getEnv("BLOB_REGION", "us-east-1"),
			AccessKey: getEnv("BLOB_ACCESS_KEY", ""),
			SecretKey: getEnv("BLOB_SECRET_KEY", ""),
			Bucket:    getEnv("BLOB_BUCKET", ""),
			UseSSL:    getEnvBool("BLOB_USE_SSL", false),
			PathStyle: getEnvBool("BLOB_PATH_STYLE", true),
		},
		Auth: AuthConfig{
			Password:     getEnv("AUTH_PASSWORD", ""),
			PasswordHash: getEnv("AUTH_PASSWORD_HASH", ""),
			TokenSecret:  getEnv("AUTH_TOKEN_SECRET", ""),
			TokenTTL:     getEnvDuration("AUTH_TOKEN_TTL", 24*time.Hour),
			CookieName:   getEnv("AUTH_COOKIE_NAME", "auth_token"),
			CookieSecure: getEnvBool("AUTH_COOKIE_SECURE", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil && d > 0 {
			return d
		}
	}
	return def
}
