package config

import (
	"log"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAccessTokenExpiry  = 15 * time.Minute
	defaultRefreshTokenExpiry = 10 * 24 * time.Hour
	defaultAccessSecret       = "default_insecure_access_secret_please_change_this_!@#$"
	defaultRefreshSecret      = "default_insecure_refresh_secret_please_change_this_!@#$"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	CORSOrigin    string

	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration
	JWTIssuer          string

	// Media store (S3 compatible)
	MinioEndpoint        string
	MinioAccessKeyID     string
	MinioSecretAccessKey string
	MinioBucket          string
	MinioUseSSL          bool
	MinioRegion          string
	MediaPublicBaseURL   string
	MaxUploadSizeMB      int64

	// Rate limiting; RedisURL empty means an in-process store.
	RedisURL       string
	LoginRateLimit string
}

// TokenConfig returns the immutable signing configuration handed to the token service.
func (c *Config) TokenConfig() domain.TokenConfig {
	return domain.TokenConfig{
		AccessSecret:  c.AccessTokenSecret,
		AccessExpiry:  c.AccessTokenExpiry,
		RefreshSecret: c.RefreshTokenSecret,
		RefreshExpiry: c.RefreshTokenExpiry,
		Issuer:        c.JWTIssuer,
	}
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("CORS_ORIGIN", "http://localhost:3000")
	viper.SetDefault("ACCESS_TOKEN_SECRET", defaultAccessSecret)
	viper.SetDefault("ACCESS_TOKEN_EXPIRY", "15m")
	viper.SetDefault("REFRESH_TOKEN_SECRET", defaultRefreshSecret)
	viper.SetDefault("REFRESH_TOKEN_EXPIRY", "240h")
	viper.SetDefault("JWT_ISSUER", "vidtube-backend")
	viper.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	viper.SetDefault("MINIO_ACCESS_KEY_ID", "")
	viper.SetDefault("MINIO_SECRET_ACCESS_KEY", "")
	viper.SetDefault("MINIO_BUCKET", "vidtube-media")
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("MINIO_REGION", "us-east-1")
	viper.SetDefault("MEDIA_PUBLIC_BASE_URL", "")
	viper.SetDefault("MAX_UPLOAD_SIZE_MB", 512)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8000"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.AccessTokenSecret = viper.GetString("ACCESS_TOKEN_SECRET")
	if cfg.AccessTokenSecret == "" {
		log.Println("Warning: ACCESS_TOKEN_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
		cfg.AccessTokenSecret = defaultAccessSecret
	}
	cfg.RefreshTokenSecret = viper.GetString("REFRESH_TOKEN_SECRET")
	if cfg.RefreshTokenSecret == "" {
		log.Println("Warning: REFRESH_TOKEN_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
		cfg.RefreshTokenSecret = defaultRefreshSecret
	}

	cfg.AccessTokenExpiry = parseDuration("ACCESS_TOKEN_EXPIRY", defaultAccessTokenExpiry)
	cfg.RefreshTokenExpiry = parseDuration("REFRESH_TOKEN_EXPIRY", defaultRefreshTokenExpiry)

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "vidtube-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.CORSOrigin = viper.GetString("CORS_ORIGIN")
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "http://localhost:3000"
	}

	cfg.MinioEndpoint = viper.GetString("MINIO_ENDPOINT")
	cfg.MinioAccessKeyID = viper.GetString("MINIO_ACCESS_KEY_ID")
	cfg.MinioSecretAccessKey = viper.GetString("MINIO_SECRET_ACCESS_KEY")
	cfg.MinioBucket = viper.GetString("MINIO_BUCKET")
	cfg.MinioUseSSL = viper.GetBool("MINIO_USE_SSL")
	cfg.MinioRegion = viper.GetString("MINIO_REGION")
	cfg.MediaPublicBaseURL = viper.GetString("MEDIA_PUBLIC_BASE_URL")
	if cfg.MinioAccessKeyID == "" || cfg.MinioSecretAccessKey == "" {
		log.Println("Warning: MINIO_ACCESS_KEY_ID or MINIO_SECRET_ACCESS_KEY not set. Media uploads will fail.")
	}

	cfg.MaxUploadSizeMB = viper.GetInt64("MAX_UPLOAD_SIZE_MB")
	if cfg.MaxUploadSizeMB <= 0 {
		cfg.MaxUploadSizeMB = 512
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	if cfg.LoginRateLimit == "" {
		cfg.LoginRateLimit = "5-M"
	}

	return cfg, nil
}

// parseDuration reads a Go duration string (e.g. "15m", "240h") and falls back on bad input.
func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
