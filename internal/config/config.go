package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Uploads   UploadConfig
	RateLimit RateLimitConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// MongoConfig holds document store connection values.
type MongoConfig struct {
	URI             string
	Database        string
	ConnectTimeout  time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters. The session token TTL is
// fixed in the auth package and deliberately not configurable.
type AuthConfig struct {
	JWTSecret  string
	BcryptCost int
}

// UploadConfig controls where uploaded images land on disk.
type UploadConfig struct {
	Dir string
}

// RateLimitConfig tunes the fixed-window limiter on auth routes.
type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

// ErrMissingJWTSecret aborts startup when no signing secret is set. The
// service must never fall back to a built-in default secret.
var ErrMissingJWTSecret = errors.New("AUTH_JWT_SECRET is required")

// Load reads configuration from environment variables, applying defaults
// where a default is safe.
func Load() (*Config, error) {
	_ = godotenv.Load()

	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	bcryptCost := getEnvAsInt("AUTH_BCRYPT_COST", 12)
	if bcryptCost < 12 {
		// cost below 12 weakens offline brute-force resistance
		bcryptCost = 12
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "social-network"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Mongo: MongoConfig{
			URI:             getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
			Database:        getEnv("MONGO_DATABASE", "social_network"),
			ConnectTimeout:  time.Duration(getEnvAsInt("MONGO_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second,
			MaxPoolSize:     uint64(getEnvAsInt("MONGO_MAX_POOL_SIZE", 25)),
			MinPoolSize:     uint64(getEnvAsInt("MONGO_MIN_POOL_SIZE", 2)),
			MaxConnIdleTime: time.Duration(getEnvAsInt("MONGO_CONN_MAX_IDLE_SECONDS", 60)) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:  secret,
			BcryptCost: bcryptCost,
		},
		Uploads: UploadConfig{
			Dir: getEnv("UPLOADS_DIR", "./uploads"),
		},
		RateLimit: RateLimitConfig{
			Max:    getEnvAsInt("RATE_LIMIT_MAX", 20),
			Window: time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
