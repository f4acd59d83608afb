package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	AppEnv  string
	AppPort string

	StorageDriver string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// RedisTTL expires idle user state; zero keeps it forever.
	RedisTTL time.Duration

	// KafkaBrokers empty disables event publishing.
	KafkaBrokers []string
	KafkaTopic   string

	JWTSecret         string
	TokenTTL          time.Duration
	OTPTTL            time.Duration
	InternalSecretKey string
	AllowedOrigin     string
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getenv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("%w: REDIS_DB: %v", ErrInvalidConfig, err)
	}
	redisTTL, err := getDuration("REDIS_TTL", 0)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := getDuration("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	otpTTL, err := getDuration("OTP_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv:            getenv("APP_ENV", "development"),
		AppPort:           getenv("APP_PORT", "8080"),
		StorageDriver:     strings.ToLower(getenv("STORAGE_DRIVER", StorageMemory)),
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            getenv("DB_PORT", "5432"),
		DBSSLMode:         getenv("DB_SSLMODE", "disable"),
		RedisAddr:         getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           redisDB,
		RedisTTL:          redisTTL,
		KafkaBrokers:      splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        getenv("KAFKA_TOPIC", "superapp.orders"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          tokenTTL,
		OTPTTL:            otpTTL,
		InternalSecretKey: os.Getenv("INTERNAL_SECRET_KEY"),
		AllowedOrigin:     os.Getenv("CORS_ALLOWED_ORIGIN"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory, StorageRedis:
	case StoragePostgres:
		if c.DBHost == "" || c.DBName == "" {
			return fmt.Errorf("%w: DB_HOST and DB_NAME are required for postgres storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown STORAGE_DRIVER %q", ErrInvalidConfig, c.StorageDriver)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("%w: JWT_SECRET is not set", ErrInvalidConfig)
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, k, err)
	}
	return d, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
