// Package config reads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port         string
	FrontendURLs []string
	DashboardDir string

	DatabaseURL       string
	DBTLSInsecure     bool
	DBAutoMigrate     bool
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	LogSQL            bool

	Admin Admin

	JWTSecret  string
	SessionTTL time.Duration

	TelegramBotToken string
	TelegramChatID   string
	TelegramAPIURL   string

	CacheDriver   string
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string

	NatsURL            string
	RevalidationURL    string
	RevalidationSecret string

	S3 S3
}

// Admin describes the single site owner seeded on first use.
type Admin struct {
	UserID   uint
	Name     string
	Email    string
	Password string
}

// S3 holds object storage settings for image uploads.
type S3 struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
	PublicURL string
}

// Enabled reports whether uploads can be served.
func (s S3) Enabled() bool {
	return s.Bucket != "" && s.AccessKey != "" && s.SecretKey != ""
}

// ErrMissingDatabaseURL is returned when no connection string is configured.
var ErrMissingDatabaseURL = errors.New("POSTGRES_URL environment variable is not set")

// Load reads the environment. The caller is expected to have loaded any
// .env file beforehand.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8081"),
		DashboardDir: getEnv("DASHBOARD_DIR", "./web/dashboard"),

		DatabaseURL: firstEnv("POSTGRES_URL", "DATABASE_URL"),

		Admin: Admin{
			Name:     getEnv("ADMIN_NAME", "Admin User"),
			Email:    getEnv("ADMIN_EMAIL", "admin@example.com"),
			Password: getEnv("ADMIN_PASSWORD", "change-me"),
		},

		JWTSecret: os.Getenv("JWT_SECRET"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		TelegramAPIURL:   getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),

		CacheDriver:   strings.ToLower(getEnv("CACHE_DRIVER", "memory")),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		NatsURL:            os.Getenv("NATS_URL"),
		RevalidationURL:    os.Getenv("NEXT_REVALIDATION_URL"),
		RevalidationSecret: os.Getenv("REVALIDATION_SECRET"),

		S3: S3{
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    getEnv("S3_REGION", "ap-southeast-1"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			PublicURL: strings.TrimRight(os.Getenv("S3_PUBLIC_URL"), "/"),
		},
	}

	for _, key := range []string{"FRONTEND_URL", "FRONTEND_URL2"} {
		if v := os.Getenv(key); v != "" {
			cfg.FrontendURLs = append(cfg.FrontendURLs, v)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	var err error
	if cfg.DBTLSInsecure, err = getBool("DB_TLS_INSECURE", true); err != nil {
		return nil, err
	}
	if cfg.DBAutoMigrate, err = getBool("DB_AUTO_MIGRATE", false); err != nil {
		return nil, err
	}
	if cfg.LogSQL, err = getBool("LOG_SQL", false); err != nil {
		return nil, err
	}
	if cfg.DBMaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = getInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}
	if cfg.DBConnMaxLifetime, err = getDuration("DB_CONN_MAX_LIFETIME", time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	adminID, err := getInt("ADMIN_USER_ID", 1)
	if err != nil {
		return nil, err
	}
	if adminID <= 0 {
		return nil, fmt.Errorf("ADMIN_USER_ID must be positive, got %d", adminID)
	}
	cfg.Admin.UserID = uint(adminID)

	switch cfg.CacheDriver {
	case "memory", "none":
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, errors.New("CACHE_DRIVER=redis requires REDIS_ADDR")
		}
	default:
		return nil, fmt.Errorf("unknown CACHE_DRIVER %q", cfg.CacheDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
