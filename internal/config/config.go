// Package config は環境変数からサーバー設定を組み立てます。
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"journal_backend/internal/platform/db"
	"journal_backend/internal/platform/redis"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultAllowedOrigin = "https://adamcarrillo.xyz"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// Config holds runtime settings for the journal API server.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	DB    db.Config
	Redis redis.Config

	JWTSecret string
	JWTExpiry time.Duration

	// AllowedOrigins は development 以外で許可する CORS オリジンです。
	AllowedOrigins []string

	// TrustedProxies は X-Forwarded-For を信用するプロキシの IP/CIDR です。
	// 空の場合はソケットのアドレスのみを使います。
	TrustedProxies []string

	AuthRateLimit  int
	AuthRateWindow time.Duration

	TagCacheTTL   time.Duration
	RunMigrations bool

	DBConnectTimeout time.Duration
	ShutdownTimeout  time.Duration
}

// IsDevelopment reports whether CORS and logging run in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// LoadDotEnv は .env を読み込みます。存在しなくてもエラーにしません。
func LoadDotEnv(paths ...string) {
	if err := godotenv.Load(paths...); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
}

// Load は環境変数から Config を読み込みます。JWT_SECRET は必須です。
func Load() (Config, error) {
	cfg := Config{
		Port:     getenv("PORT", "3000"),
		Env:      getenv("APP_ENV", getenv("NODE_ENV", EnvDevelopment)),
		LogLevel: getenv("LOG_LEVEL", "info"),

		DB:    db.LoadConfigFromEnv(),
		Redis: redis.LoadConfigFromEnv(),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: 24 * time.Hour,

		AllowedOrigins: splitOrigins(os.Getenv("ALLOWED_ORIGINS")),
		TrustedProxies: splitList(os.Getenv("TRUSTED_PROXIES")),

		AuthRateLimit:  5,
		AuthRateWindow: 15 * time.Minute,

		TagCacheTTL:   5 * time.Minute,
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",

		DBConnectTimeout: 60 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}

	var errs []error
	if cfg.JWTSecret == "" {
		errs = append(errs, ErrMissingJWTSecret)
	}
	if err := durationEnv("JWT_EXPIRY", &cfg.JWTExpiry); err != nil {
		errs = append(errs, err)
	}
	if err := durationEnv("AUTH_RATE_WINDOW", &cfg.AuthRateWindow); err != nil {
		errs = append(errs, err)
	}
	if err := durationEnv("TAG_CACHE_TTL", &cfg.TagCacheTTL); err != nil {
		errs = append(errs, err)
	}
	if err := durationEnv("DB_CONNECT_TIMEOUT", &cfg.DBConnectTimeout); err != nil {
		errs = append(errs, err)
	}
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Errorf("invalid AUTH_RATE_LIMIT %q", v))
		} else {
			cfg.AuthRateLimit = n
		}
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func durationEnv(k string, dst *time.Duration) error {
	v := os.Getenv(k)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fmt.Errorf("invalid %s %q", k, v)
	}
	*dst = d
	return nil
}

func splitOrigins(raw string) []string {
	if out := splitList(raw); len(out) > 0 {
		return out
	}
	return []string{defaultAllowedOrigin}
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
