package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultDSN         = "host=localhost user=postgres password=postgres dbname=restoran_kpi port=5432 sslmode=disable"
	defaultCORSOrigins = "http://localhost:5173"
)

type Config struct {
	Environment  string
	HTTPPort     string
	DatabaseDSN  string
	DBLogQueries bool
	JWTSecret    string
	TokenTTL     time.Duration
	// false ise admin rotaları token istemez (eski istemci akışı)
	RequireToken    bool
	CORSOrigins     []string
	LogLevel        string
	RedisURL        string // boşsa bellek içi cache kullanılır
	VersionCacheTTL time.Duration

	// cmd/seed ilk yetkili admini ve cihazını bunlarla hazırlar, boşsa atlanır
	BootstrapAdminID           string
	BootstrapAdminPassword     string
	BootstrapDeviceFingerprint string
	BootstrapDeviceName        string

	// Load sırasında oluşan uyarılar, logger hazır olunca basılır
	Warnings []string
}

func Load() (*Config, error) {
	// .env opsiyonel
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_env", "development")
	v.SetDefault("http_port", "8080")
	v.SetDefault("database_dsn", defaultDSN)
	v.SetDefault("db_log_queries", false)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("auth_require_token", true)
	v.SetDefault("cors_allowed_origins", defaultCORSOrigins)
	v.SetDefault("log_level", "info")
	v.SetDefault("redis_url", "")
	v.SetDefault("version_cache_ttl", time.Minute)
	v.SetDefault("bootstrap_admin_id", "")
	v.SetDefault("bootstrap_admin_password", "")
	v.SetDefault("bootstrap_device_fingerprint", "")
	v.SetDefault("bootstrap_device_name", "")

	cfg := &Config{
		Environment:     v.GetString("app_env"),
		HTTPPort:        v.GetString("http_port"),
		DatabaseDSN:     v.GetString("database_dsn"),
		DBLogQueries:    v.GetBool("db_log_queries"),
		JWTSecret:       v.GetString("jwt_secret"),
		TokenTTL:        v.GetDuration("token_ttl"),
		RequireToken:    v.GetBool("auth_require_token"),
		CORSOrigins:     splitOrigins(v.GetString("cors_allowed_origins")),
		LogLevel:        v.GetString("log_level"),
		RedisURL:        v.GetString("redis_url"),
		VersionCacheTTL: v.GetDuration("version_cache_ttl"),

		BootstrapAdminID:           v.GetString("bootstrap_admin_id"),
		BootstrapAdminPassword:     v.GetString("bootstrap_admin_password"),
		BootstrapDeviceFingerprint: v.GetString("bootstrap_device_fingerprint"),
		BootstrapDeviceName:        v.GetString("bootstrap_device_name"),
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment değişkeni tanımlanmamış")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET en az 32 karakter olmalıdır")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL pozitif olmalı: %s", cfg.TokenTTL)
	}
	if cfg.DatabaseDSN == defaultDSN {
		cfg.Warnings = append(cfg.Warnings, "DATABASE_DSN varsayılan değer kullanılıyor, production için kendi Postgres bağlantı bilgisini tanımla.")
	}
	if strings.Join(cfg.CORSOrigins, ",") == defaultCORSOrigins {
		cfg.Warnings = append(cfg.Warnings, "CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için kendi domain'ini tanımla.")
	}
	if !cfg.RequireToken {
		cfg.Warnings = append(cfg.Warnings, "AUTH_REQUIRE_TOKEN=false: admin rotaları token kontrolü olmadan açık.")
	}

	if cfg.BootstrapAdminID != "" && (cfg.BootstrapAdminPassword == "" || cfg.BootstrapDeviceFingerprint == "") {
		return nil, errors.New("BOOTSTRAP_ADMIN_ID için BOOTSTRAP_ADMIN_PASSWORD ve BOOTSTRAP_DEVICE_FINGERPRINT gereklidir")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CORS origins'i virgülle ayrılmış string'den array'e çevir
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
