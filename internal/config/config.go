package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pakdocs/pakdocs/backend/go-services/pkg/logger"
	"github.com/spf13/viper"
)

// devSessionSecret signs cookies when SESSION_SECRET is missing (development only).
const devSessionSecret = "pakdocs-dev-session-secret-change-me"

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	Provider  ProviderConfig
	RateLimit RateLimitConfig
	MongoDB   MongoDBConfig
	MinIO     MinIOConfig
	PDF       PDFConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

type DatabaseConfig struct {
	Driver       string // sqlite | postgres
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	Debug        bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

type SessionConfig struct {
	Secret     string
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

type ProviderConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// MinIOConfig holds MinIO connection configuration used for the PDF export archive
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// PDFConfig controls PDF export rendering. FontPath points at a UTF-8 TTF font;
// without it the core Helvetica font is used, which cannot render Urdu script.
type PDFConfig struct {
	FontPath string
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", 30)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 180)
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "data/pakdocs.db")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("SESSION_COOKIE_NAME", "pakdocs.sid")
	v.SetDefault("SESSION_MAX_AGE_MINUTES", 10080)
	v.SetDefault("PROVIDER_MODEL", "gpt-4o")
	v.SetDefault("PROVIDER_MAX_TOKENS", 1500)
	v.SetDefault("PROVIDER_TIMEOUT", 120)
	v.SetDefault("RATE_LIMIT_RPS", 2)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("MONGODB_DATABASE", "pakdocs")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("MINIO_BUCKET", "pakdocs")

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  time.Duration(v.GetInt("SERVER_READ_TIMEOUT")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("SERVER_WRITE_TIMEOUT")) * time.Second,
			CORSOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(v.GetString("DATABASE_DRIVER")),
			DSN:          v.GetString("DATABASE_DSN"),
			MaxOpenConns: v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			Debug:        v.GetBool("DATABASE_DEBUG"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			Secret:     v.GetString("SESSION_SECRET"),
			CookieName: v.GetString("SESSION_COOKIE_NAME"),
			MaxAge:     time.Duration(v.GetInt("SESSION_MAX_AGE_MINUTES")) * time.Minute,
			Secure:     v.GetBool("SESSION_SECURE"),
		},
		Provider: ProviderConfig{
			APIKey:    v.GetString("PROVIDER_API_KEY"),
			BaseURL:   v.GetString("PROVIDER_BASE_URL"),
			Model:     v.GetString("PROVIDER_MODEL"),
			MaxTokens: v.GetInt("PROVIDER_MAX_TOKENS"),
			Timeout:   time.Duration(v.GetInt("PROVIDER_TIMEOUT")) * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
		PDF: PDFConfig{
			FontPath: v.GetString("PDF_FONT_PATH"),
		},
	}

	if cfg.Session.Secret == "" {
		logger.Warn("SESSION_SECRET is not set; using a development secret (set a secure value in production)")
		cfg.Session.Secret = devSessionSecret
	}
	if cfg.Provider.APIKey == "" {
		logger.Warn("PROVIDER_API_KEY is not set; draft generation requests will fail upstream")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
