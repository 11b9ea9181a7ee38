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

const minJWTSecretLength = 32

type Config struct {
	Port               string
	Environment        string
	DatabaseURL        string
	CorsAllowedOrigins []string

	// TrustProxy takes the client address from X-Forwarded-For/X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool

	LogLevel  string
	LogFormat string

	JWTSecret     string
	SessionTTL    time.Duration
	AdminEmail    string
	AdminPassword string

	Media MediaConfig
	Site  SiteConfig

	// PageRenderTimeout bounds the data loading of a server-rendered page.
	PageRenderTimeout time.Duration
}

// MediaConfig points at an S3-compatible bucket. Empty credentials fall back
// to the AWS default credential chain.
type MediaConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
}

type SiteConfig struct {
	Name                   string
	URL                    string
	AnalyticsMeasurementID string
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "production"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		TrustProxy:         getBool("TRUST_PROXY", false),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		SessionTTL:         getDuration("SESSION_TTL", 24*time.Hour),
		AdminEmail:         getEnv("ADMIN_EMAIL", ""),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		Media: MediaConfig{
			Bucket:          getEnv("MEDIA_BUCKET", ""),
			Region:          getEnv("MEDIA_REGION", "us-east-1"),
			Endpoint:        getEnv("MEDIA_ENDPOINT", ""),
			AccessKeyID:     getEnv("MEDIA_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("MEDIA_SECRET_ACCESS_KEY", ""),
			PublicURL:       strings.TrimRight(getEnv("MEDIA_PUBLIC_URL", ""), "/"),
		},
		Site: SiteConfig{
			Name:                   getEnv("SITE_NAME", "The Content Blog"),
			URL:                    strings.TrimRight(getEnv("SITE_URL", "http://localhost:8080"), "/"),
			AnalyticsMeasurementID: getEnv("ANALYTICS_MEASUREMENT_ID", ""),
		},
		PageRenderTimeout: getDuration("PAGE_RENDER_TIMEOUT", 60*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every missing or malformed setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if len(c.JWTSecret) < minJWTSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength))
	}
	if c.AdminEmail == "" || c.AdminPassword == "" {
		errs = append(errs, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required"))
	}
	if c.Media.Bucket == "" {
		errs = append(errs, errors.New("MEDIA_BUCKET is required"))
	}
	if (c.Media.AccessKeyID == "") != (c.Media.SecretAccessKey == "") {
		errs = append(errs, errors.New("MEDIA_ACCESS_KEY_ID and MEDIA_SECRET_ACCESS_KEY must be set together"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
