package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/spec-kit/ticket-dashboard/pkg/util/errorutil"
)

// Config aggregates runtime configuration for the dashboard.
type Config struct {
	App          AppConfig
	Backend      BackendConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Notification NotificationConfig
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

// BackendConfig holds connection values for the tabular REST backend.
type BackendConfig struct {
	BaseURL        string
	APIKey         string
	APIKeyHeader   string
	DBService      string
	TicketsTable   string
	CommentsTable  string
	UsersTable     string
	TimeoutSeconds int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// UserCacheTTLSeconds bounds staleness of the cached user table.
	UserCacheTTLSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults
// where possible. A missing backend URL or API key is not an error here;
// BackendConfig.Validate reports it before the first request goes out.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ticket-dashboard"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Backend: BackendConfig{
			BaseURL:        strings.TrimSuffix(os.Getenv("DF_API_BASE_URL"), "/"),
			APIKey:         os.Getenv("DF_API_KEY"),
			APIKeyHeader:   getEnv("DF_API_KEY_HEADER", "X-DreamFactory-Api-Key"),
			DBService:      getEnv("DF_DB_SERVICE", "pgsqlTDAtest"),
			TicketsTable:   getEnv("DF_TICKETS_TABLE", "tickets"),
			CommentsTable:  getEnv("DF_COMMENTS_TABLE", "ticket_comments"),
			UsersTable:     getEnv("DF_USERS_TABLE", "users"),
			TimeoutSeconds: getEnvAsInt("DF_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:                getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:            os.Getenv("REDIS_PASSWORD"),
			DB:                  redisDB,
			UserCacheTTLSeconds: getEnvAsInt("USER_CACHE_TTL_SECONDS", 300),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", ""),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Validate reports missing backend credentials as a ConfigError.
func (b BackendConfig) Validate() error {
	if b.BaseURL == "" {
		return errorutil.NewConfigError("backend base URL is required: set DF_API_BASE_URL")
	}
	if b.APIKey == "" {
		return errorutil.NewConfigError("backend API key is required: set DF_API_KEY")
	}
	return nil
}

// TableEndpoint builds the path for a table, optionally scoped to a row id.
func (b BackendConfig) TableEndpoint(table string, id ...string) string {
	endpoint := fmt.Sprintf("/%s/_table/%s", b.DBService, table)
	if len(id) > 0 && id[0] != "" {
		endpoint += "/" + id[0]
	}
	return endpoint
}

// Timeout returns the backend request timeout duration.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// UserCacheTTL returns the user cache TTL duration.
func (r RedisConfig) UserCacheTTL() time.Duration {
	if r.UserCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(r.UserCacheTTLSeconds) * time.Second
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
