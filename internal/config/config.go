package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Admin     AdminConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	App       AppConfig
	Log       LogConfig
	Sync      SyncConfig
	HubSpot   HubSpotConfig
	Loops     LoopsConfig
	Storage   StorageConfig
	Vault     VaultConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host         string
	Port         string
	TimeoutRead  time.Duration
	TimeoutWrite time.Duration
	TimeoutIdle  time.Duration
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// AdminConfig holds admin authentication configuration.
// Passcodes are shared secrets, not per-user accounts. PasscodeHashes takes
// precedence over Passcodes when set; the plain list exists for local dev.
type AdminConfig struct {
	Passcodes      []string
	PasscodeHashes []string
	JWTSecret      string
	TokenExpiry    time.Duration
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Duration time.Duration
}

// AppConfig holds general application configuration
type AppConfig struct {
	Env         string
	Name        string
	Version     string
	AwardsYear  string
	PublicURL   string
	MaxPageSize int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// SyncConfig holds outbound sync dispatcher configuration
type SyncConfig struct {
	Enabled     bool
	QueueSize   int
	HTTPTimeout time.Duration
}

// HubSpotConfig holds HubSpot CRM configuration
type HubSpotConfig struct {
	Enabled bool
	BaseURL string
	Token   string
}

// LoopsConfig holds Loops email platform configuration
type LoopsConfig struct {
	Enabled         bool
	BaseURL         string
	Token           string
	NomineesListID  string
	VotersListID    string
	NominatorListID string
}

// StorageConfig holds S3-compatible object storage configuration
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// VaultConfig holds Vault-related configuration
type VaultConfig struct {
	Address    string
	Token      string
	SecretPath string
	Enabled    bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// godotenv doesn't override already-set variables, so order matters
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnv("SERVER_PORT", "8080"),
			TimeoutRead:  getDurationEnv("SERVER_TIMEOUT_READ", 15*time.Second),
			TimeoutWrite: getDurationEnv("SERVER_TIMEOUT_WRITE", 15*time.Second),
			TimeoutIdle:  getDurationEnv("SERVER_TIMEOUT_IDLE", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "awards"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "awards_db"),
			SSLMode:         getEnv("DB_SSLMODE", "prefer"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Admin: AdminConfig{
			Passcodes:      getSliceEnv("ADMIN_PASSCODES", nil),
			PasscodeHashes: getSliceEnv("ADMIN_PASSCODE_HASHES", nil),
			JWTSecret:      getEnv("ADMIN_JWT_SECRET", ""),
			TokenExpiry:    getDurationEnv("ADMIN_TOKEN_EXPIRY", 12*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			AllowedMethods:   getSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getSliceEnv("CORS_ALLOWED_HEADERS", []string{"Accept", "Authorization", "Content-Type", "X-Admin-Passcode"}),
			ExposedHeaders:   getSliceEnv("CORS_EXPOSED_HEADERS", []string{"Link"}),
			AllowCredentials: getBoolEnv("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getIntEnv("CORS_MAX_AGE", 300),
		},
		RateLimit: RateLimitConfig{
			Enabled:  getBoolEnv("RATE_LIMIT_ENABLED", true),
			Requests: getIntEnv("RATE_LIMIT_REQUESTS", 100),
			Duration: getDurationEnv("RATE_LIMIT_DURATION", 1*time.Minute),
		},
		App: AppConfig{
			Env:         getEnv("APP_ENV", "development"),
			Name:        getEnv("APP_NAME", "StaffingAwards"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			AwardsYear:  getEnv("AWARDS_YEAR", "2026"),
			PublicURL:   getEnv("APP_PUBLIC_URL", "http://localhost:3000"),
			MaxPageSize: getIntEnv("APP_MAX_PAGE_SIZE", 200),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Sync: SyncConfig{
			Enabled:     getBoolEnv("SYNC_ENABLED", true),
			QueueSize:   getIntEnv("SYNC_QUEUE_SIZE", 256),
			HTTPTimeout: getDurationEnv("SYNC_HTTP_TIMEOUT", 10*time.Second),
		},
		HubSpot: HubSpotConfig{
			Enabled: getBoolEnv("HUBSPOT_ENABLED", false),
			BaseURL: getEnv("HUBSPOT_BASE_URL", "https://api.hubapi.com"),
			Token:   getEnv("HUBSPOT_TOKEN", ""),
		},
		Loops: LoopsConfig{
			Enabled:         getBoolEnv("LOOPS_ENABLED", false),
			BaseURL:         getEnv("LOOPS_BASE_URL", "https://app.loops.so/api/v1"),
			Token:           getEnv("LOOPS_TOKEN", ""),
			NomineesListID:  getEnv("LOOPS_NOMINEES_LIST_ID", ""),
			VotersListID:    getEnv("LOOPS_VOTERS_LIST_ID", ""),
			NominatorListID: getEnv("LOOPS_NOMINATORS_LIST_ID", ""),
		},
		Storage: StorageConfig{
			Endpoint:  getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:    getEnv("STORAGE_BUCKET", "nominee-images"),
			UseSSL:    getBoolEnv("STORAGE_USE_SSL", false),
			PublicURL: getEnv("STORAGE_PUBLIC_URL", ""),
		},
		Vault: VaultConfig{
			Address:    getEnv("VAULT_ADDR", "http://localhost:8200"),
			Token:      getEnv("VAULT_TOKEN", ""),
			SecretPath: getEnv("VAULT_SECRET_PATH", "staffing-awards/external"),
			Enabled:    getBoolEnv("VAULT_ENABLED", false),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Admin.JWTSecret == "" {
		return fmt.Errorf("ADMIN_JWT_SECRET is required")
	}
	if len(c.Admin.Passcodes) == 0 && len(c.Admin.PasscodeHashes) == 0 {
		return fmt.Errorf("ADMIN_PASSCODES or ADMIN_PASSCODE_HASHES is required")
	}
	if c.Database.Password == "" && c.App.Env == "production" {
		return fmt.Errorf("DB_PASSWORD is required in production")
	}
	if c.App.Env == "production" && len(c.Admin.PasscodeHashes) == 0 {
		return fmt.Errorf("ADMIN_PASSCODE_HASHES is required in production (plain passcodes are dev-only)")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, v := range parts {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
