package config

import (
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

	NotifyLog = "log"
	NotifySES = "ses"
)

type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Auth     AuthConfig
	Lockout  LockoutConfig
	Seed     SeedConfig
	Notify   NotifyConfig
}

type DatabaseConfig struct {
	Driver            string
	Host              string
	Port              int
	User              string
	Password          string
	Name              string
	SSLMode           string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
	TrustedProxies []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

type AuthConfig struct {
	TokenSecret        string
	BcryptCost         int
	LoginDelayBase     time.Duration
	LoginDelayRandom   time.Duration
	LoginRatePerMinute int
	AdminPassword      string
}

// LockoutConfig is the per-login failed attempt policy
type LockoutConfig struct {
	Threshold       int
	Duration        time.Duration
	CleanupInterval time.Duration
}

type SeedConfig struct {
	DemoData        bool
	AccountPassword string
}

type NotifyConfig struct {
	Provider    string
	AWSRegion   string
	FromAddress string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	tokenSecret := getEnv("TOKEN_SECRET", "")
	if tokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required")
	}

	env := getEnv("ENV", "development")

	cfg := &Config{
		Database: loadDatabaseConfig(),
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            env,
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			AllowedOrigins: parseAllowedOrigins(env),
			TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Auth: AuthConfig{
			TokenSecret:        tokenSecret,
			BcryptCost:         getEnvAsInt("BCRYPT_COST", 12),
			LoginDelayBase:     time.Duration(getEnvAsInt("LOGIN_DELAY_BASE_MS", 500)) * time.Millisecond,
			LoginDelayRandom:   time.Duration(getEnvAsInt("LOGIN_DELAY_RANDOM_MS", 100)) * time.Millisecond,
			LoginRatePerMinute: getEnvAsInt("LOGIN_RATE_PER_MINUTE", 30),
			AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		},
		Lockout: LockoutConfig{
			Threshold:       getEnvAsInt("LOCKOUT_THRESHOLD", 5),
			Duration:        getEnvAsDuration("LOCKOUT_DURATION", 60*time.Second),
			CleanupInterval: getEnvAsDuration("LOCKOUT_CLEANUP_INTERVAL", 5*time.Minute),
		},
		Seed: SeedConfig{
			DemoData:        getEnvAsBool("SEED_DEMO_DATA", env != "production"),
			AccountPassword: getEnv("SEED_ACCOUNT_PASSWORD", ""),
		},
		Notify: NotifyConfig{
			Provider:    strings.ToLower(getEnv("NOTIFY_PROVIDER", NotifyLog)),
			AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
			FromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase reads only the storage settings, for tools that never serve requests
func LoadDatabase() (*DatabaseConfig, error) {
	_ = godotenv.Load()

	cfg := loadDatabaseConfig()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver:            strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              getEnvAsInt("DB_PORT", 5432),
		User:              getEnv("DB_USER", "postgres"),
		Password:          getEnv("DB_PASSWORD", ""),
		Name:              getEnv("DB_NAME", "parliament"),
		SSLMode:           getEnv("DB_SSLMODE", "disable"),
		MaxConns:          int32(getEnvAsInt("DB_MAX_CONNS", 25)),
		MinConns:          int32(getEnvAsInt("DB_MIN_CONNS", 5)),
		MaxConnLifetime:   getEnvAsDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
		MaxConnIdleTime:   getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 1*time.Minute),
		HealthCheckPeriod: getEnvAsDuration("DB_HEALTH_CHECK_PERIOD", 1*time.Minute),
	}
}

func (c *DatabaseConfig) validate() error {
	switch c.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q (got %q)", StorageMemory, StoragePostgres, c.Driver)
	}
	return nil
}

func (c *Config) validate() error {
	if err := c.Database.validate(); err != nil {
		return err
	}

	if err := validateTokenSecret(c.Auth.TokenSecret, c.Server.Env); err != nil {
		return err
	}

	if c.Lockout.Threshold < 1 {
		return fmt.Errorf("LOCKOUT_THRESHOLD must be at least 1")
	}
	if c.Lockout.Duration <= 0 {
		return fmt.Errorf("LOCKOUT_DURATION must be positive")
	}
	if c.Auth.LoginRatePerMinute < 1 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must be at least 1")
	}

	switch c.Notify.Provider {
	case NotifyLog:
	case NotifySES:
		if c.Notify.FromAddress == "" {
			return fmt.Errorf("EMAIL_FROM_ADDRESS is required for the ses notify provider")
		}
	default:
		return fmt.Errorf("NOTIFY_PROVIDER must be %q or %q (got %q)", NotifyLog, NotifySES, c.Notify.Provider)
	}

	return nil
}

// validateTokenSecret enforces minimum security standards for the token signing secret
func validateTokenSecret(secret, env string) error {
	minLength := 16
	if env == "production" {
		minLength = 32
	}

	if len(secret) < minLength {
		return fmt.Errorf("TOKEN_SECRET must be at least %d characters in %s environment (got %d)",
			minLength, env, len(secret))
	}

	weakSecrets := []string{
		"secret", "test", "password", "12345", "changeme",
		"admin", "root", "default", "example",
	}

	secretLower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if secretLower == weak {
			return fmt.Errorf("TOKEN_SECRET cannot be a common weak value")
		}
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// URL renders the connection string in URL form for database/sql drivers
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseAllowedOrigins(env string) []string {
	if env == "production" {
		return splitList(getEnv("ALLOWED_ORIGINS", ""))
	}

	// Development: allow localhost variants
	return []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://localhost:5173", // Vite default
		"http://127.0.0.1:3000",
		"http://127.0.0.1:8080",
		"http://127.0.0.1:5173",
	}
}
