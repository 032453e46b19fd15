package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// DefaultSuperAdminDomain is the email domain whose identities are super admins.
const DefaultSuperAdminDomain = "boostdata.io"

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	Auth       AuthConfig
	Services   ServicesConfig
	Kafka      KafkaConfig
	Redis      RedisConfig
	WorkerPool WorkerPoolConfig
	Server     ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// AuthConfig holds authentication and authorization configuration.
// Google sign in is enabled when all three Google settings are present;
// captcha checks are enabled when TurnstileSecretKey is set.
type AuthConfig struct {
	JWTSecret          string
	SuperAdminDomain   string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	TurnstileSecretKey string
}

// GoogleEnabled reports whether Google sign in is fully configured.
func (a AuthConfig) GoogleEnabled() bool {
	return a.GoogleClientID != "" && a.GoogleClientSecret != "" && a.GoogleRedirectURL != ""
}

// ServicesConfig holds external service API keys and configuration.
// ResendAPIKey is optional: without it, invitations fail with a
// configuration error instead of blocking startup.
type ServicesConfig struct {
	ResendAPIKey       string
	DefaultEmailSender string
	WebAppURI          string
}

// KafkaConfig holds event streaming configuration. Empty Brokers disables
// event publishing.
type KafkaConfig struct {
	Brokers       string
	Topic         string
	ConsumerGroup string
}

// Enabled reports whether brokers are configured.
func (k KafkaConfig) Enabled() bool {
	return strings.TrimSpace(k.Brokers) != ""
}

// BrokerList splits the comma separated broker string.
func (k KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// RedisConfig holds rate limiting backend configuration. Empty Host disables
// rate limiting.
type RedisConfig struct {
	Host          string
	Port          string
	Password      string
	DB            int
	RatePerMinute int
}

// Enabled reports whether a Redis host is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Host) != ""
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// WorkerPoolConfig holds worker pool configuration for event processing
type WorkerPoolConfig struct {
	NotificationWorkers int
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current process environment.
func FromEnv() (*Config, error) {
	cfg := &Config{}

	// Database configuration
	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	// Auth configuration
	if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}
	cfg.Auth.SuperAdminDomain = strings.TrimPrefix(
		getEnvWithDefault("SUPER_ADMIN_EMAIL_DOMAIN", DefaultSuperAdminDomain), "@")
	cfg.Auth.GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	cfg.Auth.GoogleClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	cfg.Auth.GoogleRedirectURL = os.Getenv("GOOGLE_REDIRECT_URL")
	cfg.Auth.TurnstileSecretKey = os.Getenv("TURNSTILE_SECRET_KEY")

	// Services configuration
	cfg.Services.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Services.DefaultEmailSender = getEnvWithDefault("DEFAULT_EMAIL_SENDER_ADDRESS", "no-reply@boostdata.io")
	if cfg.Services.WebAppURI, err = requireEnv("WEBAPP_URI"); err != nil {
		return nil, err
	}

	// Kafka configuration
	cfg.Kafka.Brokers = os.Getenv("KAFKA_BROKERS")
	cfg.Kafka.Topic = getEnvWithDefault("KAFKA_TOPIC", "campaign-events")
	cfg.Kafka.ConsumerGroup = getEnvWithDefault("KAFKA_CONSUMER_GROUP", "notification-consumers")

	// Redis configuration
	cfg.Redis.Host = os.Getenv("REDIS_HOST")
	cfg.Redis.Port = getEnvWithDefault("REDIS_PORT", "6379")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = getIntEnv("REDIS_DB", "0"); err != nil {
		return nil, err
	}
	if cfg.Redis.RatePerMinute, err = getIntEnv("RATE_LIMIT_PER_MINUTE", "300"); err != nil {
		return nil, err
	}

	// Worker pool configuration
	if cfg.WorkerPool.NotificationWorkers, err = getIntEnv("NOTIFICATION_WORKERS", "5"); err != nil {
		return nil, err
	}

	// Server configuration
	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnv(key, defaultValue string) (int, error) {
	v, err := strconv.Atoi(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}
