// Package config provides configuration for the application
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Password schemes supported by PASSWORD_SCHEME
const (
	PasswordSchemePlain  = "plain"
	PasswordSchemeBcrypt = "bcrypt"
)

// OTP store backends supported by OTP_BACKEND
const (
	OTPBackendMemory = "memory"
	OTPBackendRedis  = "redis"
)

// Notifier kinds supported by NOTIFIER
const (
	NotifierSMTP  = "smtp"
	NotifierQueue = "queue"
	NotifierLog   = "log"
)

// Config holds all configuration for the application
type Config struct {
	Database       DatabaseConfig
	Redis          RedisConfig
	Server         ServerConfig
	Logging        LoggingConfig
	CORS           CORSConfig
	JWT            JWTConfig
	SMTP           SMTPConfig
	OTP            OTPConfig
	PasswordScheme string `env:"PASSWORD_SCHEME" envDefault:"plain"`
	Notifier       string `env:"NOTIFIER" envDefault:"smtp"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string `env:"DB_HOST,required"`
	Port     int    `env:"DB_PORT,required"`
	User     string `env:"DB_USER,required"`
	Password string `env:"DB_PASSWORD,required"`
	DBName   string `env:"DB_NAME,required"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Addr returns the host:port pair of the Redis server
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port            int   `env:"SERVER_PORT" envDefault:"9001"`
	MaxRequestBytes int64 `env:"SERVER_MAX_REQUEST_BYTES" envDefault:"1048576"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// JWTConfig holds JWT token configuration
type JWTConfig struct {
	Secret string `env:"JWT_SECRET,required,notEmpty"`
	// TokenExpiry keeps the historical "72000s" lifetime unless overridden.
	TokenExpiry time.Duration `env:"JWT_TOKEN_EXPIRY" envDefault:"72000s"`
}

// SMTPConfig holds SMTP server configuration
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" envDefault:"localhost"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" envDefault:"noreply@otpauth.local"`
}

// OTPConfig holds one-time password settings
type OTPConfig struct {
	Backend string `env:"OTP_BACKEND" envDefault:"memory"`
	// TTL of zero keeps challenges until they are consumed or overwritten.
	TTL           time.Duration `env:"OTP_TTL" envDefault:"0s"`
	SweepSchedule string        `env:"OTP_SWEEP_SCHEDULE" envDefault:"@every 1m"`
	DeliveryWait  time.Duration `env:"OTP_DELIVERY_WAIT" envDefault:"5s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks values that env tags cannot express
func (c *Config) validate() error {
	if c.JWT.TokenExpiry <= 0 {
		return fmt.Errorf("invalid JWT_TOKEN_EXPIRY: must be positive")
	}
	if c.OTP.TTL < 0 {
		return fmt.Errorf("invalid OTP_TTL: must not be negative")
	}
	if c.OTP.DeliveryWait <= 0 {
		return fmt.Errorf("invalid OTP_DELIVERY_WAIT: must be positive")
	}

	switch c.PasswordScheme {
	case PasswordSchemePlain, PasswordSchemeBcrypt:
	default:
		return fmt.Errorf("invalid PASSWORD_SCHEME: %q", c.PasswordScheme)
	}

	switch c.OTP.Backend {
	case OTPBackendMemory, OTPBackendRedis:
	default:
		return fmt.Errorf("invalid OTP_BACKEND: %q", c.OTP.Backend)
	}

	switch c.Notifier {
	case NotifierSMTP, NotifierQueue, NotifierLog:
	default:
		return fmt.Errorf("invalid NOTIFIER: %q", c.Notifier)
	}

	// Drop blanks from the comma-separated origins, default to allow all
	origins := make([]string, 0, len(c.CORS.AllowedOrigins))
	for _, origin := range c.CORS.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.CORS.AllowedOrigins = origins

	return nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	if c.Database.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}
