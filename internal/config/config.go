package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Session  SessionConfig
	OTP      OTPConfig
	PayU     PayUConfig
	Notify   NotifyConfig
	Addon    AddonConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
	MigrationsPath  string
}

// RedisConfig holds the session store configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// SessionConfig holds session cookie and TTL configuration.
type SessionConfig struct {
	CookieName string
	TTL        int // seconds
}

// OTPConfig holds phone verification configuration.
type OTPConfig struct {
	Digits int
	TTL    int // seconds
}

// PayUConfig holds the payment gateway handshake configuration. The values
// are environment-provided; this service consumes them, it does not own them.
type PayUConfig struct {
	MerchantKey string
	Salt        string
	GatewayURL  string
	SuccessURL  string
	FailureURL  string
}

// NotifyConfig holds delivery-channel configuration for OTPs and order
// confirmations.
type NotifyConfig struct {
	SMSBaseURL   string
	SMSAPIKey    string
	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPPassword string
	AdminEmail   string
}

// AddonConfig holds the add-on price table source. When FilePath is empty
// the built-in table is used.
type AddonConfig struct {
	FilePath  string
	S3Enabled bool
	S3Bucket  string
	S3Region  string
	S3Prefix  string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "bookbazaar"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
			MigrationsPath:  getEnv("DB_MIGRATIONS_PATH", "db/migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "session_id"),
			TTL:        getEnvAsInt("SESSION_TTL", 86400),
		},
		OTP: OTPConfig{
			Digits: getEnvAsInt("OTP_DIGITS", 6),
			TTL:    getEnvAsInt("OTP_TTL", 600),
		},
		PayU: PayUConfig{
			MerchantKey: getEnv("PAYU_MERCHANT_KEY", ""),
			Salt:        getEnv("PAYU_MERCHANT_SALT", ""),
			GatewayURL:  getEnv("PAYU_GATEWAY_URL", "https://test.payu.in/_payment"),
			SuccessURL:  getEnv("PAYU_SUCCESS_URL", "http://localhost:8080/payment/success"),
			FailureURL:  getEnv("PAYU_FAILURE_URL", "http://localhost:8080/payment/failure"),
		},
		Notify: NotifyConfig{
			SMSBaseURL:   getEnv("SMS_BASE_URL", ""),
			SMSAPIKey:    getEnv("SMS_API_KEY", ""),
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
			SMTPFrom:     getEnv("SMTP_FROM", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			AdminEmail:   getEnv("ADMIN_EMAIL", ""),
		},
		Addon: AddonConfig{
			FilePath:  getEnv("ADDON_FILE_PATH", ""),
			S3Enabled: getEnvAsBool("ADDON_S3_ENABLED", false),
			S3Bucket:  getEnv("ADDON_S3_BUCKET", ""),
			S3Region:  getEnv("ADDON_S3_REGION", "ap-south-1"),
			S3Prefix:  getEnv("ADDON_S3_PREFIX", "config/"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required")
	}

	if c.Session.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}

	if c.Session.TTL < 60 {
		return fmt.Errorf("session TTL must be at least 60 seconds")
	}

	if c.OTP.Digits < 4 || c.OTP.Digits > 8 {
		return fmt.Errorf("OTP digits must be between 4 and 8")
	}

	if c.OTP.TTL < 30 {
		return fmt.Errorf("OTP TTL must be at least 30 seconds")
	}

	if c.PayU.MerchantKey == "" {
		return fmt.Errorf("PayU merchant key is required")
	}

	if c.PayU.Salt == "" {
		return fmt.Errorf("PayU merchant salt is required")
	}

	if c.PayU.GatewayURL == "" {
		return fmt.Errorf("PayU gateway URL is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Addon.S3Enabled {
		if c.Addon.S3Bucket == "" {
			return fmt.Errorf("addon S3 bucket is required when S3 is enabled")
		}
		if c.Addon.S3Region == "" {
			return fmt.Errorf("addon S3 region is required when S3 is enabled")
		}
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
