package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	JWT       JWTConfig       `yaml:"jwt"`
	Log       LogConfig       `yaml:"log"`
	Billing   BillingConfig   `yaml:"billing"`
	OTP       OTPConfig       `yaml:"otp"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// RedisConfig contains the OTP/rate-limit counter store settings
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SendGridConfig contains email delivery settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// BillingConfig contains invoice and tax settings
type BillingConfig struct {
	DefaultTaxRateBps int `yaml:"default_tax_rate_bps"` // 1000 = 10%
	InvoiceDueDays    int `yaml:"invoice_due_days"`
	StaleOrderDays    int `yaml:"stale_order_days"`
}

// OTPConfig contains email verification settings
type OTPConfig struct {
	TTLMinutes       int `yaml:"ttl_minutes"`
	MaxRequestsPerHr int `yaml:"max_requests_per_hour"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	MarkOverdueInvoices     string `yaml:"mark_overdue_invoices"`
	ExpireStalePendingOrders string `yaml:"expire_stale_pending_orders"`
	SendPaymentReminders    string `yaml:"send_payment_reminders"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}

	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}

	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if val := os.Getenv("DEFAULT_TAX_RATE_BPS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Billing.DefaultTaxRateBps)
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}

	// Billing defaults
	if c.Billing.DefaultTaxRateBps == 0 {
		c.Billing.DefaultTaxRateBps = 1000 // 10%
	}
	if c.Billing.InvoiceDueDays == 0 {
		c.Billing.InvoiceDueDays = 14
	}
	if c.Billing.StaleOrderDays == 0 {
		c.Billing.StaleOrderDays = 7
	}

	// OTP defaults
	if c.OTP.TTLMinutes == 0 {
		c.OTP.TTLMinutes = 10
	}
	if c.OTP.MaxRequestsPerHr == 0 {
		c.OTP.MaxRequestsPerHr = 5
	}

	// Scheduler defaults
	if c.Scheduler.MarkOverdueInvoices == "" {
		c.Scheduler.MarkOverdueInvoices = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.ExpireStalePendingOrders == "" {
		c.Scheduler.ExpireStalePendingOrders = "0 30 2 * * *" // 2:30 AM UTC
	}
	if c.Scheduler.SendPaymentReminders == "" {
		c.Scheduler.SendPaymentReminders = "0 0 9 * * *" // 9 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
