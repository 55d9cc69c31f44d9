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
	Stripe    StripeConfig    `yaml:"stripe"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	Twilio    TwilioConfig    `yaml:"twilio"`
	Pricing   PricingConfig   `yaml:"pricing"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Log       LogConfig       `yaml:"log"`
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

// StripeConfig contains payment gateway settings
type StripeConfig struct {
	APIKey     string `yaml:"api_key"`
	SuccessURL string `yaml:"success_url"`
	CancelURL  string `yaml:"cancel_url"`
}

// SendGridConfig contains email settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// TwilioConfig contains SMS settings
type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

// PricingConfig contains the pricing engine and hold policy settings.
// Currency is the smallest-unit currency code all amounts are expressed in.
type PricingConfig struct {
	Currency          string `yaml:"currency"`
	PeakStartHour     int    `yaml:"peak_start_hour"`
	PeakEndHour       int    `yaml:"peak_end_hour"`
	HoldWindowMinutes int    `yaml:"hold_window_minutes"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ExpireHeldRentals   string `yaml:"expire_held_rentals"`
	MarkOverdueRentals  string `yaml:"mark_overdue_rentals"`
	SendReturnReminders string `yaml:"send_return_reminders"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
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
	// Database
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

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Payment gateway
	if val := os.Getenv("STRIPE_API_KEY"); val != "" {
		c.Stripe.APIKey = val
	}

	// Notifications
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}
	if val := os.Getenv("TWILIO_ACCOUNT_SID"); val != "" {
		c.Twilio.AccountSID = val
	}
	if val := os.Getenv("TWILIO_AUTH_TOKEN"); val != "" {
		c.Twilio.AuthToken = val
	}
	if val := os.Getenv("TWILIO_FROM_NUMBER"); val != "" {
		c.Twilio.FromNumber = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks if the configuration is valid and fills in defaults
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

	// Pricing defaults
	if c.Pricing.Currency == "" {
		c.Pricing.Currency = "vnd"
	}
	if c.Pricing.PeakStartHour < 0 || c.Pricing.PeakStartHour > 24 ||
		c.Pricing.PeakEndHour < 0 || c.Pricing.PeakEndHour > 24 {
		return fmt.Errorf("peak band hours must be within 0..24")
	}
	if c.Pricing.HoldWindowMinutes == 0 {
		c.Pricing.HoldWindowMinutes = 30
	}

	// Scheduler defaults
	if c.Scheduler.ExpireHeldRentals == "" {
		c.Scheduler.ExpireHeldRentals = "0 */5 * * * *" // every 5 minutes
	}
	if c.Scheduler.MarkOverdueRentals == "" {
		c.Scheduler.MarkOverdueRentals = "0 */15 * * * *" // every 15 minutes
	}
	if c.Scheduler.SendReturnReminders == "" {
		c.Scheduler.SendReturnReminders = "0 0 8 * * *" // 8 AM UTC
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
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
