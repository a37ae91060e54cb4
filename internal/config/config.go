package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	Port        string `envconfig:"PORT" default:"8080"`
	Env         string `envconfig:"APP_ENV" default:"development"`

	// Owner gate. OWNER_PASSWORD_HASH (bcrypt) wins over OWNER_PASSWORD.
	OwnerPassword     string `envconfig:"OWNER_PASSWORD"`
	OwnerPasswordHash string `envconfig:"OWNER_PASSWORD_HASH"`

	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"336h"`
	CSRFKey       string        `envconfig:"CSRF_KEY" required:"true"`
	SecureCookies bool          `envconfig:"SECURE_COOKIES" default:"false"`

	// Notifications
	SendGridAPIKey    string `envconfig:"SENDGRID_API_KEY"`
	SendGridFromEmail string `envconfig:"SENDGRID_FROM_EMAIL"`
	SendGridFromName  string `envconfig:"SENDGRID_FROM_NAME" default:"Scheduler"`
	OwnerEmail        string `envconfig:"OWNER_EMAIL"`

	TwilioAccountSID string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `envconfig:"TWILIO_FROM_NUMBER"`
	OwnerPhone       string `envconfig:"OWNER_PHONE"`

	// Events
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"scheduler.events"`

	DigestCron string `envconfig:"DIGEST_CRON" default:"0 7 * * *"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.OwnerPassword == "" && c.OwnerPasswordHash == "" {
		return errors.New("one of OWNER_PASSWORD or OWNER_PASSWORD_HASH must be set")
	}
	if len(c.CSRFKey) != 32 {
		return fmt.Errorf("CSRF_KEY must be exactly 32 bytes, got %d", len(c.CSRFKey))
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) EmailEnabled() bool {
	return c.SendGridAPIKey != "" && c.SendGridFromEmail != ""
}

func (c *Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != "" && c.OwnerPhone != ""
}
