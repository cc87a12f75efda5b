package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration values
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	CORSOrigins  []string `env:"CORS_ORIGINS" envSeparator:","`
	CookieSecure bool     `env:"COOKIE_SECURE" envDefault:"false"`

	// Access dialog
	FormVariant string        `env:"FORM_VARIANT" envDefault:"early-access"`
	ResetDelay  time.Duration `env:"RESET_DELAY" envDefault:"300ms"`
	SessionTTL  time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	LeadsDBPath string `env:"LEADS_DB_PATH" envDefault:"leads.db"`

	Airtable  AirtableConfig
	TextMagic TextMagicConfig
}

// AirtableConfig enables the Airtable lead sink when APIKey is set
type AirtableConfig struct {
	APIKey     string `env:"AIRTABLE_API_KEY"`
	BaseID     string `env:"AIRTABLE_BASE_ID"`
	LeadsTable string `env:"AIRTABLE_LEADS_TABLE" envDefault:"Leads"`
}

// Enabled reports whether leads should be forwarded to Airtable
func (a AirtableConfig) Enabled() bool {
	return a.APIKey != "" && a.BaseID != ""
}

// TextMagicConfig enables confirmation SMS when credentials are set
type TextMagicConfig struct {
	Username string `env:"TEXTMAGIC_USERNAME"`
	APIKey   string `env:"TEXTMAGIC_API_KEY"`
	ListID   string `env:"TEXTMAGIC_LIST_ID"`
}

// Enabled reports whether confirmation messages should be sent
func (t TextMagicConfig) Enabled() bool {
	return t.Username != "" && t.APIKey != ""
}

// LoadConfig reads .env files, if any, and then the environment
func LoadConfig(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}
	if cfg.ResetDelay < 0 {
		return nil, fmt.Errorf("RESET_DELAY must not be negative, got %s", cfg.ResetDelay)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	if c.Port != "" && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}
