package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is built once at startup and passed to every consumer. Nothing
// reads the process environment after LoadConfig returns.
type Config struct {
	Env             string `mapstructure:"ENV"` // development, production
	Port            int    `mapstructure:"PORT"`
	DSN             string `mapstructure:"DSN"`
	SkipAutoMigrate bool   `mapstructure:"SKIP_AUTO_MIGRATE"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	OTPExpiryMinutes         int  `mapstructure:"OTP_EXPIRY_MINUTES"`
	OTPResendIntervalMinutes int  `mapstructure:"OTP_RESEND_INTERVAL_MINUTES"`
	OTPEcho                  bool `mapstructure:"OTP_ECHO"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	FrontendURL    string `mapstructure:"FRONTEND_URL"`
	BackendURL     string `mapstructure:"BACKEND_URL"`
	GoogleClientID string `mapstructure:"GOOGLE_CLIENT_ID"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("ENV", "development")
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("DSN", "host=localhost user=postgres dbname=gather port=5432 sslmode=disable TimeZone=UTC")
	viper.SetDefault("SKIP_AUTO_MIGRATE", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("OTP_EXPIRY_MINUTES", 10)
	viper.SetDefault("OTP_RESEND_INTERVAL_MINUTES", 5)
	viper.SetDefault("OTP_ECHO", true)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_FROM", "Gather <no-reply@gather.local>")
	// Keys without a meaningful default still need registering so that
	// AutomaticEnv picks them up during Unmarshal.
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("BACKEND_URL", "http://localhost:8080")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET is required")
	}
	if cfg.Production() {
		// The dev shortcut of echoing OTP codes in responses must never
		// survive into production.
		cfg.OTPEcho = false
	}

	return &cfg, nil
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

func (c *Config) OTPExpiry() time.Duration {
	return time.Duration(c.OTPExpiryMinutes) * time.Minute
}

func (c *Config) OTPResendInterval() time.Duration {
	return time.Duration(c.OTPResendIntervalMinutes) * time.Minute
}

// AssetURL builds an absolute URL for a file served under /assets.
func (c *Config) AssetURL(filename string) string {
	return c.BackendURL + "/assets/" + filename
}
