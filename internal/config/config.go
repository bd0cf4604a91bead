package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr           string
	LogLevel           string
	CORSAllowedOrigins string

	// AdminToken guards /admin/*. Empty disables the admin API.
	AdminToken string

	Payment  PaymentConfig
	Razorpay RazorpayConfig
	Email    EmailConfig
	Sheets   SheetsConfig
	Telegram TelegramConfig
}

type PaymentConfig struct {
	Currency string
}

// RazorpayConfig is empty in demo mode.
type RazorpayConfig struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
}

type EmailConfig struct {
	FromAddress string
	FromName    string
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string

	// Shown in confirmation emails.
	TournamentName string
	Schedule       string
}

func (c EmailConfig) Enabled() bool { return c.SMTPHost != "" }

type SheetsConfig struct {
	// ServiceAccountKey is the inline JSON key; ServiceAccountFile a path to it.
	ServiceAccountKey  string
	ServiceAccountFile string
	SpreadsheetID      string
	AppendRange        string
	ReadRange          string
}

func (c SheetsConfig) Enabled() bool {
	return c.SpreadsheetID != "" && (c.ServiceAccountKey != "" || c.ServiceAccountFile != "")
}

type TelegramConfig struct {
	Token      string
	AdminTGIDs []int64
}

func (c TelegramConfig) Enabled() bool { return c.Token != "" }

// FromEnv reads the process environment. Every integration is optional;
// missing credentials put that integration in demo mode.
func FromEnv() (Config, error) {
	var c Config

	c.HTTPAddr = env("HTTP_ADDR", "")
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":" + env("PORT", "3000")
	}
	c.LogLevel = env("LOG_LEVEL", "info")
	c.CORSAllowedOrigins = env("CORS_ALLOWED_ORIGINS", "*")
	c.AdminToken = env("ADMIN_TOKEN", "")

	c.Payment.Currency = env("PAYMENT_CURRENCY", "INR")
	c.Razorpay = RazorpayConfig{
		KeyID:         env("RAZORPAY_KEY_ID", ""),
		KeySecret:     env("RAZORPAY_KEY_SECRET", ""),
		WebhookSecret: env("RAZORPAY_WEBHOOK_SECRET", ""),
	}

	c.Email = EmailConfig{
		FromAddress: env("EMAIL_FROM_ADDRESS", "noreply@example.com"),
		FromName:    env("EMAIL_FROM_NAME", "Tournament Team"),
		SMTPHost:    env("SMTP_HOST", ""),
		SMTPPort:    envInt("SMTP_PORT", 587),
		SMTPUser:    env("SMTP_USER", ""),
		SMTPPass:    env("SMTP_PASS", ""),

		TournamentName: env("TOURNAMENT_NAME", "Pickleball Tournament"),
		Schedule:       env("TOURNAMENT_SCHEDULE", "November 11 & 12, 2024, 08:00 AM - 10:00 PM"),
	}

	c.Sheets = SheetsConfig{
		ServiceAccountKey:  env("GOOGLE_SERVICE_ACCOUNT_KEY", ""),
		ServiceAccountFile: env("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		SpreadsheetID:      env("GOOGLE_SHEET_ID", ""),
		AppendRange:        env("SHEET_APPEND_RANGE", "Sheet1!A:J"),
		ReadRange:          env("SHEET_READ_RANGE", "Registrations!A:J"),
	}

	c.Telegram = TelegramConfig{
		Token:      env("TELEGRAM_BOT_TOKEN", ""),
		AdminTGIDs: parseAdminIDs(os.Getenv("ADMIN_TG_IDS")),
	}

	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// validate rejects half-configured integrations that would otherwise run
// with an empty secret.
func (c Config) validate() error {
	if c.Razorpay.KeyID != "" && c.Razorpay.KeySecret == "" {
		return errors.New("config: RAZORPAY_KEY_SECRET is required when RAZORPAY_KEY_ID is set")
	}
	return nil
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := env(key, ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func parseAdminIDs(raw string) []int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var ids []int64
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, v)
	}
	return ids
}
