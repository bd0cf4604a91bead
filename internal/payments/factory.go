package payments

import (
	"tournament-reg/internal/config"
	"tournament-reg/internal/payments/razorpay"
	"tournament-reg/internal/payments/stub"
)

// NewProvider picks the gateway once at startup: without both a Razorpay key
// id and secret the service runs against the simulated provider.
func NewProvider(cfg config.Config) PaymentProvider {
	if cfg.Razorpay.KeyID == "" || cfg.Razorpay.KeySecret == "" {
		return stub.New(cfg.Razorpay.WebhookSecret, cfg.Payment.Currency)
	}
	return razorpay.New(razorpay.Options{
		KeyID:         cfg.Razorpay.KeyID,
		KeySecret:     cfg.Razorpay.KeySecret,
		WebhookSecret: cfg.Razorpay.WebhookSecret,
		Currency:      cfg.Payment.Currency,
	})
}
