package stub

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "tournament-reg/internal/errors"
	"tournament-reg/internal/models"
	"tournament-reg/internal/util"
)

// Stub provider, used when no gateway credentials are configured:
// - CreateOrder: order_demo_<ms> with a placeholder key
// - VerifyPayment: always succeeds with pay_demo_<ms>
// - Webhook: X-Razorpay-Signature must be the HMAC SHA-256 of the body

const (
	DemoMarker        = "demo"
	DemoOrderPrefix   = "order_demo_"
	DemoPaymentPrefix = "pay_demo_"
	DemoKeyID         = "rzp_test_demo"
)

type Provider struct {
	webhookSecret string
	currency      string
}

func New(webhookSecret, currency string) *Provider {
	if currency == "" {
		currency = "INR"
	}
	return &Provider{webhookSecret: webhookSecret, currency: currency}
}

func (p *Provider) Name() string { return "stub" }

func (p *Provider) Live() bool { return false }

func (p *Provider) CreateOrder(ctx context.Context, amount int, contact models.Contact) (models.Order, error) {
	return models.Order{
		OrderID:  util.MillisID(DemoOrderPrefix),
		Amount:   amount,
		Currency: p.currency,
		KeyID:    DemoKeyID,
		Demo:     true,
	}, nil
}

func (p *Provider) VerifyPayment(ctx context.Context, proof models.PaymentProof) (string, error) {
	return util.MillisID(DemoPaymentPrefix), nil
}

type webhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

func (p *Provider) HandleWebhook(ctx context.Context, body []byte, headers map[string]string) (models.WebhookEvent, error) {
	return DecodeWebhook(p.webhookSecret, body, headers)
}

// DecodeWebhook verifies a Razorpay-format webhook and extracts the event.
// Both providers share the format, so the live provider calls it as well.
func DecodeWebhook(secret string, body []byte, headers map[string]string) (models.WebhookEvent, error) {
	if secret == "" {
		return models.WebhookEvent{}, apperrors.ErrWebhookSecret
	}
	sig := headers["x-razorpay-signature"]
	if sig == "" || !util.HMACEqual(util.HMACSHA256Hex(secret, string(body)), sig) {
		return models.WebhookEvent{}, apperrors.ErrInvalidSignature
	}

	var pl webhookPayload
	if err := json.Unmarshal(body, &pl); err != nil {
		return models.WebhookEvent{}, fmt.Errorf("decode webhook: %w", err)
	}
	return models.WebhookEvent{
		ID:        headers["x-razorpay-event-id"],
		Event:     pl.Event,
		PaymentID: pl.Payload.Payment.Entity.ID,
		OrderID:   pl.Payload.Payment.Entity.OrderID,
	}, nil
}
