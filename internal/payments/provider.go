package payments

import (
	"context"
	"strings"

	"tournament-reg/internal/models"
	"tournament-reg/internal/payments/stub"
)

type PaymentProvider interface {
	Name() string

	// Live is false for the simulated provider.
	Live() bool

	// CreateOrder reserves amount (whole rupees) at the gateway.
	CreateOrder(ctx context.Context, amount int, contact models.Contact) (models.Order, error)

	// VerifyPayment checks the checkout proof and returns the payment reference to record.
	VerifyPayment(ctx context.Context, proof models.PaymentProof) (paymentRef string, err error)

	// HandleWebhook validates the webhook signature and decodes the event.
	HandleWebhook(ctx context.Context, body []byte, headers map[string]string) (models.WebhookEvent, error)
}

// IsDemoOrder reports whether orderID was issued by the simulated provider.
func IsDemoOrder(orderID string) bool {
	return strings.Contains(orderID, stub.DemoMarker)
}
