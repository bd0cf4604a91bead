// Package razorpay is the live payment provider backed by the Razorpay Orders API.
package razorpay

import (
	"context"
	"fmt"

	rzp "github.com/razorpay/razorpay-go"

	apperrors "tournament-reg/internal/errors"
	"tournament-reg/internal/models"
	"tournament-reg/internal/payments/stub"
	"tournament-reg/internal/util"
)

// orderAPI is the subset of the SDK order resource we call.
type orderAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type Options struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
	Currency      string
}

type Provider struct {
	opts   Options
	orders orderAPI
}

func New(opts Options) *Provider {
	client := rzp.NewClient(opts.KeyID, opts.KeySecret)
	return newWithOrders(opts, client.Order)
}

func newWithOrders(opts Options, orders orderAPI) *Provider {
	if opts.Currency == "" {
		opts.Currency = "INR"
	}
	return &Provider{opts: opts, orders: orders}
}

func (p *Provider) Name() string { return "razorpay" }

func (p *Provider) Live() bool { return true }

// CreateOrder books amount rupees; the gateway expects paise.
func (p *Provider) CreateOrder(ctx context.Context, amount int, contact models.Contact) (models.Order, error) {
	resp, err := p.orders.Create(map[string]interface{}{
		"amount":   amount * 100,
		"currency": p.opts.Currency,
		"receipt":  util.MillisID("receipt_"),
		"notes": map[string]interface{}{
			"name":  contact.Name,
			"email": contact.Email,
			"phone": contact.Phone,
		},
	}, nil)
	if err != nil {
		return models.Order{}, fmt.Errorf("razorpay create order: %w", err)
	}
	id, _ := resp["id"].(string)
	if id == "" {
		return models.Order{}, fmt.Errorf("razorpay create order: response has no id")
	}
	return models.Order{
		OrderID:  id,
		Amount:   amount,
		Currency: p.opts.Currency,
		KeyID:    p.opts.KeyID,
	}, nil
}

// VerifyPayment checks the checkout signature: hex HMAC-SHA256 of
// "<orderId>|<paymentId>" keyed with the API secret. A mismatch is final.
func (p *Provider) VerifyPayment(ctx context.Context, proof models.PaymentProof) (string, error) {
	if p.opts.KeySecret == "" {
		return "", apperrors.ErrPaymentSecret
	}
	expected := Signature(p.opts.KeySecret, proof.OrderID, proof.PaymentID)
	if !util.HMACEqual(expected, proof.Signature) {
		return "", apperrors.ErrInvalidSignature
	}
	return proof.PaymentID, nil
}

func (p *Provider) HandleWebhook(ctx context.Context, body []byte, headers map[string]string) (models.WebhookEvent, error) {
	return stub.DecodeWebhook(p.opts.WebhookSecret, body, headers)
}

// Signature computes the checkout signature Razorpay returns to the client.
func Signature(secret, orderID, paymentID string) string {
	return util.HMACSHA256Hex(secret, orderID+"|"+paymentID)
}
