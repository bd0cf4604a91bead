package models

// PartnerInfo describes the second player of a Doubles or Mixed entry.
type PartnerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// RegistrationRequest is the form the client submits. SelectedEvents holds
// "<category>_<eventType>" keys; Partners is keyed by the same strings.
type RegistrationRequest struct {
	Name           string                 `json:"name"`
	Email          string                 `json:"email"`
	Phone          string                 `json:"phone"`
	Address        string                 `json:"address"`
	SelectedEvents []string               `json:"selectedEvents"`
	Partners       map[string]PartnerInfo `json:"partners"`
}

// Contact is passed to the payment gateway as order metadata.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Order is what the client needs to open the gateway checkout.
type Order struct {
	OrderID  string `json:"orderId"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
	Demo     bool   `json:"demo,omitempty"`
}

type PaymentProof struct {
	OrderID   string
	PaymentID string
	Signature string
}

// WebhookEvent is the part of a gateway webhook the service acts on.
type WebhookEvent struct {
	ID        string
	Event     string
	PaymentID string
	OrderID   string
}

const StatusCompleted = "Completed"

// RegistrationRecord is one row of the registrations sheet.
type RegistrationRecord struct {
	CreatedAt  string
	Name       string
	Email      string
	Phone      string
	Address    string
	Events     []string
	Partners   []PartnerInfo
	Total      int
	PaymentRef string
	Status     string
}

// Outcome is returned to the client once a payment is verified and recorded.
type Outcome struct {
	Success        bool   `json:"success"`
	RegistrationID string `json:"registrationId"`
	PaymentRef     string `json:"paymentRef"`
	Demo           bool   `json:"demo,omitempty"`
}
