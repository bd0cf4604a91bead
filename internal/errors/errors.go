package errors

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidSignature   = errors.New("invalid payment signature")
	ErrWebhookSecret      = errors.New("webhook secret not configured")
	ErrPaymentSecret      = errors.New("payment key secret not configured")
	ErrSheetNotConfigured = errors.New("Google Sheets not configured")
	ErrUnknownEvent       = errors.New("invalid category or event type")
	ErrInvalidPrice       = errors.New("price must be a positive integer")
)
