package registration

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	apperrors "tournament-reg/internal/errors"
	"tournament-reg/internal/models"
	"tournament-reg/internal/payments"
	"tournament-reg/internal/payments/stub"
	"tournament-reg/internal/pricing"
	"tournament-reg/internal/util"
)

// RegistrationStore is the system of record. Rows are only ever appended.
type RegistrationStore interface {
	AppendRegistration(ctx context.Context, rec models.RegistrationRecord) error
}

// Notifier is told about every completed registration. Implementations must
// not block the caller; delivery failures stay inside the notifier.
type Notifier interface {
	RegistrationCompleted(rec models.RegistrationRecord)
}

type Service struct {
	prices    *pricing.PriceTable
	pay       payments.PaymentProvider
	simulated payments.PaymentProvider
	store     RegistrationStore
	notifier  Notifier
	logger    *zap.Logger
}

// NewService wires the workflow. store and notifier may be nil when the
// corresponding integration is not configured.
func NewService(prices *pricing.PriceTable, pay payments.PaymentProvider, store RegistrationStore, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	simulated := pay
	if pay.Live() {
		simulated = stub.New("", "")
	}
	return &Service{
		prices:    prices,
		pay:       pay,
		simulated: simulated,
		store:     store,
		notifier:  notifier,
		logger:    logger,
	}
}

// Demo reports whether the service runs without a live gateway.
func (s *Service) Demo() bool { return !s.pay.Live() }

func (s *Service) Total(req models.RegistrationRequest) int {
	return pricing.ComputeTotal(s.prices, req.SelectedEvents)
}

// CreateOrder validates the form and opens a gateway order for the
// server-side total.
func (s *Service) CreateOrder(ctx context.Context, req models.RegistrationRequest) (models.Order, error) {
	if err := Validate(req); err != nil {
		s.logger.Info("registration rejected", zap.String("reason", err.Error()), zap.String("email", req.Email))
		return models.Order{}, err
	}

	total := s.Total(req)
	order, err := s.pay.CreateOrder(ctx, total, models.Contact{Name: req.Name, Email: req.Email, Phone: req.Phone})
	if err != nil {
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}
	s.logger.Info("order created",
		zap.String("order_id", order.OrderID),
		zap.Int("amount", total),
		zap.String("provider", s.pay.Name()),
		zap.Bool("demo", order.Demo),
	)
	return order, nil
}

func (s *Service) providerFor(orderID string) payments.PaymentProvider {
	if payments.IsDemoOrder(orderID) {
		return s.simulated
	}
	return s.pay
}

// VerifyPayment checks the payment proof and, once verified, records and
// announces the registration. A signature mismatch is terminal.
func (s *Service) VerifyPayment(ctx context.Context, proof models.PaymentProof, req *models.RegistrationRequest) (models.Outcome, error) {
	if proof.OrderID == "" || req == nil {
		return models.Outcome{}, invalid("missing required fields")
	}

	provider := s.providerFor(proof.OrderID)
	if provider.Live() && (proof.PaymentID == "" || proof.Signature == "") {
		return models.Outcome{}, invalid("missing required fields")
	}

	paymentRef, err := provider.VerifyPayment(ctx, proof)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidSignature) {
			s.logger.Warn("payment signature mismatch, possible tampering",
				zap.String("order_id", proof.OrderID),
				zap.String("payment_id", proof.PaymentID),
				zap.String("email", req.Email),
			)
		}
		return models.Outcome{}, err
	}

	return s.Finalize(ctx, *req, paymentRef, !provider.Live())
}

// Finalize appends the registration row and dispatches notifications.
// Only a store failure on a live payment is returned; by then the money
// has moved, so the row needs manual reconciliation.
func (s *Service) Finalize(ctx context.Context, req models.RegistrationRequest, paymentRef string, demo bool) (models.Outcome, error) {
	rec := BuildRecord(req, s.Total(req), paymentRef, util.NowISO())

	if s.store == nil {
		s.logger.Warn("registration store not configured, skipping write", zap.String("payment_ref", paymentRef))
	} else if err := s.store.AppendRegistration(ctx, rec); err != nil {
		if !demo {
			s.logger.Error("registration write failed after payment",
				zap.Error(err),
				zap.String("payment_ref", paymentRef),
				zap.String("email", rec.Email),
				zap.Int("total", rec.Total),
			)
			return models.Outcome{}, fmt.Errorf("append registration: %w", err)
		}
		s.logger.Warn("registration write failed in demo mode", zap.Error(err), zap.String("payment_ref", paymentRef))
	}

	if s.notifier != nil {
		s.notifier.RegistrationCompleted(rec)
	}

	s.logger.Info("registration completed",
		zap.String("payment_ref", paymentRef),
		zap.Int("total", rec.Total),
		zap.Int("events", len(rec.Events)),
		zap.Bool("demo", demo),
	)
	return models.Outcome{
		Success:        true,
		RegistrationID: paymentRef,
		PaymentRef:     paymentRef,
		Demo:           demo,
	}, nil
}
