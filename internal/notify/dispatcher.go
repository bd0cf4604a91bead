package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tournament-reg/internal/models"
	"tournament-reg/internal/pricing"
)

// AdminAlerter pushes a short text to the organisers. *tgbot.App implements it.
type AdminAlerter interface {
	NotifyAdmins(ctx context.Context, text string) error
}

// Dispatcher sends registration confirmations in the background. Every
// delivery is attempted once; failures are logged and dropped.
type Dispatcher struct {
	mailer     Mailer
	alerts     AdminAlerter
	tournament string
	schedule   string
	timeout    time.Duration
	logger     *zap.Logger
	wg         sync.WaitGroup
}

type Options struct {
	Tournament string
	Schedule   string
	Timeout    time.Duration
}

// NewDispatcher accepts nil mailer or alerts; the missing channel is skipped.
func NewDispatcher(mailer Mailer, alerts AdminAlerter, opts Options, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Dispatcher{
		mailer:     mailer,
		alerts:     alerts,
		tournament: opts.Tournament,
		schedule:   opts.Schedule,
		timeout:    opts.Timeout,
		logger:     logger,
	}
}

// RegistrationCompleted returns immediately; delivery runs detached from the request.
func (d *Dispatcher) RegistrationCompleted(rec models.RegistrationRecord) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.deliver(rec); err != nil {
			d.logger.Warn("registration notifications incomplete", zap.Error(err), zap.String("payment_ref", rec.PaymentRef))
		}
	}()
}

// Wait blocks until in-flight deliveries finish. Used on shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) deliver(rec models.RegistrationRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	var g errgroup.Group
	if d.mailer == nil {
		d.logger.Info("email not configured, skipping confirmation", zap.String("to", rec.Email))
	} else {
		g.Go(func() error {
			body, err := Confirmation(d.tournament, d.schedule, rec.Name, rec.PaymentRef, rec.Events, "")
			if err != nil {
				return err
			}
			return d.send(ctx, rec.Email, fmt.Sprintf(SubjectParticipant, d.tournament), body)
		})
		for _, p := range rec.Partners {
			if strings.TrimSpace(p.Email) == "" {
				continue
			}
			p := p
			g.Go(func() error {
				body, err := Confirmation(d.tournament, d.schedule, p.Name, rec.PaymentRef, rec.Events, rec.Name)
				if err != nil {
					return err
				}
				return d.send(ctx, p.Email, fmt.Sprintf(SubjectPartner, d.tournament), body)
			})
		}
	}
	if d.alerts != nil {
		g.Go(func() error {
			if err := d.alerts.NotifyAdmins(ctx, AdminSummary(rec)); err != nil {
				d.logger.Warn("admin alert failed", zap.Error(err))
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

func (d *Dispatcher) send(ctx context.Context, to, subject, body string) error {
	if err := d.mailer.Send(ctx, to, subject, body); err != nil {
		d.logger.Warn("email failed", zap.String("to", to), zap.Error(err))
		return err
	}
	d.logger.Info("email sent", zap.String("to", to))
	return nil
}

// AdminSummary is the plain-text alert sent to organisers.
func AdminSummary(rec models.RegistrationRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New registration: %s (%s, %s)\n", rec.Name, rec.Email, rec.Phone)
	for _, e := range rec.Events {
		fmt.Fprintf(&b, "- %s\n", pricing.ParseKey(e).Label())
	}
	for _, p := range rec.Partners {
		fmt.Fprintf(&b, "Partner: %s (%s)\n", p.Name, p.Email)
	}
	fmt.Fprintf(&b, "Total: %d\nPayment: %s", rec.Total, rec.PaymentRef)
	return b.String()
}
