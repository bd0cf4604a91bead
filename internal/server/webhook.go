package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	apperrors "tournament-reg/internal/errors"
)

// PaymentWebhook handles gateway callbacks. The checkout round-trip is the
// primary path; the webhook only confirms captures for the log.
func (h *Handler) PaymentWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, "unreadable body")
		return
	}
	headers := map[string]string{}
	for k, v := range c.Request.Header {
		if len(v) > 0 {
			headers[strings.ToLower(k)] = v[0]
		}
	}

	ev, err := h.pay.HandleWebhook(c.Request.Context(), body, headers)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidSignature) || errors.Is(err, apperrors.ErrWebhookSecret) {
			h.logger.Warn("webhook rejected", zap.Error(err))
			badRequest(c, "Invalid webhook signature")
			return
		}
		badRequest(c, "invalid webhook payload")
		return
	}
	if ev.ID != "" {
		if _, dup := h.seen.Get(ev.ID); dup {
			h.logger.Info("duplicate webhook ignored", zap.String("event_id", ev.ID))
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		h.seen.Set(ev.ID, struct{}{}, gocache.DefaultExpiration)
	}

	switch ev.Event {
	case "payment.captured":
		h.logger.Info("payment captured",
			zap.String("payment_id", ev.PaymentID),
			zap.String("order_id", ev.OrderID),
		)
	default:
		h.logger.Debug("webhook received", zap.String("event", ev.Event))
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
