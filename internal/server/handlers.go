package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tournament-reg/internal/models"
	"tournament-reg/internal/util"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": util.NowISO(),
		"services":  h.services,
	})
}

// Pricing returns the current price table so the form can show totals.
func (h *Handler) Pricing(c *gin.Context) {
	c.JSON(http.StatusOK, h.prices.Snapshot())
}

// Register handles POST /api/register: validates the form and opens a payment order.
func (h *Handler) Register(c *gin.Context) {
	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}

	order, err := h.svc.CreateOrder(c.Request.Context(), req)
	if err != nil {
		if !isClientError(err) {
			h.logger.Error("order creation failed", zap.Error(err), zap.String("email", req.Email))
		}
		workflowError(c, "Failed to create order", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// verifyRequest accepts both our field names and the ones Razorpay Checkout
// hands to the client.
type verifyRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`

	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`

	FormData *models.RegistrationRequest `json:"formData"`
}

func (r verifyRequest) proof() models.PaymentProof {
	return models.PaymentProof{
		OrderID:   firstNonEmpty(r.OrderID, r.RazorpayOrderID),
		PaymentID: firstNonEmpty(r.PaymentID, r.RazorpayPaymentID),
		Signature: firstNonEmpty(r.Signature, r.RazorpaySignature),
	}
}

// VerifyPayment handles POST /api/verify-payment.
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}

	out, err := h.svc.VerifyPayment(c.Request.Context(), req.proof(), req.FormData)
	if err != nil {
		if !isClientError(err) {
			h.logger.Error("payment verification failed", zap.Error(err), zap.String("order_id", req.proof().OrderID))
		}
		workflowError(c, "Payment verification failed", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
