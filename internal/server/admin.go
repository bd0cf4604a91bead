package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tournament-reg/internal/admin"
	apperrors "tournament-reg/internal/errors"
)

// Registrations handles GET /admin/registrations?search=&export=true.
func (h *Handler) Registrations(c *gin.Context) {
	if h.sheet == nil {
		unavailable(c, apperrors.ErrSheetNotConfigured.Error())
		return
	}
	headers, rows, err := h.sheet.ReadRegistrations(c.Request.Context())
	if err != nil {
		h.logger.Error("read registrations", zap.Error(err))
		internalError(c, "Failed to fetch registrations", err)
		return
	}
	rows = admin.Filter(rows, c.Query("search"))

	if c.Query("export") == "true" {
		out, err := admin.CSV(headers, rows)
		if err != nil {
			internalError(c, "Failed to export registrations", err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="registrations.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", out)
		return
	}

	if rows == nil {
		rows = [][]string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"headers": headers,
		"data":    rows,
		"total":   len(rows),
	})
}

type pricingUpdate struct {
	Category  string `json:"category" binding:"required"`
	EventType string `json:"eventType" binding:"required"`
	Price     int    `json:"price"`
}

// UpdatePricing handles PATCH /admin/pricing. Changes live until restart.
func (h *Handler) UpdatePricing(c *gin.Context) {
	var req pricingUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := h.prices.Update(req.Category, req.EventType, req.Price); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnknownEvent):
			badRequest(c, "Invalid category or event type")
		case errors.Is(err, apperrors.ErrInvalidPrice):
			badRequest(c, err.Error())
		default:
			internalError(c, "Failed to update pricing", err)
		}
		return
	}
	h.logger.Info("price updated",
		zap.String("category", req.Category),
		zap.String("event_type", req.EventType),
		zap.Int("price", req.Price),
	)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Pricing updated"})
}

// Stats handles GET /admin/stats.
func (h *Handler) Stats(c *gin.Context) {
	if h.sheet == nil {
		unavailable(c, apperrors.ErrSheetNotConfigured.Error())
		return
	}
	_, rows, err := h.sheet.ReadRegistrations(c.Request.Context())
	if err != nil {
		h.logger.Error("read registrations for stats", zap.Error(err))
		internalError(c, "Failed to fetch stats", err)
		return
	}
	c.JSON(http.StatusOK, admin.ComputeStats(rows))
}
