package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"tournament-reg/internal/admin"
	"tournament-reg/internal/config"
	"tournament-reg/internal/payments"
	"tournament-reg/internal/pricing"
	"tournament-reg/internal/registration"
)

// Services reports which integrations are live; shown by /api/health.
type Services struct {
	Payment      bool `json:"payment"`
	Notification bool `json:"notification"`
	Sheet        bool `json:"sheet"`
	Telegram     bool `json:"telegram"`
}

type Deps struct {
	Registration *registration.Service
	Prices       *pricing.PriceTable
	Payments     payments.PaymentProvider
	// Sheet is nil when Google Sheets is not configured.
	Sheet    admin.Reader
	Services Services
	Logger   *zap.Logger
}

type Handler struct {
	svc      *registration.Service
	prices   *pricing.PriceTable
	pay      payments.PaymentProvider
	sheet    admin.Reader
	services Services
	// webhook event ids already processed
	seen   *gocache.Cache
	logger *zap.Logger
}

func NewHandler(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		svc:      d.Registration,
		prices:   d.Prices,
		pay:      d.Payments,
		sheet:    d.Sheet,
		services: d.Services,
		seen:     gocache.New(24*time.Hour, time.Hour),
		logger:   logger,
	}
}

// Router builds the gin engine with every route mounted.
func Router(cfg config.Config, h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(CORS(cfg.CORSAllowedOrigins))
	router.Use(Logger(h.logger))

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/pricing", h.Pricing)
		api.POST("/register", h.Register)
		api.POST("/verify-payment", h.VerifyPayment)
	}

	router.POST("/webhooks/payment", h.PaymentWebhook)
	router.POST("/webhooks/razorpay", h.PaymentWebhook)

	adm := router.Group("/admin")
	adm.Use(AdminAuth(cfg.AdminToken))
	{
		adm.GET("/registrations", h.Registrations)
		adm.PATCH("/pricing", h.UpdatePricing)
		adm.GET("/stats", h.Stats)
	}
	return router
}

func New(cfg config.Config, h *Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           Router(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
}
