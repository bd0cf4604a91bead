package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tournament-reg/internal/admin"
	"tournament-reg/internal/config"
	"tournament-reg/internal/notify"
	"tournament-reg/internal/payments"
	"tournament-reg/internal/pricing"
	"tournament-reg/internal/registration"
	"tournament-reg/internal/server"
	"tournament-reg/internal/sheets"
	"tournament-reg/internal/tgbot"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		newLogger("info").Fatal("config", zap.Error(err))
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prices := pricing.NewDefaultTable()
	pay := payments.NewProvider(cfg)
	if !pay.Live() {
		logger.Warn("razorpay credentials missing, running in demo mode")
	}

	// interfaces stay nil, not typed-nil, when an integration is off
	var (
		store  registration.RegistrationStore
		reader admin.Reader
		sheet  *sheets.Client
	)
	if cfg.Sheets.Enabled() {
		sheet, err = sheets.New(ctx, cfg.Sheets, logger)
		if err != nil {
			logger.Fatal("sheets", zap.Error(err))
		}
		store, reader = sheet, sheet
	} else {
		logger.Warn("google sheets not configured, registrations will not be stored")
	}

	var mailer notify.Mailer
	if cfg.Email.Enabled() {
		mailer = notify.NewSMTPMailer(cfg.Email)
	} else {
		logger.Warn("smtp not configured, confirmation emails disabled")
	}

	var (
		alerts notify.AdminAlerter
		bot    *tgbot.App
	)
	if cfg.Telegram.Enabled() {
		bot, err = tgbot.New(cfg.Telegram, statsFunc(reader), logger)
		if err != nil {
			logger.Fatal("telegram", zap.Error(err))
		}
		alerts = bot
	}

	dispatcher := notify.NewDispatcher(mailer, alerts, notify.Options{
		Tournament: cfg.Email.TournamentName,
		Schedule:   cfg.Email.Schedule,
	}, logger)

	svc := registration.NewService(prices, pay, store, dispatcher, logger)

	h := server.NewHandler(server.Deps{
		Registration: svc,
		Prices:       prices,
		Payments:     pay,
		Sheet:        reader,
		Services: server.Services{
			Payment:      pay.Live(),
			Notification: mailer != nil,
			Sheet:        reader != nil,
			Telegram:     bot != nil,
		},
		Logger: logger,
	})
	httpSrv := server.New(cfg, h)

	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	if bot != nil {
		go func() {
			if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("bot stopped", zap.Error(err))
			}
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	cancel()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	dispatcher.Wait()
	logger.Info("bye")
}

// statsFunc is nil without a sheet; the bot then answers /stats with a notice.
func statsFunc(reader admin.Reader) tgbot.StatsFunc {
	if reader == nil {
		return nil
	}
	return func(ctx context.Context) (admin.Stats, error) {
		_, rows, err := reader.ReadRegistrations(ctx)
		if err != nil {
			return admin.Stats{}, err
		}
		return admin.ComputeStats(rows), nil
	}
}

func newLogger(level string) *zap.Logger {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
