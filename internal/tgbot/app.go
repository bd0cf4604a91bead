package tgbot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"tournament-reg/internal/admin"
	"tournament-reg/internal/config"
)

// sender is the part of *tgbotapi.BotAPI the app uses to reply.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// StatsFunc loads the current registration stats.
type StatsFunc func(ctx context.Context) (admin.Stats, error)

// App is the organisers' Telegram channel: new registrations are pushed to
// every admin chat, and admins can ask for /stats.
type App struct {
	bot    *tgbotapi.BotAPI
	out    sender
	admins map[int64]bool
	stats  StatsFunc
	logger *zap.Logger
}

func New(cfg config.TelegramConfig, stats StatsFunc, logger *zap.Logger) (*App, error) {
	b, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	b.Debug = false
	a := newApp(b, cfg.AdminTGIDs, stats, logger)
	a.bot = b
	return a, nil
}

func newApp(out sender, adminIDs []int64, stats StatsFunc, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	admins := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &App{out: out, admins: admins, stats: stats, logger: logger}
}

// Run long-polls for updates until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := a.bot.GetUpdatesChan(u)
	defer a.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			if upd.Message == nil {
				continue
			}
			if err := a.handleMessage(ctx, upd.Message); err != nil {
				a.logger.Warn("telegram handle message", zap.Error(err))
			}
		}
	}
}

func (a *App) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := a.out.Send(msg)
	return err
}

// NotifyAdmins sends text to every admin chat and returns the last error.
func (a *App) NotifyAdmins(ctx context.Context, text string) error {
	var lastErr error
	for _, id := range a.adminIDs() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := a.SendText(id, text); err != nil {
			lastErr = fmt.Errorf("notify admin %d: %w", id, err)
		}
		time.Sleep(35 * time.Millisecond) // simple anti-flood
	}
	return lastErr
}

func (a *App) adminIDs() []int64 {
	ids := make([]int64, 0, len(a.admins))
	for id := range a.admins {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (a *App) isAdmin(tgID int64) bool {
	return a.admins[tgID]
}

// ---------- Message handling ----------

func (a *App) handleMessage(ctx context.Context, m *tgbotapi.Message) error {
	if m.From == nil {
		return nil
	}
	tgID := m.From.ID
	txt := strings.TrimSpace(m.Text)

	switch {
	case strings.HasPrefix(txt, "/start"):
		return a.SendText(m.Chat.ID, fmt.Sprintf("Hi! Your Telegram id is %d. Ask the organisers to add it to ADMIN_TG_IDS for registration alerts.", tgID))
	case strings.HasPrefix(txt, "/stats"):
		if !a.isAdmin(tgID) {
			return a.SendText(m.Chat.ID, "Access denied.")
		}
		return a.showStats(ctx, m.Chat.ID)
	default:
		return nil
	}
}

func (a *App) showStats(ctx context.Context, chatID int64) error {
	if a.stats == nil {
		return a.SendText(chatID, "Stats unavailable: Google Sheets not configured.")
	}
	st, err := a.stats(ctx)
	if err != nil {
		a.logger.Warn("telegram stats", zap.Error(err))
		return a.SendText(chatID, "Stats unavailable right now.")
	}
	return a.SendText(chatID, FormatStats(st))
}

// FormatStats renders stats as a Telegram message, categories by name.
func FormatStats(st admin.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Registrations: %d\nRevenue: %.0f\n", st.TotalRegistrations, st.TotalRevenue)
	cats := make([]string, 0, len(st.CategoryStats))
	for c := range st.CategoryStats {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		fmt.Fprintf(&b, "%s: %d\n", c, st.CategoryStats[c])
	}
	return strings.TrimRight(b.String(), "\n")
}
