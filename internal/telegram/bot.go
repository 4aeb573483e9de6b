package telegram

import (
	"context"
	"log"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"concert-stats/internal/concertstats"
	"concert-stats/internal/prompt"
	"concert-stats/internal/storage"
)

// Options configures a Bot beyond its token and service.
type Options struct {
	AllowedUsers   []int64 // empty allows everyone
	AdminUserID    int64
	ParseMode      string
	DefaultVariant prompt.Variant
	Recorder       storage.Recorder // source for /report, may be nil
}

type Bot struct {
	api            *tgbotapi.BotAPI
	s              sender
	svc            *concertstats.Service
	allowed        map[int64]bool
	adminUserID    int64
	parseMode      string
	defaultVariant prompt.Variant
	recorder       storage.Recorder
	now            func() time.Time
}

func New(botToken string, svc *concertstats.Service, opts Options) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	b := newBot(botAPISender{api: api}, svc, opts)
	b.api = api
	return b, nil
}

func newBot(s sender, svc *concertstats.Service, opts Options) *Bot {
	allowed := make(map[int64]bool, len(opts.AllowedUsers))
	for _, id := range opts.AllowedUsers {
		allowed[id] = true
	}
	variant := opts.DefaultVariant
	if variant == "" {
		variant = prompt.VariantBaseline
	}
	return &Bot{
		s:              s,
		svc:            svc,
		allowed:        allowed,
		adminUserID:    opts.AdminUserID,
		parseMode:      opts.ParseMode,
		defaultVariant: variant,
		recorder:       opts.Recorder,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Start polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	log.Printf("🤖 Bot @%s started", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleIncomingMessage(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) isAllowed(userID int64) bool {
	return len(b.allowed) == 0 || b.allowed[userID] || userID == b.adminUserID
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = b.parseMode
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func userKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
