package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"concert-stats/internal/analytics"
	"concert-stats/internal/concerts"
	"concert-stats/internal/prompt"
	"concert-stats/internal/summary"
)

const helpText = "Commands:\n" +
	"/log Artist | Venue | YYYY-MM-DD | rating (rating optional)\n" +
	"/stats - totals and average rating\n" +
	"/summary [baseline|json|structured] - AI summary and recommendations\n" +
	"/report - today's summary quality report (admin)\n" +
	"/help - this message"

var errLogUsage = errors.New("usage: /log Artist | Venue | YYYY-MM-DD | rating")

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	if !b.isAllowed(msg.From.ID) {
		log.Printf("Unauthorized access attempt by user ID: %d, username: @%s", msg.From.ID, msg.From.UserName)
		b.sendMessage(msg.Chat.ID, "Access denied.")
		return
	}
	if !msg.IsCommand() {
		b.sendMessage(msg.Chat.ID, b.escape(helpText))
		return
	}
	log.Printf("Command /%s from %d (@%s)", msg.Command(), msg.From.ID, msg.From.UserName)
	b.handleCommand(ctx, msg)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := userKey(msg.From.ID)

	switch msg.Command() {
	case "start", "help":
		b.sendMessage(chatID, b.escape(helpText))
	case "log":
		artist, venue, date, rating, err := parseLogArgs(msg.CommandArguments())
		if err != nil {
			b.sendMessage(chatID, b.escape(err.Error()))
			return
		}
		rec, err := b.svc.LogConcert(ctx, userID, artist, venue, date, rating)
		if err != nil {
			b.sendMessage(chatID, b.escape(userMessage(err)))
			return
		}
		b.sendMessage(chatID, b.escape(fmt.Sprintf("Logged: %s at %s (%s), rating %s", rec.Artist, rec.Venue, rec.Date, rec.RatingString())))
	case "stats":
		st, err := b.svc.Stats(ctx, userID)
		if err != nil {
			b.sendMessage(chatID, b.escape(userMessage(err)))
			return
		}
		b.sendMessage(chatID, b.formatStats(st))
	case "summary":
		variant := b.defaultVariant
		if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
			v, err := prompt.ParseVariant(arg)
			if err != nil {
				b.sendMessage(chatID, b.escape(userMessage(err)))
				return
			}
			variant = v
		}
		sum, err := b.svc.GenerateSummary(ctx, userID, variant)
		if err != nil {
			log.Printf("summary failed for %s: %v", userID, err)
			b.sendMessage(chatID, b.escape(userMessage(err)))
			return
		}
		b.sendMessage(chatID, b.formatSummary(sum))
	case "report":
		if msg.From.ID != b.adminUserID {
			b.sendMessage(chatID, "This command is available to the administrator only.")
			return
		}
		if err := b.SendDailyReport(ctx, b.now()); err != nil {
			b.sendMessage(chatID, b.escape(fmt.Sprintf("Report failed: %v", err)))
		}
	default:
		b.sendMessage(chatID, b.escape("Unknown command.\n\n"+helpText))
	}
}

// SendDailyReport sends the analytics report for day to the administrator.
func (b *Bot) SendDailyReport(_ context.Context, day time.Time) error {
	if b.recorder == nil {
		return errors.New("audit log is disabled")
	}
	if b.adminUserID == 0 {
		return errors.New("admin user is not configured")
	}
	events, err := b.recorder.Load()
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}
	stats := analytics.AnalyzeDailyLogs(events, day)
	b.sendMessage(b.adminUserID, b.escape(stats.GenerateReportSummary()))
	return nil
}

// parseLogArgs splits "Artist | Venue | YYYY-MM-DD | rating".
func parseLogArgs(s string) (artist, venue, date string, rating *float64, err error) {
	parts := strings.Split(s, "|")
	if len(parts) < 3 || len(parts) > 4 {
		return "", "", "", nil, errLogUsage
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	artist, venue, date = parts[0], parts[1], parts[2]
	if artist == "" || venue == "" || date == "" {
		return "", "", "", nil, errLogUsage
	}
	if len(parts) == 4 && parts[3] != "" {
		v, perr := strconv.ParseFloat(parts[3], 64)
		if perr != nil {
			return "", "", "", nil, fmt.Errorf("rating must be a number: %q", parts[3])
		}
		rating = &v
	}
	return artist, venue, date, rating, nil
}

// userMessage maps service errors to replies. Unknown errors are not echoed.
func userMessage(err error) string {
	switch {
	case errors.Is(err, concerts.ErrDuplicateRecord):
		return "This concert is already logged for that artist and date."
	case errors.Is(err, concerts.ErrNoRecords):
		return "No concerts logged yet. Use /log first."
	case errors.Is(err, concerts.ErrInvalidRecord):
		return err.Error()
	case errors.Is(err, prompt.ErrUnknownVariant):
		return "Unknown variant. Use one of: baseline, json, structured."
	case errors.Is(err, summary.ErrMissingSummary),
		errors.Is(err, summary.ErrInvalidSummary),
		errors.Is(err, summary.ErrInvalidRecommendations):
		return "The model answered in an unexpected format. Try again, e.g. /summary json."
	default:
		return "Sorry, something went wrong."
	}
}
