package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"concert-stats/internal/concerts"
	"concert-stats/internal/concertstats"
	"concert-stats/internal/config"
	"concert-stats/internal/llm"
	"concert-stats/internal/prompt"
	"concert-stats/internal/scheduler"
	"concert-stats/internal/storage"
	"concert-stats/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	cfg := config.New()
	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	model := cfg.OpenAIModel
	if cfg.LLMProvider == config.ProviderYandex {
		model = "yandexgpt-lite"
	}
	client, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider), model)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}
	executor := llm.NewPromptExecutor(client, readSystemPrompt(cfg.SystemPromptPath))

	var rec storage.Recorder
	if cfg.LogFilePath != "" {
		fr, err := storage.NewFileRecorder(cfg.LogFilePath)
		if err != nil {
			log.Printf("failed to init file recorder: %v", err)
		} else {
			rec = fr
		}
	}

	variant, err := prompt.ParseVariant(cfg.PromptVariant)
	if err != nil {
		log.Fatalf("invalid PROMPT_VARIANT: %v", err)
	}

	svc := concertstats.New(concerts.NewMemoryStore(), executor, model, rec)
	bot, err := telegram.New(cfg.TelegramBotToken, svc, telegram.Options{
		AllowedUsers:   cfg.AllowedUsers,
		AdminUserID:    cfg.AdminUserID,
		ParseMode:      cfg.MessageParseMode,
		DefaultVariant: variant,
		Recorder:       rec,
	})
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AdminUserID != 0 && rec != nil {
		sched := scheduler.New(cfg.ReportSchedule)
		sched.SetReportFunction(func(ctx context.Context) error {
			return bot.SendDailyReport(ctx, time.Now().UTC())
		})
		if err := sched.Start(); err != nil {
			log.Printf("failed to start report scheduler: %v", err)
		} else {
			defer sched.Stop()
		}
	}

	bot.Start(ctx)
}

func readSystemPrompt(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("system prompt file not found or unreadable at %s: %v", path, err)
		return ""
	}
	return string(data)
}
