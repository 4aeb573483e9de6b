package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"concert-stats/internal/concerts"
	"concert-stats/internal/concertstats"
	"concert-stats/internal/config"
	"concert-stats/internal/llm"
	"concert-stats/internal/mcptools"
	"concert-stats/internal/storage"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	// stdout carries the MCP stream
	log.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	model := cfg.OpenAIModel
	if cfg.LLMProvider == config.ProviderYandex {
		model = "yandexgpt-lite"
	}
	client, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider), model)
	if err != nil {
		log.Fatalf("❌ Failed to create llm client: %v", err)
	}

	var systemPrompt string
	if data, err := os.ReadFile(cfg.SystemPromptPath); err == nil {
		systemPrompt = string(data)
	}

	var rec storage.Recorder
	if cfg.LogFilePath != "" {
		if fr, err := storage.NewFileRecorder(cfg.LogFilePath); err != nil {
			log.Printf("failed to init file recorder: %v", err)
		} else {
			rec = fr
		}
	}

	svc := concertstats.New(concerts.NewMemoryStore(), llm.NewPromptExecutor(client, systemPrompt), model, rec)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "concert-stats-mcp",
		Version: "1.0.0",
	}, nil)
	mcptools.New(svc).Register(server)

	log.Printf("📋 Registered tools: log_concert, concert_stats, concert_summary")
	log.Printf("🔗 Starting server on stdin/stdout...")

	if err := server.Run(context.Background(), mcp.NewStdioTransport()); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
