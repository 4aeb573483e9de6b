package llm

import (
	"context"
	"log"
)

// PromptExecutor sends a single prompt, optionally preceded by a system
// prompt, and returns the raw text the model produced.
type PromptExecutor struct {
	client       Client
	systemPrompt string
}

func NewPromptExecutor(client Client, systemPrompt string) *PromptExecutor {
	return &PromptExecutor{client: client, systemPrompt: systemPrompt}
}

// Execute returns the content of the first choice. Provider errors are returned as is.
func (e *PromptExecutor) Execute(ctx context.Context, prompt string) (string, error) {
	var msgs []Message
	if e.systemPrompt != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: e.systemPrompt})
	}
	msgs = append(msgs, Message{Role: RoleUser, Content: prompt})

	resp, err := e.client.Generate(ctx, msgs)
	if err != nil {
		return "", err
	}
	log.Printf("LLM response [model=%s, tokens: prompt=%d, completion=%d, total=%d]",
		resp.Model, resp.PromptTokens, resp.CompletionTokens, resp.TotalTokens)
	return resp.Content, nil
}
