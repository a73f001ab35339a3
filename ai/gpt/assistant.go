package gpt

import (
	"AgentsFood/internal/config"
	"AgentsFood/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
)

// Assistant wraps the chat-completions API for the agent's free-form
// replies.
type Assistant struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

// NewAssistant returns nil when no API key is configured; the agent then
// runs rule-based only.
func NewAssistant(conf *config.Config, logger *slog.Logger) *Assistant {
	if conf.OpenAI.ApiKey == "" {
		return nil
	}
	return &Assistant{
		client: openai.NewClient(conf.OpenAI.ApiKey),
		model:  conf.OpenAI.Model,
		log:    logger.With(sl.Module("assistant")),
	}
}

// Complete asks the model for one reply. Any failure is returned as an
// error so the caller can branch to the rule-based path explicitly.
func (a *Assistant) Complete(ctx context.Context, systemPrompt, userMsg string, maxTokens int, temperature float32) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMsg},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat completion: empty response")
	}

	a.log.With(
		slog.Int("prompt_tokens", resp.Usage.PromptTokens),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens),
	).Debug("completion done")

	return resp.Choices[0].Message.Content, nil
}
