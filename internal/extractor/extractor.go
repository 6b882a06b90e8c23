// Package extractor talks to an OpenAI-compatible chat completion endpoint to
// pull structured values out of free text.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/angeloszaimis/task-runner/internal/circuitbreaker"
)

var ErrNoAddress = errors.New("no email address in extraction response")

var addressPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

const senderPrompt = `Extract the sender's email address from the email below.
Reply with the address only. No other text.`

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

type Client struct {
	client  *openai.Client
	model   string
	breaker *circuitbreaker.Breaker
	logger  *slog.Logger
}

func New(cfg Config, breaker *circuitbreaker.Breaker, logger *slog.Logger) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		breaker: breaker,
		logger:  logger,
	}
}

// ExtractSender returns the first email address found in the model's reply.
func (c *Client) ExtractSender(ctx context.Context, email string) (string, error) {
	var reply string

	err := c.breaker.Call(func() error {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			Temperature: 0,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: senderPrompt},
				{Role: openai.ChatMessageRoleUser, Content: email},
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return errors.New("extraction response has no choices")
		}

		reply = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		c.logger.Error("Sender extraction failed",
			slog.String("model", c.model),
			slog.String("breaker", c.breaker.State().String()),
			slog.Any("err", err))
		return "", fmt.Errorf("extract sender: %w", err)
	}

	addr := addressPattern.FindString(reply)
	if addr == "" {
		c.logger.Warn("Extraction reply held no address", slog.String("reply", strings.TrimSpace(reply)))
		return "", ErrNoAddress
	}

	return addr, nil
}
