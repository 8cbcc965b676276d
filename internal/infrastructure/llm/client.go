package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/listerdale/chatbot/internal/domain/chat"
	"github.com/listerdale/chatbot/internal/infrastructure/config"
	"github.com/listerdale/chatbot/internal/infrastructure/log"
	"github.com/listerdale/chatbot/internal/infrastructure/metrics"
	openai "github.com/sashabaranov/go-openai"
)

// Client OpenAI 兼容的对话补全客户端
type Client struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

var _ chat.Completer = (*Client)(nil)

// NewClient 创建 LLM 客户端
func NewClient(cfg *config.LLMConfig) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: log.NewModuleLogger("llm", "client"),
	}
}

// Model 返回使用的模型名
func (c *Client) Model() string {
	return c.model
}

// Complete 发送系统提示词与历史消息，返回助手回复
func (c *Client) Complete(ctx context.Context, req chat.CompletionRequest) (*chat.Completion, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	for _, m := range req.History {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	c.logger.Debug("Sending completion request",
		"model", c.model,
		"messages", len(messages),
	)

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	elapsed := time.Since(start)

	if err != nil {
		mapped := mapError(err)
		metrics.LLMRequestDuration.WithLabelValues(c.model, statusLabel(mapped)).Observe(elapsed.Seconds())
		c.logger.Warn("Completion request failed",
			"model", c.model,
			"duration", elapsed,
			"error", err,
		)
		return nil, mapped
	}
	metrics.LLMRequestDuration.WithLabelValues(c.model, "ok").Observe(elapsed.Seconds())
	metrics.LLMTokens.WithLabelValues(c.model, "prompt").Add(float64(resp.Usage.PromptTokens))
	metrics.LLMTokens.WithLabelValues(c.model, "completion").Add(float64(resp.Usage.CompletionTokens))

	completion := &chat.Completion{
		Model:            resp.Model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}
	if len(resp.Choices) > 0 {
		completion.Content = resp.Choices[0].Message.Content
	}

	c.logger.Info("Completion request successful",
		"model", resp.Model,
		"duration", elapsed,
		"tokens", resp.Usage.TotalTokens,
	)
	return completion, nil
}

// mapError 将上游错误映射为领域错误
func mapError(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", chat.ErrCompletionUnauthorized, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", chat.ErrCompletionRateLimited, err)
	default:
		return fmt.Errorf("%w: %v", chat.ErrCompletionFailed, err)
	}
}

func statusLabel(err error) string {
	switch {
	case errors.Is(err, chat.ErrCompletionUnauthorized):
		return "unauthorized"
	case errors.Is(err, chat.ErrCompletionRateLimited):
		return "rate_limited"
	default:
		return "error"
	}
}
