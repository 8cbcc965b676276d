package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainChat "github.com/listerdale/chatbot/internal/domain/chat"
	"github.com/listerdale/chatbot/internal/infrastructure/config"
	"github.com/listerdale/chatbot/internal/infrastructure/log"
	"github.com/listerdale/chatbot/internal/infrastructure/metrics"
)

// FallbackReply 模型返回空内容时的回复
const FallbackReply = "I'm sorry, I couldn't generate a response. Please try again."

// PromptSource 系统提示词来源
type PromptSource interface {
	SystemPrompt() string
}

// SendRequest 发送消息请求
type SendRequest struct {
	Message   string
	SessionID string
}

// SendResult 发送消息结果
type SendResult struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}

// Transcript 会话完整记录
type Transcript struct {
	Session  *domainChat.Session
	Messages []*domainChat.Message
}

// Service 对话服务
type Service struct {
	sessions  domainChat.SessionRepository
	messages  domainChat.MessageRepository
	completer domainChat.Completer
	prompts   PromptSource
	counter   domainChat.TokenCounter
	chatCfg   *config.ChatConfig
	llmCfg    *config.LLMConfig
	logger    *slog.Logger
}

// NewService 创建对话服务
func NewService(
	sessions domainChat.SessionRepository,
	messages domainChat.MessageRepository,
	completer domainChat.Completer,
	prompts PromptSource,
	counter domainChat.TokenCounter,
	chatCfg *config.ChatConfig,
	llmCfg *config.LLMConfig,
) *Service {
	return &Service{
		sessions:  sessions,
		messages:  messages,
		completer: completer,
		prompts:   prompts,
		counter:   counter,
		chatCfg:   chatCfg,
		llmCfg:    llmCfg,
		logger:    log.NewModuleLogger("chat", "service"),
	}
}

// MaxMessageLength 单条消息最大字符数
func (s *Service) MaxMessageLength() int {
	return s.chatCfg.MaxMessageLength
}

// Model 当前使用的模型
func (s *Service) Model() string {
	return s.completer.Model()
}

// SendMessage 保存访客消息，带上有界历史请求模型，并保存回复
func (s *Service) SendMessage(ctx context.Context, req SendRequest) (*SendResult, error) {
	if err := domainChat.ValidateContent(req.Message, s.chatCfg.MaxMessageLength); err != nil {
		metrics.ChatMessages.WithLabelValues("invalid").Inc()
		return nil, err
	}

	session, err := s.resolveSession(req.SessionID)
	if err != nil {
		return nil, err
	}
	logger := log.FromContext(log.WithSessionID(ctx, session.ID), s.logger)

	if err := s.messages.Append(domainChat.NewUserMessage(session.ID, req.Message)); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	recent, err := s.messages.FindRecent(session.ID, s.chatCfg.MaxHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	history := domainChat.Window(recent, s.chatCfg.MaxHistory, s.chatCfg.HistoryTokenBudget, s.counter)
	metrics.HistoryMessages.Observe(float64(len(history)))

	logger.Debug("Requesting completion", "history", len(history), "dropped", len(recent)-len(history))

	completion, err := s.completer.Complete(ctx, domainChat.CompletionRequest{
		SystemPrompt: s.prompts.SystemPrompt(),
		History:      history,
		Temperature:  s.llmCfg.Temperature,
		MaxTokens:    s.llmCfg.MaxTokens,
	})
	if err != nil {
		metrics.ChatMessages.WithLabelValues(outcome(err)).Inc()
		logger.Error("Completion failed", "error", err)
		return nil, err
	}

	reply := completion.Content
	if strings.TrimSpace(reply) == "" {
		reply = FallbackReply
		metrics.ChatMessages.WithLabelValues("fallback").Inc()
	} else {
		metrics.ChatMessages.WithLabelValues("ok").Inc()
	}

	if err := s.messages.Append(domainChat.NewAssistantMessage(session.ID, reply)); err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	return &SendResult{Reply: reply, SessionID: session.ID}, nil
}

// resolveSession 查找已存在的会话，找不到时新建
func (s *Service) resolveSession(id string) (*domainChat.Session, error) {
	if id != "" {
		session, err := s.sessions.FindByID(id)
		if err != nil {
			return nil, fmt.Errorf("failed to find session: %w", err)
		}
		if session != nil {
			return session, nil
		}
	}

	session := &domainChat.Session{}
	if err := s.sessions.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	metrics.ChatSessionsCreated.Inc()
	s.logger.Info("Session created", "session_id", session.ID, "requested_id", id)
	return session, nil
}

// GetSession 获取会话
func (s *Service) GetSession(id string) (*domainChat.Session, error) {
	session, err := s.sessions.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, domainChat.ErrSessionNotFound
	}
	return session, nil
}

// ListSessions 分页列出会话，page 从 1 开始
func (s *Service) ListSessions(page, pageSize int) ([]*domainChat.Session, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.sessions.List(pageSize, (page-1)*pageSize)
}

// Transcript 获取会话完整记录
func (s *Service) Transcript(id string) (*Transcript, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}
	messages, err := s.messages.FindBySession(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	return &Transcript{Session: session, Messages: messages}, nil
}

// DeleteSession 删除会话及消息
func (s *Service) DeleteSession(id string) error {
	if _, err := s.GetSession(id); err != nil {
		return err
	}
	if err := s.sessions.Delete(id); err != nil {
		return err
	}
	s.logger.Info("Session deleted", "session_id", id)
	return nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domainChat.ErrCompletionUnauthorized):
		return "unauthorized"
	case errors.Is(err, domainChat.ErrCompletionRateLimited):
		return "rate_limited"
	default:
		return "error"
	}
}
