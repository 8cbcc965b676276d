package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainChat "github.com/listerdale/chatbot/internal/domain/chat"
	"github.com/listerdale/chatbot/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSessionRepository 模拟 SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(session *domainChat.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByID(id string) (*domainChat.Session, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainChat.Session), args.Error(1)
}

func (m *MockSessionRepository) List(limit, offset int) ([]*domainChat.Session, int, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domainChat.Session), args.Int(1), args.Error(2)
}

func (m *MockSessionRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockMessageRepository 模拟 MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Append(msg *domainChat.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockMessageRepository) FindRecent(sessionID string, limit int) ([]*domainChat.Message, error) {
	args := m.Called(sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainChat.Message), args.Error(1)
}

func (m *MockMessageRepository) FindBySession(sessionID string) ([]*domainChat.Message, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainChat.Message), args.Error(1)
}

// MockCompleter 模拟 Completer
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, req domainChat.CompletionRequest) (*domainChat.Completion, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainChat.Completion), args.Error(1)
}

func (m *MockCompleter) Model() string {
	return "gpt-4o-mini"
}

type staticPrompt string

func (p staticPrompt) SystemPrompt() string { return string(p) }

// lengthCounter 按字节数计 Token
type lengthCounter struct{}

func (lengthCounter) CountTokens(text string) int { return len(text) }

type fixture struct {
	sessions  *MockSessionRepository
	messages  *MockMessageRepository
	completer *MockCompleter
	service   *Service
}

func newFixture(chatCfg *config.ChatConfig) *fixture {
	f := &fixture{
		sessions:  &MockSessionRepository{},
		messages:  &MockMessageRepository{},
		completer: &MockCompleter{},
	}
	f.service = NewService(f.sessions, f.messages, f.completer, staticPrompt("SYSTEM"), lengthCounter{},
		chatCfg, &config.LLMConfig{Temperature: 0.7, MaxTokens: 800})
	return f
}

func defaultChatConfig() *config.ChatConfig {
	return &config.ChatConfig{MaxHistory: 20, MaxMessageLength: 2000}
}

func TestSendMessage_ExistingSession(t *testing.T) {
	f := newFixture(defaultChatConfig())
	session := &domainChat.Session{ID: "s1"}
	history := []*domainChat.Message{
		{ID: 1, SessionID: "s1", Role: domainChat.RoleUser, Content: "earlier"},
		{ID: 2, SessionID: "s1", Role: domainChat.RoleAssistant, Content: "answer"},
		{ID: 3, SessionID: "s1", Role: domainChat.RoleUser, Content: "How do I delegate?"},
	}

	f.sessions.On("FindByID", "s1").Return(session, nil)
	f.messages.On("Append", mock.MatchedBy(func(m *domainChat.Message) bool {
		return m.Role == domainChat.RoleUser && m.Content == "How do I delegate?" && m.SessionID == "s1"
	})).Return(nil).Once()
	f.messages.On("FindRecent", "s1", 20).Return(history, nil)
	f.completer.On("Complete", mock.Anything, mock.MatchedBy(func(req domainChat.CompletionRequest) bool {
		return req.SystemPrompt == "SYSTEM" && len(req.History) == 3 && req.MaxTokens == 800
	})).Return(&domainChat.Completion{Content: "Delegate outcomes."}, nil)
	f.messages.On("Append", mock.MatchedBy(func(m *domainChat.Message) bool {
		return m.Role == domainChat.RoleAssistant && m.Content == "Delegate outcomes."
	})).Return(nil).Once()

	result, err := f.service.SendMessage(context.Background(), SendRequest{Message: "  How do I delegate?  ", SessionID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, &SendResult{Reply: "Delegate outcomes.", SessionID: "s1"}, result)
	f.sessions.AssertNotCalled(t, "Create", mock.Anything)
	f.messages.AssertExpectations(t)
	f.completer.AssertExpectations(t)
}

func TestSendMessage_UnknownSessionGetsNewID(t *testing.T) {
	f := newFixture(defaultChatConfig())

	f.sessions.On("FindByID", "ls-abc-12345678").Return(nil, nil)
	f.sessions.On("Create", mock.AnythingOfType("*chat.Session")).Run(func(args mock.Arguments) {
		args.Get(0).(*domainChat.Session).ID = "server-uuid"
	}).Return(nil)
	f.messages.On("Append", mock.Anything).Return(nil)
	f.messages.On("FindRecent", "server-uuid", 20).Return([]*domainChat.Message{
		{SessionID: "server-uuid", Role: domainChat.RoleUser, Content: "hi"},
	}, nil)
	f.completer.On("Complete", mock.Anything, mock.Anything).Return(&domainChat.Completion{Content: "hello"}, nil)

	result, err := f.service.SendMessage(context.Background(), SendRequest{Message: "hi", SessionID: "ls-abc-12345678"})
	require.NoError(t, err)
	assert.Equal(t, "server-uuid", result.SessionID)
}

func TestSendMessage_NoSessionCreatesOne(t *testing.T) {
	f := newFixture(defaultChatConfig())

	f.sessions.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		args.Get(0).(*domainChat.Session).ID = "fresh"
	}).Return(nil)
	f.messages.On("Append", mock.Anything).Return(nil)
	f.messages.On("FindRecent", "fresh", 20).Return([]*domainChat.Message{}, nil)
	f.completer.On("Complete", mock.Anything, mock.Anything).Return(&domainChat.Completion{Content: "ok"}, nil)

	result, err := f.service.SendMessage(context.Background(), SendRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", result.SessionID)
	f.sessions.AssertNotCalled(t, "FindByID", mock.Anything)
}

func TestSendMessage_Validation(t *testing.T) {
	f := newFixture(&config.ChatConfig{MaxHistory: 20, MaxMessageLength: 10})

	_, err := f.service.SendMessage(context.Background(), SendRequest{Message: "   "})
	assert.ErrorIs(t, err, domainChat.ErrEmptyMessage)

	_, err = f.service.SendMessage(context.Background(), SendRequest{Message: "this is far too long"})
	assert.ErrorIs(t, err, domainChat.ErrMessageTooLong)

	f.sessions.AssertNotCalled(t, "Create", mock.Anything)
	f.messages.AssertNotCalled(t, "Append", mock.Anything)
}

func TestSendMessage_EmptyReplyUsesFallback(t *testing.T) {
	f := newFixture(defaultChatConfig())

	f.sessions.On("FindByID", "s1").Return(&domainChat.Session{ID: "s1"}, nil)
	f.messages.On("Append", mock.Anything).Return(nil)
	f.messages.On("FindRecent", "s1", 20).Return([]*domainChat.Message{{Role: domainChat.RoleUser, Content: "hi"}}, nil)
	f.completer.On("Complete", mock.Anything, mock.Anything).Return(&domainChat.Completion{Content: "  "}, nil)

	result, err := f.service.SendMessage(context.Background(), SendRequest{Message: "hi", SessionID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, result.Reply)
	f.messages.AssertCalled(t, "Append", mock.MatchedBy(func(m *domainChat.Message) bool {
		return m.Role == domainChat.RoleAssistant && m.Content == FallbackReply
	}))
}

func TestSendMessage_CompletionErrorKeepsUserMessage(t *testing.T) {
	f := newFixture(defaultChatConfig())
	upstream := fmt.Errorf("%w: 429", domainChat.ErrCompletionRateLimited)

	f.sessions.On("FindByID", "s1").Return(&domainChat.Session{ID: "s1"}, nil)
	f.messages.On("Append", mock.Anything).Return(nil).Once()
	f.messages.On("FindRecent", "s1", 20).Return([]*domainChat.Message{{Role: domainChat.RoleUser, Content: "hi"}}, nil)
	f.completer.On("Complete", mock.Anything, mock.Anything).Return(nil, upstream)

	_, err := f.service.SendMessage(context.Background(), SendRequest{Message: "hi", SessionID: "s1"})
	assert.ErrorIs(t, err, domainChat.ErrCompletionRateLimited)
	f.messages.AssertNumberOfCalls(t, "Append", 1)
}

func TestSendMessage_HistoryTokenBudget(t *testing.T) {
	f := newFixture(&config.ChatConfig{MaxHistory: 20, MaxMessageLength: 2000, HistoryTokenBudget: 10})
	history := []*domainChat.Message{
		{Role: domainChat.RoleUser, Content: "aaaaaaaaaa"},
		{Role: domainChat.RoleAssistant, Content: "bbbbb"},
		{Role: domainChat.RoleUser, Content: "ccccc"},
	}

	f.sessions.On("FindByID", "s1").Return(&domainChat.Session{ID: "s1"}, nil)
	f.messages.On("Append", mock.Anything).Return(nil)
	f.messages.On("FindRecent", "s1", 20).Return(history, nil)
	f.completer.On("Complete", mock.Anything, mock.MatchedBy(func(req domainChat.CompletionRequest) bool {
		return len(req.History) == 2 && req.History[0].Content == "bbbbb"
	})).Return(&domainChat.Completion{Content: "ok"}, nil)

	_, err := f.service.SendMessage(context.Background(), SendRequest{Message: "ccccc", SessionID: "s1"})
	require.NoError(t, err)
	f.completer.AssertExpectations(t)
}

func TestTranscriptOperations(t *testing.T) {
	f := newFixture(defaultChatConfig())
	session := &domainChat.Session{ID: "s1", MessageCount: 2}
	msgs := []*domainChat.Message{
		{Role: domainChat.RoleUser, Content: "q"},
		{Role: domainChat.RoleAssistant, Content: "a"},
	}

	f.sessions.On("FindByID", "s1").Return(session, nil)
	f.sessions.On("FindByID", "missing").Return(nil, nil)
	f.sessions.On("List", 20, 20).Return([]*domainChat.Session{session}, 21, nil)
	f.sessions.On("Delete", "s1").Return(nil)
	f.messages.On("FindBySession", "s1").Return(msgs, nil)

	transcript, err := f.service.Transcript("s1")
	require.NoError(t, err)
	assert.Equal(t, session, transcript.Session)
	assert.Len(t, transcript.Messages, 2)

	_, err = f.service.Transcript("missing")
	assert.ErrorIs(t, err, domainChat.ErrSessionNotFound)

	list, total, err := f.service.ListSessions(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 21, total)
	assert.Len(t, list, 1)

	require.NoError(t, f.service.DeleteSession("s1"))
	assert.ErrorIs(t, f.service.DeleteSession("missing"), domainChat.ErrSessionNotFound)
}

func TestSendMessage_RepositoryFailure(t *testing.T) {
	f := newFixture(defaultChatConfig())
	f.sessions.On("FindByID", "s1").Return(nil, errors.New("disk full"))

	_, err := f.service.SendMessage(context.Background(), SendRequest{Message: "hi", SessionID: "s1"})
	assert.Error(t, err)
}
