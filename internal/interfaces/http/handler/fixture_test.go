package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	appChat "github.com/listerdale/chatbot/internal/application/chat"
	appDiagnostic "github.com/listerdale/chatbot/internal/application/diagnostic"
	domainChat "github.com/listerdale/chatbot/internal/domain/chat"
	domainKnowledge "github.com/listerdale/chatbot/internal/domain/knowledge"
	"github.com/listerdale/chatbot/internal/infrastructure/config"
	"github.com/listerdale/chatbot/internal/infrastructure/knowledge"
	"github.com/listerdale/chatbot/internal/infrastructure/storage"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubCompleter 返回固定回复或错误，并记录收到的请求
type stubCompleter struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []domainChat.CompletionRequest
}

func (s *stubCompleter) Complete(ctx context.Context, req domainChat.CompletionRequest) (*domainChat.Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return &domainChat.Completion{Content: s.reply}, nil
}

func (s *stubCompleter) Model() string { return "gpt-4o-mini" }

type runeCounter struct{}

func (runeCounter) CountTokens(text string) int { return len([]rune(text)) }

type testEnv struct {
	store      *knowledge.Store
	completer  *stubCompleter
	chat       *appChat.Service
	diagnostic *appDiagnostic.Service
}

// newTestEnv 基于临时 SQLite 数据库组装服务
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := storage.OpenDB(filepath.Join(t.TempDir(), "handler.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = storage.Migrate(db)
	require.NoError(t, err)

	store := knowledge.NewStore([]domainKnowledge.Module{
		{Title: "How to Delegate", URL: "modules/delegate.html", Section: "Core Skills", Description: "Handing over work"},
		{Title: "How to Give Feedback", URL: "modules/give-feedback.html", Section: "Core Skills"},
	})
	completer := &stubCompleter{reply: "Start with **one** task."}

	chatCfg := &config.ChatConfig{MaxHistory: 20, HistoryTokenBudget: 6000, MaxMessageLength: 50}
	llmCfg := &config.LLMConfig{Model: "gpt-4o-mini", Temperature: 0.7, MaxTokens: 1024}
	chatService := appChat.NewService(
		storage.NewSessionRepository(db),
		storage.NewMessageRepository(db),
		completer,
		store,
		runeCounter{},
		chatCfg,
		llmCfg,
	)

	diagService, err := appDiagnostic.NewService(storage.NewDiagnosticRunRepository(db))
	require.NoError(t, err)

	return &testEnv{store: store, completer: completer, chat: chatService, diagnostic: diagService}
}

// doJSON 发送请求并解析 JSON 响应
func doJSON(t *testing.T, router http.Handler, method, path string, body any, headers ...string) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}
