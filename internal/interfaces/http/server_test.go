package http

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	appChat "github.com/listerdale/chatbot/internal/application/chat"
	appDiagnostic "github.com/listerdale/chatbot/internal/application/diagnostic"
	domainChat "github.com/listerdale/chatbot/internal/domain/chat"
	domainKnowledge "github.com/listerdale/chatbot/internal/domain/knowledge"
	"github.com/listerdale/chatbot/internal/infrastructure/config"
	"github.com/listerdale/chatbot/internal/infrastructure/knowledge"
	"github.com/listerdale/chatbot/internal/infrastructure/storage"
	"github.com/listerdale/chatbot/internal/interfaces/http/handler"
	"github.com/listerdale/chatbot/internal/interfaces/http/middleware"
	"github.com/listerdale/chatbot/internal/interfaces/mcp"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type echoCompleter struct{}

func (echoCompleter) Complete(ctx context.Context, req domainChat.CompletionRequest) (*domainChat.Completion, error) {
	last := req.History[len(req.History)-1]
	return &domainChat.Completion{Content: "You said: " + last.Content}, nil
}

func (echoCompleter) Model() string { return "echo" }

type byteCounter struct{}

func (byteCounter) CountTokens(text string) int { return len(text) }

func newTestServer(t *testing.T, adminToken string, rateLimit int) *HTTPServer {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Server.AllowedOrigins = []string{"https://listerdalestrategy.com"}
	cfg.Admin.Token = adminToken
	cfg.Chat.RateLimit = rateLimit
	return newTestServerWithConfig(t, cfg)
}

func newTestServerWithConfig(t *testing.T, cfg *config.Config) *HTTPServer {
	t.Helper()

	db, err := storage.OpenDB(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = storage.Migrate(db)
	require.NoError(t, err)

	store := knowledge.NewStore([]domainKnowledge.Module{
		{Title: "How to Delegate", URL: "modules/delegate.html", Section: "Core Skills"},
	})
	chatService := appChat.NewService(
		storage.NewSessionRepository(db),
		storage.NewMessageRepository(db),
		echoCompleter{},
		store,
		byteCounter{},
		&cfg.Chat,
		&cfg.LLM,
	)
	diagService, err := appDiagnostic.NewService(storage.NewDiagnosticRunRepository(db))
	require.NoError(t, err)

	limiter := middleware.NewRateLimiter(cfg.Chat.RateLimit)
	handlers := Handlers{
		Chat:       handler.NewChatHandler(chatService),
		System:     handler.NewSystemHandler(store, chatService),
		Widget:     handler.NewWidgetHandler(&cfg.Server),
		Diagnostic: handler.NewDiagnosticHandler(diagService),
		Session:    handler.NewSessionHandler(chatService),
		Socket:     handler.NewChatSocketHandler(chatService, limiter, &cfg.Server, &cfg.WebSocket),
	}
	mcpServer := mcp.NewServer(store, chatService, diagService)
	return NewServer(&cfg.Server, &cfg.Admin, limiter, handlers, mcpServer)
}

// bearerTransport 为每个请求附加 Authorization 头
type bearerTransport struct {
	token string
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return http.DefaultTransport.RoundTrip(req)
}

func TestServer_HealthAndStatic(t *testing.T) {
	srv := newTestServer(t, "", 0)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","modules":1,"model":"echo"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	for _, name := range []string{"embed.js", "widget.css", "diagnostic.js", "diagnostic.css"} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/"+name, nil))
		assert.Equal(t, http.StatusOK, w.Code, name)
		assert.NotEmpty(t, w.Body.String(), name)
	}
}

func TestServer_AdminDisabled(t *testing.T) {
	srv := newTestServer(t, "", 0)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	req.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_CORS(t *testing.T) {
	srv := newTestServer(t, "", 0)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://listerdalestrategy.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, "https://listerdalestrategy.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_CORSFromPaddedEnv(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	var srv *HTTPServer
	require.NotPanics(t, func() { srv = newTestServerWithConfig(t, cfg) })

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://b.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, "https://b.example", w.Header().Get("Access-Control-Allow-Origin"))

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/chat"
	conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"https://b.example"}})
	require.NoError(t, err)
	resp.Body.Close()
	conn.Close()
}

func TestServer_ChatRateLimit(t *testing.T) {
	srv := newTestServer(t, "", 1)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hello"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send().Code)
	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), middleware.RateLimitMessage)
}

func TestServer_WebSocketChat(t *testing.T) {
	srv := newTestServer(t, "", 0)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/chat"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, conn.WriteJSON(handler.ClientFrame{Message: "hi there"}))

	var frame handler.ServerFrame
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, handler.FrameTyping, frame.Type)

	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, handler.FrameReply, frame.Type)
	assert.Equal(t, "You said: hi there", frame.Reply)
	require.NotEmpty(t, frame.SessionID)

	require.NoError(t, conn.WriteJSON(handler.ClientFrame{Message: "  ", SessionID: frame.SessionID}))
	require.NoError(t, conn.ReadJSON(&frame))
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, handler.FrameError, frame.Type)
	assert.Equal(t, "Message is required", frame.Error)
}

func TestServer_WebSocketRejectsForeignOrigin(t *testing.T) {
	srv := newTestServer(t, "", 0)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/chat"
	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestServer_MCPRequiresAdminToken(t *testing.T) {
	tests := []struct {
		name       string
		adminToken string
		header     string
		wantCode   int
	}{
		{"admin disabled", "", "Bearer secret", http.StatusNotFound},
		{"missing bearer", "secret", "", http.StatusUnauthorized},
		{"wrong bearer", "secret", "Bearer nope", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.adminToken, 0)

			req := httptest.NewRequest(http.MethodGet, "/mcp/sse", nil)
			req.Header.Set("Accept", "text/event-stream")
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestServer_MCPTranscript(t *testing.T) {
	srv := newTestServer(t, "secret", 0)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/chat", strings.NewReader(`{"message":"my private story"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	var chat struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&chat))
	resp.Body.Close()
	require.NotEmpty(t, chat.SessionID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test", Version: "1.0.0"}, nil)

	// 未携带 Token 无法建立会话
	_, err = client.Connect(ctx, &sdkmcp.SSEClientTransport{Endpoint: ts.URL + "/mcp/sse"}, nil)
	require.Error(t, err)

	session, err := client.Connect(ctx, &sdkmcp.SSEClientTransport{
		Endpoint:   ts.URL + "/mcp/sse",
		HTTPClient: &http.Client{Transport: bearerTransport{token: "secret"}},
	}, nil)
	require.NoError(t, err)
	defer session.Close()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_transcript",
		Arguments: map[string]any{"session_id": chat.SessionID},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "my private story")
}

func TestServer_ShutdownBeforeServe(t *testing.T) {
	srv := newTestServer(t, "", 0)
	require.NoError(t, srv.Stop())

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(listener) }()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve blocked after an earlier Shutdown")
	}
}
