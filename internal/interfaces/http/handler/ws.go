package handler

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	appChat "github.com/listerdale/chatbot/internal/application/chat"
	"github.com/listerdale/chatbot/internal/infrastructure/config"
	"github.com/listerdale/chatbot/internal/infrastructure/log"
	"github.com/listerdale/chatbot/internal/infrastructure/metrics"
	"github.com/listerdale/chatbot/internal/interfaces/http/middleware"
)

// WebSocket 帧类型
const (
	FrameTyping = "typing"
	FrameReply  = "reply"
	FrameError  = "error"
)

const (
	wsReadLimit   = 16 * 1024
	wsIdleTimeout = 5 * time.Minute
	wsWriteWait   = 10 * time.Second
)

// ClientFrame 客户端帧
type ClientFrame struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

// ServerFrame 服务端帧
type ServerFrame struct {
	Type      string `json:"type"`
	Reply     string `json:"reply,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ChatSocketHandler WebSocket 对话处理器
type ChatSocketHandler struct {
	service  *appChat.Service
	limiter  *middleware.RateLimiter
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewChatSocketHandler 创建 WebSocket 对话处理器
func NewChatSocketHandler(
	service *appChat.Service,
	limiter *middleware.RateLimiter,
	serverCfg *config.ServerConfig,
	wsCfg *config.WebSocketConfig,
) *ChatSocketHandler {
	allowAll := serverCfg.AllowAllOrigins()
	origins := serverCfg.AllowedOrigins
	return &ChatSocketHandler{
		service: service,
		limiter: limiter,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  wsCfg.ReadBufferSize,
			WriteBufferSize: wsCfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || slices.Contains(origins, origin)
			},
		},
		logger: log.NewModuleLogger("http", "ws_chat"),
	}
}

// Serve 升级连接并逐帧处理消息
// @Summary 对话 WebSocket
// @Tags 对话
// @Router /ws/chat [get]
func (h *ChatSocketHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	metrics.WebSocketConnections.Inc()
	defer metrics.WebSocketConnections.Dec()

	ctx := c.Request.Context()
	client := c.ClientIP()
	logger := log.FromContext(ctx, h.logger)
	logger.Debug("WebSocket connected")

	conn.SetReadLimit(wsReadLimit)
	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))

		var frame ClientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("WebSocket read failed", "error", err)
			}
			return
		}

		if err := h.handleFrame(ctx, conn, client, frame); err != nil {
			logger.Warn("WebSocket write failed", "error", err)
			return
		}
	}
}

// handleFrame 处理一帧消息，只有写失败才返回错误
func (h *ChatSocketHandler) handleFrame(ctx context.Context, conn *websocket.Conn, client string, frame ClientFrame) error {
	if h.limiter != nil && !h.limiter.Allow(client) {
		metrics.RateLimited.Inc()
		return writeFrame(conn, ServerFrame{Type: FrameError, Error: middleware.RateLimitMessage})
	}

	if err := writeFrame(conn, ServerFrame{Type: FrameTyping, SessionID: frame.SessionID}); err != nil {
		return err
	}

	result, err := h.service.SendMessage(ctx, appChat.SendRequest{
		Message:   frame.Message,
		SessionID: frame.SessionID,
	})
	if err != nil {
		_, msg := chatError(err, h.service.MaxMessageLength())
		return writeFrame(conn, ServerFrame{Type: FrameError, Error: msg, SessionID: frame.SessionID})
	}
	return writeFrame(conn, ServerFrame{Type: FrameReply, Reply: result.Reply, SessionID: result.SessionID})
}

func writeFrame(conn *websocket.Conn, frame ServerFrame) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(frame)
}
