package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	appChat "github.com/listerdale/chatbot/internal/application/chat"
	domainChat "github.com/listerdale/chatbot/internal/domain/chat"
	"github.com/listerdale/chatbot/internal/interfaces/http/response"
)

// 嵌入脚本可见的错误文案
const (
	msgMessageRequired = "Message is required"
	msgInvalidAPIKey   = "Invalid OpenAI API key. Check your .env file."
	msgRateLimited     = "Rate limit exceeded. Please wait a moment and try again."
	msgSomethingWrong  = "Something went wrong. Please try again."
)

// ChatRequest 对话请求
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

// ChatHandler 对话处理器
type ChatHandler struct {
	service *appChat.Service
}

// NewChatHandler 创建对话处理器
func NewChatHandler(service *appChat.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

// Send 发送一条访客消息并返回回复
// @Summary 发送消息
// @Tags 对话
// @Accept json
// @Produce json
// @Param body body ChatRequest true "消息"
// @Success 200 {object} appChat.SendResult
// @Failure 400 {object} response.WidgetError
// @Failure 429 {object} response.WidgetError
// @Failure 500 {object} response.WidgetError
// @Router /chat [post]
func (h *ChatHandler) Send(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, msgMessageRequired)
		return
	}

	result, err := h.service.SendMessage(c.Request.Context(), appChat.SendRequest{
		Message:   req.Message,
		SessionID: req.SessionID,
	})
	if err != nil {
		status, msg := chatError(err, h.service.MaxMessageLength())
		response.Fail(c, status, msg)
		return
	}

	c.JSON(http.StatusOK, result)
}

// chatError 把对话错误映射为状态码与文案
func chatError(err error, maxLength int) (int, string) {
	switch {
	case errors.Is(err, domainChat.ErrEmptyMessage):
		return http.StatusBadRequest, msgMessageRequired
	case errors.Is(err, domainChat.ErrMessageTooLong):
		return http.StatusBadRequest, fmt.Sprintf("Message too long (max %d characters)", maxLength)
	case errors.Is(err, domainChat.ErrCompletionUnauthorized):
		return http.StatusInternalServerError, msgInvalidAPIKey
	case errors.Is(err, domainChat.ErrCompletionRateLimited):
		return http.StatusTooManyRequests, msgRateLimited
	default:
		return http.StatusInternalServerError, msgSomethingWrong
	}
}
