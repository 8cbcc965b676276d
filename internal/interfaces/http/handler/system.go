package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appChat "github.com/listerdale/chatbot/internal/application/chat"
	"github.com/listerdale/chatbot/internal/infrastructure/knowledge"
	"github.com/listerdale/chatbot/internal/interfaces/http/response"
)

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Modules int    `json:"modules"`
	Model   string `json:"model"`
}

// SystemHandler 健康检查与知识库处理器
type SystemHandler struct {
	store *knowledge.Store
	chat  *appChat.Service
}

// NewSystemHandler 创建系统处理器
func NewSystemHandler(store *knowledge.Store, chat *appChat.Service) *SystemHandler {
	return &SystemHandler{store: store, chat: chat}
}

// Health 健康检查
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Modules: h.store.Count(),
		Model:   h.chat.Model(),
	})
}

// Modules 列出知识库模块
// @Summary 知识库模块
// @Tags 系统
// @Produce json
// @Success 200 {object} response.Response
// @Router /modules [get]
func (h *SystemHandler) Modules(c *gin.Context) {
	response.Success(c, h.store.Modules())
}
