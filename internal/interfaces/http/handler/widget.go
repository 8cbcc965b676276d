package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/listerdale/chatbot/internal/domain/widget"
	"github.com/listerdale/chatbot/internal/infrastructure/config"
	"github.com/listerdale/chatbot/internal/interfaces/http/response"
)

// WidgetConfig 嵌入脚本启动参数
type WidgetConfig struct {
	ContainerID          string   `json:"containerId"`
	StorageKey           string   `json:"storageKey"`
	SessionID            string   `json:"sessionId"`
	Suggestions          []string `json:"suggestions"`
	ConnectionErrorReply string   `json:"connectionErrorReply"`
}

// WidgetHTML 组件渲染结果
type WidgetHTML struct {
	HTML string `json:"html"`
}

// WidgetHandler 聊天组件处理器
type WidgetHandler struct {
	siteURL string
	now     func() time.Time
}

// NewWidgetHandler 创建聊天组件处理器
func NewWidgetHandler(cfg *config.ServerConfig) *WidgetHandler {
	return &WidgetHandler{siteURL: cfg.SiteURL, now: time.Now}
}

// Config 返回嵌入脚本启动参数，附带一个新的客户端会话 ID
// @Summary 组件配置
// @Tags 组件
// @Produce json
// @Success 200 {object} response.Response
// @Router /widget/config [get]
func (h *WidgetHandler) Config(c *gin.Context) {
	response.Success(c, WidgetConfig{
		ContainerID:          widget.ContainerID,
		StorageKey:           widget.StorageKey,
		SessionID:            widget.NewSessionID(h.now()),
		Suggestions:          widget.Suggestions,
		ConnectionErrorReply: widget.ConnectionErrorReply(h.siteURL),
	})
}

// Render 按界面状态渲染组件
// @Summary 渲染组件
// @Tags 组件
// @Accept json
// @Produce json
// @Param body body widget.State true "界面状态"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /widget/render [post]
func (h *WidgetHandler) Render(c *gin.Context) {
	var state widget.State
	if err := c.ShouldBindJSON(&state); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidParam, "invalid widget state")
		return
	}

	html, err := widget.Render(state)
	if err != nil {
		response.ErrorWithDetail(c, http.StatusBadRequest, response.CodeInvalidParam, "render failed", err.Error())
		return
	}
	response.Success(c, WidgetHTML{HTML: html})
}
