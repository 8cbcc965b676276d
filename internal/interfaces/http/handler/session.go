package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	appChat "github.com/listerdale/chatbot/internal/application/chat"
	domainChat "github.com/listerdale/chatbot/internal/domain/chat"
	"github.com/listerdale/chatbot/internal/domain/markdown"
	"github.com/listerdale/chatbot/internal/interfaces/http/response"
)

// SessionDTO 会话
type SessionDTO struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	MessageCount int       `json:"messageCount"`
}

// MessageDTO 消息
type MessageDTO struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionDetailDTO 会话详情
type SessionDetailDTO struct {
	Session  SessionDTO   `json:"session"`
	Messages []MessageDTO `json:"messages"`
}

// TranscriptDTO 渲染后的会话记录
type TranscriptDTO struct {
	SessionID string `json:"sessionId"`
	HTML      string `json:"html"`
}

var transcriptTemplate = template.Must(template.New("transcript").Funcs(template.FuncMap{
	"markdown": func(s string) template.HTML { return template.HTML(markdown.RenderSafe(s)) },
}).Parse(`<div class="lsc-transcript" data-session="{{.Session.ID}}">
{{- range .Messages}}
<div class="lsc-msg lsc-msg-{{.Role}}"><time datetime="{{.CreatedAt.UTC.Format "2006-01-02T15:04:05Z07:00"}}"></time>
{{- if eq .Role "assistant"}}{{markdown .Content}}{{else}}<p>{{.Content}}</p>{{end -}}
</div>
{{- end}}
</div>`))

// SessionHandler 会话管理处理器
type SessionHandler struct {
	service *appChat.Service
}

// NewSessionHandler 创建会话管理处理器
func NewSessionHandler(service *appChat.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

// List 分页列出会话
// @Summary 会话列表
// @Tags 会话管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页条数" default(20)
// @Success 200 {object} response.ResponseWithPage
// @Failure 401 {object} response.ErrorResponse
// @Router /sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	sessions, total, err := h.service.ListSessions(page, pageSize)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "failed to list sessions")
		return
	}

	items := make([]SessionDTO, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, toSessionDTO(s))
	}
	response.SuccessWithPage(c, items, page, pageSize, total)
}

// Get 获取会话及全部消息
// @Summary 会话详情
// @Tags 会话管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	transcript, ok := h.loadTranscript(c)
	if !ok {
		return
	}

	messages := make([]MessageDTO, 0, len(transcript.Messages))
	for _, m := range transcript.Messages {
		messages = append(messages, MessageDTO{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	response.Success(c, SessionDetailDTO{
		Session:  toSessionDTO(transcript.Session),
		Messages: messages,
	})
}

// Transcript 会话记录的 HTML 渲染
// @Summary 会话记录
// @Tags 会话管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /sessions/{id}/transcript [get]
func (h *SessionHandler) Transcript(c *gin.Context) {
	transcript, ok := h.loadTranscript(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := transcriptTemplate.Execute(&buf, transcript); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "failed to render transcript")
		return
	}
	response.Success(c, TranscriptDTO{SessionID: transcript.Session.ID, HTML: buf.String()})
}

// Delete 删除会话
// @Summary 删除会话
// @Tags 会话管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteSession(id); err != nil {
		if errors.Is(err, domainChat.ErrSessionNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "session not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "failed to delete session")
		return
	}
	response.Success(c, gin.H{"id": id})
}

func (h *SessionHandler) loadTranscript(c *gin.Context) (*appChat.Transcript, bool) {
	transcript, err := h.service.Transcript(c.Param("id"))
	if err != nil {
		if errors.Is(err, domainChat.ErrSessionNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "session not found")
			return nil, false
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "failed to load session")
		return nil, false
	}
	return transcript, true
}

func toSessionDTO(s *domainChat.Session) SessionDTO {
	return SessionDTO{
		ID:           s.ID,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		MessageCount: s.MessageCount,
	}
}
