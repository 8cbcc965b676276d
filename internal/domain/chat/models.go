package chat

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Role 消息角色
type Role string

const (
	// RoleSystem 系统提示词
	RoleSystem Role = "system"
	// RoleUser 访客消息
	RoleUser Role = "user"
	// RoleAssistant 助手回复
	RoleAssistant Role = "assistant"
)

// Valid 是否为可持久化的角色（系统提示词不落库）
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Session 会话实体
type Session struct {
	ID           string    // 会话 ID（服务端签发的 UUID）
	CreatedAt    time.Time // 创建时间
	UpdatedAt    time.Time // 最后一条消息时间
	MessageCount int       // 消息数量
}

// Message 消息实体
type Message struct {
	ID        int64     // 自增 ID，决定会话内顺序
	SessionID string    // 所属会话
	Role      Role      // 角色
	Content   string    // 内容（Markdown 子集）
	CreatedAt time.Time // 创建时间
}

// NewUserMessage 创建访客消息（内容去除首尾空白）
func NewUserMessage(sessionID, content string) *Message {
	return &Message{
		SessionID: sessionID,
		Role:      RoleUser,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now(),
	}
}

// NewAssistantMessage 创建助手消息
func NewAssistantMessage(sessionID, content string) *Message {
	return &Message{
		SessionID: sessionID,
		Role:      RoleAssistant,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// ValidateContent 校验访客输入
// 长度按字符（rune）计算，在去除空白之前判断
func ValidateContent(content string, maxLength int) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyMessage
	}
	if maxLength > 0 && utf8.RuneCountInString(content) > maxLength {
		return ErrMessageTooLong
	}
	return nil
}
