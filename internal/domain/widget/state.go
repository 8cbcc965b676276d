// Package widget 渲染嵌入式聊天组件的界面状态
//
// 浏览器端只保存状态（是否展开、是否加载中、消息列表），
// 由服务端将状态渲染成组件容器内的 HTML。
package widget

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	// ContainerID 组件挂载的 DOM 容器 ID
	ContainerID = "listerdale-chat-widget"
	// StorageKey 浏览器 localStorage 中保存会话 ID 的键
	StorageKey = "listerdale-chat-session"
	// MaxMessages 单次渲染接受的最大消息数
	MaxMessages = 200

	// FallbackReply 服务端返回内容为空时展示的回复
	FallbackReply = "Sorry, I couldn't process that. Please try again."
)

// Suggestions 空会话时展示的常见问题
var Suggestions = []string{
	"Someone on my team is underperforming",
	"I'm drowning in decisions and tasks",
	"How do I give better feedback?",
	"Help me delegate more effectively",
	"There's conflict on my team",
}

// Message 组件中的一条消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// IsUser 是否为访客消息，其余角色按助手处理
func (m Message) IsUser() bool {
	return m.Role == "user"
}

// State 组件界面状态
type State struct {
	Open     bool      `json:"open"`
	Loading  bool      `json:"loading"`
	Messages []Message `json:"messages"`
}

// Empty 是否展示欢迎页
func (s State) Empty() bool {
	return len(s.Messages) == 0 && !s.Loading
}

// NewSessionID 生成客户端会话 ID：ls-<毫秒 base36>-<8 位随机 base36>
func NewSessionID(now time.Time) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

	var suffix strings.Builder
	for i := 0; i < 8; i++ {
		suffix.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return fmt.Sprintf("ls-%s-%s", strconv.FormatInt(now.UnixMilli(), 36), suffix.String())
}

// ConnectionErrorReply 无法连接服务端时展示的回复
func ConnectionErrorReply(siteURL string) string {
	return fmt.Sprintf("I'm having trouble connecting. Please visit [the leadership modules](%s) directly.", siteURL)
}
