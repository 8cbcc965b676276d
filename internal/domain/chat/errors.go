package chat

import "errors"

var (
	// ErrEmptyMessage 消息为空
	ErrEmptyMessage = errors.New("message is required")
	// ErrMessageTooLong 消息超长
	ErrMessageTooLong = errors.New("message too long")
	// ErrSessionNotFound 会话不存在
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidRole 角色不可持久化
	ErrInvalidRole = errors.New("invalid message role")
	// ErrCompletionUnauthorized 上游拒绝了 API Key
	ErrCompletionUnauthorized = errors.New("completion api rejected credentials")
	// ErrCompletionRateLimited 上游限流
	ErrCompletionRateLimited = errors.New("completion api rate limited")
	// ErrCompletionFailed 上游其他错误
	ErrCompletionFailed = errors.New("completion api failed")
)
