package log

import (
	"context"
	"log/slog"
)

type contextKey string

// 上下文键定义
const (
	// RequestContextID HTTP 请求 ID
	RequestContextID contextKey = "request_id"

	// SessionContextID 聊天会话 ID
	SessionContextID contextKey = "session_id"

	// ClientContextID 客户端标识（IP）
	ClientContextID contextKey = "client_ip"
)

// WithRequestID 在上下文中添加请求 ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestContextID, requestID)
}

// WithSessionID 在上下文中添加会话 ID
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionContextID, sessionID)
}

// WithClientIP 在上下文中添加客户端 IP
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ClientContextID, ip)
}

// RequestIDFromContext 读取请求 ID
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestContextID).(string)
	return id
}

// LogCtxFromContext 从上下文中提取日志字段
func LogCtxFromContext(ctx context.Context) []any {
	var attrs []any
	for _, key := range []contextKey{RequestContextID, SessionContextID, ClientContextID} {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			attrs = append(attrs, slog.String(string(key), v))
		}
	}
	return attrs
}

// FromContext 返回带有上下文字段的 logger
func FromContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if attrs := LogCtxFromContext(ctx); len(attrs) > 0 {
		return logger.With(attrs...)
	}
	return logger
}
