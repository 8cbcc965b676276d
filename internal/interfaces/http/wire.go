package http

import (
	"github.com/google/wire"
	"github.com/listerdale/chatbot/internal/infrastructure/config"
	"github.com/listerdale/chatbot/internal/interfaces/http/handler"
	"github.com/listerdale/chatbot/internal/interfaces/http/middleware"
)

// ProviderSet HTTP 接口层 ProviderSet
var ProviderSet = wire.NewSet(
	handler.ProviderSet,
	ProvideRateLimiter,
	wire.Struct(new(Handlers), "*"),
	NewServer,
)

// ProvideRateLimiter 按 CHAT_RATE_LIMIT 创建访客限流器
func ProvideRateLimiter(cfg *config.ChatConfig) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit)
}
