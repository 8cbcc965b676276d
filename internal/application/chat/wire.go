package chat

import (
	"github.com/google/wire"
	domainChat "github.com/listerdale/chatbot/internal/domain/chat"
	"github.com/listerdale/chatbot/internal/infrastructure/knowledge"
	"github.com/listerdale/chatbot/internal/infrastructure/tokenizer"
)

// ProviderSet 对话应用服务 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
	wire.Bind(new(PromptSource), new(*knowledge.Store)),
	wire.Bind(new(domainChat.TokenCounter), new(*tokenizer.Counter)),
)
